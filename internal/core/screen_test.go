package core

import "testing"

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("NewScreen(80, 24) is %dx%d", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != blankCell {
				t.Fatalf("cell (%d, %d) = %+v, want blank", x, y, c)
			}
		}
	}
}

func TestScreenSetAndGet(t *testing.T) {
	s := NewScreen(10, 5)
	s.SetColored(1, 2, '█', ColorCyan)
	s.Set(9, 4, 'X')
	s.Set(-1, 0, 'Z')
	s.Set(10, 0, 'Z')

	tests := []struct {
		x, y int
		want Cell
	}{
		{1, 2, Cell{'█', ColorCyan}},
		{9, 4, Cell{'X', ColorDefault}},
		{-1, 0, blankCell},
		{100, 0, blankCell},
		{0, 5, blankCell},
	}
	for _, tt := range tests {
		if got := s.GetCell(tt.x, tt.y); got != tt.want {
			t.Errorf("GetCell(%d, %d) = %+v, want %+v", tt.x, tt.y, got, tt.want)
		}
	}

	s.Clear()
	if s.Get(1, 2) != ' ' || s.GetCell(1, 2).Color != ColorDefault {
		t.Error("Clear left a colored cell")
	}
}

func TestScreenText(t *testing.T) {
	s := NewScreen(20, 3)
	s.DrawText(2, 0, "Hello")
	s.DrawText(18, 1, "Hello")
	s.DrawTextColored(0, 2, "ёo", ColorYellow)

	if got := s.Row(0); got != "  Hello             " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Row(1)[18:]; got != "He" {
		t.Errorf("clipped text = %q, want %q", got, "He")
	}
	if s.Get(1, 2) != 'o' || s.GetCell(0, 2).Color != ColorYellow {
		t.Errorf("DrawTextColored should advance one column per rune, got %q", s.Row(2))
	}

	s.Clear()
	s.DrawTextCentered(1, "Hi")
	if s.Get(9, 1) != 'H' || s.Get(10, 1) != 'i' {
		t.Errorf("DrawTextCentered: row = %q", s.Row(1))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(8, 6)
	s.DrawBox(NewRect(1, 1, 5, 4), ColorGray)

	want := []string{
		"        ",
		" ┌───┐  ",
		" │   │  ",
		" │   │  ",
		" └───┘  ",
		"        ",
	}
	for y, row := range want {
		if got := s.Row(y); got != row {
			t.Errorf("row %d = %q, want %q", y, got, row)
		}
	}
	if s.GetCell(1, 1).Color != ColorGray {
		t.Error("box should use the given color")
	}
}

func TestScreenStringAndResize(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawText(0, 0, "abc")
	s.DrawText(0, 1, "de")
	if got := s.String(); got != "abc\nde " {
		t.Errorf("String() = %q", got)
	}
	if got := s.Row(5); got != "   " {
		t.Errorf("Row(5) = %q, want blank", got)
	}

	s.Resize(2, 3)
	if got := s.String(); got != "ab\nde\n  " {
		t.Errorf("after Resize(2, 3) String() = %q", got)
	}
	s.Resize(0, 0)
	if s.String() != "" {
		t.Error("empty screen should render as empty string")
	}
}
