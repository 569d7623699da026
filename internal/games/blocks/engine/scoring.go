package engine

var clearPoints = [...]int{0, 40, 100, 300, 1200}

// ScoreForClear returns the points for clearing n rows at a level.
// Four or more rows score as four.
func ScoreForClear(n, level int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(clearPoints) {
		n = len(clearPoints) - 1
	}
	if level < 0 {
		level = 0
	}
	return clearPoints[n] * (level + 1)
}

var attackRows = [...]int{0, 0, 1, 2, 4}

// AttackForClear returns how many garbage rows a clear of n rows sends.
func AttackForClear(n int) int {
	if n <= 0 {
		return 0
	}
	if n >= len(attackRows) {
		n = len(attackRows) - 1
	}
	return attackRows[n]
}
