package multiplayer

import "sync"

// SessionHandle is how the coordinator and matches reach a connected player
// without knowing the transport.
type SessionHandle interface {
	ID() SessionID
	// Name is the display name shown to the opponent and stored with results.
	Name() string
	// Send delivers evt without blocking.
	Send(evt SessionEvent)
	// Done is closed when the player disconnects.
	Done() <-chan struct{}
}

// ChannelSession is a SessionHandle backed by a buffered channel that a
// Bubble Tea program drains.
type ChannelSession struct {
	id     SessionID
	name   string
	events chan SessionEvent
	done   chan struct{}
	once   sync.Once
}

// NewChannelSession creates a session buffering up to size events. The name
// falls back to the ID.
func NewChannelSession(id SessionID, name string, size int) *ChannelSession {
	if size < 1 {
		size = 64
	}
	if name == "" {
		name = string(id)
	}
	return &ChannelSession{
		id:     id,
		name:   name,
		events: make(chan SessionEvent, size),
		done:   make(chan struct{}),
	}
}

func (s *ChannelSession) ID() SessionID { return s.id }

func (s *ChannelSession) Name() string { return s.name }

// Events is the receive side read by the UI.
func (s *ChannelSession) Events() <-chan SessionEvent { return s.events }

func (s *ChannelSession) Done() <-chan struct{} { return s.done }

// Send enqueues evt. When the reader falls behind the oldest event is
// discarded; snapshots arrive every tick, so a slow terminal only skips
// frames. Events sent after Close are dropped.
func (s *ChannelSession) Send(evt SessionEvent) {
	select {
	case <-s.done:
		return
	default:
	}
	for range 2 {
		select {
		case s.events <- evt:
			return
		default:
		}
		select {
		case <-s.events:
		default:
		}
	}
}

// Close ends the session. It is idempotent.
func (s *ChannelSession) Close() {
	s.once.Do(func() { close(s.done) })
}

// SessionRegistry maps session IDs to live handles. It is safe for
// concurrent use.
type SessionRegistry struct {
	mu       sync.RWMutex
	sessions map[SessionID]SessionHandle
}

// NewSessionRegistry returns an empty registry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[SessionID]SessionHandle)}
}

// Register adds or replaces a session.
func (r *SessionRegistry) Register(s SessionHandle) {
	r.mu.Lock()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
}

// Unregister forgets a session.
func (r *SessionRegistry) Unregister(id SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
}

// Get looks a session up by ID.
func (r *SessionRegistry) Get(id SessionID) (SessionHandle, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	return s, ok
}

// Count returns the number of live sessions.
func (r *SessionRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
