package selection

import "github.com/google/uuid"

// Session is a draw in progress: the pool order for a query and the position
// of the candidate currently shown.
type Session struct {
	ID     string   `json:"id"`
	Query  Query    `json:"query"`
	Stage  Stage    `json:"stage"`
	Origin string   `json:"origin"`
	IDs    []string `json:"ids"`
	Index  int      `json:"index"`
	Round  int      `json:"round"`
}

// NewSession opens a session positioned on the first candidate of p.
func NewSession(q Query, p Pool) *Session {
	return &Session{
		ID:     uuid.NewString(),
		Query:  q,
		Stage:  p.Stage,
		Origin: p.Origin,
		IDs:    p.IDs(),
	}
}

// Current returns the id of the candidate being shown.
func (s *Session) Current() (string, bool) {
	if s.Index < 0 || s.Index >= len(s.IDs) {
		return "", false
	}
	return s.IDs[s.Index], true
}

// Remaining returns how many candidates follow the current one.
func (s *Session) Remaining() int {
	if n := len(s.IDs) - s.Index - 1; n > 0 {
		return n
	}
	return 0
}

// Exhausted reports whether the last candidate is being shown.
func (s *Session) Exhausted() bool {
	return s.Remaining() == 0
}

// Advance moves to the next candidate. It returns false when the pool is
// exhausted and must be rebuilt with Restart.
func (s *Session) Advance() bool {
	if s.Exhausted() {
		return false
	}
	s.Index++
	return true
}

// Restart replaces the pool with p and starts a new round from its first
// candidate. The session id is kept.
func (s *Session) Restart(p Pool) {
	s.Stage = p.Stage
	s.Origin = p.Origin
	s.IDs = p.IDs()
	s.Index = 0
	s.Round++
}
