package session

import "errors"

// ErrNotFound is returned by Repository.Load when no session exists for
// the given id.
var ErrNotFound = errors.New("session not found")

// Summary is a compact view of a session for listings.
type Summary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Complete  bool   `json:"complete"`
	Answers   int    `json:"answers"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Repository persists sessions. Implementations are synchronous from the
// caller's perspective: the server loads a session, performs one engine
// operation, and saves it back as the unit of atomicity.
//
// There is no conflict detection — if two callers race on the same
// session id, the last Save wins. This is an accepted limitation, not a
// guarantee.
type Repository interface {
	// Create persists a new session. Fails if the id already exists.
	Create(s *Session) error

	// Load returns the session with the given id, or ErrNotFound.
	Load(id string) (*Session, error)

	// Save overwrites the stored session.
	Save(s *Session) error

	// List returns summaries of all sessions, most recently updated first.
	List() ([]Summary, error)

	// Close releases any underlying resources.
	Close() error
}

func summarize(s *Session) Summary {
	return Summary{
		ID:        s.ID,
		Title:     s.Title,
		Complete:  s.Complete,
		Answers:   len(s.Answers),
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
