package contract

import "genegpt-be/pkg/store"

// ISessionRepository is the session persistence collaborator. A missing
// session is not an error; callers create a fresh one. Implementations must
// be safe for concurrent access across unrelated session ids.
type ISessionRepository interface {
	Save(session *store.Session)
	Get(sessionID string) (*store.Session, bool)
	Delete(sessionID string)
}
