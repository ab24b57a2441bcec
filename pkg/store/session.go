package store

import "time"

// Turn is a single prior exchange kept in the rolling session history.
type Turn struct {
	Role    string `json:"role"` // "user" | "assistant"
	Content string `json:"content"`
}

// Session represents the active clinical conversation state in memory.
// One topic gene is active at a time; a LINK turn additionally carries the
// previous gene as SecondaryGene for that turn only.
type Session struct {
	ID string `json:"id"`

	// THE CLINICAL CONTEXT (what the conversation is currently about)
	TopicGene             string `json:"topic_gene"`
	SecondaryGene         string `json:"secondary_gene"` // set by LINK turns, cleared on commit of the next turn
	CurrentVariant        string `json:"current_variant"`
	VariantClassification string `json:"variant_classification"` // "VUS", "pathogenic", ... or "unknown"
	TestContext           string `json:"test_context"`           // "germline" | "somatic" | "unknown"

	LastCategory string `json:"last_category"`

	// Rolling turn history for follow-up detection and synthesis context
	History []Turn `json:"history"`

	UpdatedAt time.Time `json:"updated_at"`
}

// MaxHistoryTurns bounds the rolling history to the last N exchanges
// (each exchange is a user message plus the assistant reply).
const MaxHistoryTurns = 10

// NewSession creates an empty session with default clinical state.
func NewSession(id string) *Session {
	return &Session{
		ID:                    id,
		VariantClassification: "unknown",
		TestContext:           "unknown",
		UpdatedAt:             time.Now(),
	}
}

// ResetClinicalContext wipes the active gene/variant context. The rolling
// history is kept; only the clinical focus is cleared.
func (s *Session) ResetClinicalContext() {
	s.TopicGene = ""
	s.SecondaryGene = ""
	s.CurrentVariant = ""
	s.VariantClassification = "unknown"
	s.TestContext = "unknown"
}

// AppendTurn records an exchange and trims the buffer to MaxHistoryTurns.
func (s *Session) AppendTurn(userText, assistantText string) {
	if userText != "" {
		s.History = append(s.History, Turn{Role: "user", Content: userText})
	}
	if assistantText != "" {
		s.History = append(s.History, Turn{Role: "assistant", Content: assistantText})
	}
	maxMsgs := MaxHistoryTurns * 2
	if len(s.History) > maxMsgs {
		s.History = s.History[len(s.History)-maxMsgs:]
	}
}
