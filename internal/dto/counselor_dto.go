package dto

import (
	"time"

	"genegpt-be/pkg/counsel/assemble"
	"genegpt-be/pkg/llm"
	"genegpt-be/pkg/store"
)

// AskRequest carries one user turn. A blank session id means "start a new
// session"; the server generates one and returns it in the response.
type AskRequest struct {
	Message   string `json:"message" validate:"required,min=1,max=4000"`
	SessionId string `json:"session_id" validate:"omitempty,min=8,max=128"`
}

type AskResponse struct {
	Answer        string              `json:"answer"`
	AnswerJSON    assemble.AnswerJSON `json:"answer_json"`
	Usage         llm.Usage           `json:"usage"`
	Trust         float64             `json:"trust"`
	TrustBand     string              `json:"trust_band"`
	Certainty     float64             `json:"certainty"`
	CertaintyBand string              `json:"certainty_band"`
	Sources       []string            `json:"sources"`
	SessionId     string              `json:"session_id"`
}

type SessionStateResponse struct {
	SessionId             string       `json:"session_id"`
	TopicGene             string       `json:"topic_gene,omitempty"`
	CurrentVariant        string       `json:"current_variant,omitempty"`
	VariantClassification string       `json:"variant_classification"`
	TestContext           string       `json:"test_context"`
	LastCategory          string       `json:"last_category,omitempty"`
	History               []store.Turn `json:"history,omitempty"`
	UpdatedAt             time.Time    `json:"updated_at"`
}

// TurnRecordResponse is one persisted audit row.
type TurnRecordResponse struct {
	Gene      string    `json:"gene,omitempty"`
	Category  string    `json:"category"`
	Trust     float64   `json:"trust"`
	Certainty float64   `json:"certainty"`
	Sources   []string  `json:"sources,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type TurnHistoryResponse struct {
	SessionId string               `json:"session_id"`
	Total     int64                `json:"total"`
	Turns     []TurnRecordResponse `json:"turns"`
}

// TurnCompletedMessage is the watermill payload emitted after every finished
// turn, consumed by the audit writer.
type TurnCompletedMessage struct {
	SessionId string   `json:"session_id"`
	Gene      string   `json:"gene,omitempty"`
	Category  string   `json:"category"`
	Trust     float64  `json:"trust"`
	Certainty float64  `json:"certainty"`
	Sources   []string `json:"sources,omitempty"`
}
