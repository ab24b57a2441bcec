package contract

import (
	"context"

	"genegpt-be/internal/model"
)

type IConsultTurnRepository interface {
	Create(ctx context.Context, turn *model.ConsultTurn) error
	ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]model.ConsultTurn, int64, error)
}
