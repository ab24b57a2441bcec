package implementation

import (
	"context"

	"genegpt-be/internal/model"
	"genegpt-be/internal/repository/contract"

	"gorm.io/gorm"
)

type ConsultTurnRepositoryImpl struct {
	db *gorm.DB
}

func NewConsultTurnRepository(db *gorm.DB) contract.IConsultTurnRepository {
	return &ConsultTurnRepositoryImpl{db: db}
}

func (r *ConsultTurnRepositoryImpl) Create(ctx context.Context, turn *model.ConsultTurn) error {
	return r.db.WithContext(ctx).Create(turn).Error
}

func (r *ConsultTurnRepositoryImpl) ListBySession(ctx context.Context, sessionID string, limit, offset int) ([]model.ConsultTurn, int64, error) {
	var turns []model.ConsultTurn
	var total int64

	db := r.db.WithContext(ctx).Model(&model.ConsultTurn{}).Where("session_id = ?", sessionID)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&turns).Error

	return turns, total, err
}
