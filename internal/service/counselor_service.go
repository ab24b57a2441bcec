package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"genegpt-be/internal/dto"
	"genegpt-be/internal/pkg/logger"
	"genegpt-be/internal/repository/contract"
	"genegpt-be/pkg/counsel"
	"genegpt-be/pkg/counsel/score"
	"genegpt-be/pkg/events"
	pkgnats "genegpt-be/pkg/nats"
	"genegpt-be/pkg/store"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ICounselorService interface {
	Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error)
	GetSession(ctx context.Context, sessionID string) (*dto.SessionStateResponse, error)
	GetTurnHistory(ctx context.Context, sessionID string, limit, offset int) (*dto.TurnHistoryResponse, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type counselorService struct {
	pipeline    *counsel.Pipeline
	sessionRepo contract.ISessionRepository
	turnRepo    contract.IConsultTurnRepository // nil when no database is configured
	publisher   IPublisherService
	natsPub     *pkgnats.Publisher
	logger      logger.ILogger

	// sessionLocks serializes turns per session id so overlapping requests
	// for the same session cannot lose updates.
	sessionLocks sync.Map
}

func NewCounselorService(
	pipeline *counsel.Pipeline,
	sessionRepo contract.ISessionRepository,
	turnRepo contract.IConsultTurnRepository,
	publisher IPublisherService,
	natsPub *pkgnats.Publisher,
	sysLogger logger.ILogger,
) ICounselorService {
	return &counselorService{
		pipeline:    pipeline,
		sessionRepo: sessionRepo,
		turnRepo:    turnRepo,
		publisher:   publisher,
		natsPub:     natsPub,
		logger:      sysLogger,
	}
}

func (s *counselorService) lockSession(sessionID string) *sync.Mutex {
	mu, _ := s.sessionLocks.LoadOrStore(sessionID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func (s *counselorService) Ask(ctx context.Context, req *dto.AskRequest) (*dto.AskResponse, error) {
	sessionID := req.SessionId
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	mu := s.lockSession(sessionID)
	mu.Lock()
	defer mu.Unlock()

	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		session = store.NewSession(sessionID)
		s.logger.Info("counselor", "created new session", map[string]interface{}{
			"session_id": sessionID,
		})
	}

	result, err := s.pipeline.Run(ctx, session, req.Message)
	if err != nil {
		// Caller disconnected: discard the in-flight turn without committing.
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		// Synthesis failure is fatal to the turn, but the guard/variant
		// mutations already applied are still worth keeping.
		s.sessionRepo.Save(session)
		s.logger.Error("counselor", "synthesis failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, fiber.NewError(fiber.StatusBadGateway, "The counselor is temporarily unavailable. Please try again.")
	}

	session.AppendTurn(req.Message, result.Answer)
	s.sessionRepo.Save(session)

	s.publishTurnCompleted(ctx, sessionID, result.AnswerJSON.Gene.Symbol, result.AnswerJSON.QuestionType, result.Trust, result.Certainty, result.Sources)

	return &dto.AskResponse{
		Answer:        result.Answer,
		AnswerJSON:    result.AnswerJSON,
		Usage:         result.Usage,
		Trust:         result.Trust,
		TrustBand:     score.TrustBand(result.Trust),
		Certainty:     result.Certainty,
		CertaintyBand: score.CertaintyBand(result.Certainty),
		Sources:       result.Sources,
		SessionId:     sessionID,
	}, nil
}

func (s *counselorService) publishTurnCompleted(ctx context.Context, sessionID, gene, category string, trust, certainty float64, sourceList []string) {
	msg := dto.TurnCompletedMessage{
		SessionId: sessionID,
		Gene:      gene,
		Category:  category,
		Trust:     trust,
		Certainty: certainty,
		Sources:   sourceList,
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return
	}
	if err := s.publisher.Publish(ctx, payload); err != nil {
		s.logger.Warn("counselor", "failed to publish turn event", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
	}

	if s.natsPub != nil {
		event := events.NewTurnCompletedEvent(sessionID, gene, category, trust, certainty, sourceList)
		if err := s.natsPub.Publish(ctx, event); err != nil {
			s.logger.Warn("counselor", "failed to publish NATS event", map[string]interface{}{
				"session_id": sessionID,
				"error":      err.Error(),
			})
		}
	}

	s.logger.Info("counselor", "turn completed", map[string]interface{}{
		"session_id": sessionID,
		"gene":       gene,
		"category":   category,
		"trust":      trust,
		"certainty":  certainty,
		"sources":    strings.Join(sourceList, ","),
	})
}

func (s *counselorService) GetSession(_ context.Context, sessionID string) (*dto.SessionStateResponse, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, fiber.NewError(fiber.StatusNotFound, "Session not found")
	}

	return &dto.SessionStateResponse{
		SessionId:             session.ID,
		TopicGene:             session.TopicGene,
		CurrentVariant:        session.CurrentVariant,
		VariantClassification: session.VariantClassification,
		TestContext:           session.TestContext,
		LastCategory:          session.LastCategory,
		History:               session.History,
		UpdatedAt:             session.UpdatedAt,
	}, nil
}

func (s *counselorService) GetTurnHistory(ctx context.Context, sessionID string, limit, offset int) (*dto.TurnHistoryResponse, error) {
	if s.turnRepo == nil {
		return nil, fiber.NewError(fiber.StatusNotImplemented, "Turn history requires a configured database")
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	turns, total, err := s.turnRepo.ListBySession(ctx, sessionID, limit, offset)
	if err != nil {
		return nil, err
	}

	res := &dto.TurnHistoryResponse{
		SessionId: sessionID,
		Total:     total,
		Turns:     make([]dto.TurnRecordResponse, 0, len(turns)),
	}
	for _, t := range turns {
		var sourceList []string
		if t.Sources != "" {
			sourceList = strings.Split(t.Sources, ",")
		}
		res.Turns = append(res.Turns, dto.TurnRecordResponse{
			Gene:      t.Gene,
			Category:  t.Category,
			Trust:     t.Trust,
			Certainty: t.Certainty,
			Sources:   sourceList,
			CreatedAt: t.CreatedAt,
		})
	}
	return res, nil
}

func (s *counselorService) DeleteSession(_ context.Context, sessionID string) error {
	s.sessionRepo.Delete(sessionID)
	s.sessionLocks.Delete(sessionID)
	return nil
}
