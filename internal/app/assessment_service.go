package app

import (
	"context"
	"strings"
	"time"

	"gorm.io/datatypes"

	"intelimed/internal/model"
	"intelimed/internal/observability"
)

// RiskAlertPublisher queues high-risk alerts for asynchronous delivery.
type RiskAlertPublisher interface {
	PublishRiskAlert(ctx context.Context, alert model.RiskAlert) error
}

type AssessmentService struct {
	store     AssessmentStore
	analyzer  *RiskAnalyzer
	publisher RiskAlertPublisher
	now       func() time.Time
}

type SubmitAssessmentInput struct {
	UserID    string
	Responses map[string]interface{}
}

type SubmitAssessmentResult struct {
	model.HealthAssessment
	Analysis Analysis `json:"analysis"`
}

// NewAssessmentService wires the assessment flow; publisher may be nil.
func NewAssessmentService(store AssessmentStore, analyzer *RiskAnalyzer, publisher RiskAlertPublisher) *AssessmentService {
	return &AssessmentService{
		store:     store,
		analyzer:  analyzer,
		publisher: publisher,
		now:       time.Now,
	}
}

func (s *AssessmentService) Submit(ctx context.Context, input SubmitAssessmentInput) (*SubmitAssessmentResult, error) {
	userID := strings.TrimSpace(input.UserID)
	if userID == "" || input.Responses == nil {
		return nil, ErrInvalidInput
	}

	analysis := s.analyzer.Analyze(ctx, input.Responses)

	assessment := &model.HealthAssessment{
		ID:              model.NewID(),
		UserID:          userID,
		Responses:       datatypes.JSONMap(input.Responses),
		RiskLevel:       analysis.RiskLevel,
		Recommendations: datatypes.JSONSlice[string](analysis.Recommendations),
		AnalysisStatus:  analysis.Status,
		CompletedAt:     s.now(),
	}
	if err := s.store.AppendAssessment(ctx, assessment); err != nil {
		return nil, err
	}

	if assessment.RiskLevel == model.RiskHigh && s.publisher != nil {
		alert := model.RiskAlert{
			AssessmentID:    assessment.ID,
			UserID:          assessment.UserID,
			RiskLevel:       assessment.RiskLevel,
			Recommendations: analysis.Recommendations,
			RaisedAt:        assessment.CompletedAt,
		}
		if err := s.publisher.PublishRiskAlert(ctx, alert); err != nil {
			observability.LoggerFromContext(ctx).Error("publish risk alert failed",
				"assessment_id", assessment.ID,
				"error", err,
			)
		}
	}

	return &SubmitAssessmentResult{HealthAssessment: *assessment, Analysis: analysis}, nil
}

func (s *AssessmentService) ListByUser(ctx context.Context, userID string) ([]model.HealthAssessment, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrInvalidInput
	}
	items, err := s.store.ListAssessmentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []model.HealthAssessment{}
	}
	return items, nil
}
