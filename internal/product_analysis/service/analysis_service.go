package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hedamo/hedamo-backend/internal/logging"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/domain"
)

// AIService is the subset of the upstream client the analysis needs
type AIService interface {
	GenerateQuestions(ctx context.Context, req domain.QuestionRequest) (domain.Payload, error)
	ScoreTransparency(ctx context.Context, req domain.ScoreRequest) (domain.Payload, error)
}

// ReportRecorder receives a history record for every successful analysis
type ReportRecorder interface {
	Save(ctx context.Context, rec *domain.ReportRecord) error
}

type phase int

const (
	phaseAwaitingQuestions phase = iota
	phaseAwaitingScore
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseAwaitingQuestions:
		return "awaiting_questions"
	case phaseAwaitingScore:
		return "awaiting_score"
	default:
		return "done"
	}
}

// AnalysisService runs the two-phase product analysis.
// Question generation is mandatory; scoring is optional and its failure is absorbed.
type AnalysisService struct {
	ai       AIService
	recorder ReportRecorder
	now      func() time.Time
}

func NewAnalysisService(ai AIService, recorder ReportRecorder) *AnalysisService {
	return &AnalysisService{
		ai:       ai,
		recorder: recorder,
		now:      time.Now,
	}
}

// WithClock replaces the timestamp source, used by tests
func (s *AnalysisService) WithClock(now func() time.Time) *AnalysisService {
	s.now = now
	return s
}

// run holds the state of one analysis as it moves through the phases
type run struct {
	phase     phase
	questions json.RawMessage
	score     domain.Payload
}

// Analyze generates questions for the product and, when answers are
// supplied, scores them. A question generation failure fails the whole
// analysis and no scoring call is made.
func (s *AnalysisService) Analyze(ctx context.Context, data domain.ProductData) (*domain.AnalysisResponse, error) {
	logger := logging.NewLogger(ctx).With("product", data.ProductName)
	st := &run{phase: phaseAwaitingQuestions}

	for st.phase != phaseDone {
		switch st.phase {
		case phaseAwaitingQuestions:
			payload, err := s.ai.GenerateQuestions(ctx, questionRequest(data))
			if err != nil {
				logger.LogError("generate_questions", err)
				return nil, fmt.Errorf("%w: %w", domain.ErrQuestionGeneration, err)
			}
			st.questions = questionsOf(payload)

			if len(data.Answers) > 0 {
				st.phase = phaseAwaitingScore
			} else {
				st.phase = phaseDone
			}

		case phaseAwaitingScore:
			payload, err := s.ai.ScoreTransparency(ctx, scoreRequest(data))
			if err != nil {
				logger.LogWarnf("transparency_score", "scoring failed, returning questions only: %v", err)
				st.score = nil
			} else {
				st.score = payload
			}
			st.phase = phaseDone
		}
	}

	resp := &domain.AnalysisResponse{
		Success:   true,
		Questions: st.questions,
		Score:     st.score,
		ProductInfo: domain.ProductInfo{
			Name:       data.ProductName,
			Brand:      data.Brand,
			Category:   data.Category,
			AnalyzedAt: s.now().UTC(),
		},
	}

	s.record(ctx, logger, resp)
	return resp, nil
}

func (s *AnalysisService) record(ctx context.Context, logger *logging.Logger, resp *domain.AnalysisResponse) {
	if s.recorder == nil {
		return
	}

	rec := &domain.ReportRecord{
		ID:          uuid.New().String(),
		ProductName: resp.ProductInfo.Name,
		Brand:       resp.ProductInfo.Brand,
		Category:    resp.ProductInfo.Category,
		Scored:      resp.Score != nil,
		AnalyzedAt:  resp.ProductInfo.AnalyzedAt,
	}
	if overall, ok := resp.Score.Float("overall_score"); ok {
		rec.OverallScore = &overall
	}

	if err := s.recorder.Save(ctx, rec); err != nil {
		logger.LogWarnf("record_report", "failed to store analysis record: %v", err)
	}
}

// questionRequest builds a fresh upstream body; caller slices are copied.
func questionRequest(data domain.ProductData) domain.QuestionRequest {
	concerns := make([]string, len(data.Concerns))
	copy(concerns, data.Concerns)

	return domain.QuestionRequest{
		ProductName:  data.ProductName,
		Brand:        data.Brand,
		Category:     data.Category,
		UserConcerns: concerns,
	}
}

func scoreRequest(data domain.ProductData) domain.ScoreRequest {
	answers := make([]domain.Answer, len(data.Answers))
	copy(answers, data.Answers)

	return domain.ScoreRequest{
		ProductName: data.ProductName,
		Answers:     answers,
	}
}

// questionsOf extracts the "questions" value of the upstream payload as raw JSON
func questionsOf(p domain.Payload) json.RawMessage {
	if !p.Has("questions") {
		return nil
	}
	raw, err := json.Marshal(p.Value("questions"))
	if err != nil {
		return nil
	}
	return raw
}
