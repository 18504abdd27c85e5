package paperwork

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"pet-marketplace/internal/authz"
	"pet-marketplace/internal/platform/apperr"
	"pet-marketplace/internal/platform/metrics"
	"pet-marketplace/internal/workflow"
)

type Service struct {
	repo  Repository
	rules *authz.RuleSet
	now   func() time.Time
}

func NewService(repo Repository, rules *authz.RuleSet) *Service {
	return &Service{repo: repo, rules: rules, now: time.Now}
}

type SubmitInput struct {
	Title       string
	Description string
	DocumentURL string
}

func (s *Service) Submit(ctx context.Context, actorID string, in SubmitInput) (Submission, error) {
	title, url := strings.TrimSpace(in.Title), strings.TrimSpace(in.DocumentURL)
	if title == "" || url == "" {
		return Submission{}, apperr.Validation("title and documentUrl are required")
	}
	now := s.now()
	sub := Submission{
		ID:          uuid.NewString(),
		UserID:      actorID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		DocumentURL: url,
		Status:      workflow.Submission.Initial,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, sub); err != nil {
		return Submission{}, err
	}
	return sub, nil
}

func (s *Service) ListMine(ctx context.Context, actorID string) ([]Submission, error) {
	return s.repo.ListByUser(ctx, actorID)
}

// ListPending: solo admins de plataforma.
func (s *Service) ListPending(ctx context.Context, actorID string) ([]Submission, error) {
	if err := s.rules.RequireAdmin(ctx, actorID); err != nil {
		return nil, err
	}
	return s.repo.ListByStatus(ctx, string(workflow.Submission.Initial))
}

// Process: solo admin de plataforma. Guarda notes finales.
func (s *Service) Process(ctx context.Context, actorID, id string, req workflow.ProcessRequest) (Submission, error) {
	d, err := workflow.ParseDecision(req.Action)
	if err != nil {
		return Submission{}, err
	}
	sub, err := s.repo.GetByID(ctx, strings.TrimSpace(id))
	if err != nil {
		return Submission{}, apperr.MapNotFound(err, "Submission not found")
	}
	if err := s.rules.Require(ctx, actorID, authz.ActionProcessPaperwork, authz.Resource{}); err != nil {
		return Submission{}, err
	}

	out, err := workflow.Submission.Apply(sub.Status, d)
	if err != nil {
		return Submission{}, err
	}
	now := s.now()
	sub.Status = out.To
	sub.Notes = strings.TrimSpace(req.Notes)
	sub.ProcessedByID = &actorID
	sub.ProcessedAt = &now
	sub.UpdatedAt = now
	if err := s.repo.Update(ctx, sub); err != nil {
		return Submission{}, err
	}
	metrics.RecordTransition(workflow.Submission.Name, out.MetricLabel())
	return sub, nil
}
