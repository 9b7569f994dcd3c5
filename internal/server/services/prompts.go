// Package services contains server-side business logic. PromptService turns
// untrusted submissions into stored prompts and applies comments to them.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/promptmarket/internal/logging"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
	"github.com/dmitrijs2005/promptmarket/internal/server/records"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/prompts"
)

type PromptService struct {
	repo    prompts.Repository
	builder *records.Builder
	log     logging.Logger
}

func NewPromptService(repo prompts.Repository, builder *records.Builder, log logging.Logger) *PromptService {
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &PromptService{
		repo:    repo,
		builder: builder,
		log:     log.With("module", "services"),
	}
}

// ListAll returns all prompts, newest first.
func (s *PromptService) ListAll(ctx context.Context) ([]*models.Prompt, error) {
	return s.repo.ListAll(ctx)
}

// Create validates the submission and stores the resulting prompt at the
// head of the list. Validation failures are *common.ValidationError.
func (s *PromptService) Create(ctx context.Context, in models.PromptInput) (*models.Prompt, error) {
	p, err := s.builder.BuildPrompt(in)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("error creating prompt: %w", err)
	}

	s.log.Info(ctx, "prompt created", "id", p.ID, "price_type", p.PriceType)
	return p, nil
}

// AddComment validates the comment before touching the store, then prepends
// it to the prompt and recomputes its rating.
func (s *PromptService) AddComment(ctx context.Context, id string, in models.CommentInput) (*models.Prompt, error) {
	c, err := s.builder.BuildComment(in)
	if err != nil {
		return nil, err
	}

	p, err := s.repo.Mutate(ctx, id, func(p *models.Prompt) error {
		records.ApplyComment(p, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error adding comment to %s: %w", id, err)
	}

	s.log.Info(ctx, "comment added", "id", p.ID, "rating", p.Rating, "rating_count", p.RatingCount)
	return p, nil
}
