package prompts

import (
	"context"

	"github.com/dmitrijs2005/promptmarket/internal/server/models"
)

// MutateFunc changes a prompt in place during a read-modify-write.
type MutateFunc func(p *models.Prompt) error

type Repository interface {
	ListAll(ctx context.Context) ([]*models.Prompt, error)
	Create(ctx context.Context, p *models.Prompt) error
	Mutate(ctx context.Context, id string, fn MutateFunc) (*models.Prompt, error)
}
