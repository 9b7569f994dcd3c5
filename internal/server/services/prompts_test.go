package services

import (
	"context"
	"errors"
	"testing"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
	"github.com/dmitrijs2005/promptmarket/internal/server/records"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/liststore"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/prompts"
	"github.com/dmitrijs2005/promptmarket/internal/textguard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRepo records calls and fails the test on any unexpected store access.
type fakeRepo struct {
	prompts.Repository
	created  []*models.Prompt
	mutated  int
	createFn func(*models.Prompt) error
}

func (f *fakeRepo) Create(ctx context.Context, p *models.Prompt) error {
	f.created = append(f.created, p)
	if f.createFn != nil {
		return f.createFn(p)
	}
	return nil
}

func (f *fakeRepo) Mutate(ctx context.Context, id string, fn prompts.MutateFunc) (*models.Prompt, error) {
	f.mutated++
	return nil, common.ErrorNotFound
}

func newService(repo prompts.Repository) *PromptService {
	return NewPromptService(repo, records.NewBuilder(&textguard.Guard{}), nil)
}

func rating(v float64) *float64 { return &v }

func validInput() models.PromptInput {
	return models.PromptInput{
		Name:             "Haiku writer",
		SupportedTargets: []string{"gpt-4"},
		Content:          "Write a haiku about autumn leaves.",
	}
}

func TestPromptService_Create(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	p, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	require.Len(t, repo.created, 1)
	assert.Same(t, p, repo.created[0])
	assert.Equal(t, "Haiku writer", p.Name)
}

func TestPromptService_Create_ValidationSkipsStore(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	_, err := svc.Create(context.Background(), models.PromptInput{Name: "Ab", Content: "short"})

	var verr *common.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Messages, 3)
	assert.Empty(t, repo.created)
}

func TestPromptService_Create_StoreError(t *testing.T) {
	repo := &fakeRepo{createFn: func(*models.Prompt) error { return common.ErrStore }}
	svc := newService(repo)

	_, err := svc.Create(context.Background(), validInput())
	assert.True(t, errors.Is(err, common.ErrStore))
	assert.False(t, errors.Is(err, common.ErrorValidation))
}

func TestPromptService_AddComment_ValidationSkipsStore(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	_, err := svc.AddComment(context.Background(), "any", models.CommentInput{Text: "", Rating: rating(9)})
	assert.True(t, errors.Is(err, common.ErrorValidation))
	assert.Zero(t, repo.mutated)
}

func TestPromptService_AddComment_NotFound(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo)

	_, err := svc.AddComment(context.Background(), "missing", models.CommentInput{Text: "great", Rating: rating(5)})
	assert.True(t, errors.Is(err, common.ErrorNotFound))
	assert.Equal(t, 1, repo.mutated)
}

func TestPromptService_EndToEnd(t *testing.T) {
	ctx := context.Background()
	repo := prompts.NewListRepository(liststore.NewMemoryStore(), common.DefaultListKey, 0, nil)
	svc := newService(repo)

	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, created.ID, all[0].ID)
	assert.Zero(t, all[0].Rating)
	assert.Zero(t, all[0].RatingCount)
	assert.Empty(t, all[0].Comments)

	p, err := svc.AddComment(ctx, created.ID, models.CommentInput{Text: "great", Rating: rating(5)})
	require.NoError(t, err)
	assert.Equal(t, 5.0, p.Rating)
	assert.Equal(t, 1, p.RatingCount)
	assert.Equal(t, "great", p.Comments[0].Text)

	p, err = svc.AddComment(ctx, created.ID, models.CommentInput{Text: "meh", Rating: rating(2)})
	require.NoError(t, err)
	assert.Equal(t, 3.5, p.Rating)
	assert.Equal(t, "meh", p.Comments[0].Text)
}
