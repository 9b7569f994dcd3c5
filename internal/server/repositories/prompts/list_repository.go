package prompts

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/dmitrijs2005/promptmarket/internal/logging"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
	"github.com/dmitrijs2005/promptmarket/internal/server/records"
	"github.com/dmitrijs2005/promptmarket/internal/server/repositories/liststore"
)

// MaxMutateAttempts bounds how often a read-modify-write is retried after a
// concurrent writer changed the list.
const MaxMutateAttempts = 3

// ListRepository keeps every prompt as one encoded item of a single list,
// newest first.
type ListRepository struct {
	store      liststore.Store
	key        string
	maxRecords int
	log        logging.Logger
}

func NewListRepository(store liststore.Store, key string, maxRecords int, log logging.Logger) *ListRepository {
	if key == "" {
		key = common.DefaultListKey
	}
	if maxRecords <= 0 {
		maxRecords = common.DefaultMaxRecords
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	return &ListRepository{
		store:      store,
		key:        key,
		maxRecords: maxRecords,
		log:        log.With("module", "prompts"),
	}
}

// ListAll returns every readable prompt ordered by timestamp, newest first.
// Items that cannot be decoded are logged and skipped.
func (r *ListRepository) ListAll(ctx context.Context) ([]*models.Prompt, error) {
	items, err := r.store.Range(ctx, r.key, 0, -1)
	if err != nil {
		return nil, err
	}

	out := make([]*models.Prompt, 0, len(items))
	for i, item := range items {
		p, err := records.Decode(item)
		if err != nil {
			r.log.Warn(ctx, "skipping corrupt record", "index", i, "error", err)
			continue
		}
		out = append(out, p)
	}

	slices.SortStableFunc(out, func(a, b *models.Prompt) int {
		switch {
		case a.Timestamp > b.Timestamp:
			return -1
		case a.Timestamp < b.Timestamp:
			return 1
		}
		return 0
	})
	return out, nil
}

// Create puts p at the head of the list and evicts whatever falls beyond
// the record cap.
func (r *ListRepository) Create(ctx context.Context, p *models.Prompt) error {
	item, err := records.Encode(p)
	if err != nil {
		return err
	}

	if err := r.store.PushFront(ctx, r.key, item); err != nil {
		return err
	}
	return r.store.Trim(ctx, r.key, 0, int64(r.maxRecords-1))
}

// Mutate applies fn to the prompt with the given id and writes the list
// back. Stores implementing liststore.Swapper get a compare-and-swap that is
// retried on conflict; other stores are rewritten with clear and push, where
// a concurrent writer can lose its update.
func (r *ListRepository) Mutate(ctx context.Context, id string, fn MutateFunc) (*models.Prompt, error) {
	swapper, ok := r.store.(liststore.Swapper)
	if !ok {
		return r.mutateOnce(ctx, id, fn, r.rewrite)
	}

	var err error
	for attempt := 1; attempt <= MaxMutateAttempts; attempt++ {
		var p *models.Prompt
		p, err = r.mutateOnce(ctx, id, fn, func(ctx context.Context, expected, items []string) error {
			return swapper.Swap(ctx, r.key, expected, items)
		})
		if !errors.Is(err, common.ErrVersionConflict) {
			return p, err
		}
		r.log.Debug(ctx, "list changed during update, retrying", "id", id, "attempt", attempt)
	}
	return nil, fmt.Errorf("update prompt %s: %w", id, err)
}

type replaceFunc func(ctx context.Context, expected, items []string) error

func (r *ListRepository) mutateOnce(ctx context.Context, id string, fn MutateFunc, replace replaceFunc) (*models.Prompt, error) {
	items, err := r.store.Range(ctx, r.key, 0, -1)
	if err != nil {
		return nil, err
	}

	idx := -1
	var target *models.Prompt
	for i, item := range items {
		p, err := records.Decode(item)
		if err != nil {
			continue
		}
		if p.ID == id {
			idx, target = i, p
			break
		}
	}
	if target == nil {
		return nil, common.ErrorNotFound
	}

	if err := fn(target); err != nil {
		return nil, err
	}

	encoded, err := records.Encode(target)
	if err != nil {
		return nil, err
	}

	updated := slices.Clone(items)
	updated[idx] = encoded
	if err := replace(ctx, items, updated); err != nil {
		return nil, err
	}
	return target, nil
}

// rewrite replaces the list without any concurrency protection.
func (r *ListRepository) rewrite(ctx context.Context, _ []string, items []string) error {
	if err := r.store.Clear(ctx, r.key); err != nil {
		return err
	}
	for i := len(items) - 1; i >= 0; i-- {
		if err := r.store.PushFront(ctx, r.key, items[i]); err != nil {
			return err
		}
	}
	return r.store.Trim(ctx, r.key, 0, int64(r.maxRecords-1))
}
