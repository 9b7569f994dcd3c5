// Package records turns untrusted submissions into Prompt and Comment records
// and (de)serializes them for the backing list.
package records

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
	"github.com/dmitrijs2005/promptmarket/internal/textguard"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	MaxTargets        = 10
	MinPrice          = 1000
	MaxPrice          = 1000000
	MaxCommentLength  = 1000
	MinCommentRating  = 1
	MaxCommentRating  = 5
	randomSuffixChars = 9
)

var validate = validator.New()

// promptFields mirrors the length rules; strings are measured in runes.
type promptFields struct {
	Name          string   `validate:"min=3,max=100"`
	Description   string   `validate:"max=2000"`
	Body          string   `validate:"required,min=10,max=100000"`
	Targets       []string `validate:"min=1"`
	PriceType     string   `validate:"oneof=free paid"`
	SellerContact string   `validate:"required_if=PriceType paid,max=200"`
}

type commentFields struct {
	Text string `validate:"required,max=1000"`
}

// Builder applies field rules, content checks and defaults to submissions.
type Builder struct {
	guard *textguard.Guard
	now   func() time.Time
}

func NewBuilder(guard *textguard.Guard) *Builder {
	if guard == nil {
		guard = &textguard.Guard{}
	}
	return &Builder{guard: guard, now: time.Now}
}

// BuildPrompt validates the submission and returns a fully populated Prompt.
// On failure it returns a *common.ValidationError listing every broken rule
// and no Prompt.
func (b *Builder) BuildPrompt(in models.PromptInput) (*models.Prompt, error) {
	verr := common.NewValidationError()

	priceType := strings.ToLower(strings.TrimSpace(in.PriceType))
	if priceType == "" {
		priceType = string(models.PriceFree)
	}
	paid := priceType == string(models.PricePaid)

	body := strings.TrimSpace(in.Content)
	if paid {
		body = strings.TrimSpace(in.EncryptedContent)
	}

	targets := normalizeTargets(in.SupportedTargets)

	fields := promptFields{
		Name:          strings.TrimSpace(in.Name),
		Description:   strings.TrimSpace(in.Description),
		Body:          body,
		Targets:       targets,
		PriceType:     priceType,
		SellerContact: strings.TrimSpace(in.SellerContact),
	}
	if err := validate.Struct(fields); err != nil {
		for _, msg := range fieldMessages(err, paid) {
			verr.Add(msg)
		}
	}

	var price int64
	if paid {
		p, msg := parsePrice(in.Price)
		if msg != "" {
			verr.Add(msg)
		}
		price = p
	}

	for _, v := range b.guard.Validate(in.Name) {
		verr.Add("name " + v.Message)
	}
	if !paid {
		for _, v := range b.guard.Validate(in.Content) {
			verr.Add("prompt " + v.Message)
		}
	}

	if err := verr.Err(); err != nil {
		return nil, err
	}

	now := b.now()
	p := &models.Prompt{
		ID:               NewID(now),
		Name:             textguard.Sanitize(in.Name),
		SupportedTargets: targets,
		Description:      textguard.Sanitize(in.Description),
		Creator:          textguard.Sanitize(in.Creator),
		IsAnonymous:      in.IsAnonymous,
		PriceType:        models.PriceType(priceType),
		Price:            price,
		SellerContact:    textguard.Sanitize(in.SellerContact),
		Rating:           0,
		RatingCount:      0,
		Comments:         []models.Comment{},
		Timestamp:        now.UnixMilli(),
		Status:           models.StatusApproved,
	}
	if p.Creator == "" {
		p.Creator = models.DefaultCreator
	}
	if paid {
		blob := body
		p.Content = models.EncryptedPlaceholder
		p.EncryptedContent = &blob
	} else {
		p.Content = textguard.Sanitize(in.Content)
	}

	return p, nil
}

// BuildComment validates a comment payload. The text is sanitized; the rating
// must be a whole number between 1 and 5.
func (b *Builder) BuildComment(in models.CommentInput) (models.Comment, error) {
	verr := common.NewValidationError()

	fields := commentFields{Text: strings.TrimSpace(in.Text)}
	if err := validate.Struct(fields); err != nil {
		for _, msg := range fieldMessages(err, false) {
			verr.Add(msg)
		}
	}

	var rating int
	switch {
	case in.Rating == nil:
		verr.Add("rating is required")
	case *in.Rating != math.Trunc(*in.Rating) || *in.Rating < MinCommentRating || *in.Rating > MaxCommentRating:
		verr.Add(fmt.Sprintf("rating must be a whole number between %d and %d", MinCommentRating, MaxCommentRating))
	default:
		rating = int(*in.Rating)
	}

	for _, v := range b.guard.Validate(in.Text) {
		verr.Add("comment " + v.Message)
	}

	if err := verr.Err(); err != nil {
		return models.Comment{}, err
	}

	return models.Comment{
		Text:      textguard.Sanitize(in.Text),
		Rating:    rating,
		Timestamp: b.now().UnixMilli(),
	}, nil
}

// NewID returns "prompt-<unix ms>-<random>"; the random suffix keeps ids
// unique when several prompts are created within the same millisecond.
func NewID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:randomSuffixChars]
	return fmt.Sprintf("prompt-%d-%s", now.UnixMilli(), suffix)
}

// normalizeTargets sanitizes identifiers, drops empty ones and duplicates
// while keeping the first-seen order, and caps the list at MaxTargets.
func normalizeTargets(in []string) []string {
	targets := lo.Compact(lo.Map(in, func(s string, _ int) string {
		return textguard.Sanitize(s)
	}))
	targets = lo.Uniq(targets)
	if len(targets) > MaxTargets {
		targets = targets[:MaxTargets]
	}
	return targets
}

// parsePrice accepts JSON numbers and numeric strings.
func parsePrice(raw any) (int64, string) {
	var price float64
	switch v := raw.(type) {
	case nil:
		return 0, "price is required for paid prompts"
	case float64:
		price = v
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, "price is required for paid prompts"
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, "price must be a whole number"
		}
		price = float64(n)
	default:
		return 0, "price must be a whole number"
	}

	if price != math.Trunc(price) {
		return 0, "price must be a whole number"
	}
	if err := validate.Var(price, fmt.Sprintf("min=%d,max=%d", MinPrice, MaxPrice)); err != nil {
		return 0, fmt.Sprintf("price for paid prompts must be between %d and %d", MinPrice, MaxPrice)
	}
	return int64(price), ""
}

func fieldMessages(err error, paid bool) []string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldMessage(fe, paid))
	}
	return out
}

func fieldMessage(fe validator.FieldError, paid bool) string {
	switch fe.Field() {
	case "Name":
		if fe.Tag() == "min" {
			return "name is too short (minimum 3 characters)"
		}
		return "name is too long (maximum 100 characters)"
	case "Description":
		return "description is too long (maximum 2000 characters)"
	case "Body":
		switch {
		case paid && fe.Tag() == "required":
			return "encrypted prompt is required for paid prompts"
		case fe.Tag() == "max":
			return "prompt is too long (maximum 100000 characters)"
		default:
			return "prompt is too short (minimum 10 characters)"
		}
	case "Targets":
		return "no AI targets selected (choose at least 1)"
	case "PriceType":
		return "price type must be free or paid"
	case "SellerContact":
		if fe.Tag() == "required_if" {
			return "seller contact is required for paid prompts"
		}
		return "seller contact is too long (maximum 200 characters)"
	case "Text":
		if fe.Tag() == "required" {
			return "comment text is required"
		}
		return fmt.Sprintf("comment is too long (maximum %d characters)", MaxCommentLength)
	}
	return fmt.Sprintf("%s is invalid", strings.ToLower(fe.Field()))
}
