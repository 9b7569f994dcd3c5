// Package models defines the records persisted in the backing list and the
// untrusted inputs they are built from.
package models

type PriceType string

const (
	PriceFree PriceType = "free"
	PricePaid PriceType = "paid"
)

const (
	StatusApproved = "approved"

	// EncryptedPlaceholder replaces the body of paid prompts; the real body only
	// ever travels as client-encrypted ciphertext.
	EncryptedPlaceholder = "[ENCRYPTED]"

	DefaultCreator = "Anonymous"
)

// Prompt is a listed text artifact with its marketplace metadata.
// It is stored as one JSON document per backing list entry.
type Prompt struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	SupportedTargets []string  `json:"ai"`
	Description      string    `json:"description"`
	Content          string    `json:"prompt"`
	EncryptedContent *string   `json:"encryptedPrompt"`
	Creator          string    `json:"creator"`
	IsAnonymous      bool      `json:"isAnonymous"`
	PriceType        PriceType `json:"priceType"`
	Price            int64     `json:"price"`
	SellerContact    string    `json:"sellerContact"`
	Rating           float64   `json:"rating"`
	RatingCount      int       `json:"ratingCount"`
	Comments         []Comment `json:"comments"`
	Timestamp        int64     `json:"timestamp"`
	Status           string    `json:"status"`
}

func (p *Prompt) IsPaid() bool {
	return p.PriceType == PricePaid
}

type Comment struct {
	Text      string `json:"text"`
	Rating    int    `json:"rating"`
	Timestamp int64  `json:"timestamp"`
}

// PromptInput is the untrusted submission as received from a client.
// Price stays loosely typed because clients send it both as number and string.
type PromptInput struct {
	Name             string   `json:"name"`
	SupportedTargets []string `json:"ai"`
	Description      string   `json:"description"`
	Content          string   `json:"prompt"`
	EncryptedContent string   `json:"encryptedPrompt"`
	Creator          string   `json:"creator"`
	IsAnonymous      bool     `json:"isAnonymous"`
	PriceType        string   `json:"priceType"`
	Price            any      `json:"price"`
	SellerContact    string   `json:"sellerContact"`
}

// CommentInput is the untrusted comment payload. Rating is a pointer so a
// missing rating can be told apart from zero.
type CommentInput struct {
	Text   string   `json:"text"`
	Rating *float64 `json:"rating"`
}
