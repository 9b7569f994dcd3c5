package records

import (
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/promptmarket/internal/common"
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
)

// Encode serializes a prompt into a backing list item.
func Encode(p *models.Prompt) (string, error) {
	b, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode prompt %s: %w", p.ID, err)
	}
	return string(b), nil
}

// Decode parses a backing list item. Anything that is not a JSON prompt with
// an id is reported as common.ErrCorruptRecord.
func Decode(item string) (*models.Prompt, error) {
	var p models.Prompt
	if err := json.Unmarshal([]byte(item), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrCorruptRecord, err)
	}
	if p.ID == "" {
		return nil, fmt.Errorf("%w: missing id", common.ErrCorruptRecord)
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
	if p.SupportedTargets == nil {
		p.SupportedTargets = []string{}
	}
	return &p, nil
}
