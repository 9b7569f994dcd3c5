package records

import (
	"github.com/dmitrijs2005/promptmarket/internal/server/models"
	"github.com/shopspring/decimal"
)

// ApplyComment puts c in front of the comment list and recomputes the
// derived rating fields.
func ApplyComment(p *models.Prompt, c models.Comment) {
	p.Comments = append([]models.Comment{c}, p.Comments...)
	Recompute(p)
}

// Recompute sets Rating to the mean comment rating rounded to one decimal
// place and RatingCount to the number of comments.
func Recompute(p *models.Prompt) {
	p.RatingCount = len(p.Comments)
	if p.RatingCount == 0 {
		p.Rating = 0
		return
	}

	sum := decimal.Zero
	for _, c := range p.Comments {
		sum = sum.Add(decimal.NewFromInt(int64(c.Rating)))
	}
	mean := sum.Div(decimal.NewFromInt(int64(p.RatingCount))).Round(1)
	p.Rating = mean.InexactFloat64()
}
