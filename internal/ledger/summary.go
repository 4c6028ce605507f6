package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/GregMSThompson/ledger-backend/internal/models"
)

// CategoryTotal is one slice of the monthly expense breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Color    string          `json:"color"`
}

// MonthlyCategorySummary totals this month's expenses per category. "This
// month" is the calendar month of now in now's location. Transfer legs are
// excluded. Categories that no longer exist keep their name and get the
// fallback color. Largest totals come first.
func MonthlyCategorySummary(txs []models.Transaction, categories []models.Category, now time.Time) []CategoryTotal {
	loc := now.Location()
	year, month, _ := now.Date()

	totals := map[string]decimal.Decimal{}
	for _, t := range txs {
		if t.Type != models.KindExpense || t.Category == TransferCategory {
			continue
		}
		y, m, _ := t.Date.In(loc).Date()
		if y != year || m != month {
			continue
		}
		totals[t.Category] = totals[t.Category].Add(t.Amount)
	}

	out := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		color := FallbackColor
		if c, ok := findCategory(name, categories); ok {
			color = colorOrFallback(c.Color)
		}
		out = append(out, CategoryTotal{Category: name, Total: total, Color: color})
	}

	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Total.Cmp(out[j].Total); c != 0 {
			return c > 0
		}
		return out[i].Category < out[j].Category
	})
	return out
}
