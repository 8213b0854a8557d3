package models

import (
	"fmt"
	"time"
)

type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "income"
	TransactionTypeExpense TransactionType = "expense"
)

// CreatedAtLayout matches the millisecond ISO-8601 form clients already parse.
const CreatedAtLayout = "2006-01-02T15:04:05.000Z07:00"

type Transaction struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Amount    float64         `json:"amount"`
	Type      TransactionType `json:"type"`
	Category  string          `json:"category"`
	Date      string          `json:"date"`
	Note      *string         `json:"note"`
	CreatedAt string          `json:"createdAt"`
}

// Summary holds the aggregate totals over every stored transaction.
type Summary struct {
	TotalIncome   float64 `json:"totalIncome"`
	TotalExpenses float64 `json:"totalExpenses"`
	NetBalance    float64 `json:"netBalance"`
}

// CategoryTotal is one row of the per-category breakdown.
type CategoryTotal struct {
	Category string          `json:"category"`
	Type     TransactionType `json:"type"`
	Total    float64         `json:"total"`
	Count    int             `json:"count"`
}

// Accepted date layouts, most specific first.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	"2006-01",
	"2006",
}

// ParseDate parses an ISO-8601 date or date-time string.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid ISO 8601 date %q", s)
}

// FormatCreatedAt renders a creation timestamp in UTC.
func FormatCreatedAt(t time.Time) string {
	return t.UTC().Format(CreatedAtLayout)
}
