package services

import (
	"math"
	"sort"

	"github.com/LovationAdmin/finance-tracker-api/models"
)

// roundCents rounds to two decimals so sums like 0.1+0.2 render as 0.3.
func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func Summarize(txs []models.Transaction) models.Summary {
	var income, expenses float64
	for _, tx := range txs {
		switch tx.Type {
		case models.TransactionTypeIncome:
			income += tx.Amount
		case models.TransactionTypeExpense:
			expenses += tx.Amount
		}
	}

	return models.Summary{
		TotalIncome:   roundCents(income),
		TotalExpenses: roundCents(expenses),
		NetBalance:    roundCents(income - expenses),
	}
}

// SummarizeByCategory groups totals by type and category. Income rows come
// first, then expenses; within a type the largest total leads.
func SummarizeByCategory(txs []models.Transaction) []models.CategoryTotal {
	type key struct {
		txType   models.TransactionType
		category string
	}

	index := make(map[key]int)
	out := []models.CategoryTotal{}
	for _, tx := range txs {
		k := key{tx.Type, tx.Category}
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, models.CategoryTotal{Category: tx.Category, Type: tx.Type})
		}
		out[i].Total += tx.Amount
		out[i].Count++
	}

	for i := range out {
		out[i].Total = roundCents(out[i].Total)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Type != out[j].Type {
			return out[i].Type == models.TransactionTypeIncome
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Category < out[j].Category
	})
	return out
}
