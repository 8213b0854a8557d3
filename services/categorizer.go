package services

import (
	"sort"
	"strings"
)

const CategoryOther = "Other"

// --- STATIC DICTIONARY ---
var staticRules = map[string]string{
	// Energy
	"edf": "Utilities", "engie": "Utilities", "totalenergies": "Utilities", "veolia": "Utilities",
	"electricity": "Utilities", "water bill": "Utilities",

	// Telecom
	"orange": "Telecom", "sosh": "Telecom", "sfr": "Telecom", "bouygues": "Telecom",
	"free mobile": "Telecom", "internet": "Telecom", "phone": "Telecom",

	// Insurance
	"axa": "Insurance", "allianz": "Insurance", "macif": "Insurance", "maif": "Insurance",
	"insurance": "Insurance",

	// Leisure
	"netflix": "Entertainment", "spotify": "Entertainment", "deezer": "Entertainment",
	"disney": "Entertainment", "prime video": "Entertainment", "cinema": "Entertainment",
	"basic fit": "Health", "gym": "Health", "pharmacy": "Health",

	// Food
	"leclerc": "Food", "carrefour": "Food", "auchan": "Food", "lidl": "Food", "aldi": "Food",
	"monoprix": "Food", "uber eats": "Food", "grocer": "Food", "restaurant": "Food", "coffee": "Food",

	// Transport
	"sncf": "Transport", "ratp": "Transport", "uber": "Transport", "bolt": "Transport",
	"shell": "Transport", "fuel": "Transport", "taxi": "Transport",

	// Housing
	"rent": "Housing", "mortgage": "Housing",

	// Income
	"salary": "Salary", "payroll": "Salary", "freelance": "Freelance", "invoice": "Freelance",
	"dividend": "Investments", "interest": "Investments",
}

// Longest keywords first so "uber eats" wins over "uber".
var ruleKeys = func() []string {
	keys := make([]string, 0, len(staticRules))
	for k := range staticRules {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	return keys
}()

// SuggestCategory guesses a category from a transaction title using the
// static keyword rules. Unknown titles map to CategoryOther.
func SuggestCategory(title string) string {
	normalized := strings.ToLower(strings.TrimSpace(title))
	if normalized == "" {
		return CategoryOther
	}

	if category, exists := staticRules[normalized]; exists {
		return category
	}
	for _, key := range ruleKeys {
		if strings.Contains(normalized, key) {
			return staticRules[key]
		}
	}
	return CategoryOther
}
