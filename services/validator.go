package services

import (
	"math"
	"strings"

	"github.com/LovationAdmin/finance-tracker-api/models"

	"github.com/go-playground/validator/v10"
)

const (
	msgTitleRequired    = "title: required, must be a non-empty string"
	msgAmountRequired   = "amount: required"
	msgAmountPositive   = "amount: must be a positive number"
	msgTypeRequired     = "type: required"
	msgTypeEnum         = `type: must be "income" or "expense"`
	msgCategoryRequired = "category: required, must be a non-empty string"
	msgDateRequired     = "date: required"
	msgDateInvalid      = "date: must be a valid ISO 8601 date string"
	msgNoteInvalid      = "note: must be a string or null"
)

// TransactionValidator checks submitted transaction bodies.
type TransactionValidator struct {
	validate *validator.Validate
}

func NewTransactionValidator() *TransactionValidator {
	return &TransactionValidator{validate: validator.New()}
}

// Validate returns the ordered list of problems with the input. With
// partial set, only the members present in the body are checked.
func (v *TransactionValidator) Validate(in models.TransactionInput, partial bool) []string {
	errs := []string{}
	required := !partial

	if required || in.Title.Present() {
		if !v.nonBlank(in.Title) {
			errs = append(errs, msgTitleRequired)
		}
	}

	if required || in.Amount.Present() {
		if missing(in.Amount) {
			errs = append(errs, msgAmountRequired)
		} else if amount, ok := in.Amount.AsNumber(); !ok || math.IsInf(amount, 0) ||
			v.validate.Var(amount, "gt=0") != nil {
			errs = append(errs, msgAmountPositive)
		}
	}

	if required || in.Type.Present() {
		s, ok := in.Type.AsString()
		switch {
		case missing(in.Type) || in.Type.Falsy():
			errs = append(errs, msgTypeRequired)
		case !ok || v.validate.Var(s, "oneof=income expense") != nil:
			errs = append(errs, msgTypeEnum)
		}
	}

	if required || in.Category.Present() {
		if !v.nonBlank(in.Category) {
			errs = append(errs, msgCategoryRequired)
		}
	}

	if required || in.Date.Present() {
		s, ok := in.Date.AsString()
		switch {
		case missing(in.Date) || in.Date.Falsy():
			errs = append(errs, msgDateRequired)
		case !ok:
			errs = append(errs, msgDateInvalid)
		default:
			if _, err := models.ParseDate(s); err != nil {
				errs = append(errs, msgDateInvalid)
			}
		}
	}

	if in.Note.Present() && !in.Note.Null() {
		if _, ok := in.Note.AsString(); !ok {
			errs = append(errs, msgNoteInvalid)
		}
	}

	return errs
}

func (v *TransactionValidator) nonBlank(f models.Field) bool {
	s, ok := f.AsString()
	if !ok {
		return false
	}
	return v.validate.Var(strings.TrimSpace(s), "required") == nil
}

func missing(f models.Field) bool {
	return !f.Present() || f.Null()
}
