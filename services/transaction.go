package services

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/LovationAdmin/finance-tracker-api/models"

	"github.com/google/uuid"
)

var ErrTransactionNotFound = errors.New("transaction not found")

// ValidationError carries the field-level messages of a rejected body.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "invalid transaction: " + strings.Join(e.Errors, "; ")
}

// TransactionStore keeps transactions in memory for the lifetime of the
// process, in insertion order.
type TransactionStore struct {
	mu        sync.RWMutex
	items     []models.Transaction
	validator *TransactionValidator
	now       func() time.Time
	newID     func() string
}

func NewTransactionStore() *TransactionStore {
	return &TransactionStore{
		validator: NewTransactionValidator(),
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// List returns a copy of every transaction, newest date first.
func (s *TransactionStore) List() []models.Transaction {
	s.mu.RLock()
	out := make([]models.Transaction, len(s.items))
	copy(out, s.items)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return dateOf(out[i]).After(dateOf(out[j]))
	})
	return out
}

// Create validates the input fully and stores the new transaction.
func (s *TransactionStore) Create(in models.TransactionInput) (*models.Transaction, error) {
	if errs := s.validator.Validate(in, false); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	title, _ := in.Title.AsString()
	amount, _ := in.Amount.AsNumber()
	txType, _ := in.Type.AsString()
	category, _ := in.Category.AsString()
	date, _ := in.Date.AsString()

	tx := models.Transaction{
		ID:        s.newID(),
		Title:     strings.TrimSpace(title),
		Amount:    amount,
		Type:      models.TransactionType(txType),
		Category:  strings.TrimSpace(category),
		Date:      date,
		Note:      normalizeNote(in.Note),
		CreatedAt: models.FormatCreatedAt(s.now()),
	}

	s.mu.Lock()
	s.items = append(s.items, tx)
	s.mu.Unlock()

	return &tx, nil
}

func (s *TransactionStore) Get(id string) (*models.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return nil, ErrTransactionNotFound
	}
	tx := s.items[idx]
	return &tx, nil
}

// Update merges the fields present in the input onto an existing
// transaction. ID and CreatedAt are never touched.
func (s *TransactionStore) Update(id string, in models.TransactionInput) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return nil, ErrTransactionNotFound
	}

	if errs := s.validator.Validate(in, true); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	tx := s.items[idx]
	if title, ok := in.Title.AsString(); ok {
		tx.Title = strings.TrimSpace(title)
	}
	if amount, ok := in.Amount.AsNumber(); ok {
		tx.Amount = amount
	}
	if txType, ok := in.Type.AsString(); ok {
		tx.Type = models.TransactionType(txType)
	}
	if category, ok := in.Category.AsString(); ok {
		tx.Category = strings.TrimSpace(category)
	}
	if date, ok := in.Date.AsString(); ok {
		tx.Date = date
	}
	if in.Note.Present() {
		tx.Note = normalizeNote(in.Note)
	}

	s.items[idx] = tx
	return &tx, nil
}

func (s *TransactionStore) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return ErrTransactionNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return nil
}

func (s *TransactionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Summary aggregates income, expenses and balance over the whole store.
func (s *TransactionStore) Summary() models.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Summarize(s.items)
}

// Categories returns the per-category breakdown over the whole store.
func (s *TransactionStore) Categories() []models.CategoryTotal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return SummarizeByCategory(s.items)
}

// caller holds the lock
func (s *TransactionStore) indexOf(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Stored dates were validated on the way in.
func dateOf(tx models.Transaction) time.Time {
	t, _ := models.ParseDate(tx.Date)
	return t
}

func normalizeNote(f models.Field) *string {
	note, ok := f.AsString()
	if !ok {
		return nil
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return nil
	}
	return &note
}
