package expense

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultKey is the snapshot key used when none is configured.
const DefaultKey = "expenses"

// Repository is the key-value store the ledger snapshot is mirrored to.
//
//go:generate mockgen -source=service.go -destination=repository_mock.go -package=expense
type Repository interface {
	// Read returns ok=false when nothing was written under key.
	Read(ctx context.Context, key string) (value string, ok bool, err error)
	Write(ctx context.Context, key, value string) error
}

// Listener receives a copy of the ledger after every change.
type Listener func(expenses []Expense)

type Option func(*Service)

// WithKey sets the snapshot key.
func WithKey(key string) Option {
	return func(s *Service) { s.key = key }
}

// WithClock replaces time.Now for dating new expenses.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator replaces the random UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// Service owns the in-memory ledger and keeps the persisted snapshot in
// sync with it.
type Service struct {
	repo   Repository
	key    string
	now    func() time.Time
	newID  func() string
	logger *slog.Logger

	mu        sync.Mutex
	expenses  []Expense
	listeners map[int]Listener
	nextSub   int

	// notifyMu orders deliveries by mutation. It is taken while mu is
	// held and never the other way round.
	notifyMu sync.Mutex
}

func NewService(repo Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		key:       DefaultKey,
		now:       time.Now,
		newID:     uuid.NewString,
		logger:    slog.Default(),
		listeners: make(map[int]Listener),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

type AddParams struct {
	Description string
	Amount      string
	Category    Category
}

// Load replaces the ledger with the persisted snapshot. A missing snapshot
// yields an empty ledger. A malformed one is copied to "<key>.corrupt" and
// the ledger starts empty.
func (s *Service) Load(ctx context.Context) error {
	raw, ok, err := s.repo.Read(ctx, s.key)
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	var expenses []Expense

	if ok {
		expenses, err = DecodeSnapshot(raw)
		if err != nil {
			s.logger.Warn("discarding malformed snapshot", "key", s.key, "error", err)

			if err := s.repo.Write(ctx, s.key+".corrupt", raw); err != nil {
				return fmt.Errorf("backing up malformed snapshot: %w", err)
			}

			expenses = nil
		}
	}

	s.mu.Lock()
	s.expenses = expenses
	s.mu.Unlock()

	s.logger.Debug("ledger loaded", "key", s.key, "count", len(expenses))

	return nil
}

// Add validates the input, prepends a new expense and persists the ledger.
// Input errors match ErrInvalidInput and leave the ledger untouched.
func (s *Service) Add(ctx context.Context, params AddParams) (*Expense, error) {
	e, err := s.build(params)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.expenses = slices.Insert(s.expenses, 0, e)
	err = s.persist(ctx)
	s.publish()

	// The expense stays in memory even when the write fails.
	return &e, err
}

func (s *Service) build(params AddParams) (Expense, error) {
	desc := params.Description
	if strings.TrimSpace(desc) == "" {
		return Expense{}, ErrEmptyDescription
	}

	if !utf8.ValidString(desc) {
		return Expense{}, ErrInvalidDescription
	}

	amountText := strings.TrimSpace(params.Amount)
	if amountText == "" {
		return Expense{}, ErrEmptyAmount
	}

	amount, err := decimal.NewFromString(amountText)
	if err != nil || !ValidAmount(amount) {
		return Expense{}, ErrInvalidAmount
	}

	if !params.Category.Valid() {
		return Expense{}, ErrUnknownCategory
	}

	return Expense{
		ID:          s.newID(),
		Description: desc,
		Amount:      amount,
		Category:    params.Category,
		Date:        DateOf(s.now()),
	}, nil
}

// Delete removes the expense with the given id, if any, and persists the
// ledger.
func (s *Service) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	s.expenses = slices.DeleteFunc(s.expenses, func(e Expense) bool { return e.ID == id })
	err := s.persist(ctx)
	s.publish()

	return err
}

// persist must be called with mu held.
func (s *Service) persist(ctx context.Context) error {
	data, err := EncodeSnapshot(s.expenses)
	if err != nil {
		return err
	}

	if err := s.repo.Write(ctx, s.key, data); err != nil {
		s.logger.Error("failed to persist ledger", "key", s.key, "error", err)
		return fmt.Errorf("writing snapshot: %w", err)
	}

	return nil
}

// List returns the ledger, newest first.
func (s *Service) List() []Expense {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.expenses)
}

func (s *Service) Get(id string) (Expense, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := slices.IndexFunc(s.expenses, func(e Expense) bool { return e.ID == id })
	if i < 0 {
		return Expense{}, ErrNotFound
	}

	return s.expenses[i], nil
}

func (s *Service) Total() decimal.Decimal {
	return Total(s.List())
}

func (s *Service) Breakdown() []CategoryTotal {
	return Breakdown(s.List())
}

func (s *Service) Summary() Summary {
	return Summarize(s.List())
}

// Subscribe registers fn to be called after every Add and Delete. The
// returned function removes the subscription.
func (s *Service) Subscribe(fn Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()

		delete(s.listeners, id)
	}
}

// publish must be called with mu held and releases it. Listeners run
// outside mu, one change at a time, in the order the changes were made.
// A listener may read the service but must not mutate it.
func (s *Service) publish() {
	snapshot := slices.Clone(s.expenses)

	ids := make([]int, 0, len(s.listeners))
	for id := range s.listeners {
		ids = append(ids, id)
	}

	slices.Sort(ids)

	listeners := make([]Listener, len(ids))
	for i, id := range ids {
		listeners[i] = s.listeners[id]
	}

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Unlock()

	for _, fn := range listeners {
		fn(slices.Clone(snapshot))
	}
}

// IsInputError reports whether err was caused by bad add input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}
