package service

import (
	"context"
	"errors"
	"strings"

	"taskledger/internal/domain"
	"taskledger/internal/repository"
)

// MoneyStore is the persistence contract for debt/credit entries.
type MoneyStore interface {
	Insert(ctx context.Context, e *domain.MoneyEntry) error
	ListByOwner(ctx context.Context, userID int64) ([]*domain.MoneyEntry, error)
	SetSettled(ctx context.Context, id, userID int64, settled bool) error
	Delete(ctx context.Context, id, userID int64) error
	Summary(ctx context.Context, userID int64) (*domain.MoneySummary, error)
}

var ErrInvalidAmount = errors.New("amount must be positive")

// MoneyService tracks who owes whom. Same owner-scoping and error taxonomy as
// the task layer.
type MoneyService struct {
	store MoneyStore
}

func NewMoneyService(store MoneyStore) *MoneyService {
	return &MoneyService{store: store}
}

func (s *MoneyService) Create(ctx context.Context, kind domain.EntryKind, counterparty string, amountCents int64, note string) (*domain.MoneyEntry, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	if _, err := domain.ParseEntryKind(string(kind)); err != nil {
		return nil, err
	}
	counterparty = strings.TrimSpace(counterparty)
	if counterparty == "" {
		return nil, errors.New("counterparty is empty")
	}
	if amountCents <= 0 {
		return nil, ErrInvalidAmount
	}

	e := &domain.MoneyEntry{
		UserID:       owner,
		Kind:         kind,
		Counterparty: counterparty,
		AmountCents:  amountCents,
		Note:         strings.TrimSpace(note),
	}
	if err := s.store.Insert(ctx, e); err != nil {
		return nil, &PersistenceError{Op: "insert", Err: err}
	}
	return e, nil
}

func (s *MoneyService) List(ctx context.Context) ([]*domain.MoneyEntry, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	entries, err := s.store.ListByOwner(ctx, owner)
	if err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}
	return entries, nil
}

func (s *MoneyService) Settle(ctx context.Context, id int64, settled bool) error {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	if err := s.store.SetSettled(ctx, id, owner, settled); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Op: "settle", Err: err}
	}
	return nil
}

func (s *MoneyService) Delete(ctx context.Context, id int64) error {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return ErrNotAuthenticated
	}

	if err := s.store.Delete(ctx, id, owner); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return &PersistenceError{Op: "delete", Err: err}
	}
	return nil
}

func (s *MoneyService) Summary(ctx context.Context) (*domain.MoneySummary, error) {
	owner, ok := OwnerFromContext(ctx)
	if !ok {
		return nil, ErrNotAuthenticated
	}

	sum, err := s.store.Summary(ctx, owner)
	if err != nil {
		return nil, &PersistenceError{Op: "summary", Err: err}
	}
	return sum, nil
}
