package usecase

import (
	"iter"

	"github.com/iho/ledgerreplay/internal/domain"
)

// AccountStore maps client ids to accounts, creating them on first reference.
// It is owned by a single LedgerEngine and is not safe for concurrent use.
type AccountStore struct {
	accounts map[domain.ClientID]*domain.ClientAccount
	order    []domain.ClientID
}

// NewAccountStore creates an empty store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[domain.ClientID]*domain.ClientAccount),
	}
}

// GetOrCreate returns the account for id, creating an unlocked zero-balance
// account if none exists. The second result reports whether it was created.
func (s *AccountStore) GetOrCreate(id domain.ClientID) (*domain.ClientAccount, bool) {
	if acc, ok := s.accounts[id]; ok {
		return acc, false
	}
	acc := domain.NewClientAccount(id)
	s.accounts[id] = acc
	s.order = append(s.order, id)
	return acc, true
}

// Get returns the account for id without creating it.
func (s *AccountStore) Get(id domain.ClientID) (*domain.ClientAccount, bool) {
	acc, ok := s.accounts[id]
	return acc, ok
}

// Len returns the number of accounts.
func (s *AccountStore) Len() int {
	return len(s.order)
}

// Snapshot yields every account in creation order.
func (s *AccountStore) Snapshot() iter.Seq[*domain.ClientAccount] {
	return func(yield func(*domain.ClientAccount) bool) {
		for _, id := range s.order {
			if !yield(s.accounts[id]) {
				return
			}
		}
	}
}
