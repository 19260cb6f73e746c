package token

import (
	"context"
	"math"
	"sync"
)

type memoryStore struct {
	mu         sync.RWMutex
	balances   map[string]uint64
	aggregates Aggregates
}

// NewMemoryStore creates a concurrency-safe in-memory store. It backs tests
// and deployments without a DATABASE_URL.
func NewMemoryStore() Store {
	return &memoryStore{balances: make(map[string]uint64)}
}

func (s *memoryStore) Balance(_ context.Context, account string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[account], nil
}

func (s *memoryStore) Aggregates(_ context.Context) (Aggregates, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.aggregates, nil
}

func (s *memoryStore) Apply(_ context.Context, cs Changeset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Stage every touched balance, then verify the whole changeset before
	// writing anything back.
	staged := make(map[string]uint64)
	load := func(account string) uint64 {
		if v, ok := staged[account]; ok {
			return v
		}
		return s.balances[account]
	}

	for _, d := range cs.Debits {
		bal := load(d.Account)
		if bal < d.Amount {
			return ErrInsufficientBalance
		}
		staged[d.Account] = bal - d.Amount
	}
	for _, c := range cs.Credits {
		bal := load(c.Account)
		if bal > math.MaxUint64-c.Amount {
			return ErrArithmeticOverflow
		}
		staged[c.Account] = bal + c.Amount
	}

	agg := s.aggregates
	for _, step := range []struct {
		cur   *uint64
		delta uint64
	}{
		{&agg.TotalSupply, cs.Supply},
		{&agg.TotalBurned, cs.Burned},
		{&agg.TotalFees, cs.Fees},
	} {
		if *step.cur > math.MaxUint64-step.delta {
			return ErrArithmeticOverflow
		}
		*step.cur += step.delta
	}

	for account, bal := range staged {
		s.balances[account] = bal
	}
	s.aggregates = agg
	return nil
}
