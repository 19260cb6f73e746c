package token

import (
	"context"
	"math"
	"sync"
	"testing"
)

func TestMemoryStoreUnknownAccountReadsZero(t *testing.T) {
	store := NewMemoryStore()

	balance, err := store.Balance(context.Background(), "SP000NOBODY")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 0 {
		t.Fatalf("expected zero balance, got %d", balance)
	}
}

func TestMemoryStoreApplyCommitsAllEntries(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	SeedBalance(store, "alice", 10_000)

	cs := Changeset{
		Debits: []Entry{{Account: "alice", Amount: 1_000}},
		Credits: []Entry{
			{Account: "bob", Amount: 900},
			{Account: "sink", Amount: 60},
			{Account: "fees", Amount: 40},
		},
		Burned: 60,
		Fees:   40,
	}
	if err := store.Apply(ctx, cs); err != nil {
		t.Fatalf("apply: %v", err)
	}

	for account, want := range map[string]uint64{
		"alice": 9_000, "bob": 900, "sink": 60, "fees": 40,
	} {
		got, _ := store.Balance(ctx, account)
		if got != want {
			t.Fatalf("%s balance %d, want %d", account, got, want)
		}
	}

	agg, _ := store.Aggregates(ctx)
	if agg.TotalBurned != 60 || agg.TotalFees != 40 {
		t.Fatalf("aggregates %+v, want burned=60 fees=40", agg)
	}
}

func TestMemoryStoreApplyIsAllOrNothing(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	SeedBalance(store, "alice", 500)
	SeedBalance(store, "bob", 100)

	// The first debit is satisfiable, the second is not; neither may land.
	cs := Changeset{
		Debits: []Entry{
			{Account: "alice", Amount: 400},
			{Account: "bob", Amount: 200},
		},
		Credits: []Entry{{Account: "carol", Amount: 600}},
	}
	if err := store.Apply(ctx, cs); err != ErrInsufficientBalance {
		t.Fatalf("expected ErrInsufficientBalance, got %v", err)
	}

	for account, want := range map[string]uint64{"alice": 500, "bob": 100, "carol": 0} {
		got, _ := store.Balance(ctx, account)
		if got != want {
			t.Fatalf("%s balance %d after failed apply, want %d", account, got, want)
		}
	}
}

func TestMemoryStoreApplyRejectsBalanceOverflow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	SeedBalance(store, "whale", math.MaxUint64)

	cs := Changeset{Credits: []Entry{{Account: "whale", Amount: 1}}, Supply: 1}
	if err := store.Apply(ctx, cs); err != ErrArithmeticOverflow {
		t.Fatalf("expected ErrArithmeticOverflow, got %v", err)
	}

	agg, _ := store.Aggregates(ctx)
	if agg.TotalSupply != 0 {
		t.Fatalf("supply mutated on failed apply: %d", agg.TotalSupply)
	}
}

func TestMemoryStoreApplyRejectsCounterOverflow(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()
	SeedSupply(store, math.MaxUint64)

	cs := Changeset{Credits: []Entry{{Account: "alice", Amount: 1}}, Supply: 1}
	if err := store.Apply(ctx, cs); err != ErrArithmeticOverflow {
		t.Fatalf("expected ErrArithmeticOverflow, got %v", err)
	}

	balance, _ := store.Balance(ctx, "alice")
	if balance != 0 {
		t.Fatalf("balance mutated on failed apply: %d", balance)
	}
}

func TestMemoryStoreConcurrentApplies(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	const workers = 8
	const rounds = 50
	SeedBalance(store, "hub", workers*rounds)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			spoke := []string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7"}[id]
			for i := 0; i < rounds; i++ {
				cs := Changeset{
					Debits:  []Entry{{Account: "hub", Amount: 1}},
					Credits: []Entry{{Account: spoke, Amount: 1}},
				}
				if err := store.Apply(ctx, cs); err != nil {
					t.Errorf("worker %d apply %d: %v", id, i, err)
					return
				}
			}
		}(w)
	}
	wg.Wait()

	hub, _ := store.Balance(ctx, "hub")
	if hub != 0 {
		t.Fatalf("hub balance %d, want 0", hub)
	}
	var total uint64
	for _, spoke := range []string{"s0", "s1", "s2", "s3", "s4", "s5", "s6", "s7"} {
		bal, _ := store.Balance(ctx, spoke)
		total += bal
	}
	if total != workers*rounds {
		t.Fatalf("spokes hold %d, want %d", total, workers*rounds)
	}
}
