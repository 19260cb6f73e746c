package token

// SeedBalance is a test helper that sets an account balance directly when
// using the in-memory store.
func SeedBalance(s Store, account string, amount uint64) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.balances[account] = amount
	}
}

// SeedSupply is a test helper that sets the total supply counter directly
// when using the in-memory store.
func SeedSupply(s Store, supply uint64) {
	if mem, ok := s.(*memoryStore); ok {
		mem.mu.Lock()
		defer mem.mu.Unlock()
		mem.aggregates.TotalSupply = supply
	}
}
