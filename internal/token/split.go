package token

// Split is the three-way decomposition of a transfer amount. The sender
// always loses exactly the full amount; truncation remainders stay inside
// Burn+Fee, never with the recipient.
type Split struct {
	Burn uint64
	Fee  uint64
	Net  uint64
}

// ComputeSplit computes the burn, fee and net portions of amount using
// floor division by 10_000 basis points.
//
// The multiplication is decomposed around the bps denominator so the result
// is exact for the full uint64 range: with amount = q*10000 + r,
// floor(amount*bps/10000) == q*bps + floor(r*bps/10000), and both terms fit
// in 64 bits whenever bps <= 10000.
func ComputeSplit(amount uint64, burnBps, feeBps uint32) Split {
	burn := mulBps(amount, uint64(burnBps))
	fee := mulBps(amount, uint64(feeBps))
	return Split{
		Burn: burn,
		Fee:  fee,
		Net:  amount - burn - fee,
	}
}

func mulBps(amount, bps uint64) uint64 {
	q := amount / bpsDenominator
	r := amount % bpsDenominator
	return q*bps + r*bps/bpsDenominator
}
