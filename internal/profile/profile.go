// Package profile defines the persisted player record shared by the arena,
// the shop and the stores.
package profile

import "math"

// Profile is what survives between sessions. Values are never negative.
type Profile struct {
	RewardCurrency         int64
	PurchasedBarrierBudget int64
	PurchasedTargetHealth  int64
	Level                  int64
}

// Default is the record handed out when nothing is stored yet or the stored
// copy could not be trusted.
func Default() Profile {
	return Profile{Level: 1}
}

// Valid reports whether every field is non-negative.
func (p Profile) Valid() bool {
	return p.RewardCurrency >= 0 && p.PurchasedBarrierBudget >= 0 &&
		p.PurchasedTargetHealth >= 0 && p.Level >= 0
}

// AddSaturating adds two non-negative amounts, pinning at math.MaxInt64
// instead of wrapping.
func AddSaturating(a, b int64) int64 {
	if b > 0 && a > math.MaxInt64-b {
		return math.MaxInt64
	}
	if b < 0 && a < math.MinInt64-b {
		return math.MinInt64
	}
	return a + b
}
