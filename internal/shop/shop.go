// Package shop spends reward currency on profile upgrades.
package shop

import (
	"errors"
	"fmt"
	"io"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/xpathfinder/savethedogs/internal/data"
	"github.com/xpathfinder/savethedogs/internal/persist"
	"github.com/xpathfinder/savethedogs/internal/profile"
)

var (
	ErrInsufficientFunds = errors.New("insufficient reward currency")
	ErrUnknownItem       = errors.New("unknown shop item")
	ErrBadQuantity       = errors.New("quantity must be positive")
)

// Purchase buys qty units of item. It returns the updated profile and the
// ledger entry to store with it; p itself is not modified.
func Purchase(p profile.Profile, item *data.ShopItem, qty int) (profile.Profile, persist.LedgerEntry, error) {
	if item == nil {
		return p, persist.LedgerEntry{}, ErrUnknownItem
	}
	if qty <= 0 {
		return p, persist.LedgerEntry{}, ErrBadQuantity
	}
	if item.Price > 0 && int64(qty) > math.MaxInt64/item.Price {
		return p, persist.LedgerEntry{}, fmt.Errorf("%s x%d: %w", item.ID, qty, ErrInsufficientFunds)
	}
	cost := item.Price * int64(qty)
	if cost > p.RewardCurrency {
		return p, persist.LedgerEntry{}, fmt.Errorf("%s x%d costs %d, have %d: %w",
			item.ID, qty, cost, p.RewardCurrency, ErrInsufficientFunds)
	}

	n := int64(qty)
	p.RewardCurrency -= cost
	p.PurchasedBarrierBudget = profile.AddSaturating(p.PurchasedBarrierBudget, grant(item.Grant.BarrierBudget, n))
	p.PurchasedTargetHealth = profile.AddSaturating(p.PurchasedTargetHealth, grant(item.Grant.TargetHealth, n))
	p.Level = profile.AddSaturating(p.Level, grant(item.Grant.Level, n))

	entry := persist.LedgerEntry{
		Kind:    persist.LedgerPurchase,
		ItemID:  item.ID,
		Amount:  -cost,
		Balance: p.RewardCurrency,
	}
	return p, entry, nil
}

func grant(per, n int64) int64 {
	if per > 0 && n > math.MaxInt64/per {
		return math.MaxInt64
	}
	return per * n
}

// Printer formats numbers with the grouping of the given locale, falling
// back to English.
func Printer(locale string) *message.Printer {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// WriteCatalog lists the items with their prices and what the profile can
// afford.
func WriteCatalog(w io.Writer, pr *message.Printer, tbl *data.ShopTable, p profile.Profile) {
	pr.Fprintf(w, "Reward currency: %d\n", p.RewardCurrency)
	for _, it := range tbl.Items() {
		mark := " "
		if it.Price <= p.RewardCurrency {
			mark = "*"
		}
		pr.Fprintf(w, "%s %-16s %-18s %8d\n", mark, it.ID, it.Name, it.Price)
	}
}

// WriteProfile prints a profile summary.
func WriteProfile(w io.Writer, pr *message.Printer, p profile.Profile) {
	pr.Fprintf(w, "reward currency  %d\n", p.RewardCurrency)
	pr.Fprintf(w, "barrier budget   %d\n", p.PurchasedBarrierBudget)
	pr.Fprintf(w, "dog health       %d\n", p.PurchasedTargetHealth)
	pr.Fprintf(w, "level            %d\n", p.Level)
}
