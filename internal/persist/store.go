package persist

import (
	"context"
	"errors"

	"github.com/xpathfinder/savethedogs/internal/profile"
)

// ErrMalformedProfile marks a stored profile that failed to decode or
// verify. Stores recover from it by regenerating defaults.
var ErrMalformedProfile = errors.New("malformed profile")

// Ledger entry kinds.
const (
	LedgerReward   = "reward"
	LedgerPurchase = "purchase"
)

// LedgerEntry records one currency movement. Amount is signed: rewards are
// positive, purchases negative. Balance is the currency after the movement.
type LedgerEntry struct {
	Kind    string
	ItemID  string
	Amount  int64
	Balance int64
}

// ProfileStore loads and saves the single profile a session plays with.
type ProfileStore interface {
	LoadProfile(ctx context.Context) (profile.Profile, error)
	SaveProfile(ctx context.Context, p profile.Profile, entries ...LedgerEntry) error
}
