package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/profile"
)

// ProfileRow is one row of the profiles table.
type ProfileRow struct {
	Name    string
	Profile profile.Profile
}

type ProfileRepo struct {
	db *DB
}

func NewProfileRepo(db *DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

// Load returns the named profile, or nil if it does not exist.
func (r *ProfileRepo) Load(ctx context.Context, name string) (*ProfileRow, error) {
	row := &ProfileRow{Name: name}
	p := &row.Profile
	err := r.db.Pool.QueryRow(ctx,
		`SELECT reward_currency, purchased_barrier_budget, purchased_target_health, level
		 FROM profiles WHERE name = $1`, name,
	).Scan(&p.RewardCurrency, &p.PurchasedBarrierBudget, &p.PurchasedTargetHealth, &p.Level)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return row, nil
}

// Save upserts the profile and appends the ledger entries in a single
// transaction. Either everything is written or nothing is.
func (r *ProfileRepo) Save(ctx context.Context, name string, p profile.Profile, entries []LedgerEntry) error {
	if !p.Valid() {
		return fmt.Errorf("profile %s: %w", name, ErrMalformedProfile)
	}
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("profile begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO profiles (name, reward_currency, purchased_barrier_budget, purchased_target_health, level)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (name) DO UPDATE SET
		     reward_currency = EXCLUDED.reward_currency,
		     purchased_barrier_budget = EXCLUDED.purchased_barrier_budget,
		     purchased_target_health = EXCLUDED.purchased_target_health,
		     level = EXCLUDED.level,
		     updated_at = now()`,
		name, p.RewardCurrency, p.PurchasedBarrierBudget, p.PurchasedTargetHealth, p.Level,
	); err != nil {
		return fmt.Errorf("profile upsert: %w", err)
	}

	for _, e := range entries {
		if _, err := tx.Exec(ctx,
			`INSERT INTO profile_ledger (profile_name, kind, item_id, amount, balance)
			 VALUES ($1, $2, $3, $4, $5)`,
			name, e.Kind, e.ItemID, e.Amount, e.Balance,
		); err != nil {
			return fmt.Errorf("ledger insert: %w", err)
		}
	}

	return tx.Commit(ctx)
}

// Ledger returns the most recent entries for a profile, newest first.
func (r *ProfileRepo) Ledger(ctx context.Context, name string, limit int) ([]LedgerEntry, error) {
	rows, err := r.db.Pool.Query(ctx,
		`SELECT kind, item_id, amount, balance FROM profile_ledger
		 WHERE profile_name = $1 ORDER BY id DESC LIMIT $2`, name, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []LedgerEntry
	for rows.Next() {
		var e LedgerEntry
		if err := rows.Scan(&e.Kind, &e.ItemID, &e.Amount, &e.Balance); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// PGStore binds a ProfileRepo to one profile name.
type PGStore struct {
	repo *ProfileRepo
	name string
	log  *zap.Logger
}

func NewPGStore(repo *ProfileRepo, name string, log *zap.Logger) *PGStore {
	return &PGStore{repo: repo, name: name, log: log}
}

// LoadProfile returns the stored profile. A missing or invalid row is
// replaced with defaults.
func (s *PGStore) LoadProfile(ctx context.Context) (profile.Profile, error) {
	row, err := s.repo.Load(ctx, s.name)
	if err != nil {
		return profile.Profile{}, fmt.Errorf("load profile %s: %w", s.name, err)
	}
	if row != nil && row.Profile.Valid() {
		return row.Profile, nil
	}
	def := profile.Default()
	if row != nil {
		s.log.Warn("invalid profile, regenerating", zap.String("profile", s.name))
	}
	if err := s.repo.Save(ctx, s.name, def, nil); err != nil {
		return profile.Profile{}, fmt.Errorf("init profile %s: %w", s.name, err)
	}
	return def, nil
}

func (s *PGStore) SaveProfile(ctx context.Context, p profile.Profile, entries ...LedgerEntry) error {
	if err := s.repo.Save(ctx, s.name, p, entries); err != nil {
		return fmt.Errorf("save profile %s: %w", s.name, err)
	}
	return nil
}
