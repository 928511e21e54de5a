package persist

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/xpathfinder/savethedogs/internal/profile"
)

// FileStore keeps the profile in a single checksummed blob on disk.
// Ledger entries are logged, not stored.
type FileStore struct {
	path string
	log  *zap.Logger
}

func NewFileStore(path string, log *zap.Logger) *FileStore {
	return &FileStore{path: path, log: log}
}

// LoadProfile reads the blob. A missing file yields defaults; a damaged one
// is overwritten with defaults.
func (s *FileStore) LoadProfile(ctx context.Context) (profile.Profile, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.log.Info("no saved profile, using defaults", zap.String("path", s.path))
		return profile.Default(), nil
	}
	if err != nil {
		return profile.Profile{}, fmt.Errorf("read profile: %w", err)
	}

	p, err := DecodeProfile(raw)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrMalformedProfile) {
		return profile.Profile{}, err
	}
	s.log.Warn("invalid profile, regenerating", zap.String("path", s.path), zap.Error(err))
	def := profile.Default()
	if err := s.SaveProfile(ctx, def); err != nil {
		return profile.Profile{}, err
	}
	return def, nil
}

// SaveProfile replaces the blob atomically.
func (s *FileStore) SaveProfile(_ context.Context, p profile.Profile, entries ...LedgerEntry) error {
	if !p.Valid() {
		return fmt.Errorf("save profile: %w", ErrMalformedProfile)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".profile-*")
	if err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(EncodeProfile(p)); err != nil {
		tmp.Close()
		return fmt.Errorf("save profile: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}

	for _, e := range entries {
		s.log.Info("ledger",
			zap.String("kind", e.Kind),
			zap.String("item", e.ItemID),
			zap.Int64("amount", e.Amount),
			zap.Int64("balance", e.Balance))
	}
	return nil
}
