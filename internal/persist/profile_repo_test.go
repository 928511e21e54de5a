package persist

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/xpathfinder/savethedogs/internal/config"
	"github.com/xpathfinder/savethedogs/internal/profile"
)

// testDB connects to SAVETHEDOGS_TEST_DSN and migrates it. Tests using it
// are skipped when the variable is unset.
func testDB(t *testing.T) *DB {
	t.Helper()
	dsn := os.Getenv("SAVETHEDOGS_TEST_DSN")
	if dsn == "" {
		t.Skip("SAVETHEDOGS_TEST_DSN not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := NewDB(ctx, config.DatabaseConfig{DSN: dsn, MaxOpenConns: 2}, zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(db.Close)

	version, err := RunMigrations(ctx, db.Pool)
	require.NoError(t, err)
	require.GreaterOrEqual(t, version, int64(2))
	return db
}

func TestProfileRepoSaveLoad(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	repo := NewProfileRepo(db)
	name := fmt.Sprintf("test-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DELETE FROM profiles WHERE name = $1`, name)
	})

	row, err := repo.Load(ctx, name)
	require.NoError(t, err)
	assert.Nil(t, row)

	p := profile.Profile{RewardCurrency: 900, PurchasedBarrierBudget: 4, PurchasedTargetHealth: 2, Level: 5}
	require.NoError(t, repo.Save(ctx, name, p, []LedgerEntry{
		{Kind: LedgerReward, Amount: 300, Balance: 1900},
		{Kind: LedgerPurchase, ItemID: "barrier_blocks", Amount: -1000, Balance: 900},
	}))

	row, err = repo.Load(ctx, name)
	require.NoError(t, err)
	require.NotNil(t, row)
	assert.Equal(t, p, row.Profile)

	ledger, err := repo.Ledger(ctx, name, 10)
	require.NoError(t, err)
	require.Len(t, ledger, 2)
	assert.Equal(t, "barrier_blocks", ledger[0].ItemID)
	assert.EqualValues(t, 1900, ledger[1].Balance)
}

func TestPGStoreInitialisesDefaults(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	name := fmt.Sprintf("init-%d", time.Now().UnixNano())
	t.Cleanup(func() {
		db.Pool.Exec(context.Background(), `DELETE FROM profiles WHERE name = $1`, name)
	})

	store := NewPGStore(NewProfileRepo(db), name, zaptest.NewLogger(t))
	p, err := store.LoadProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile.Default(), p)

	p.RewardCurrency = 75
	require.NoError(t, store.SaveProfile(ctx, p, LedgerEntry{Kind: LedgerReward, Amount: 75, Balance: 75}))
	got, err := store.LoadProfile(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 75, got.RewardCurrency)
}
