package shop

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xpathfinder/savethedogs/internal/data"
	"github.com/xpathfinder/savethedogs/internal/persist"
	"github.com/xpathfinder/savethedogs/internal/profile"
)

var blocks = &data.ShopItem{ID: "barrier_blocks", Name: "Barrier blocks", Price: 1000, Grant: data.Grant{BarrierBudget: 4}}

func TestPurchaseDebitsAndGrants(t *testing.T) {
	p := profile.Profile{RewardCurrency: 2500, Level: 1}

	got, entry, err := Purchase(p, blocks, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 500, got.RewardCurrency)
	assert.EqualValues(t, 8, got.PurchasedBarrierBudget)
	assert.EqualValues(t, 1, got.Level)
	assert.Equal(t, persist.LedgerEntry{Kind: persist.LedgerPurchase, ItemID: "barrier_blocks", Amount: -2000, Balance: 500}, entry)
	assert.EqualValues(t, 2500, p.RewardCurrency, "input profile untouched")
}

func TestPurchaseInsufficientFunds(t *testing.T) {
	p := profile.Profile{RewardCurrency: 999}
	got, _, err := Purchase(p, blocks, 1)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, p, got)

	pricey := &data.ShopItem{ID: "moon", Price: math.MaxInt64 / 2}
	_, _, err = Purchase(profile.Profile{RewardCurrency: math.MaxInt64}, pricey, 3)
	assert.ErrorIs(t, err, ErrInsufficientFunds)
}

func TestPurchaseRejectsBadInput(t *testing.T) {
	_, _, err := Purchase(profile.Profile{}, nil, 1)
	assert.ErrorIs(t, err, ErrUnknownItem)
	_, _, err = Purchase(profile.Profile{RewardCurrency: 5000}, blocks, 0)
	assert.ErrorIs(t, err, ErrBadQuantity)
}

func TestWriteCatalogGroupsDigits(t *testing.T) {
	tbl, err := data.LoadShopTable("../../data/yaml/shop_list.yaml")
	require.NoError(t, err)

	var buf bytes.Buffer
	WriteCatalog(&buf, Printer("en"), tbl, profile.Profile{RewardCurrency: 12345})
	out := buf.String()
	assert.Contains(t, out, "Reward currency: 12,345")
	assert.Contains(t, out, "1,000")
	assert.Contains(t, out, "* dog_health")
}

func TestPrinterFallsBack(t *testing.T) {
	var buf bytes.Buffer
	WriteProfile(&buf, Printer("not a locale!"), profile.Profile{RewardCurrency: 1500})
	assert.Contains(t, buf.String(), "1,500")
}
