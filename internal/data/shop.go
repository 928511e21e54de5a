package data

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ShopItem is one purchasable upgrade. Each purchase adds the Grant
// amounts to the profile and costs Price reward currency.
type ShopItem struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
	Price int64  `yaml:"price"`
	Grant Grant  `yaml:"grant"`
}

// Grant is what a single purchase adds to a profile.
type Grant struct {
	BarrierBudget int64 `yaml:"barrier_budget"`
	TargetHealth  int64 `yaml:"target_health"`
	Level         int64 `yaml:"level"`
}

// ShopTable holds the catalog indexed by item ID.
type ShopTable struct {
	items map[string]*ShopItem
	order []*ShopItem
}

// Get returns an item by ID, or nil if not found.
func (t *ShopTable) Get(id string) *ShopItem {
	return t.items[id]
}

// Items returns the catalog in display order.
func (t *ShopTable) Items() []*ShopItem {
	return t.order
}

// Count returns the number of items loaded.
func (t *ShopTable) Count() int {
	return len(t.items)
}

type shopListFile struct {
	Items []ShopItem `yaml:"items"`
}

// LoadShopTable loads the upgrade catalog from a YAML file.
func LoadShopTable(path string) (*ShopTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read shop_list: %w", err)
	}
	var f shopListFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse shop_list: %w", err)
	}

	t := &ShopTable{items: make(map[string]*ShopItem, len(f.Items))}
	for i := range f.Items {
		item := f.Items[i]
		if item.ID == "" {
			return nil, fmt.Errorf("shop_list entry %d: missing id", i)
		}
		if item.Price < 0 {
			return nil, fmt.Errorf("shop_list %s: negative price", item.ID)
		}
		if _, dup := t.items[item.ID]; dup {
			return nil, fmt.Errorf("shop_list %s: duplicate id", item.ID)
		}
		t.items[item.ID] = &item
		t.order = append(t.order, &item)
	}
	sort.SliceStable(t.order, func(i, j int) bool { return t.order[i].Order < t.order[j].Order })
	return t, nil
}
