// Command shop lists the upgrade catalog and spends reward currency on the
// configured profile.
//
// Usage:
//
//	shop                      list items and the current profile
//	shop -buy ID [-qty N]     buy N units of item ID
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xpathfinder/savethedogs/internal/config"
	"github.com/xpathfinder/savethedogs/internal/data"
	"github.com/xpathfinder/savethedogs/internal/persist"
	"github.com/xpathfinder/savethedogs/internal/shop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	buy := flag.String("buy", "", "item id to purchase")
	qty := flag.Int("qty", 1, "quantity to purchase")
	locale := flag.String("locale", "en", "locale for number formatting")
	flag.Parse()

	cfgPath := "config/savethedogs.toml"
	if p := os.Getenv("SAVETHEDOGS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Only warnings reach the console; the catalog owns stdout.
	zapCfg := zap.NewDevelopmentConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	zapCfg.OutputPaths = []string{"stderr"}
	zapCfg.DisableCaller = true
	zapCfg.DisableStacktrace = true
	log, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	tbl, err := data.LoadShopTable(cfg.Session.ShopPath)
	if err != nil {
		return fmt.Errorf("load shop table: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var store persist.ProfileStore
	switch cfg.Persist.Driver {
	case "postgres":
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		defer db.Close()
		if _, err := persist.RunMigrations(ctx, db.Pool); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		store = persist.NewPGStore(persist.NewProfileRepo(db), cfg.Session.Profile, log)
	default:
		store = persist.NewFileStore(cfg.Persist.FilePath, log)
	}

	p, err := store.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	pr := shop.Printer(*locale)

	if *buy == "" {
		shop.WriteCatalog(os.Stdout, pr, tbl, p)
		fmt.Println()
		shop.WriteProfile(os.Stdout, pr, p)
		return nil
	}

	next, entry, err := shop.Purchase(p, tbl.Get(*buy), *qty)
	switch {
	case errors.Is(err, shop.ErrUnknownItem):
		return fmt.Errorf("%q: %w", *buy, err)
	case err != nil:
		return err
	}
	if err := store.SaveProfile(ctx, next, entry); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	pr.Printf("Bought %d x %s for %d.\n", *qty, *buy, -entry.Amount)
	shop.WriteProfile(os.Stdout, pr, next)
	return nil
}
