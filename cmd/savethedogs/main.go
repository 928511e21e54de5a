package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gopxl/beep"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xpathfinder/savethedogs/internal/arena"
	"github.com/xpathfinder/savethedogs/internal/audio"
	"github.com/xpathfinder/savethedogs/internal/config"
	"github.com/xpathfinder/savethedogs/internal/core/event"
	coresys "github.com/xpathfinder/savethedogs/internal/core/system"
	"github.com/xpathfinder/savethedogs/internal/data"
	"github.com/xpathfinder/savethedogs/internal/persist"
	"github.com/xpathfinder/savethedogs/internal/scripting"
	"github.com/xpathfinder/savethedogs/internal/shop"
	"github.com/xpathfinder/savethedogs/internal/system"
	"github.com/xpathfinder/savethedogs/internal/view"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

// ── Startup display helpers ────────────────────────────────────────

func printBanner() {
	fmt.Println()
	fmt.Println("\033[36;1m  ┌───────────────────────────────────────────┐\033[0m")
	fmt.Println("\033[36;1m  │\033[0m             Save The Dogs                 \033[36;1m│\033[0m")
	fmt.Println("\033[36;1m  └───────────────────────────────────────────┘\033[0m")
	fmt.Println()
}

func printSection(title string) {
	lineLen := max(46-len(title)-1, 3)
	fmt.Printf("  \033[33m── %s %s\033[0m\n", title, strings.Repeat("─", lineLen))
}

func printStat(label string, value any) {
	s := fmt.Sprint(value)
	dots := max(36-len(label)-len(s), 2)
	fmt.Printf("  %s \033[90m%s\033[0m \033[32m%s\033[0m\n", label, strings.Repeat("·", dots), s)
}

func printOK(msg string) {
	fmt.Printf("  \033[32m✓\033[0m %s\n", msg)
}

// ── Session ───────────────────────────────────────────────────────

func run() error {
	headless := flag.Bool("headless", false, "run without the terminal view, replaying the placement plan")
	flag.Parse()

	// 1. Load config
	cfgPath := "config/savethedogs.toml"
	if p := os.Getenv("SAVETHEDOGS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	useView := cfg.View.Enabled && !*headless

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	printBanner()

	// 3. Data tables and formulas
	printSection("Data")
	rules, err := data.LoadRules(cfg.Session.RulesPath)
	if err != nil {
		return fmt.Errorf("load rules: %w", err)
	}
	printStat("Grid", fmt.Sprintf("%dx%d", rules.Grid.Cols, rules.Grid.Rows))
	printStat("Survival ticks", rules.Session.SurvivalTicks)

	var plan *data.Plan
	if !useView {
		plan, err = data.LoadPlan(cfg.Session.PlanPath)
		if err != nil {
			return fmt.Errorf("load plan: %w", err)
		}
		printStat("Planned barriers", len(plan.Placements))
	}

	engine, err := scripting.NewEngine(cfg.Session.ScriptsDir, log)
	if err != nil {
		return fmt.Errorf("scripting: %w", err)
	}
	defer engine.Close()
	printOK("Lua formulas loaded")
	fmt.Println()

	// 4. Profile store
	printSection("Profile")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	prof, err := store.LoadProfile(ctx)
	if err != nil {
		return fmt.Errorf("load profile: %w", err)
	}
	printStat("Reward currency", prof.RewardCurrency)
	printStat("Level", prof.Level)
	fmt.Println()

	// 5. Session
	seed := cfg.Session.Seed
	if seed == 0 && plan != nil {
		seed = plan.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	sess, err := arena.NewSession(arena.Params{
		Rules:    rules,
		RNG:      arena.NewRNG(seed),
		Profile:  prof,
		Formulas: engine,
	})
	if err != nil {
		return fmt.Errorf("new session: %w", err)
	}
	log.Info("session created", zap.Int64("seed", seed), zap.Int64("budget", sess.Budget()))

	// 6. Event subscribers
	bus := event.NewBus()
	system.SubscribeEventLogger(bus, log)
	if cfg.Audio.Enabled {
		var player audio.Player = audio.Discard{}
		sp, err := audio.OpenSpeaker(beep.SampleRate(cfg.Audio.SampleRate))
		if err != nil {
			log.Warn("audio device unavailable, cues muted", zap.Error(err))
		} else {
			defer sp.Close()
			player = sp
		}
		audio.NewCues(beep.SampleRate(cfg.Audio.SampleRate), player, log).Subscribe(bus)
	}

	// 7. Systems
	placements := make(chan system.Placement, cfg.Session.InQueueSize)
	every := cfg.Session.MainEvery

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(sess, placements, cfg.Session.InQueueSize, log))
	if plan != nil {
		runner.Register(system.NewPlanSystem(sess, plan, log))
	}
	runner.Register(system.NewEventDispatchSystem(bus))
	runner.Register(system.NewCountdownSystem(sess, every))
	runner.Register(system.NewCombatSystem(sess, every))
	runner.Register(system.NewSpawnSystem(sess))

	var quit <-chan struct{}
	closeScreen := func() {}
	if useView {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("screen init: %w", err)
		}
		screen.EnableMouse()
		closeScreen = sync.OnceFunc(screen.Fini)
		defer closeScreen()

		term := view.New(screen, rules, placements)
		go term.Run()
		quit = term.Quit()
		runner.Register(system.NewRenderSystem(sess, term))
	}

	persistSys := system.NewPersistenceSystem(sess, store, log)
	runner.Register(persistSys)
	runner.Register(system.NewCleanupSystem(sess, bus))

	// 8. Game loop
	shutdownCh := make(chan os.Signal, 1)
	signal.Notify(shutdownCh, syscall.SIGINT, syscall.SIGTERM)

	rate := cfg.Session.TickRate
	ticker := time.NewTicker(rate)
	defer ticker.Stop()

	saved := persistSys.Done()
	for done := false; !done; {
		select {
		case <-ticker.C:
			runner.Tick(rate)
			if cfg.Session.MaxTicks > 0 && runner.Ticks() >= cfg.Session.MaxTicks && !sess.Phase().Terminal() {
				log.Warn("tick limit reached, abandoning session", zap.Uint64("ticks", runner.Ticks()))
				done = true
			}
		case <-saved:
			// The view keeps showing the outcome until the player quits.
			saved = nil
			if !useView {
				done = true
			}
		case <-quit:
			log.Info("player quit", zap.Stringer("phase", sess.Phase()))
			done = true
		case sig := <-shutdownCh:
			log.Info("shutdown signal", zap.String("signal", sig.String()))
			done = true
		}
	}

	// Deliver the events queued by the last tick.
	runner.TickPhase(coresys.PhasePreUpdate, 0)

	closeScreen()
	printSummary(sess, persistSys)
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (persist.ProfileStore, func(), error) {
	switch cfg.Persist.Driver {
	case "postgres":
		db, err := persist.NewDB(ctx, cfg.Database, log)
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		printOK("PostgreSQL connected")
		version, err := persist.RunMigrations(ctx, db.Pool)
		if err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("migrations: %w", err)
		}
		printStat("Schema version", version)
		repo := persist.NewProfileRepo(db)
		return persist.NewPGStore(repo, cfg.Session.Profile, log), db.Close, nil
	default:
		printStat("Profile file", cfg.Persist.FilePath)
		return persist.NewFileStore(cfg.Persist.FilePath, log), func() {}, nil
	}
}

func printSummary(sess *arena.Session, ps *system.PersistenceSystem) {
	pr := shop.Printer(localeFromEnv())
	fmt.Println()
	printSection("Result")
	out := sess.Outcome()
	if out == nil {
		fmt.Println("  Session abandoned; profile unchanged.")
		return
	}
	pr.Printf("  %s (%s) after %d ticks, %d/%d waves, dog health %d\n",
		out.Phase, out.Condition, out.SurvivalTicks, out.WavesSpawned, out.TotalWaves, out.TargetHealth)
	if out.Reward > 0 {
		pr.Printf("  Reward: %d\n", out.Reward)
	}
	if err := ps.Err(); err != nil {
		fmt.Printf("  \033[31mProfile not saved: %v\033[0m\n", err)
	}
	fmt.Println()
	shop.WriteProfile(os.Stdout, pr, sess.Profile())
}

// localeFromEnv turns a POSIX locale such as "de_DE.UTF-8" into a BCP 47
// tag.
func localeFromEnv() string {
	for _, k := range []string{"LC_ALL", "LC_NUMERIC", "LANG"} {
		if v := os.Getenv(k); v != "" {
			v, _, _ = strings.Cut(v, ".")
			return strings.ReplaceAll(v, "_", "-")
		}
	}
	return "en"
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	if cfg.File != "" {
		zapCfg.OutputPaths = []string{cfg.File}
		zapCfg.ErrorOutputPaths = []string{cfg.File}
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	return zapCfg.Build()
}
