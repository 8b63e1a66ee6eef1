// Command ls-skylight computes twilight lighting for a moment and place and
// shows it as a terminal UI, a text summary, a JSON export or an HTTP API.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/litescript/ls-skylight/internal/astro"
	"github.com/litescript/ls-skylight/internal/clock"
	"github.com/litescript/ls-skylight/internal/config"
	"github.com/litescript/ls-skylight/internal/ephem"
	"github.com/litescript/ls-skylight/internal/lighting"
	"github.com/litescript/ls-skylight/internal/logging"
	"github.com/litescript/ls-skylight/internal/metrics"
	"github.com/litescript/ls-skylight/internal/server"
	"github.com/litescript/ls-skylight/internal/state"
	"github.com/litescript/ls-skylight/internal/style"
	"github.com/litescript/ls-skylight/internal/ui"
)

// CLI flags for headless mode
var (
	summaryMode   bool
	watchInterval time.Duration
	snapshotPath  string
	serveMode     bool
	atFlag        string
	doyFlag       int
	minutesFlag   int
	envHelp       bool
)

const (
	minRefresh = 1 * time.Second
	maxRefresh = 1 * time.Hour
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg.RegisterFlags(flag.CommandLine)
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat headless output at interval (e.g., 30s)")
	flag.StringVar(&snapshotPath, "snapshot-path", "", "Export JSON frame to file (use - for stdout)")
	flag.BoolVar(&serveMode, "serve", false, "Run the HTTP API")
	flag.StringVar(&atFlag, "at", "", "Moment to show (RFC3339); live time when empty")
	flag.IntVar(&doyFlag, "doy", 0, "Day of year (1-366) in local solar time")
	flag.IntVar(&minutesFlag, "minutes", -1, "Minutes after local solar midnight (0-1439)")
	flag.BoolVar(&envHelp, "env-help", false, "List SKYLIGHT_* environment variables")
	flag.Parse()

	if envHelp {
		if err := config.Usage(os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	// Validate refresh interval
	if cfg.Refresh < minRefresh {
		cfg.Refresh = minRefresh
	} else if cfg.Refresh > maxRefresh {
		cfg.Refresh = maxRefresh
	}

	moment, pinned, err := resolveMoment(time.Now(), atFlag, doyFlag, minutesFlag, cfg.Longitude)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	headless := summaryMode || snapshotPath != "" || serveMode || !term.IsTerminal(int(os.Stdout.Fd()))

	// Set up logging
	logger, closeLog, err := newLogger(cfg, headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	// Initialize components
	presets := style.DefaultPresets()
	if cfg.Presets != "" {
		if presets, err = style.LoadPresetsFile(cfg.Presets); err != nil {
			logger.Error("Loading presets: %v", err)
			os.Exit(1)
		}
	}

	provider := ephem.NewCachedProvider(ephem.NewAlmanac(cfg.Mode()), cfg.CacheTTL)
	composer := lighting.NewComposer(provider, presets, cfg.LightingOptions(), logger)

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = cfg.Refresh
	stateMgr := state.NewManager(stateCfg)

	logger.Infow("starting",
		"location", cfg.Location().String(),
		"provider", provider.Name(),
		"phases", len(presets))

	if serveMode {
		if err := runServer(ctx, cfg, composer, stateMgr, logger); err != nil {
			logger.Error("Server failed: %v", err)
			os.Exit(1)
		}
		return
	}

	if headless {
		if !summaryMode && snapshotPath == "" {
			summaryMode = true
		}
		runHeadless(ctx, composer, stateMgr, cfg.Location(), moment, pinned, logger)
		return
	}

	model := ui.New(composer, stateMgr, cfg.Location(), logger)
	if pinned {
		model = model.At(moment)
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes to the log file when one is set. Without one, headless
// modes log to stderr and the TUI discards logs.
func newLogger(cfg config.Config, headless bool) (*logging.Logger, func(), error) {
	if cfg.LogFile == "" {
		if headless {
			return logging.New(cfg.Level()), func() {}, nil
		}
		return logging.Discard(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := logging.New(cfg.Level())
	logger.SetOutput(f)
	return logger, func() {
		_ = logger.Sync()
		_ = f.Close()
	}, nil
}

// resolveMoment applies -at, -doy and -minutes to now. Day of year and
// minutes are read in local mean solar time at lon. pinned reports whether
// any of them was given.
func resolveMoment(now time.Time, at string, doy, minutes int, lon float64) (time.Time, bool, error) {
	t := now.UTC()
	pinned := false

	if at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return time.Time{}, false, fmt.Errorf("invalid -at %q: %w", at, err)
		}
		t = parsed.UTC()
		pinned = true
	}

	if doy == 0 && minutes < 0 {
		return t, pinned, nil
	}

	solar := clock.LocalSolarTime(t, lon)
	if doy != 0 {
		if doy < 1 || doy > 366 {
			return time.Time{}, false, fmt.Errorf("invalid -doy %d: want 1-366", doy)
		}
		day := clock.DateFromDayOfYear(solar.Year(), clock.ClampDayOfYear(solar.Year(), doy), time.UTC)
		solar = clock.WithMinutes(day, clock.MinutesOfDay(solar))
	}
	if minutes >= 0 {
		if minutes >= clock.MinutesPerDay {
			return time.Time{}, false, fmt.Errorf("invalid -minutes %d: want 0-%d", minutes, clock.MinutesPerDay-1)
		}
		solar = clock.WithMinutes(solar, minutes)
	}
	return clock.FromSolarTime(solar, lon), true, nil
}

// runServer keeps the live frame fresh and serves the HTTP API until ctx is
// cancelled.
func runServer(ctx context.Context, cfg config.Config, composer *lighting.Composer, stateMgr *state.Manager, logger *logging.Logger) error {
	m := metrics.New()
	loc := cfg.Location()

	go runComposeLoop(ctx, composer, stateMgr, m, loc, logger)

	srv := server.New(composer, stateMgr, m, loc, logger)
	return srv.ListenAndServe(ctx, cfg.Listen)
}

func runComposeLoop(ctx context.Context, composer *lighting.Composer, stateMgr *state.Manager, m *metrics.Metrics, loc astro.GeoPoint, logger *logging.Logger) {
	doCompose(composer, stateMgr, m, loc, logger)

	ticker := time.NewTicker(stateMgr.RefreshInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Compose loop shutting down")
			return
		case <-ticker.C:
			doCompose(composer, stateMgr, m, loc, logger)
		}
	}
}

func doCompose(composer *lighting.Composer, stateMgr *state.Manager, m *metrics.Metrics, loc astro.GeoPoint, logger *logging.Logger) {
	start := time.Now()
	frame, err := composer.Apply(stateMgr, start.UTC(), loc)
	d := time.Since(start)

	if err != nil {
		stateMgr.Update(nil, d, err)
		m.ObserveCompose(nil, d, err)
		return
	}
	m.ObserveCompose(&frame, d, nil)
	logger.Debug("Composed %s → %s in %v", frame.Blend.PhaseA, frame.Blend.PhaseB, d)
}

// runHeadless handles all headless modes without starting TUI.
func runHeadless(ctx context.Context, composer *lighting.Composer, stateMgr *state.Manager, loc astro.GeoPoint, moment time.Time, pinned bool, logger *logging.Logger) {
	output := lighting.RendererFunc(func(f lighting.Frame) error {
		stateMgr.Update(&f, 0, nil)

		if snapshotPath != "" {
			export := lighting.ExportFrame(f, composer.Provider().Name(), time.Now())
			if snapshotPath == "-" {
				if err := export.WriteJSON(os.Stdout); err != nil {
					return fmt.Errorf("write JSON to stdout: %w", err)
				}
			} else {
				file, err := os.Create(snapshotPath)
				if err != nil {
					return fmt.Errorf("create snapshot file: %w", err)
				}
				defer file.Close()
				if err := export.WriteJSON(file); err != nil {
					return fmt.Errorf("write JSON to file: %w", err)
				}
			}
		}

		if summaryMode {
			lighting.WriteSummaryTable(os.Stdout, f)
		}
		return nil
	})

	outputOnce := func() error {
		t := moment
		if !pinned {
			t = time.Now().UTC()
		}
		_, err := composer.Apply(output, t, loc)
		return err
	}

	// Single run
	if watchInterval == 0 {
		if err := outputOnce(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("Watch loop shutting down")
			return
		case <-ticker.C:
			if summaryMode {
				fmt.Println()
			}
			if err := outputOnce(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		}
	}
}
