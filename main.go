package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"earthscene/app"
	"earthscene/hal"
	"earthscene/internal/buildinfo"
)

func main() {
	var (
		cfg       hal.HeadlessConfig
		appCfg    = app.DefaultConfig()
		cfgPath   string
		logLevel  string
		assetsDir string
		width     int
		height    int
		workers   int
		seed      uint64
	)
	flag.StringVar(&cfgPath, "config", "", "TOML config file; flags override its values.")
	flag.StringVar(&assetsDir, "assets", appCfg.Assets, "Asset root directory (a path relative to the page in the browser).")
	flag.BoolVar(&cfg.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&cfg.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.Uint64Var(&cfg.Ticks, "ticks", 0, "Stop after N ticks in headless mode (0 = run forever).")
	flag.StringVar(&cfg.Snapshot, "snapshot", "", "Write the last headless frame to this PNG file.")
	flag.IntVar(&width, "width", appCfg.Width, "Initial viewport width in logical pixels.")
	flag.IntVar(&height, "height", appCfg.Height, "Initial viewport height in logical pixels.")
	flag.IntVar(&workers, "workers", 0, "Rasterizer workers (0 = GOMAXPROCS).")
	flag.Uint64Var(&seed, "seed", 0, "Star placement seed (0 = random).")
	flag.StringVar(&logLevel, "log-level", "info", "debug|info|warn|error.")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fatalf("log-level: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if cfgPath != "" {
		var err error
		if appCfg, err = app.LoadConfig(cfgPath, appCfg); err != nil {
			fatalf("%v", err)
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "assets":
			appCfg.Assets = assetsDir
		case "width":
			appCfg.Width = width
		case "height":
			appCfg.Height = height
		case "workers":
			appCfg.Workers = workers
		case "seed":
			appCfg.Seed = seed
		}
	})
	appCfg.FS = assetFS(appCfg.Assets)

	logger.Info("earth starting", "version", buildinfo.Long(), "assets", appCfg.Assets, "headless", cfg.Enabled)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	newProgram := func(h hal.HAL) (hal.Program, error) {
		return app.New(ctx, h, appCfg)
	}

	if cfg.Enabled {
		cfg.Width, cfg.Height = appCfg.Width, appCfg.Height
		cfg.Logger = logger
		if err := hal.RunHeadless(ctx, cfg, newProgram); err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			fatalf("%v", err)
		}
		return
	}

	if err := hal.RunWindow(hal.WindowConfig{
		Title:  "Earth",
		Width:  appCfg.Width,
		Height: appCfg.Height,
		Logger: logger,
	}, newProgram); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
