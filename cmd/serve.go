package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/savebonus/internal/config"
	"github.com/theirongolddev/savebonus/internal/server"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var (
	flagServeAddr string
	flagNoWatch   bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web calculator and JSON API",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagServeAddr, "addr", "", "Listen address (default from config or SAVEBONUS_ADDR)")
	serveCmd.Flags().BoolVar(&flagNoWatch, "no-watch", false, "Do not reload the config file on change")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := loadConfig()

	logger, err := newLogger(cfg.Server.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	scfg := server.ConfigFrom(cfg)
	if flagServeAddr != "" {
		scfg.Addr = flagServeAddr
	}
	svc := server.New(scfg, calendarProvider, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return svc.Run(gctx)
	})

	if !flagNoWatch {
		w, err := config.NewWatcher(config.ConfigPath(), config.DefaultDebounce, logger)
		if err != nil {
			logger.Warn("config reload disabled", zap.Error(err))
		} else {
			g.Go(func() error {
				return w.Run(gctx, svc.SetConfig)
			})
		}
	}

	fmt.Fprintf(os.Stderr, "  savebonus serving on http://%s\n", scfg.Addr)
	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
