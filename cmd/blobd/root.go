package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/gops/agent"
	"github.com/sir_venger/blob_lite/internal/app/resthttp"
	"github.com/sir_venger/blob_lite/internal/config"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 15 * time.Second

type serveFlags struct {
	addr     string
	dataDir  string
	logLevel string
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "blobd",
		Short:         "Single-node HTTP blob store",
		SilenceUsage: true,
	}
	root.AddCommand(newServeCmd())
	return root
}

func newServeCmd() *cobra.Command {
	var flags serveFlags
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			applyFlags(cmd, cfg, flags)
			if err = cfg.Validate(); err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&flags.addr, "addr", "", "listen address (overrides listen_addr)")
	cmd.Flags().StringVar(&flags.dataDir, "data-dir", "", "blob directory (overrides data_dir)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: debug|info|warn|error")
	return cmd
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, flags serveFlags) {
	if cmd.Flags().Changed("addr") {
		cfg.ListenAddr = flags.addr
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir = flags.dataDir
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
}

// serve поднимает HTTP-сервер и чистильщик временных файлов, завершается по SIGINT/SIGTERM.
func serve(parent context.Context, cfg *config.Config) error {
	logger, err := newLogger(cfg.LogLevel, os.Stderr)
	if err != nil {
		return err
	}

	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			logger.WithField("err", err).Warn("could not start gops agent")
		} else {
			defer agent.Close()
		}
	}

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler, srv, err := resthttp.NewServer(ctx, cfg, logger)
	if err != nil {
		return err
	}

	stopGC := srv.Store.StartJanitor(cfg.GCTTL(), cfg.GCInterval(), logger)
	defer stopGC()

	server := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.WithFields(log.Fields{
			"addr":     cfg.ListenAddr,
			"data_dir": srv.Store.Root(),
			"origins":  cfg.AllowedOrigins,
		}).Info("blob store listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Сценарий graceful shutdown при получении SIGTERM/SIGINT или падении листенера.
	eg.Go(func() error {
		<-egCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("blob store stopped")
		return nil
	})

	return eg.Wait()
}
