package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fentz26/missionctl/internal/audit"
	"github.com/fentz26/missionctl/internal/controlplane"
	"github.com/fentz26/missionctl/internal/store"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Start the missionctl daemon",
	Long:  `Starts the missionctl daemon which serves the dashboard API and persists agent edits.`,
	RunE:  runDaemon,
}

func init() {
	daemonCmd.Flags().String("addr", "127.0.0.1:7466", "Listen address for the API server")
	daemonCmd.Flags().String("db", filepath.Join(configDir(), "missionctl.db"), "Path to SQLite database")
	daemonCmd.Flags().String("seed", "", "Path to a YAML seed (default: embedded)")
	daemonCmd.Flags().Bool("strict", false, "Refuse to start on seed integrity problems")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	cfg, err := loadDaemonConfig(cmd)
	if err != nil {
		return err
	}
	logger := log.StandardLogger()
	logger.WithFields(log.Fields{"addr": cfg.Addr, "db": cfg.DB}).Info("starting missionctl daemon")

	sd, err := loadSeed(cfg.Seed, cfg.Strict)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DB), 0700); err != nil {
		return err
	}
	s, err := store.New(cfg.DB, sd.Agents)
	if err != nil {
		return err
	}

	service := controlplane.NewService(s, audit.NewPDRWriter(s), sd)
	if err := service.SyncAgents(); err != nil {
		logger.WithError(err).Warn("failed to restore persisted agents")
	}
	server := controlplane.NewServer(service, s, cfg.Addr, logger)

	// Set up signal handling for graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		err := server.Start()
		if err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case sig := <-sigCh:
		logger.WithField("signal", sig.String()).Info("initiating graceful shutdown")
	case err := <-serverErr:
		if err != nil {
			logger.WithError(err).Error("server error")
			s.Close()
			return err
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP server shutdown error")
	}
	if err := s.Close(); err != nil {
		logger.WithError(err).Warn("database close error")
	}

	logger.Info("shutdown complete")
	return nil
}
