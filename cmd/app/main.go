package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"encargos/cmd"
	"encargos/internal/adapters/out/sqlstore"
	"encargos/internal/pkg/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	configPath string
	tenantFlag string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "encargos",
	Short:         "Customer special-order tracking service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE:  runMigrate,
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Report orphaned orders, name mismatches and shared phones of a selling point",
	Long: `Audit the person/order cross references of one selling point. Nothing is modified.

Examples:
  encargos audit --tenant centro
  encargos audit --tenant centro --config /etc/encargos/config.yaml`,
	RunE: runAudit,
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Rewrite order customer names that disagree with their person",
	RunE:  runRepair,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", os.Getenv("ENCARGOS_CONFIG"), "YAML configuration file")
	for _, c := range []*cobra.Command{auditCmd, repairCmd} {
		c.Flags().StringVar(&tenantFlag, "tenant", "", "selling point to work on")
		_ = c.MarkFlagRequired("tenant")
	}
	rootCmd.AddCommand(serveCmd, migrateCmd, auditCmd, repairCmd)
}

// app is what every subcommand starts from.
type app struct {
	cfg    cmd.Config
	logger *zap.Logger
	db     *gorm.DB
}

func bootstrap() (*app, error) {
	cfg, err := cmd.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}
	logger, err := logging.NewLogger(cfg.Logging)
	if err != nil {
		return nil, err
	}
	db, err := sqlstore.Open(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return &app{cfg: cfg, logger: logger, db: db}, nil
}

func (a *app) close() {
	if sqlDB, err := a.db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	_ = logging.Sync(a.logger)
}

func runServe(c *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	root, err := cmd.NewCompositionRoot(a.cfg, a.db, a.logger)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(c.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := root.CreateServer(ctx)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server listening", zap.String("addr", a.cfg.HTTP.Addr()))
		errCh <- srv.Start()
	}()

	select {
	case err = <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func runMigrate(_ *cobra.Command, _ []string) error {
	a, err := bootstrap()
	if err != nil {
		return err
	}
	defer a.close()

	if err = sqlstore.Migrate(a.db); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	a.logger.Info("schema up to date", zap.String("driver", a.cfg.Database.Driver))
	return nil
}
