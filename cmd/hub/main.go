package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"farmer-hub/internal/catalog"
	"farmer-hub/internal/config"
	"farmer-hub/internal/domain"
	"farmer-hub/internal/logger"
	"farmer-hub/internal/session"
	"farmer-hub/internal/store"
	"farmer-hub/internal/transport"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:   "hub",
	Short: "FarmerHub marketplace session",
	Long:  "Single-user marketplace demo: account registration and login, a product catalog, and a shopping cart backed by a durable credential store.",
	RunE:  run,
}

func run(cmd *cobra.Command, _ []string) error {
	// Load .env before viper so both sources see the same values
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.App.Env)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer log.Sync()

	log.Info("Starting FarmerHub",
		zap.String("env", cfg.App.Env),
		zap.String("data_file", cfg.Store.DataFile),
	)

	// Load the credential snapshot and seed the default account on first run.
	credentials := store.NewFileStore(cfg.Store.DataFile, log)
	credentials.Load()
	if credentials.Count() == 0 {
		credentials.Put(domain.Account{
			Username: "farmer",
			Password: "Pass123!",
			Email:    "farm@hub.com",
		})
		log.Info("Seeded default account", zap.String("username", "farmer"))
	}

	cat := catalog.New(log)
	if cfg.App.SeedCatalog {
		cat.Seed()
	}

	controller := session.NewController(credentials, log)

	// Ctrl-C ends the shell loop; the store is still flushed on the way out.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shell := transport.NewShell(controller, cat, log, os.Stdin, os.Stdout)
	runErr := shell.Run(ctx)

	if err := controller.Shutdown(); err != nil {
		log.Error("Credential store flush failed, registrations from this session are lost", zap.Error(err))
	}

	log.Info("Session ended")
	return runErr
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
