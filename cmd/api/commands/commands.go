package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vitaapp/core/internal/domain/entities"
	"github.com/vitaapp/core/internal/infrastructure/config"
	"github.com/vitaapp/core/internal/infrastructure/logger"
	"github.com/vitaapp/core/internal/infrastructure/server"
	"github.com/vitaapp/core/internal/infrastructure/storage"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the VitaApp API server",
		Long:  "Start the VitaApp API server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			RunServer()
		},
	}
}

// NewDataCommand creates the data management command with subcommands
func NewDataCommand() *cobra.Command {
	dataCmd := &cobra.Command{
		Use:   "data",
		Short: "Data file management commands",
		Long:  "Inspect and initialize the JSON data files backing each resource",
	}

	dataCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create the data directory with empty resource files",
		Run: func(cmd *cobra.Command, args []string) {
			initData()
		},
	})

	dataCmd.AddCommand(&cobra.Command{
		Use:   "inspect",
		Short: "Print per-resource record counts",
		Run: func(cmd *cobra.Command, args []string) {
			inspectData()
		},
	})

	return dataCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print VitaApp version",
		Run: func(cmd *cobra.Command, args []string) {
			cfg, err := config.Load()
			if err != nil {
				log.Fatalf("Failed to load configuration: %v", err)
			}
			fmt.Printf("%s %s (%s)\n", cfg.App.Name, cfg.App.Version, cfg.App.Environment)
		},
	}
}

// RunServer loads configuration, wires the server and blocks until an
// interrupt triggers graceful shutdown.
func RunServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	srv, err := server.New(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	go func() {
		appLogger.Info("Starting VitaApp API server",
			"port", cfg.Server.Port,
			"environment", cfg.App.Environment,
			"data_dir", cfg.Storage.DataDir,
		)

		if err := srv.Start(fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)); err != nil {
			appLogger.Fatal("Server failed to start", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", "error", err)
	}

	appLogger.Info("Server exited gracefully")
}

func initData() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	for _, res := range entities.Resources {
		path := cfg.Storage.ResourcePath(res.File)
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("  %-12s %s (exists, skipped)\n", res.Name, path)
			continue
		}
		file := storage.NewFile(path, appLogger)
		if err := file.WriteArray(nil); err != nil {
			log.Fatalf("Failed to initialize %s: %v", path, err)
		}
		fmt.Printf("  %-12s %s\n", res.Name, path)
	}

	if _, err := os.Stat(cfg.Storage.ProfilePath); os.IsNotExist(err) {
		file := storage.NewFile(cfg.Storage.ProfilePath, appLogger)
		if err := file.WriteObject(nil); err != nil {
			log.Fatalf("Failed to initialize %s: %v", cfg.Storage.ProfilePath, err)
		}
		fmt.Printf("  %-12s %s\n", "profile", cfg.Storage.ProfilePath)
	}

	fmt.Println("Data files initialized")
}

func inspectData() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	total := 0
	for _, res := range entities.Resources {
		file := storage.NewFile(cfg.Storage.ResourcePath(res.File), appLogger)
		count := len(file.ReadArray())
		total += count
		fmt.Printf("  %-12s %d\n", res.Name, count)
	}

	profile := storage.NewFile(cfg.Storage.ProfilePath, appLogger)
	if len(profile.ReadObject()) > 0 {
		fmt.Printf("  %-12s set\n", "profile")
	} else {
		fmt.Printf("  %-12s empty\n", "profile")
	}

	fmt.Printf("Total records: %d\n", total)
}
