package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/user/unilogos/internal/config"
	"github.com/user/unilogos/internal/controller"
	"github.com/user/unilogos/internal/gateway"
	"github.com/user/unilogos/internal/state"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:           "unilogos",
	Short:         "Client for the unilogos poster generation service",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath,
		"config",
		filepath.Join(os.Getenv("HOME"), ".unilogos", "config.json"),
		"config file path")
}

func loadConfig() *config.Config {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func setupLogging(cfg *config.Config) {
	var level slog.Level
	switch strings.ToLower(cfg.LogLevel) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// newController assembles the stores and gateways for one command run.
func newController(cfg *config.Config) *controller.Controller {
	kv := state.NewFileKV(filepath.Join(cfg.DataDir, "store.json"))

	sessions := state.NewSessionStore(kv)
	gallery := state.NewGalleryStore(kv)
	previews := state.NewPreviewStore(kv)

	auth := gateway.NewAuthGateway(cfg.API.BaseURL, time.Duration(cfg.API.AuthTimeoutSeconds)*time.Second)
	generator := gateway.NewGenerationGateway(cfg.API.BaseURL, time.Duration(cfg.API.GenerateTimeoutSeconds)*time.Second)
	fetcher := gateway.NewAssetFetcher()

	return controller.New(sessions, gallery, auth, generator, fetcher, previews)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
