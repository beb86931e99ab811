// Package main is the entry point for the lumen server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/lumenhealth/lumen/internal/profile"
	"github.com/lumenhealth/lumen/plugin/ai/metrics"
	"github.com/lumenhealth/lumen/plugin/ai/orchestrator"
	"github.com/lumenhealth/lumen/plugin/ai/provider"
	"github.com/lumenhealth/lumen/plugin/ai/routing"
	"github.com/lumenhealth/lumen/plugin/ai/sources"
	"github.com/lumenhealth/lumen/plugin/ai/usercontext"
	"github.com/lumenhealth/lumen/server"
	"github.com/lumenhealth/lumen/store"
	"github.com/lumenhealth/lumen/store/db"
)

// version is set at build time via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "lumen",
	Short: "An AI support companion for patients navigating serious illness",
	RunE: func(_ *cobra.Command, _ []string) error {
		instanceProfile := &profile.Profile{
			Mode:    viper.GetString("mode"),
			Addr:    viper.GetString("addr"),
			Port:    viper.GetInt("port"),
			Data:    viper.GetString("data"),
			Driver:  viper.GetString("driver"),
			DSN:     viper.GetString("dsn"),
			Version: version,
		}
		instanceProfile.FromEnv()
		if err := instanceProfile.Validate(); err != nil {
			return err
		}
		return run(instanceProfile)
	},
}

func init() {
	rootCmd.PersistentFlags().String("mode", "demo", `mode of server, can be "prod" or "dev" or "demo"`)
	rootCmd.PersistentFlags().String("addr", "", "address of server")
	rootCmd.PersistentFlags().Int("port", 8081, "port of server")
	rootCmd.PersistentFlags().String("data", ".", "data directory")
	rootCmd.PersistentFlags().String("driver", "sqlite", `database driver, can be "sqlite" or "postgres"`)
	rootCmd.PersistentFlags().String("dsn", "", "database source name")

	for _, flag := range []string{"mode", "addr", "port", "data", "driver", "dsn"} {
		if err := viper.BindPFlag(flag, rootCmd.PersistentFlags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
	viper.SetEnvPrefix("lumen")
	viper.AutomaticEnv()
}

func run(instanceProfile *profile.Profile) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := newLogger(instanceProfile)

	driver, err := db.NewDBDriver(instanceProfile)
	if err != nil {
		return err
	}
	recordStore := store.New(driver, instanceProfile)
	if err := recordStore.Migrate(ctx); err != nil {
		return err
	}

	adapters, err := buildAdapters(ctx, instanceProfile, logger)
	if err != nil {
		return err
	}

	table := routing.Default()
	if err := table.Validate(); err != nil {
		return err
	}

	aiService := orchestrator.NewService(orchestrator.Config{
		Table:      table,
		Adapters:   adapters,
		Assembler:  usercontext.NewAssembler(recordStore, logger),
		Normalizer: sources.NewNormalizer(recordStore, logger),
		Metrics:    metrics.NewService(),
		Logger:     logger,
	})

	srv := server.NewServer(instanceProfile, recordStore, aiService, logger)
	if err := srv.Start(ctx); err != nil {
		return err
	}
	return nil
}

// buildAdapters wires one adapter per configured provider credential.
func buildAdapters(ctx context.Context, instanceProfile *profile.Profile, logger *slog.Logger) (map[provider.ID]provider.Adapter, error) {
	adapters := make(map[provider.ID]provider.Adapter)

	if instanceProfile.AIOpenAIAPIKey != "" {
		adapters[provider.ProviderOpenAI] = provider.NewOpenAIAdapter(provider.OpenAIConfig{
			Provider: provider.ProviderOpenAI,
			APIKey:   instanceProfile.AIOpenAIAPIKey,
			BaseURL:  instanceProfile.AIOpenAIBaseURL,
			Model:    instanceProfile.AIOpenAIModel,
		})
	}
	if instanceProfile.AIDeepSeekAPIKey != "" {
		adapters[provider.ProviderDeepSeek] = provider.NewOpenAIAdapter(provider.OpenAIConfig{
			Provider: provider.ProviderDeepSeek,
			APIKey:   instanceProfile.AIDeepSeekAPIKey,
			BaseURL:  instanceProfile.AIDeepSeekBaseURL,
			Model:    instanceProfile.AIDeepSeekModel,
		})
	}
	if instanceProfile.AIGeminiAPIKey != "" {
		gemini, err := provider.NewGeminiAdapter(ctx, provider.GeminiConfig{
			APIKey: instanceProfile.AIGeminiAPIKey,
			Model:  instanceProfile.AIGeminiModel,
		})
		if err != nil {
			return nil, err
		}
		adapters[provider.ProviderGemini] = gemini
	}

	if len(adapters) == 0 {
		logger.Warn("no AI provider credentials configured, chat requests will fail")
	}
	return adapters, nil
}

func newLogger(instanceProfile *profile.Profile) *slog.Logger {
	level := slog.LevelInfo
	if instanceProfile.IsDev() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
