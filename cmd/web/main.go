package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/restoreco/claimscope/pkg/server"
	"github.com/restoreco/claimscope/pkg/services/config"
	"github.com/restoreco/claimscope/pkg/services/delivery"
	"github.com/restoreco/claimscope/pkg/services/export"
	"github.com/restoreco/claimscope/pkg/services/extraction"
	"github.com/restoreco/claimscope/pkg/services/extraction/openrouter"
	"github.com/restoreco/claimscope/pkg/services/session"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the ClaimScope web server",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "claimscope.yaml",
		"Path to the ClaimScope config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pipeline := extraction.NewPipeline(
		openrouter.NewClient(cfg.OpenRouter),
		extraction.WithRegenerations(1),
	)
	store := session.NewStore(cfg.Session.TTL)
	builder := export.NewBuilder()
	deliverer := delivery.NewClient(cfg.CRM)

	logger.Info().Msgf("Configuration found at `%s` successfully loaded.", cfgPath)

	webAPI := server.NewWebAPI(server.Config{
		Addr:            cfg.Server.Addr,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
		Dependencies: server.Dependencies{
			Extractor: pipeline,
			Store:     store,
			Builder:   builder,
			Deliverer: deliverer,
			Logger:    logger,
		},
	})

	return webAPI.Start()
}
