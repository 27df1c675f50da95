package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/star-coach/internal/db"
	"github.com/jonathan/star-coach/internal/server"
	"github.com/jonathan/star-coach/internal/server/ratelimit"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the story bank, deterministic evaluation,
coverage and AI coaching over REST. AI routes answer 503 when no Gemini API key
is configured.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (defaults to config port)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if appConfig.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	jwtCfg, err := appConfig.JWT()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, appConfig.DatabaseURL)
	if err != nil {
		return err
	}
	defer database.Close()
	if err := database.Migrate(ctx); err != nil {
		return err
	}

	var ai server.AIEvaluator
	if appConfig.GeminiAPIKey != "" {
		c, cleanup, err := newCoach(ctx, appConfig, logger)
		if err != nil {
			return err
		}
		defer cleanup()
		ai = c
	} else {
		logger.Warn("GEMINI_API_KEY not set, AI routes are disabled")
	}

	port := appConfig.Port
	if servePort != 0 {
		port = servePort
	}

	srv, err := server.New(server.Config{
		Port:        port,
		JWT:         jwtCfg,
		RateLimit:   ratelimit.NewConfig(appConfig.AIRatePerMinute, appConfig.AIBurst),
		TargetLevel: appConfig.TargetLevel,
	}, database, ai, logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting star_coach", zap.Int("port", port), zap.Bool("ai", ai != nil))
	return srv.Run(ctx)
}
