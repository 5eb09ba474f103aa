package cmds

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"

	"github.com/judgebase/judgebase-api/internal/config"
	"github.com/judgebase/judgebase-api/internal/logger"
)

const name string = "github.com/judgebase/judgebase-api/cmd/server/cmds"

var tracer = otel.Tracer(name)

// Overridden at build time with -ldflags "-X .../cmds.version=..."
var version = "dev"

// Loaded before any subcommand runs
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:           "judgebase-api",
	Short:         "JudgeBase marketplace API",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		// a .env file is optional, real env vars win over it
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		loaded, err := config.GetConfig()
		if err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}
		logger.LogLevel.Set(slog.Level(loaded.Logging.App.Level))

		cfg = loaded
		return nil
	},
	RunE: runServe,
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
