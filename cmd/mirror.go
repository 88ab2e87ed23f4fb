package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/openvelo/scoreboard/config"
	"github.com/openvelo/scoreboard/infra/logger"
	"github.com/openvelo/scoreboard/pkg/mirror"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror",
	Short: "Run one mirror pass of the export directory",
	RunE:  runMirror,
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
}

func runMirror(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	m := mirror.New(cfg.Mirror, logger.New("mirror"))
	return m.Run(ctx)
}
