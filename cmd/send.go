package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/openvelo/scoreboard/config"
	"github.com/openvelo/scoreboard/core/board"
	"github.com/openvelo/scoreboard/infra/link"
	"github.com/openvelo/scoreboard/infra/logger"
)

var (
	sendAddr string
	sendRow  int
)

var sendCmd = &cobra.Command{
	Use:   "send [text...]",
	Short: "Push a test line to a scoreboard",
	RunE:  sendLine,
}

func init() {
	sendCmd.Flags().StringVarP(&sendAddr, "addr", "a", "DEBUG", "scoreboard address string")
	sendCmd.Flags().IntVarP(&sendRow, "row", "r", 0, "display row")
	rootCmd.AddCommand(sendCmd)
}

func sendLine(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	sender, err := board.NewSender(cfg.Board, link.Open, nil, logger.New("send-command"))
	if err != nil {
		return fmt.Errorf("sender: %w", err)
	}
	defer func() {
		if err := sender.Close(); err != nil {
			logger.New("send-command").Errorf("sender close: %v", err)
		}
	}()

	sender.SetPort(sendAddr)
	sender.SetLine(sendRow, strings.Join(args, " "))
	sender.Wait()
	if !sender.Connected() {
		return fmt.Errorf("scoreboard not connected at %q", sendAddr)
	}
	return nil
}
