package cmd

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/theirongolddev/savebonus/internal/conversation"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Answer the calculator's questions one message at a time",
	Long:  "Reads messages from stdin. Commands: /start, /calculate, /cancel. End input to exit.",
	Args:  cobra.NoArgs,
	RunE:  runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()

	// Chat shares the terminal with the user, so only errors log unless -v.
	logger, err := newLogger("error")
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	session := conversation.NewSession(calendarProvider, cfg.General.DefaultBuffer)
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, session.Handle(conversation.CmdStart).Text)

	sc := bufio.NewScanner(cmd.InOrStdin())
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			break
		}
		reply := session.Handle(sc.Text())
		fmt.Fprintln(out, reply.Text)

		if reply.Err != nil {
			logger.Debug("message rejected",
				zap.String("state", reply.State.String()),
				zap.Error(reply.Err),
			)
		}
		if reply.Done {
			logger.Debug("calculation finished", zap.Bool("ok", reply.Results != nil))
		}
	}
	fmt.Fprintln(out)
	return sc.Err()
}
