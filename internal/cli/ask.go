package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newAskCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `ask "message"`,
		Short: "Chat with Golden",
		Long:  "Send a message to Golden and print the reply.",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runAsk,
	}
}

func runAsk(cmd *cobra.Command, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))
	if message == "" {
		return fmt.Errorf("message is required")
	}

	reply, err := newAPIClient().Ask(cmd.Context(), message)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), reply)
	}

	printReply(cmd.OutOrStdout(), reply)
	return nil
}

func newMeetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "meet",
		Short: "Meet a random cat lover",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := newAPIClient().RandomUser(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), p)
			}
			printProfile(cmd.OutOrStdout(), p)
			return nil
		},
	}
}
