package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newCommentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   `comment <name> "message"`,
		Short: "Leave a comment for Golden",
		Long:  "Post a comment to Golden's message feed. The message must be at least 5 characters.",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runComment,
	}
}

func runComment(cmd *cobra.Command, args []string) error {
	name := strings.TrimSpace(args[0])
	if name == "" {
		return fmt.Errorf("name is required")
	}
	message := strings.Join(args[1:], " ")

	c, err := newAPIClient().AddComment(cmd.Context(), name, message)
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), c)
	}

	printCommentSingle(cmd.OutOrStdout(), c)
	return nil
}

func newMessagesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "messages",
		Short: "List messages left for Golden",
		Long:  "List every comment in Golden's message feed, newest first.",
		Args:  cobra.NoArgs,
		RunE:  runMessages,
	}
}

func runMessages(cmd *cobra.Command, args []string) error {
	comments, err := newAPIClient().ListComments(cmd.Context())
	if err != nil {
		return err
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), comments)
	}

	return printCommentList(cmd.OutOrStdout(), comments)
}
