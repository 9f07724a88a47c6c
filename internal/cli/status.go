package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/evcraddock/golden-profile/internal/client"
)

func newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Check the connection to the server",
		Long:  "Tests the connection to the server and reports how many messages the feed holds.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func runStatus(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	serverURL := getServerURL()
	fmt.Fprintf(out, "Server:   %s\n", serverURL)

	c := client.New(serverURL)
	if err := c.Health(ctx); err != nil {
		fmt.Fprintf(out, "Status:   ✗ cannot reach server (%v)\n", err)
		return nil
	}
	fmt.Fprintln(out, "Status:   ✓ connected")

	comments, err := c.ListComments(ctx)
	if err != nil {
		fmt.Fprintf(out, "Messages: ✗ %v\n", err)
		return nil
	}
	fmt.Fprintf(out, "Messages: %d\n", len(comments))
	return nil
}
