// Package cli defines the cobra command tree for golden.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/evcraddock/golden-profile/internal/client"
)

var (
	flagFormat string
	flagDB     string
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "golden",
		Short:         "Golden the cat's profile site",
		Long:          "Serve Golden's profile site, leave comments for Golden, read the message feed, and chat with Golden from the command line.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagDB, "db", "", "SQLite database path for serve (default: ~/.golden/golden.db)")

	root.AddCommand(
		newServeCmd(),
		newCommentCmd(),
		newMessagesCmd(),
		newAskCmd(),
		newMeetCmd(),
		newStatusCmd(),
		newConfigCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the golden-profile API.
func newAPIClient() *client.Client {
	return client.New(getServerURL())
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}
