package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/golden-profile/internal/comment"
	"github.com/evcraddock/golden-profile/internal/directory"
	"github.com/evcraddock/golden-profile/internal/persona"
)

// printJSON marshals v as indented JSON and writes it to out.
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printCommentList prints the message feed as a table.
func printCommentList(out io.Writer, comments []*comment.Comment) error {
	if len(comments) == 0 {
		fmt.Fprintln(out, "No messages yet. Be the first to leave a comment for Golden!")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "ID\tPOSTED\tNAME\tMESSAGE"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "--\t------\t----\t-------"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, c := range comments {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
			c.ID, c.CreatedAt.Local().Format("2006-01-02 15:04"), truncate(c.Name, 20), truncate(c.Message, 60)); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	fmt.Fprintf(out, "\nTotal: %d messages\n", len(comments))
	return nil
}

// printCommentSingle prints a single comment in text format.
func printCommentSingle(out io.Writer, c *comment.Comment) {
	fmt.Fprintf(out, "Comment #%d posted for Golden.\n  %s: %s\n", c.ID, c.Name, c.Message)
}

// printReply prints Golden's chat reply.
func printReply(out io.Writer, r *persona.Reply) {
	fmt.Fprintf(out, "Golden says: %s\n", r.Text)
	if !r.Timestamp.IsZero() {
		fmt.Fprintf(out, "  (%s)\n", r.Timestamp.Local().Format("3:04:05 PM"))
	}
}

// printProfile prints a visitor profile card.
func printProfile(out io.Writer, p *directory.Profile) {
	fmt.Fprintf(out, "%s (@%s)\n", p.Name, p.Username)
	fmt.Fprintf(out, "  Email:    %s\n", p.Email)
	fmt.Fprintf(out, "  Location: %s\n", p.Location)
	fmt.Fprintf(out, "  Picture:  %s\n", p.Picture)
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
