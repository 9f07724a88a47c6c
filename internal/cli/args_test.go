package cli

import (
	"testing"
)

func TestCommentRequiresNameAndMessage(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no args", []string{"comment"}},
		{"name only", []string{"comment", "Ana"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCommand(tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestCommentRejectsBlankName(t *testing.T) {
	_, err := executeCommand("comment", "  ", "hello there")
	if err == nil || err.Error() != "name is required" {
		t.Fatalf("err = %v, want name is required", err)
	}
}

func TestAskRequiresMessage(t *testing.T) {
	if _, err := executeCommand("ask"); err == nil {
		t.Fatal("expected error when no message provided")
	}
	if _, err := executeCommand("ask", "   "); err == nil {
		t.Fatal("expected error for blank message")
	}
}

func TestNoArgCommandsRejectExtraArgs(t *testing.T) {
	for _, name := range []string{"serve", "messages", "meet", "status", "version"} {
		t.Run(name, func(t *testing.T) {
			_, err := executeCommand(name, "extra")
			if err == nil {
				t.Fatal("expected error for extra args")
			}
		})
	}
}
