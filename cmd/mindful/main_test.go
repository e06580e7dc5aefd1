package main

import "testing"

func TestRootCommandName(t *testing.T) {
	if rootCmd.Use != "mindful" {
		t.Fatalf("expected root command name mindful, got %q", rootCmd.Use)
	}
}

func TestRootCommandHasTaskCommands(t *testing.T) {
	for _, name := range []string{"add", "list", "start", "confirm", "cancel", "done", "feel", "export", "import", "remind", "board"} {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil {
			t.Fatalf("find %s: %v", name, err)
		}
		if cmd.Name() != name {
			t.Fatalf("expected command %s, got %s", name, cmd.Name())
		}
	}
}
