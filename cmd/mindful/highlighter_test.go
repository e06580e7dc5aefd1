package main

import (
	"fmt"
	"testing"
)

func TestLogHighlighterUsesPrefixLengths(t *testing.T) {
	highlight := logHighlighter(map[string]int{"abc123": 2}, func(id string, prefix int) string {
		return fmt.Sprintf("%s/%d", id, prefix)
	})

	if got := highlight("ABC123"); got != "ABC123/2" {
		t.Fatalf("expected case-insensitive prefix lookup, got %q", got)
	}
	if got := highlight("zzz"); got != "zzz/0" {
		t.Fatalf("expected unknown id to get no prefix, got %q", got)
	}
	if got := highlight(""); got != "" {
		t.Fatalf("expected empty id to pass through, got %q", got)
	}
}
