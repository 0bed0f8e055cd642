package id

import (
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("diary")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.HasPrefix(got, "diary-") {
		t.Errorf("expected prefix %q, got %q", "diary-", got)
	}
	if len(got) <= len("diary-") {
		t.Errorf("expected a non-empty id suffix, got %q", got)
	}
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		id, err := Generate("note")
		if err != nil {
			t.Fatalf("Generate: %v", err)
		}
		if seen[id] {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = true
	}
}

func TestMustGenerate(t *testing.T) {
	got := MustGenerate("user")
	if !strings.HasPrefix(got, "user-") {
		t.Errorf("expected prefix %q, got %q", "user-", got)
	}
}
