package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home directory: %v", err)
	}

	t.Setenv("TALLY_TEST_DIR", "/data/tally")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty path", in: "", want: ""},
		{name: "tilde prefix", in: "~/ledger.db", want: filepath.Join(home, "ledger.db")},
		{name: "bare tilde", in: "~", want: home},
		{name: "environment variable", in: "$TALLY_TEST_DIR/ledger.db", want: "/data/tally/ledger.db"},
		{name: "plain path unchanged", in: "/var/lib/tally.db", want: "/var/lib/tally.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpandPath(tt.in); got != tt.want {
				t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
