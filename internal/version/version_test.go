package version

import (
	"strings"
	"testing"
)

func TestShortCommit(t *testing.T) {
	tests := []struct {
		revision string
		dirty    bool
		want     string
	}{
		{"0123456789abcdef", false, "0123456"},
		{"0123456789abcdef", true, "0123456-dirty"},
		{"abc", false, "abc"},
	}
	for _, tt := range tests {
		if got := shortCommit(tt.revision, tt.dirty); got != tt.want {
			t.Errorf("shortCommit(%q, %v) = %q, want %q", tt.revision, tt.dirty, got, tt.want)
		}
	}
}

func TestPopulatedAtInit(t *testing.T) {
	if Version == "" || Commit == "" {
		t.Errorf("Version = %q, Commit = %q; both should be set after init", Version, Commit)
	}
	if !strings.Contains(Full(), Commit) {
		t.Errorf("Full() = %q, want it to contain commit", Full())
	}
	if got := UserAgent(); got != "logobrief/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
	if got := Current(); got.Version != Version || got.Commit != Commit {
		t.Errorf("Current() = %+v", got)
	}
}
