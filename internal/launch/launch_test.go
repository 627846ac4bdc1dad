package launch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRepoDir(t *testing.T) {
	tests := []struct {
		name     string
		fullName string
		want     string
		wantErr  bool
	}{
		{"valid", "acme/widgets", filepath.Join("/src", "acme", "widgets"), false},
		{"trimmed", " acme / widgets ", filepath.Join("/src", "acme", "widgets"), false},
		{"missing repo", "acme/", "", true},
		{"no slash", "acme", "", true},
		{"extra segment", "acme/widgets/extra", "", true},
		{"traversal", "../widgets", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RepoDir("/src", tt.fullName)
			if (err != nil) != tt.wantErr {
				t.Fatalf("RepoDir(%q) err = %v, wantErr %v", tt.fullName, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("RepoDir(%q) = %q, want %q", tt.fullName, got, tt.want)
			}
		})
	}
}

func TestReviewCommand(t *testing.T) {
	base := t.TempDir()
	if err := os.MkdirAll(filepath.Join(base, "acme", "widgets"), 0o755); err != nil {
		t.Fatal(err)
	}
	l := Launcher{BaseDir: base}

	cmd, err := l.ReviewCommand("acme/widgets", "https://github.com/acme/widgets/pull/7")
	if err != nil {
		t.Fatalf("ReviewCommand: %v", err)
	}
	if cmd.Dir != filepath.Join(base, "acme", "widgets") {
		t.Errorf("Dir = %q", cmd.Dir)
	}
	args := strings.Join(cmd.Args, " ")
	if !strings.HasPrefix(args, "nvim -c ReviewPR https://github.com/acme/widgets/pull/7 --analyze") {
		t.Errorf("Args = %q", args)
	}
}

func TestReviewCommandErrors(t *testing.T) {
	l := Launcher{BaseDir: t.TempDir(), Editor: "vim"}

	if _, err := l.ReviewCommand("acme/widgets", "https://github.com/acme/widgets/issues/7"); err == nil {
		t.Error("expected error for non pull request url")
	}
	if _, err := l.ReviewCommand("acme/missing", "https://github.com/acme/missing/pull/1"); err == nil {
		t.Error("expected error for missing clone")
	}
}
