// Package launch runs the local side effects of triage actions: the
// browser, the clipboard, and commands inside local repository clones.
package launch

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
)

// Launcher performs local actions. The zero value opens URLs and copies
// text; Checkout and ReviewCommand need BaseDir.
type Launcher struct {
	// BaseDir holds clones laid out as <BaseDir>/<owner>/<repo>.
	BaseDir string

	// Editor is the review editor binary, "nvim" when empty.
	Editor string
}

// OpenURL opens url in the system browser and waits for the opener to exit.
func (l Launcher) OpenURL(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", "", url)
	default:
		cmd = exec.Command("xdg-open", url)
	}
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to open browser: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// Copy writes text to the system clipboard.
func (l Launcher) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard unavailable: %w", err)
	}
	return nil
}

// Checkout runs `gh pr checkout <url>` inside the local clone.
func (l Launcher) Checkout(repoFullName, url string) error {
	dir, err := l.existingRepoDir(repoFullName)
	if err != nil {
		return err
	}

	cmd := exec.Command("gh", "pr", "checkout", url)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gh pr checkout failed: %s: %w", strings.TrimSpace(string(out)), err)
	}
	return nil
}

// ReviewCommand builds the foreground editor command for a pull request
// review. The caller runs it with the terminal handed over.
func (l Launcher) ReviewCommand(repoFullName, url string) (*exec.Cmd, error) {
	if !strings.Contains(url, "/pull/") {
		return nil, fmt.Errorf("ReviewPR only supports pull request URLs")
	}
	dir, err := l.existingRepoDir(repoFullName)
	if err != nil {
		return nil, err
	}

	editor := l.Editor
	if editor == "" {
		editor = "nvim"
	}
	cmd := exec.Command(editor, "-c", fmt.Sprintf("ReviewPR %s --analyze", url))
	cmd.Dir = dir
	return cmd, nil
}

func (l Launcher) existingRepoDir(repoFullName string) (string, error) {
	dir, err := RepoDir(l.BaseDir, repoFullName)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return "", fmt.Errorf("repository directory not found: %s", dir)
	}
	return dir, nil
}

// RepoDir maps "owner/repo" to base/owner/repo. Names with a missing or
// extra segment are rejected.
func RepoDir(base, fullName string) (string, error) {
	parts := strings.Split(fullName, "/")
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid repository name: %s", fullName)
	}
	owner := strings.TrimSpace(parts[0])
	repo := strings.TrimSpace(parts[1])
	if owner == "" || repo == "" || owner == ".." || repo == ".." {
		return "", fmt.Errorf("invalid repository name: %s", fullName)
	}
	return filepath.Join(base, owner, repo), nil
}
