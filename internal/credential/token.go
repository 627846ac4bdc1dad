package credential

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
)

// ErrNoToken is returned when every token source came up empty.
var ErrNoToken = errors.New(
	"no GitHub token found. Set GITHUB_TOKEN, run `ghn auth login`, or run `gh auth login`",
)

// Resolver looks up a GitHub token from, in order: the environment, the
// keyring, then the gh CLI.
type Resolver struct {
	Getenv  func(string) string
	Keyring func(key string) (string, error)
	GH      func(ctx context.Context, args ...string) (string, error)
}

// DefaultResolver uses the real environment, keyring and gh binary.
func DefaultResolver() *Resolver {
	return &Resolver{
		Getenv:  os.Getenv,
		Keyring: Get,
		GH:      runGH,
	}
}

// Resolve returns the first non-empty token.
func (r *Resolver) Resolve(ctx context.Context) (string, error) {
	for _, name := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
		if tok := strings.TrimSpace(r.Getenv(name)); tok != "" {
			log.Debug("using token from environment", "var", name)
			return tok, nil
		}
	}

	if r.Keyring != nil {
		tok, err := r.Keyring(TokenKey)
		switch {
		case err == nil && strings.TrimSpace(tok) != "":
			log.Debug("using token from keyring")
			return strings.TrimSpace(tok), nil
		case err != nil && !errors.Is(err, ErrNotFound):
			log.Warn("keyring lookup failed", "err", err)
		}
	}

	if r.GH != nil {
		for _, args := range [][]string{
			{"auth", "token", "-h", "github.com"},
			{"auth", "token"},
		} {
			tok, err := r.GH(ctx, args...)
			if err != nil {
				log.Debug("gh auth token failed", "args", args, "err", err)
				continue
			}
			if tok = strings.TrimSpace(tok); tok != "" {
				log.Debug("using token from gh")
				return tok, nil
			}
		}
	}

	return "", ErrNoToken
}

// ResolveToken runs DefaultResolver.
func ResolveToken(ctx context.Context) (string, error) {
	return DefaultResolver().Resolve(ctx)
}

func runGH(ctx context.Context, args ...string) (string, error) {
	out, err := exec.CommandContext(ctx, "gh", args...).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}
