package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// Info holds the filesystem context used to place the profile and history.
type Info struct {
	Cwd    string
	Root   string
	InRepo bool
}

// ProfileName is the repo-local profile file looked up by default.
const ProfileName = "hunch.yaml"

// Detect collects cwd and the enclosing repo root, if any.
func Detect() (Info, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Info{}, err
	}
	root, inRepo := findRepoRoot(cwd)
	return Info{Cwd: cwd, Root: root, InRepo: inRepo}, nil
}

// ProfilePath returns the repo-local profile path if the file exists.
func (i Info) ProfilePath() string {
	candidate := filepath.Join(i.Root, ProfileName)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return ""
}

func findRepoRoot(start string) (string, bool) {
	cur := start
	for {
		if _, err := os.Stat(filepath.Join(cur, ".git")); err == nil {
			return cur, true
		}
		next := filepath.Dir(cur)
		if next == cur {
			return start, false
		}
		cur = next
	}
}

// ResolvePath resolves candidate relative to base, handling ~ expansion.
// The path does not need to exist.
func ResolvePath(base, candidate string) (string, error) {
	if candidate == "" {
		return "", errors.New("empty path")
	}
	if strings.HasPrefix(candidate, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		candidate = filepath.Join(home, strings.TrimPrefix(candidate, "~"))
	}
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(base, candidate)
	}
	return filepath.Clean(candidate), nil
}
