package gitcfg

import (
	"bytes"
	"os/exec"
	"strings"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/rs/zerolog"
)

// GitStore persists values through git's native configuration mechanism.
type GitStore struct {
	dir    string
	logger zerolog.Logger
}

// NewGitStore creates a store rooted at dir (usually the working directory).
func NewGitStore(dir string, logger zerolog.Logger) *GitStore {
	if dir == "" {
		dir = "."
	}
	return &GitStore{
		dir:    dir,
		logger: logger.With().Str("module", "GitStore").Logger(),
	}
}

// GetAll returns the values stored for key in the given scope.
func (gs *GitStore) GetAll(key string, scope Scope) ([]string, error) {
	out, err := gs.run("config", scope.String(), "--get-all", key)
	if err != nil {
		// git config exits 1 when the key simply has no values.
		var exitErr *exec.ExitError
		if isExit(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, nil
		}
		return nil, err
	}

	var values []string
	for _, line := range strings.Split(string(out), "\n") {
		if line != "" {
			values = append(values, line)
		}
	}
	return values, nil
}

// Add inserts value for key unless it is already present in that scope.
func (gs *GitStore) Add(key, value string, scope Scope) (bool, error) {
	existing, err := gs.GetAll(key, scope)
	if err != nil {
		return false, err
	}
	for _, v := range existing {
		if v == value {
			return false, nil
		}
	}

	if _, err := gs.run("config", scope.String(), "--add", key, value); err != nil {
		return false, err
	}

	gs.logger.Debug().Str("key", key).Str("scope", scope.String()).Msg("Added config value")
	return true, nil
}

// run executes a git subcommand rooted at the store's directory.
func (gs *GitStore) run(args ...string) ([]byte, error) {
	cmd := exec.Command("git", append([]string{"-C", gs.dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if strings.Contains(stderr.String(), "not in a git") ||
			strings.Contains(stderr.String(), "can only be used inside a git repository") {
			return nil, common.ErrRepositoryAbsent
		}
		var exitErr *exec.ExitError
		if isExit(err, &exitErr) && exitErr.ExitCode() == 1 {
			return nil, err // unset key, reported as-is for GetAll to interpret
		}
		return nil, common.WrapErrorf(err, "git %s failed: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// isExit reports whether err is an *exec.ExitError, storing it in target.
func isExit(err error, target **exec.ExitError) bool {
	e, ok := err.(*exec.ExitError)
	if ok {
		*target = e
	}
	return ok
}
