package gitrepo

import (
	"bytes"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/rs/zerolog"
)

// EmptyTreeID is the well-known hash of git's empty tree object, used as
// the diff baseline for a repository that has no commits yet.
const EmptyTreeID = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Repo provides access to one git repository through the git binary.
type Repo struct {
	dir    string
	logger zerolog.Logger
}

// Open locates the repository containing dir.
func Open(dir string, logger zerolog.Logger) (*Repo, error) {
	if dir == "" {
		dir = "."
	}
	r := &Repo{
		dir:    dir,
		logger: logger.With().Str("module", "Repo").Logger(),
	}
	if _, err := r.run("rev-parse", "--git-dir"); err != nil {
		return nil, common.ErrRepositoryAbsent
	}
	return r, nil
}

// GitDir returns the absolute path of the repository's git directory.
func (r *Repo) GitDir() (string, error) {
	out, err := r.run("rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// HooksDir returns the directory git consults for hook scripts, honoring
// a configured core.hooksPath.
func (r *Repo) HooksDir() (string, error) {
	out, err := r.run("config", "--get", "core.hooksPath")
	if err == nil {
		hooksPath := strings.TrimSpace(string(out))
		if hooksPath != "" {
			if filepath.IsAbs(hooksPath) {
				return hooksPath, nil
			}
			return filepath.Join(r.dir, hooksPath), nil
		}
	}

	gitDir, err := r.GitDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(gitDir, "hooks"), nil
}

// HasHead reports whether the repository has at least one commit.
func (r *Repo) HasHead() bool {
	_, err := r.run("rev-parse", "--verify", "HEAD")
	return err == nil
}

// StagedFiles lists the files added, copied, modified, or updated in the
// index relative to against. Deleted files are excluded since their content
// is not being committed.
func (r *Repo) StagedFiles(against string) ([]string, error) {
	out, err := r.run("diff-index", "--diff-filter=ACMU", "--name-only", "--cached", "-z", against, "--")
	if err != nil {
		return nil, common.WrapError(err, "failed to list staged files")
	}
	return splitNul(out), nil
}

// StagedContent returns the staged blob of path, exactly what a commit
// would record, independent of the working directory state.
func (r *Repo) StagedContent(path string) ([]byte, error) {
	out, err := r.run("show", ":"+path)
	if err != nil {
		return nil, common.WrapError(err, "failed to read staged content of "+path)
	}
	return out, nil
}

// TrackedFiles lists every file known to the repository's current tree.
func (r *Repo) TrackedFiles() ([]string, error) {
	out, err := r.run("ls-files", "-z")
	if err != nil {
		return nil, common.WrapError(err, "failed to list tracked files")
	}
	files := splitNul(out)
	for i, f := range files {
		files[i] = filepath.Join(r.dir, f)
	}
	return files, nil
}

// CurrentBranch returns the short name of the branch HEAD points at.
func (r *Repo) CurrentBranch() (string, error) {
	out, err := r.run("symbolic-ref", "--short", "HEAD")
	if err != nil {
		return "", common.WrapError(err, "failed to resolve current branch")
	}
	return strings.TrimSpace(string(out)), nil
}

// LogPatch returns the log plus patch text of every commit reachable from
// source but not from dest.
func (r *Repo) LogPatch(dest, source string) ([]byte, error) {
	out, err := r.run("log", dest+".."+source, "-p")
	if err != nil {
		return nil, common.WrapErrorf(err, "failed to compute patch for %s..%s", dest, source)
	}
	return out, nil
}

// MergeSourceFromEnv extracts the merge source commit id from the
// GITHEAD_<sha>=<refname> variable git exports while a merge is prepared.
func MergeSourceFromEnv(environ []string) (string, bool) {
	for _, kv := range environ {
		if strings.HasPrefix(kv, "GITHEAD_") {
			name, _, ok := strings.Cut(kv, "=")
			if !ok {
				continue
			}
			return strings.TrimPrefix(name, "GITHEAD_"), true
		}
	}
	return "", false
}

// run executes a git subcommand rooted at the repository directory.
func (r *Repo) run(args ...string) ([]byte, error) {
	cmd := exec.Command("git", append([]string{"-C", r.dir}, args...)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, common.WrapErrorf(err, "git %s: %s", strings.Join(args, " "), strings.TrimSpace(stderr.String()))
	}
	return out, nil
}

// splitNul splits NUL-terminated git output into its entries.
func splitNul(out []byte) []string {
	var entries []string
	for _, entry := range bytes.Split(out, []byte{0}) {
		if len(entry) > 0 {
			entries = append(entries, string(entry))
		}
	}
	return entries
}
