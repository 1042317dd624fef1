package hook

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/aleister1102/gitsentry/internal/gitrepo"
	"github.com/aleister1102/gitsentry/internal/journal"
	"github.com/aleister1102/gitsentry/internal/scanner"
	"github.com/rs/zerolog"
)

// Event is one git lifecycle event submitted for vetting. Each variant
// carries the payload its trigger provides.
type Event interface {
	Name() string
}

// CommitMsgEvent gates the commit-msg hook: the proposed commit message
// has been materialized to MessageFile.
type CommitMsgEvent struct {
	MessageFile string
}

func (CommitMsgEvent) Name() string { return "commit-msg" }

// PreCommitEvent gates the pre-commit hook: the staged snapshot is scanned
// against the current head, or against the empty tree for a first commit.
type PreCommitEvent struct{}

func (PreCommitEvent) Name() string { return "pre-commit" }

// PrepareCommitMsgEvent gates the prepare-commit-msg hook. It only acts on
// merge commits, where the incoming commits were never individually vetted
// on this repository.
type PrepareCommitMsgEvent struct {
	MessageFile string
	Source      string // second hook argument: message, template, merge, squash, commit
	Commit      string // third hook argument when present
}

func (PrepareCommitMsgEvent) Name() string { return "prepare-commit-msg" }

// mergeSource is the prepare-commit-msg source value for merge commits.
const mergeSource = "merge"

// Dispatcher maps lifecycle events to the content slice each one must
// submit for scanning, and converts violations into hard failures of the
// invoking git operation.
type Dispatcher struct {
	repo     *gitrepo.Repo
	compiler *scanner.Compiler
	journal  *journal.Journal // optional
	environ  []string
	logger   zerolog.Logger
}

// NewDispatcher creates a dispatcher for one hook invocation. jnl may be
// nil when journaling is disabled.
func NewDispatcher(repo *gitrepo.Repo, compiler *scanner.Compiler, jnl *journal.Journal, logger zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		repo:     repo,
		compiler: compiler,
		journal:  jnl,
		environ:  os.Environ(),
		logger:   logger.With().Str("module", "HookDispatcher").Logger(),
	}
}

// WithEnviron overrides the environment consulted for merge detection.
func (d *Dispatcher) WithEnviron(environ []string) *Dispatcher {
	d.environ = environ
	return d
}

// Handle scans the content slice of the event and returns a ViolationError
// when prohibited content survives allowed-pattern filtering. A non-nil
// error makes the invoking lifecycle event terminate non-zero, which git
// interprets as "abort this operation".
func (d *Dispatcher) Handle(ctx context.Context, ev Event) error {
	rules, err := d.compiler.Compile(ctx)
	if err != nil {
		return err
	}
	engine := scanner.NewEngine(rules, d.logger)

	var (
		report scanner.MatchReport
		target string
	)
	switch e := ev.(type) {
	case CommitMsgEvent:
		target = e.MessageFile
		report, err = engine.ScanFile(e.MessageFile)
	case PreCommitEvent:
		report, target, err = d.scanStaged(engine)
	case PrepareCommitMsgEvent:
		report, target, err = d.scanMerge(engine, e)
	default:
		return common.NewError("unknown lifecycle event %q", ev.Name())
	}
	if err != nil {
		return err
	}

	violations := rules.Filter(report)
	// An empty target means the event submitted nothing for scanning
	// (non-merge prepare-commit-msg); those decisions are not journaled.
	if target != "" {
		d.record(ctx, ev, target, len(violations))
	}

	if len(violations) > 0 {
		d.logger.Debug().
			Str("event", ev.Name()).
			Int("violations", len(violations)).
			Msg("Prohibited content detected")
		return common.NewViolationError(violations.Lines())
	}
	return nil
}

// scanStaged scans the staged content of every file added, copied,
// modified, or updated relative to the head commit, or relative to the
// empty tree when no commit exists yet.
func (d *Dispatcher) scanStaged(engine *scanner.Engine) (scanner.MatchReport, string, error) {
	against := gitrepo.EmptyTreeID
	if d.repo.HasHead() {
		against = "HEAD"
	}

	files, err := d.repo.StagedFiles(against)
	if err != nil {
		return nil, "", err
	}

	var report scanner.MatchReport
	for _, file := range files {
		content, err := d.repo.StagedContent(file)
		if err != nil {
			return nil, "", err
		}
		fileReport, err := engine.ScanContent(file, content)
		if err != nil {
			return nil, "", err
		}
		report = append(report, fileReport...)
	}

	return report, fmt.Sprintf("%d staged file(s)", len(files)), nil
}

// scanMerge scans the log plus patch of every commit reachable from the
// merge source but not yet on the destination branch. Ordinary commits
// are a no-op.
func (d *Dispatcher) scanMerge(engine *scanner.Engine, e PrepareCommitMsgEvent) (scanner.MatchReport, string, error) {
	if e.Source != mergeSource {
		return nil, "", nil
	}

	source := e.Commit
	if source == "" {
		var ok bool
		source, ok = gitrepo.MergeSourceFromEnv(d.environ)
		if !ok {
			// Nothing to diff against; treat like an ordinary commit.
			d.logger.Warn().Msg("Merge commit without GITHEAD environment; skipping incoming-commit scan")
			return nil, "", nil
		}
	}

	dest, err := d.repo.CurrentBranch()
	if err != nil {
		return nil, "", err
	}

	patch, err := d.repo.LogPatch(dest, source)
	if err != nil {
		return nil, "", err
	}

	report, err := engine.ScanReader(scanner.StreamLocation, bytes.NewReader(patch))
	if err != nil {
		return nil, "", err
	}
	return report, dest + ".." + source, nil
}

// record journals the decision; failures only warn.
func (d *Dispatcher) record(ctx context.Context, ev Event, target string, findings int) {
	if d.journal == nil {
		return
	}
	err := d.journal.Record(ctx, journal.Entry{
		Event:    ev.Name(),
		Target:   target,
		Findings: findings,
	})
	if err != nil {
		d.logger.Warn().Err(err).Msg("Failed to journal scan decision")
	}
}
