package scanner

import (
	"bufio"
	"bytes"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aleister1102/gitsentry/internal/common"
	"github.com/rs/zerolog"
)

// maxLineSize bounds a single scanned line; content with longer lines is
// almost certainly generated or binary.
const maxLineSize = 10 * 1024 * 1024

// binarySniffLen is how many leading bytes are inspected for NUL to decide
// whether file content is binary and should be skipped.
const binarySniffLen = 8000

// Engine applies a compiled Ruleset to files, directories, or byte streams
// and produces a raw MatchReport. Allowed-pattern filtering happens after
// scanning, via Ruleset.Filter.
type Engine struct {
	rules  *Ruleset
	logger zerolog.Logger
}

// NewEngine creates an engine for one scan pass.
func NewEngine(rules *Ruleset, logger zerolog.Logger) *Engine {
	return &Engine{
		rules:  rules,
		logger: logger.With().Str("module", "ScanEngine").Logger(),
	}
}

// Rules returns the ruleset the engine scans with.
func (e *Engine) Rules() *Ruleset {
	return e.rules
}

// ScanReader scans streamed content line by line.
func (e *Engine) ScanReader(location string, r io.Reader) (MatchReport, error) {
	if e.rules.Empty() {
		return nil, nil
	}

	var report MatchReport
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	lineNumber := 1
	for scanner.Scan() {
		line := scanner.Bytes()
		if e.rules.prohibited.Match(line) {
			report = append(report, Match{
				Location:   location,
				LineNumber: lineNumber,
				Line:       string(line),
			})
		}
		lineNumber++
	}
	if err := scanner.Err(); err != nil {
		return nil, common.WrapError(err, "failed to read content from "+location)
	}

	return report, nil
}

// ScanContent scans in-memory content, skipping it when it looks binary.
func (e *Engine) ScanContent(location string, content []byte) (MatchReport, error) {
	if e.rules.Empty() || isBinary(content) {
		return nil, nil
	}
	return e.ScanReader(location, bytes.NewReader(content))
}

// ScanFile scans one file from disk.
func (e *Engine) ScanFile(path string) (MatchReport, error) {
	if e.rules.Empty() {
		return nil, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, common.WrapError(err, "failed to read "+path)
	}
	return e.ScanContent(path, content)
}

// ScanPaths scans explicit files and, when recursive is set, walks
// directories. A directory given without recursive is an error.
func (e *Engine) ScanPaths(paths []string, recursive bool) (MatchReport, error) {
	if e.rules.Empty() {
		return nil, nil
	}

	var report MatchReport
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				// Tracked files can be absent from the worktree; skip them
				// the way git grep would.
				e.logger.Debug().Str("path", path).Msg("Skipping missing file")
				continue
			}
			return nil, common.WrapError(err, "failed to stat "+path)
		}

		if info.IsDir() {
			if !recursive {
				return nil, common.NewError("%s is a directory; rerun with --recursive", path)
			}
			dirReport, err := e.scanDir(path)
			if err != nil {
				return nil, err
			}
			report = append(report, dirReport...)
			continue
		}

		fileReport, err := e.ScanFile(path)
		if err != nil {
			return nil, err
		}
		report = append(report, fileReport...)
	}

	return report, nil
}

// scanDir walks a directory tree, skipping git metadata.
func (e *Engine) scanDir(root string) (MatchReport, error) {
	var report MatchReport
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		fileReport, scanErr := e.ScanFile(path)
		if scanErr != nil {
			return scanErr
		}
		report = append(report, fileReport...)
		return nil
	})
	if err != nil {
		return nil, common.WrapError(err, "failed to walk "+root)
	}
	return report, nil
}

// isBinary reports whether content looks binary, using the same NUL sniff
// git applies for its -I behavior.
func isBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	return bytes.IndexByte(sniff, 0) >= 0
}
