package provider

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/aleister1102/gitsentry/internal/common"
)

// CommandProvider runs an external command and treats each non-empty line
// of its standard output as one prohibited pattern.
type CommandProvider struct {
	name string
	args []string
}

// NewCommandProvider parses a registered provider command line. The line is
// split on whitespace; no shell interpretation happens, so arguments with
// embedded spaces are unsupported.
func NewCommandProvider(commandLine string) (*CommandProvider, error) {
	fields := strings.Fields(commandLine)
	if len(fields) == 0 {
		return nil, common.NewError("empty provider command")
	}
	return &CommandProvider{
		name: fields[0],
		args: fields[1:],
	}, nil
}

// String returns the provider command for logging.
func (p *CommandProvider) String() string {
	return strings.Join(append([]string{p.name}, p.args...), " ")
}

// Patterns executes the provider command and collects its output lines.
func (p *CommandProvider) Patterns(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, p.name, p.args...)
	out, err := cmd.Output()
	if err != nil {
		return nil, common.WrapError(err, "provider command failed: "+p.String())
	}

	var patterns []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			patterns = append(patterns, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, common.WrapError(err, "failed to read provider output: "+p.String())
	}
	return patterns, nil
}
