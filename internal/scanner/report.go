package scanner

import "fmt"

// StreamLocation labels matches found in anonymous byte streams such as
// piped diffs and commit messages.
const StreamLocation = "-"

// Match is one flagged line of scanned content.
type Match struct {
	Location   string // file path, or StreamLocation for streamed content
	LineNumber int
	Line       string
}

// String renders the match in the location:line:text form hooks print.
func (m Match) String() string {
	return fmt.Sprintf("%s:%d:%s", m.Location, m.LineNumber, m.Line)
}

// MatchReport is the ordered sequence of matches from one scan pass.
// An empty report means the content is clean.
type MatchReport []Match

// Lines renders every match for user-facing output.
func (r MatchReport) Lines() []string {
	lines := make([]string, 0, len(r))
	for _, m := range r {
		lines = append(lines, m.String())
	}
	return lines
}
