package scanner

// Filter removes matches whose line also matches an allowed pattern. An
// allowed pattern therefore suppresses specific lines, not whole patterns.
// With no allowed patterns configured the report passes through unchanged,
// and the result is always a subsequence of the input.
func (rs *Ruleset) Filter(report MatchReport) MatchReport {
	if rs == nil || rs.allowed == nil || len(report) == 0 {
		return report
	}

	var filtered MatchReport
	for _, m := range report {
		if !rs.allowed.MatchString(m.Line) {
			filtered = append(filtered, m)
		}
	}
	return filtered
}
