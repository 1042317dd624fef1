package gitcfg

import "strings"

// regex metacharacters neutralized by literal-mode insertion. Backslash and
// brackets are included so a literal value can never produce a pattern that
// is uncompilable or only partially literal; the slash keeps extracted
// credential values inert in extended-regex dialects that treat it specially.
const literalMetacharacters = `\[].|$(){}?+*^/`

// EscapeLiteral escapes every regex metacharacter in value so the stored
// pattern can only ever match the value itself.
func EscapeLiteral(value string) string {
	var b strings.Builder
	b.Grow(len(value))
	for _, r := range value {
		if strings.ContainsRune(literalMetacharacters, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
