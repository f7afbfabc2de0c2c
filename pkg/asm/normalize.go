package asm

import "strings"

const (
	commentPrefix = '#'
	labelPrefix   = '$'
	aliasPrefix   = '`'
)

// Commas are dropped rather than treated as separators: "R0, R1" splits,
// "R0,R1" is a single token.
// Tabs split tokens like spaces; strings.Fields treats them as whitespace.
var separatorStripper = strings.NewReplacer(",", "")

// Normalize splits one source line into tokens. No tokens means the line is
// blank or holds only a comment.
func Normalize(line string) []string {
	line = stripComment(line)
	line = separatorStripper.Replace(line)
	return strings.Fields(line)
}

func stripComment(line string) string {
	if i := strings.IndexByte(line, commentPrefix); i >= 0 {
		return line[:i]
	}
	return line
}

func isLabelDef(token string) bool {
	return token != "" && token[0] == labelPrefix
}

func isAliasDecl(token string) bool {
	return token != "" && token[0] == aliasPrefix
}

func normalizeLabel(label string) string {
	return strings.ToUpper(strings.TrimPrefix(label, string(labelPrefix)))
}
