package renderer

import (
	"fmt"
	"strconv"
	"strings"
)

// Compile diagnostics come back numbered against the concatenated source
// (preface + user text), in one of two common shapes:
//
//	0(12) : error C1503: undefined variable "foo"   (NVIDIA)
//	ERROR: 0:12: 'foo' : undeclared identifier      (Mesa/AMD/Intel)
//
// parseDiagnosticLine extracts the reported 1-based line number and, when
// the message names a symbol in quotes, that symbol.
func parseDiagnosticLine(diag string) (line int, symbol string, ok bool) {
	s := strings.TrimSpace(diag)

	// NVIDIA: "0(12) : ..."
	if open := strings.Index(s, "("); open > 0 && strings.HasPrefix(s, "0(") {
		if close := strings.Index(s, ")"); close > open {
			if n, err := strconv.Atoi(s[open+1 : close]); err == nil {
				return n, quotedSymbol(s[close+1:]), true
			}
		}
	}

	// Colon form: "ERROR: 0:12: ..."
	parts := strings.SplitN(s, ":", 4)
	if len(parts) >= 3 {
		if n, err := strconv.Atoi(strings.TrimSpace(parts[2])); err == nil {
			rest := ""
			if len(parts) == 4 {
				rest = parts[3]
			}
			return n, quotedSymbol(rest), true
		}
	}

	return 0, "", false
}

// quotedSymbol pulls the first single- or double-quoted name out of a
// diagnostic message.
func quotedSymbol(msg string) string {
	for _, q := range []string{`"`, `'`} {
		if start := strings.Index(msg, q); start >= 0 {
			if end := strings.Index(msg[start+1:], q); end > 0 {
				return msg[start+1 : start+1+end]
			}
		}
	}
	return ""
}

// formatShaderLog renders a compiler info log against the user's original
// source: every diagnostic line is followed by the failing line with one
// line of context on each side, numbered in user coordinates (the preface
// lines prepended before compilation are subtracted out). A symbol named in
// the diagnostic is highlighted in the context.
func formatShaderLog(src string, prefaceLines int, infoLog string) string {
	srcLines := strings.Split(src, "\n")
	var b strings.Builder

	for _, diag := range strings.Split(infoLog, "\n") {
		if strings.TrimSpace(diag) == "" {
			continue
		}
		b.WriteString("\x1b[1;31m")
		b.WriteString(diag)
		b.WriteString("\x1b[0m\n")

		reported, symbol, ok := parseDiagnosticLine(diag)
		userLine := reported - prefaceLines // still 1-based
		if !ok || userLine < 1 || userLine > len(srcLines) {
			b.WriteByte('\n')
			continue
		}

		lineNumStr := strconv.Itoa(userLine)
		for i := userLine - 1; i <= userLine+1; i++ {
			if i < 1 || i > len(srcLines) {
				continue
			}
			b.WriteString("\x1b[1;36m")
			if i == userLine {
				fmt.Fprintf(&b, " %s | ", lineNumStr)
			} else {
				b.WriteString(strings.Repeat(" ", len(lineNumStr)+2))
				b.WriteString("| ")
			}
			b.WriteString("\x1b[0m")

			codeLine := srcLines[i-1]
			if symbol != "" {
				codeLine = strings.ReplaceAll(codeLine, symbol,
					"\x1b[1;33m"+symbol+"\x1b[0m")
			}
			b.WriteString(codeLine)
			if i == userLine {
				b.WriteString("\x1b[1;31m <- Error occurs here\x1b[0m")
			}
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
