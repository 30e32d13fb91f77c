package renderer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDiagnosticLineNvidia(t *testing.T) {
	line, symbol, ok := parseDiagnosticLine(`0(12) : error C1503: undefined variable "u_missing"`)
	require.True(t, ok)
	assert.Equal(t, 12, line)
	assert.Equal(t, "u_missing", symbol)
}

func TestParseDiagnosticLineMesa(t *testing.T) {
	line, symbol, ok := parseDiagnosticLine(`ERROR: 0:7: 'foo' : undeclared identifier`)
	require.True(t, ok)
	assert.Equal(t, 7, line)
	assert.Equal(t, "foo", symbol)
}

func TestParseDiagnosticLineGarbage(t *testing.T) {
	_, _, ok := parseDiagnosticLine("compilation terminated")
	assert.False(t, ok)
}

func TestQuotedSymbol(t *testing.T) {
	assert.Equal(t, "tex", quotedSymbol(`no such sampler "tex" here`))
	assert.Equal(t, "tex", quotedSymbol(`'tex' : not found`))
	assert.Equal(t, "", quotedSymbol("nothing quoted"))
}

func TestFormatShaderLogBackMapsPrefaceLines(t *testing.T) {
	src := strings.Join([]string{
		"in vec2 frag_uv;",
		"void main() {",
		"    fragColor = bad_name;",
		"}",
	}, "\n")

	// One preface line was prepended before compilation, so reported line 4
	// is user line 3.
	out := formatShaderLog(src, 1, `0(4) : error C1503: undefined variable "bad_name"`)

	assert.Contains(t, out, "fragColor")
	assert.Contains(t, out, "<- Error occurs here")
	assert.Contains(t, out, " 3 | ")
	// ±1 lines of context around the failing line.
	assert.Contains(t, out, "void main() {")
	assert.Contains(t, out, "}")
	// The named symbol gets highlighted.
	assert.Contains(t, out, "\x1b[1;33mbad_name\x1b[0m")
}

func TestFormatShaderLogUnmappableLineStillPrinted(t *testing.T) {
	out := formatShaderLog("void main() {}", 0, "compilation terminated")
	assert.Contains(t, out, "compilation terminated")
	assert.NotContains(t, out, "<- Error occurs here")
}

func TestFormatShaderLogOutOfRangeLine(t *testing.T) {
	out := formatShaderLog("void main() {}", 0, `0(99) : error C0000: syntax error`)
	assert.Contains(t, out, "syntax error")
	assert.NotContains(t, out, "<- Error occurs here")
}

func TestPrefaceSource(t *testing.T) {
	full, lines := prefaceSource("void main() {}")
	assert.True(t, strings.HasPrefix(full, "#version 450 core\n"))
	assert.Equal(t, 1, lines)

	userVersioned := "#version 330 core\nvoid main() {}"
	full, lines = prefaceSource(userVersioned)
	assert.Equal(t, userVersioned, full)
	assert.Equal(t, 0, lines)

	// Leading whitespace must not defeat the #version detection.
	_, lines = prefaceSource("\n  #version 450 core\nvoid main() {}")
	assert.Equal(t, 0, lines)
}
