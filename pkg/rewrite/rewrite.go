package rewrite

import (
	"context"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// indentProbeLen is how many leading characters are inspected by the
// indentation heuristic. A line counts as indented when any of its first
// four characters is a space. This is deliberately crude (it cannot tell
// "    const x" from "cons t x") but it is the exact behavior downstream
// files were patched with, so it stays.
const indentProbeLen = 4

// 🔄 Rule is a single literal line replacement: the first occurrence of Old
// is replaced with New on every line that matches. Unless TopLevel is set,
// the rule only fires on indented lines, so top-level declarations are left
// alone.
type Rule struct {
	Old      string // Literal substring to match
	New      string // Literal replacement
	TopLevel bool   // Apply to unindented lines too
}

// 🔍 Matches reports whether the rule applies to the given line.
func (r Rule) Matches(line string) bool {
	if !strings.Contains(line, r.Old) {
		return false
	}
	if r.TopLevel {
		return true
	}
	return IsIndented(line)
}

// ✏️ Apply replaces the first occurrence of Old with New. The caller is
// expected to have checked Matches first; applying to a non-matching line
// is a no-op.
func (r Rule) Apply(line string) string {
	return strings.Replace(line, r.Old, r.New, 1)
}

// 🔍 IsIndented reports whether a line's leading characters contain a space.
func IsIndented(line string) bool {
	probe := line
	if len(probe) > indentProbeLen {
		probe = probe[:indentProbeLen]
	}
	return strings.Contains(probe, " ")
}

// 📊 Result contains the outcome of a rewrite pass
type Result struct {
	Lines        []string // Rewritten lines, terminators preserved
	LinesChanged int      // Number of lines that differ from the input
	WasModified  bool     // Whether any line changed
}

// Content joins the result back into a single byte slice.
func (r *Result) Content() []byte {
	return []byte(JoinLines(r.Lines))
}

// 🎯 LineRewriter applies a fixed rule set line by line
type LineRewriter struct {
	rules []Rule
}

// 🏭 NewLineRewriter creates a rewriter for the given rules
func NewLineRewriter(rules ...Rule) *LineRewriter {
	return &LineRewriter{rules: rules}
}

// 🔍 ValidateRules checks that all rules are well formed
func (w *LineRewriter) ValidateRules() error {
	for i, rule := range w.rules {
		if rule.Old == "" {
			return errors.Errorf("rule %d: old is required", i)
		}
		if rule.Old == rule.New {
			return errors.Errorf("rule %d: old and new are identical", i)
		}
	}
	return nil
}

// 🔄 RewriteLines runs a single pass over the lines, applying every rule in
// order to each line. Lines where no rule matches pass through untouched;
// the line count never changes.
func (w *LineRewriter) RewriteLines(ctx context.Context, lines []string) (*Result, error) {
	if err := w.ValidateRules(); err != nil {
		return nil, errors.Errorf("validating rules: %w", err)
	}

	result := &Result{
		Lines: make([]string, len(lines)),
	}

	for i, line := range lines {
		rewritten := line
		for _, rule := range w.rules {
			if rule.Matches(rewritten) {
				rewritten = rule.Apply(rewritten)
			}
		}
		result.Lines[i] = rewritten
		if rewritten != line {
			result.LinesChanged++
			result.WasModified = true
		}
	}

	return result, nil
}

// 🔄 RewriteContent splits content into lines, rewrites them, and reports
// the result. JoinLines(result.Lines) reproduces the input byte-for-byte
// when nothing matched.
func (w *LineRewriter) RewriteContent(ctx context.Context, content []byte) (*Result, error) {
	return w.RewriteLines(ctx, SplitLines(string(content)))
}

// 📄 SplitLines splits content into lines with their terminators attached,
// so that a line like "const x = 1;\n" carries its "\n" (and "\r\n" lines
// carry both bytes). Content not ending in a newline yields a final line
// without one.
func SplitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.SplitAfter(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// 📄 JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "")
}
