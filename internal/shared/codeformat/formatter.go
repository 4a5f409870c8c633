// Package codeformat provides light regex-based code normalization and
// language detection for snippets submitted for review.
package codeformat

import (
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	semicolonRun  = regexp.MustCompile(`;\s*`)
	openBraceRun  = regexp.MustCompile(`\{\s*`)
	closeBraceRun = regexp.MustCompile(`\}\s*`)
)

// FormatPython collapses whitespace and re-indents statement-per-line,
// tracking a crude indent level from trailing colons.
func FormatPython(code string) string {
	code = whitespaceRun.ReplaceAllString(code, " ")
	lines := strings.Split(code, ";")
	formatted := make([]string, 0, len(lines))
	indent := 0

	for _, line := range lines {
		line = strings.TrimSpace(line)
		switch {
		case strings.HasSuffix(line, ":"):
			formatted = append(formatted, strings.Repeat("    ", indent)+line)
			indent++
		case hasAnyPrefix(line, "return", "break", "continue"):
			if indent > 0 {
				indent--
			}
			formatted = append(formatted, strings.Repeat("    ", indent)+line)
		default:
			formatted = append(formatted, strings.Repeat("    ", indent)+line)
		}
	}

	return strings.Join(formatted, "\n")
}

// FormatJavaScript inserts line breaks after statement and block boundaries.
func FormatJavaScript(code string) string {
	code = semicolonRun.ReplaceAllString(code, ";\n")
	code = openBraceRun.ReplaceAllString(code, "{\n")
	code = closeBraceRun.ReplaceAllString(code, "}\n")
	return code
}

// DetectLanguage guesses the language from characteristic keywords.
// It returns "unknown" when nothing matches.
func DetectLanguage(code string) string {
	switch {
	case strings.Contains(code, "def ") || strings.Contains(code, "import "):
		return "python"
	case strings.Contains(code, "function ") || strings.Contains(code, "const "):
		return "javascript"
	default:
		return "unknown"
	}
}

// Format normalizes code for the given language, detecting the language
// when it is empty. Unsupported languages pass through unchanged.
func Format(code, language string) string {
	if language == "" {
		language = DetectLanguage(code)
	}
	switch strings.ToLower(language) {
	case "python":
		return FormatPython(code)
	case "javascript":
		return FormatJavaScript(code)
	default:
		return code
	}
}

func hasAnyPrefix(s string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
