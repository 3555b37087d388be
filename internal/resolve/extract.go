package resolve

import (
	"fmt"
	"strings"
)

// The method and class names are recovered from the search output by
// positional token matching over line shape, not by parsing declarations.
// Each extraction is a small table of named rules tried in order; a line no
// rule accepts is a format error, never a fabricated label.

type extractRule struct {
	name    string
	applies func(fields []string) bool
	pick    func(fields []string) string
}

// Method declarations look like "public void Bar(...)" or, with an extra
// modifier token such as "static" or "override", shift the signature token
// one field to the right.
var methodRules = []extractRule{
	{
		name:    "signature-in-third-token",
		applies: func(f []string) bool { return len(f) >= 3 && strings.Contains(f[2], "(") },
		pick:    func(f []string) string { return beforeParen(f[2]) },
	},
	{
		name:    "signature-in-fourth-token",
		applies: func(f []string) bool { return len(f) >= 4 },
		pick:    func(f []string) string { return beforeParen(f[3]) },
	},
}

// Class declarations look like "public class Foo : Bar // comment". The
// fourth token is usually the name; when the declaration carries no
// visibility modifier the fourth token turns out to be the inheritance colon
// or a trailing comment marker and the name sits one field earlier.
var classRules = []extractRule{
	{
		name: "fourth-token",
		applies: func(f []string) bool {
			return len(f) >= 4 && f[3] != ":" && f[3] != "//"
		},
		pick: func(f []string) string { return f[3] },
	},
	{
		name: "degenerate-fourth-token",
		applies: func(f []string) bool {
			return len(f) >= 4 && (f[3] == ":" || f[3] == "//")
		},
		pick: func(f []string) string { return f[2] },
	},
}

func beforeParen(token string) string {
	name, _, _ := strings.Cut(token, "(")
	return name
}

func applyRules(rules []extractRule, kind, line string) (string, error) {
	fields := strings.Split(line, " ")
	for _, rule := range rules {
		if rule.applies(fields) {
			return rule.pick(fields), nil
		}
	}
	return "", fmt.Errorf("%w: no %s extraction rule matches line %q", ErrFormat, kind, line)
}

// extractLabel recovers "Class::Method" from search output already known to
// contain a class declaration. The method comes from the last non-blank line
// (the trailing-context line after the RVA comment), the class from the last
// class-declaration line in the window.
func extractLabel(out string) (string, error) {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) == 0 {
		return "", fmt.Errorf("%w: empty search output", ErrFormat)
	}

	method, err := applyRules(methodRules, "method", lines[len(lines)-1])
	if err != nil {
		return "", err
	}

	var classLine string
	for _, line := range lines {
		if strings.Contains(line, "class") {
			classLine = line
		}
	}
	if classLine == "" {
		return "", fmt.Errorf("%w: no class declaration in search output", ErrFormat)
	}
	class, err := applyRules(classRules, "class", classLine)
	if err != nil {
		return "", err
	}

	return class + "::" + method, nil
}
