package esincss

import (
	"regexp"
	"strings"
)

// DefaultNameRe is the name pattern used when VariableOptions.NameRe is nil.
var DefaultNameRe = regexp.MustCompile(`(?i)^[a-z0-9_-]+$`)

// leadingFlags matches an inline flag group such as "(?i)" at the start of a pattern.
var leadingFlags = regexp.MustCompile(`^\(\?[a-zA-Z]+\)`)

// assertValidNameRe rejects custom patterns that could accept partially
// valid names. A nil pattern is always fine.
func assertValidNameRe(re *regexp.Regexp) error {
	if re == nil {
		return nil
	}
	src := leadingFlags.ReplaceAllString(re.String(), "")
	if len(src) < 3 || !strings.HasPrefix(src, "^") || !strings.HasSuffix(src, "$") {
		return &ConfigError{Pattern: re.String()}
	}
	return nil
}

// assertValidName checks name against re, or DefaultNameRe when re is nil.
func assertValidName(name string, re *regexp.Regexp) error {
	if re == nil {
		re = DefaultNameRe
	}
	if name == "" || !re.MatchString(name) {
		return &NameError{Name: name, Pattern: re.String()}
	}
	return nil
}
