package rules

import (
	"bufio"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/arthur-debert/pkgdb/pkg/errors"
	"github.com/arthur-debert/pkgdb/pkg/logging"
	"github.com/arthur-debert/pkgdb/pkg/paths"
)

// Rule is one compiled reject pattern.
type Rule struct {
	Pattern string
	Line    int
	re      *regexp.Regexp
}

// RuleSet is an ordered list of reject rules. The zero value and nil
// reject nothing.
type RuleSet struct {
	rules []Rule
}

// Load reads and compiles the rule file at path.
func Load(path string) (*RuleSet, error) {
	logger := logging.GetLogger("rules")

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("No reject rules file")
			return &RuleSet{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "%s", path).WithDetail("path", path)
	}
	defer func() { _ = f.Close() }()

	rs, err := Parse(f, path)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", path).Int("rules", rs.Len()).Msg("Loaded reject rules")
	return rs, nil
}

// Parse compiles rules from r. source only appears in error messages.
func Parse(r io.Reader, source string) (*RuleSet, error) {
	rs := &RuleSet{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		re, err := regexp.CompilePOSIX(line)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidRule, "%s:%d: invalid rule %q", source, lineNo, line).
				WithDetail("line", lineNo).
				WithDetail("pattern", line)
		}
		rs.rules = append(rs.rules, Rule{Pattern: line, Line: lineNo, re: re})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "%s", source)
	}
	return rs, nil
}

// Match reports whether any rule matches path.
func (rs *RuleSet) Match(path string) bool {
	if rs == nil {
		return false
	}
	p := paths.StripDotSlash(path)
	for _, r := range rs.rules {
		if r.re.MatchString(p) {
			return true
		}
	}
	return false
}

// Len returns the number of compiled rules.
func (rs *RuleSet) Len() int {
	if rs == nil {
		return 0
	}
	return len(rs.rules)
}

// Patterns returns the source patterns in file order.
func (rs *RuleSet) Patterns() []string {
	if rs == nil {
		return nil
	}
	out := make([]string, len(rs.rules))
	for i, r := range rs.rules {
		out[i] = r.Pattern
	}
	return out
}
