// Package ignore implements .gitignore-compatible pattern matching and the
// directory-pruning policy spec.md §4.E builds on top of it.
//
// Adapted from idelchi-go-gitignore/gitignore.go: same pattern compilation
// (flagNegative/flagDirOnly/flagNoDir/flagEndsWith), the same
// "last match wins, negation rescues unless an ancestor is excluded"
// decision algorithm, and the same rooted-vs-basename-vs-path-containing
// dispatch in matchesPattern. Calls this package's own pathMatch
// (pathmatch.go), which splits on '/' and delegates each component to
// fnmatch.Match, rather than a general single-call fnmatch.Match, because
// gitignore rule text must be matched against a whole path with "**"
// spanning a variable number of components, which is out of scope for
// fnmatch's single-component contract.
package ignore

import (
	"path"
	"strings"
)

type patternFlag uint16

const (
	flagNegative patternFlag = 1 << iota
	flagDirOnly
	flagNoDir
	flagEndsWith
)

// rule is the compiled representation of a single .gitignore line.
type rule struct {
	original      string
	text          string
	patternlen    int
	nowildcardlen int
	flags         patternFlag
}

// Options controls a Rules set's matching behavior.
type Options struct {
	// CaseFold enables ASCII-only case-insensitive matching.
	CaseFold bool
}

// Rules holds a sequence of compiled .gitignore patterns. Construct with
// New or NewOptions. Matching semantics follow Git's .gitignore rules:
// patterns are evaluated in order and the last matching rule wins, with
// negation (`!pattern`) able to rescue a path an earlier rule excluded.
type Rules struct {
	rules []rule
	opts  Options
}

// New compiles .gitignore-style lines using default Options.
func New(lines ...string) *Rules {
	return NewOptions(Options{}, lines...)
}

// NewOptions compiles .gitignore-style lines with explicit options.
func NewOptions(opt Options, lines ...string) *Rules {
	rules := make([]rule, 0, len(lines))

	for _, line := range lines {
		if r := parseRule(line); r != nil {
			rules = append(rules, *r)
		}
	}

	return &Rules{rules: rules, opts: opt}
}

// Append compiles and appends new lines, preserving last-match-wins order.
func (r *Rules) Append(lines ...string) {
	for _, line := range lines {
		if rl := parseRule(line); rl != nil {
			r.rules = append(r.rules, *rl)
		}
	}
}

// Decision is the outcome of Match: whether pathname is ignored, and which
// original pattern text decided it (empty when nothing matched).
type Decision struct {
	Ignored bool
	Matched bool
	Pattern string
}

// Match evaluates pathname (relative, '/'-separated, already path.Clean'd by
// the caller's convention) against the compiled rule set.
func (r *Rules) Match(pathname string, isDir bool) Decision {
	if len(r.rules) == 0 || pathname == "" || strings.HasPrefix(pathname, "/") {
		return Decision{}
	}

	pathname = path.Clean(pathname)

	parentExcluded, parentPattern := r.parentExcludedWithPattern(pathname)

	for i := len(r.rules) - 1; i >= 0; i-- {
		rl := r.rules[i]

		if !r.matchesRule(rl, pathname, isDir) {
			continue
		}

		if rl.flags&flagNegative != 0 {
			if pathname == "." {
				continue
			}

			if pathname == ".." {
				if parentExcluded {
					return Decision{Ignored: true, Matched: true, Pattern: parentPattern}
				}

				return Decision{Ignored: false, Matched: true, Pattern: rl.original}
			}

			if parentExcluded {
				return Decision{Ignored: true, Matched: true, Pattern: parentPattern}
			}

			return Decision{Ignored: false, Matched: true, Pattern: rl.original}
		}

		return Decision{Ignored: true, Matched: true, Pattern: rl.original}
	}

	if parentExcluded {
		return Decision{Ignored: true, Matched: true, Pattern: parentPattern}
	}

	return Decision{}
}

// Ignored reports whether pathname should be ignored. The caller indicates
// whether pathname is itself a directory.
func (r *Rules) Ignored(pathname string, isDir bool) bool {
	return r.Match(pathname, isDir).Ignored
}

// ShouldSkipDirectory reports whether the walker may prune dirPath entirely
// without descending into it, per spec.md §4.E's conservative pruning rule:
// a directory is only skippable if some rule excludes it AND no later
// negation's text could plausibly match something inside it.
//
// Grounded on the teacher's parentExcludedWithPattern ancestor walk, run in
// the opposite direction: instead of asking "is some ancestor of this path
// excluded", it asks "is this directory excluded, and could any negation
// that comes after the deciding rule still reach inside it".
func (r *Rules) ShouldSkipDirectory(dirPath string) bool {
	decision := r.Match(dirPath, true)
	if !decision.Ignored {
		return false
	}

	decidingIndex := -1

	for i, rl := range r.rules {
		if rl.original == decision.Pattern {
			decidingIndex = i
		}
	}

	for i := decidingIndex + 1; i < len(r.rules); i++ {
		rl := r.rules[i]
		if rl.flags&flagNegative == 0 {
			continue
		}

		if negationCouldMatchInside(rl, dirPath) {
			return false
		}
	}

	return true
}

// negationCouldMatchInside conservatively reports whether rl (a negation)
// could match some path that has dirPath as a prefix. Any negation whose
// literal prefix is consistent with dirPath (or vice versa) inhibits
// pruning; a negation with a magic literal prefix is always assumed
// reachable, since working out whether "**" or "*" could reach inside
// dirPath requires exactly the generality the pruning check exists to avoid.
func negationCouldMatchInside(rl rule, dirPath string) bool {
	text := rl.text
	if len(text) > 0 && text[0] == '/' {
		text = text[1:]
	}

	lit := rl.nowildcardlen
	if rl.text != "" && rl.text[0] == '/' && lit > 0 {
		lit--
	}

	if lit > len(text) {
		lit = len(text)
	}

	prefix := text[:lit]

	if rl.flags&flagNoDir != 0 {
		// Basename-only negation: it can match any path component anywhere,
		// so it could always reach inside dirPath.
		return true
	}

	switch {
	case len(prefix) <= len(dirPath):
		return prefix == dirPath[:len(prefix)]
	default:
		return strings.HasPrefix(prefix, dirPath)
	}
}

// hasInhibitingNegation conservatively reports whether any negation rule in
// r could match something inside relPath, without regard to which rule
// decided relPath's own ignore status. Used by Provider's hierarchical
// pruning check, where a single ruleset's own deciding-rule index does not
// carry meaning across directory levels.
func (r *Rules) hasInhibitingNegation(relPath string) bool {
	for _, rl := range r.rules {
		if rl.flags&flagNegative == 0 {
			continue
		}

		if negationCouldMatchInside(rl, relPath) {
			return true
		}
	}

	return false
}

func (r *Rules) matchRooted(rl rule, pathname string, isDir bool) bool {
	if rl.flags&flagDirOnly != 0 && !isDir {
		return false
	}

	pat := rl.text[1:]
	text := pathname

	lit := rl.nowildcardlen
	if lit > 0 {
		lit--
	}

	if lit < 0 {
		lit = 0
	}

	if lit > len(pat) {
		lit = len(pat)
	}

	if lit > len(text) || pat[:lit] != text[:lit] {
		return false
	}

	pat = pat[lit:]
	text = text[lit:]

	if rl.nowildcardlen == rl.patternlen {
		return text == ""
	}

	return pathMatch(pat, text, pathMatchOptions{Pathname: true, CaseFold: r.opts.CaseFold})
}

func (r *Rules) matchesRule(rl rule, pathname string, isDir bool) bool {
	if rl.flags&flagDirOnly != 0 && !isDir {
		return false
	}

	if len(rl.text) > 0 && rl.text[0] == '/' {
		return r.matchRooted(rl, pathname, isDir)
	}

	if rl.flags&flagNoDir != 0 {
		base := path.Base(pathname)

		return r.matchBasename(base, rl.text, rl.nowildcardlen, rl.patternlen, rl.flags)
	}

	pat := rl.text
	text := pathname

	if rl.nowildcardlen > 0 && rl.nowildcardlen <= len(pat) && rl.nowildcardlen <= len(text) {
		if pat[:rl.nowildcardlen] != text[:rl.nowildcardlen] {
			return false
		}

		pat = pat[rl.nowildcardlen:]
		text = text[rl.nowildcardlen:]
	} else if rl.nowildcardlen > len(text) {
		return false
	}

	if rl.nowildcardlen == rl.patternlen {
		return pat == text
	}

	return pathMatch(pat, text, pathMatchOptions{Pathname: true, CaseFold: r.opts.CaseFold})
}

func (r *Rules) matchBasename(basename, text string, nowildcardlen, patternlen int, pflags patternFlag) bool {
	if patternlen == 0 {
		return basename == ""
	}

	if nowildcardlen == patternlen && !r.opts.CaseFold {
		return basename == text
	}

	if pflags&flagEndsWith != 0 && !r.opts.CaseFold && len(text) > 1 && text[0] == '*' {
		return strings.HasSuffix(basename, text[1:])
	}

	return pathMatch(text, basename, pathMatchOptions{Pathname: false, CaseFold: r.opts.CaseFold})
}

// parseRule compiles a single .gitignore pattern line, or returns nil for a
// comment or blank line.
func parseRule(line string) *rule {
	original := line

	if line == "" || (strings.HasPrefix(line, "#") && !strings.HasPrefix(line, "\\#")) {
		return nil
	}

	r := &rule{original: original}

	switch {
	case strings.HasPrefix(line, "\\#"), strings.HasPrefix(line, "\\!"):
		line = line[1:]
	case strings.HasPrefix(line, "!"):
		r.flags |= flagNegative

		line = line[1:]
	}

	line = trimTrailingSpaces(line)
	if line == "" {
		return nil
	}

	if strings.HasSuffix(line, "/") {
		line = line[:len(line)-1]

		r.flags |= flagDirOnly
	}

	if !strings.Contains(line, "/") {
		r.flags |= flagNoDir
	}

	r.nowildcardlen = simpleLength(line)
	if r.nowildcardlen > len(line) {
		r.nowildcardlen = len(line)
	}

	if strings.HasPrefix(line, "*") && noWildcard(line[1:]) {
		r.flags |= flagEndsWith
	}

	r.text = line
	r.patternlen = len(line)

	return r
}

func trimTrailingSpaces(s string) string {
	for len(s) > 0 && s[len(s)-1] == ' ' {
		backslashCount := 0

		const backslashCheckOffset = 2
		for i := len(s) - backslashCheckOffset; i >= 0 && s[i] == '\\'; i-- {
			backslashCount++
		}

		if backslashCount%2 == 1 {
			break
		}

		s = s[:len(s)-1]
	}

	return s
}

func simpleLength(s string) int {
	for i := range len(s) {
		if isGlobSpecial(s[i]) {
			return i
		}
	}

	return len(s)
}

func noWildcard(s string) bool {
	return simpleLength(s) == len(s)
}

func (r *Rules) parentExcludedWithPattern(pathname string) (bool, string) {
	if pathname == "." {
		return false, ""
	}

	parts := strings.Split(pathname, "/")

	for i := 1; i < len(parts); i++ {
		ancestor := strings.Join(parts[:i], "/")
		isExcluded := false
		decidingPattern := ""

		for j := len(r.rules) - 1; j >= 0; j-- {
			rl := r.rules[j]

			if !r.matchesRule(rl, ancestor, true) {
				continue
			}

			if rl.flags&flagNegative != 0 {
				isExcluded = false
				decidingPattern = ""
			} else {
				isExcluded = true
				decidingPattern = rl.original
			}

			break
		}

		if isExcluded {
			return true, decidingPattern
		}
	}

	return false, ""
}
