package zlob

import (
	"strings"
	"unsafe"

	"github.com/patterndrift/zlob/brace"
	"github.com/patterndrift/zlob/fnmatch"
	"github.com/patterndrift/zlob/internal/sortutil"
	"github.com/patterndrift/zlob/pattern"
)

// MatchPaths filters paths against pattern without touching the filesystem,
// per spec.md §4.J. The result's strings alias entries of paths directly
// (zero-copy): Result.ownsStrings stays false, so Free never needs to
// release anything beyond the slice headers themselves.
func MatchPaths(pat string, paths []string, flags Flags, result *Result) error {
	if result == nil {
		panic("zlob: MatchPaths called with a nil result")
	}

	if !flags.Has(Append) {
		result.matchCount = 0
		result.pathv = nil
		result.pathlen = nil
		result.warnings = nil
		result.ownsStrings = false
		result.magic = false
	}

	alternatives := []string{pat}
	if flags.Has(Brace) {
		alternatives = brace.Expand(pat)
	}

	var matches []string

	magic := false

	for _, alt := range alternatives {
		run, altMagic := matchPathList(alt, paths, flags)
		matches = append(matches, run...)
		magic = magic || altMagic
	}

	if !flags.Has(NoSort) && len(alternatives) > 1 {
		matches = sortutil.SortDedup(matches)
	}

	result.magic = result.magic || magic

	if len(matches) == 0 {
		if flags.Has(NoCheck) || (flags.Has(NoMagic) && !magic) {
			result.addMatch(pat)

			return nil
		}

		return ErrNoMatch
	}

	for _, m := range matches {
		result.addMatch(m)
	}

	return nil
}

// MatchPathsSlice is MatchPaths's byte-slice variant for FFI callers holding
// pathnames in foreign (e.g. cgo-owned) memory: pattern and paths are
// converted to strings via unsafe.String, aliasing the caller's backing
// arrays rather than copying them, per spec.md §4.J's zero-copy contract.
// The caller must keep the backing arrays alive and unmodified for as long
// as result is in use.
func MatchPathsSlice(pat []byte, paths [][]byte, flags Flags, result *Result) error {
	strPaths := make([]string, len(paths))

	for i, p := range paths {
		strPaths[i] = bytesToString(p)
	}

	return MatchPaths(bytesToString(pat), strPaths, flags, result)
}

func bytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(&b[0], len(b))
}

// matchPathList implements spec.md §4.J's dispatch: recursive patterns
// ("**" with Recursive set) match across the whole path string: fnmatch's
// component matcher runs against path segments the way driver.go's descend
// matches directory entries, except here the "directory" is the candidate
// list itself instead of a real readdir stream.
func matchPathList(pat string, paths []string, flags Flags) (matches []string, magic bool) {
	analysis := pattern.Analyze(pat, flags.Has(Brace), flags.Has(NoEscape))
	magic = analysis.Suffix != "" || analysis.HasRecursive

	ff := GlobOptions{}.fnmatchFlags(flags)

	var patSegs []string
	if analysis.Suffix != "" {
		patSegs = strings.Split(analysis.Suffix, "/")
	}

	var prefixSegs []string
	if analysis.LiteralPrefix != "" {
		prefixSegs = strings.Split(analysis.LiteralPrefix, "/")
	}

	for _, p := range paths {
		var segs []string
		if p != "" {
			segs = strings.Split(p, "/")
		}

		if len(segs) < len(prefixSegs) {
			continue
		}

		head, rest := segs[:len(prefixSegs)], segs[len(prefixSegs):]

		if !equalSegments(head, prefixSegs) {
			continue
		}

		if matchSegments(patSegs, rest, ff, flags) {
			matches = append(matches, p)
		}
	}

	if !flags.Has(NoSort) {
		matches = sortutil.SortDedup(matches)
	}

	return matches, magic
}

func equalSegments(a, b []string) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}

	return true
}

// matchSegments reports whether path components segs satisfy pattern
// components pat, honoring "**" as a variable-length span when Recursive is
// set (spec.md §4.J: "a/**/b matches any path beginning with a/ and ending
// with /b or containing /b/...").
func matchSegments(pat, segs []string, ff fnmatch.Flags, flags Flags) bool {
	if len(pat) == 0 {
		return len(segs) == 0
	}

	head := pat[0]

	if head == "**" && flags.Has(Recursive) {
		for skip := 0; skip <= len(segs); skip++ {
			if matchSegments(pat[1:], segs[skip:], ff, flags) {
				return true
			}
		}

		return false
	}

	if len(segs) == 0 {
		return false
	}

	analysis := fnmatch.AnalyzeSegment(head, ff)
	if !analysis.Match(head, segs[0], ff) {
		return false
	}

	return matchSegments(pat[1:], segs[1:], ff, flags)
}
