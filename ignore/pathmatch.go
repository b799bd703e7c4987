package ignore

import (
	"strings"

	"github.com/patterndrift/zlob/fnmatch"
)

// pathMatchOptions controls pathMatch.
type pathMatchOptions struct {
	// Pathname treats '/' as a directory separator with special "**" handling.
	Pathname bool
	// CaseFold enables ASCII-only case-insensitive matching.
	CaseFold bool
}

// pathMatch reports whether text matches pattern under opt.
//
// Unlike a port of Git's wildmatch.c (the teacher's wildmatch package), this
// builds directly on package fnmatch's single-component matcher (spec.md
// §4.B/§4.C) rather than re-implementing bracket/POSIX-class/escape parsing
// a second time: gitignore's only behavior fnmatch doesn't already cover is
// "**" spanning a variable number of path components, so pathMatch handles
// exactly that by splitting on '/' and delegating each component to
// fnmatch.Match — the same split-and-delegate shape package zlob's own
// driver.go (descend/descendDoubleStar) and pathlist.go (matchSegments) use
// for filesystem and path-list "**" matching respectively. When Pathname is
// false (matching a bare basename, which by construction contains no '/'),
// "**" can't span anything and collapses to an ordinary fnmatch.Match call.
func pathMatch(pattern, text string, opt pathMatchOptions) bool {
	var ff fnmatch.Flags
	if opt.CaseFold {
		ff |= fnmatch.CaseFold
	}

	if !opt.Pathname {
		return fnmatch.Match(pattern, text, ff)
	}

	return matchPathComponents(splitComponents(pattern), splitComponents(text), ff)
}

// isGlobSpecial reports whether c can open a pattern metacharacter, for
// simpleLength's (rules.go) no-wildcard prefix scan during rule compilation.
func isGlobSpecial(c byte) bool {
	return c == '*' || c == '?' || c == '[' || c == '\\'
}

func splitComponents(s string) []string {
	if s == "" {
		return nil
	}

	return strings.Split(s, "/")
}

// matchPathComponents matches pat against text component-by-component,
// honoring "**" as a component that spans zero or more of text's remaining
// components (DESIGN.md's decided "dir/** includes dir itself" reading: when
// pat is exhausted after consuming a "**" with zero components left over,
// that's a match).
func matchPathComponents(pat, text []string, ff fnmatch.Flags) bool {
	if len(pat) == 0 {
		return len(text) == 0
	}

	if pat[0] == "**" {
		for skip := 0; skip <= len(text); skip++ {
			if matchPathComponents(pat[1:], text[skip:], ff) {
				return true
			}
		}

		return false
	}

	if len(text) == 0 {
		return false
	}

	if !fnmatch.Match(pat[0], text[0], ff) {
		return false
	}

	return matchPathComponents(pat[1:], text[1:], ff)
}
