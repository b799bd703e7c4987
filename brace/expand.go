// Package brace implements POSIX/ksh-style brace expansion of a single
// glob pattern into the list of patterns it denotes, per spec.md §4.D.
//
// Grounded on the balanced-brace scanning idiom in
// bmatcuk/doublestar's glob.go (indexMatchedOpeningAlt / lastIndexSlashOrAlt /
// buildAlt): find the outermost brace pair, split its content on top-level
// commas, and recurse. Expansion is a pure string transformation; it never
// touches a filesystem.
package brace

// Expand returns the patterns denoted by pattern after expanding every
// `{a,b,c}` group it contains. A pattern with no brace group expands to
// itself. Unbalanced braces are left as literal text, per spec.md §4.D.
// Alternatives may be empty: "{,x}" expands to ["", "x"] joined with
// whatever surrounds the group.
func Expand(pattern string) []string {
	start, end, ok := findBrace(pattern, 0)
	if !ok {
		return []string{pattern}
	}

	prefix := pattern[:start]
	content := pattern[start+1 : end]
	suffix := pattern[end+1:]

	var results []string

	for _, alt := range splitTopLevel(content) {
		results = append(results, Expand(prefix+alt+suffix)...)
	}

	return results
}

// findBrace finds the first unescaped '{' at or after from that has a
// matching '}', skipping over any unmatched '{' along the way (those are
// literal, per spec.md §4.D, so the scan continues past them). Bracket
// expressions are skipped whole, so a '{' or '}' inside "[...]" is never
// mistaken for a brace delimiter.
func findBrace(pattern string, from int) (start, end int, ok bool) {
	i := from

	for i < len(pattern) {
		if pattern[i] == '\\' && i+1 < len(pattern) {
			i += 2

			continue
		}

		if pattern[i] == '[' {
			if end, ok := skipBracket(pattern, i); ok {
				i = end + 1

				continue
			}
		}

		if pattern[i] == '{' {
			if closeIdx, matched := matchBrace(pattern, i); matched {
				return i, closeIdx, true
			}

			i++

			continue
		}

		i++
	}

	return 0, 0, false
}

// matchBrace returns the index of the '}' matching the '{' at openIdx,
// honoring nested brace pairs, bracket expressions, and backslash escapes.
func matchBrace(pattern string, openIdx int) (end int, ok bool) {
	depth := 1
	i := openIdx + 1

	for i < len(pattern) {
		if pattern[i] == '\\' && i+1 < len(pattern) {
			i += 2

			continue
		}

		if pattern[i] == '[' {
			if end, ok := skipBracket(pattern, i); ok {
				i = end + 1

				continue
			}
		}

		switch pattern[i] {
		case '{':
			depth++
		case '}':
			depth--

			if depth == 0 {
				return i, true
			}
		}

		i++
	}

	return 0, false
}

// splitTopLevel splits content on commas that are not nested inside a
// further brace pair or a bracket expression, honoring backslash escapes.
func splitTopLevel(content string) []string {
	var parts []string

	depth := 0
	last := 0

	i := 0
	for i < len(content) {
		if content[i] == '\\' && i+1 < len(content) {
			i += 2

			continue
		}

		if content[i] == '[' {
			if end, ok := skipBracket(content, i); ok {
				i = end + 1

				continue
			}
		}

		switch content[i] {
		case '{':
			depth++
		case '}':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, content[last:i])
				last = i + 1
			}
		}

		i++
	}

	parts = append(parts, content[last:])

	return parts
}

// skipBracket reports the index of the ']' closing the bracket expression
// starting at s[open] (which must be '['), per the same grammar package
// fnmatch's parseBracket recognizes: an optional leading '!'/'^', an
// optional literal ']' as the first member, then any run of characters up
// to the next ']'. ok is false when no closing ']' exists, in which case
// the '[' is literal and callers should not skip anything.
func skipBracket(s string, open int) (end int, ok bool) {
	i := open + 1

	if i < len(s) && (s[i] == '!' || s[i] == '^') {
		i++
	}

	if i < len(s) && s[i] == ']' {
		i++
	}

	for i < len(s) {
		if s[i] == ']' {
			return i, true
		}

		i++
	}

	return 0, false
}
