package fnmatch

// Template enumerates the seven pattern shapes spec.md §3/§4.C names.
// Classifying a segment once at compile time lets the driver dispatch to a
// cheap equality/suffix/prefix check instead of the general backtracker for
// the overwhelmingly common shapes (`*.ext`, `prefix*`, `prefix[...]suffix`).
//
// Grounded on idelchi-go-gitignore/gitignore.go's matchBasename, which
// already special-cases the single shape "*literal" via its flagEndsWith
// bit; Template generalizes that one case to all seven shapes spec.md names.
type Template uint8

const (
	// TemplateLiteral: no metacharacter at all; match by byte equality.
	TemplateLiteral Template = iota
	// TemplateStarOnly: exactly "*"; matches any component, including an
	// empty one (Period still rejects a leading '.').
	TemplateStarOnly
	// TemplateStarDotExt: "*X" where X is a literal tail; match by suffix.
	TemplateStarDotExt
	// TemplatePrefixStar: "PX*" where P is a literal head; match by prefix.
	TemplatePrefixStar
	// TemplatePrefixStarExt: "PX*SY"; literal head and literal tail.
	TemplatePrefixStarExt
	// TemplateBracketAffixes: literal head, one bracket class, literal tail.
	TemplateBracketAffixes
	// TemplateGeneral: anything else; dispatch to the general matcher.
	TemplateGeneral
)

// metaBytesEscaped/metaBytesNoEscape are the candidate sets AnalyzeSegment's
// classification scan passes to findAnyOf: everything that can open one of
// the six specialised shapes, or force TemplateGeneral ('?'). '\\' drops out
// of the set under NoEscape, matching Match's own NoEscape handling.
var (
	metaBytesEscaped  = []byte{'\\', '*', '?', '['}
	metaBytesNoEscape = []byte{'*', '?', '['}
)

// Analysis is the compiled shape of a single pattern segment: its Template
// tag plus whatever affixes/bracket that shape carries. Fields not used by
// the active Template are left zero.
type Analysis struct {
	Template Template
	Prefix   string
	Suffix   string
	Bracket  bracketClass
	hasClass bool

	// RequiredLastChar is the final byte the pattern forces on any matching
	// name (spec.md §3's "required_last_char"), valid only when
	// hasRequiredLastChar is true. Set whenever a template pins the name's
	// last byte (a literal, or a literal suffix after the wildcard); left
	// unset for templates whose last byte is unconstrained (TemplateStarOnly,
	// TemplatePrefixStar, TemplateGeneral). Checked by Match as a cheap
	// early reject before the template's full comparison runs.
	RequiredLastChar    byte
	hasRequiredLastChar bool
}

// AnalyzeSegment classifies a single pattern segment (never containing '/')
// into its dispatch Template, per spec.md §4.C. extglob is treated as
// TemplateGeneral unconditionally: an extglob group always needs the
// backtracking matcher.
func AnalyzeSegment(segment string, flags Flags) Analysis {
	p := []byte(segment)

	if flags&ExtGlob != 0 && containsExtGlobIntroducer(p) {
		return Analysis{Template: TemplateGeneral}
	}

	starCount, bracketCount := 0, 0
	starIdx, bracketStart, bracketEnd := -1, -1, -1

	meta := metaBytesEscaped
	if flags&NoEscape != 0 {
		meta = metaBytesNoEscape
	}

	i := 0
	for i < len(p) {
		// findAnyOf (fnmatch/scan.go's SIMD-backed scanner) jumps straight to
		// the next candidate metacharacter instead of inspecting each literal
		// byte in between one at a time.
		rel := findAnyOf(p[i:], meta)
		if rel < 0 {
			break
		}

		i += rel

		switch {
		case p[i] == '\\' && flags&NoEscape == 0:
			i += 2

			continue
		case p[i] == '*':
			starCount++
			starIdx = i
			i++

			continue
		case p[i] == '?':
			// A lone '?' forces the general matcher: it is a metacharacter
			// but none of the six specialised shapes account for it.
			return Analysis{Template: TemplateGeneral}
		case p[i] == '[':
			_, end, ok := parseBracket(p, i+1, flags&NoEscape != 0)
			if !ok {
				i++

				continue
			}

			bracketCount++
			bracketStart = i
			bracketEnd = end
			i = end

			continue
		}
	}

	switch {
	case starCount == 0 && bracketCount == 0:
		a := Analysis{Template: TemplateLiteral, Prefix: unescape(string(p), flags)}
		a.setRequiredLastChar(a.Prefix)

		return a

	case starCount == 1 && bracketCount == 0 && starIdx == 0 && len(p) == 1:
		return Analysis{Template: TemplateStarOnly}

	case starCount == 1 && bracketCount == 0 && starIdx == 0:
		a := Analysis{
			Template: TemplateStarDotExt,
			Suffix:   unescape(string(p[starIdx+1:]), flags),
		}
		a.setRequiredLastChar(a.Suffix)

		return a

	case starCount == 1 && bracketCount == 0 && starIdx == len(p)-1:
		// The pattern ends in '*': the name's last byte is unconstrained.
		return Analysis{
			Template: TemplatePrefixStar,
			Prefix:   unescape(string(p[:starIdx]), flags),
		}

	case starCount == 1 && bracketCount == 0:
		a := Analysis{
			Template: TemplatePrefixStarExt,
			Prefix:   unescape(string(p[:starIdx]), flags),
			Suffix:   unescape(string(p[starIdx+1:]), flags),
		}
		a.setRequiredLastChar(a.Suffix)

		return a

	case starCount == 0 && bracketCount == 1:
		cls, _, _ := parseBracket(p, bracketStart+1, flags&NoEscape != 0)

		a := Analysis{
			Template: TemplateBracketAffixes,
			Prefix:   unescape(string(p[:bracketStart]), flags),
			Suffix:   unescape(string(p[bracketEnd:]), flags),
			Bracket:  cls,
			hasClass: true,
		}
		// Only a non-empty literal tail after the bracket pins the last
		// byte; a trailing bracket class matches a set, not one byte.
		if a.Suffix != "" {
			a.setRequiredLastChar(a.Suffix)
		}

		return a

	default:
		return Analysis{Template: TemplateGeneral}
	}
}

// setRequiredLastChar records s's final byte as the name's forced last byte,
// per spec.md §3's "required_last_char"; a no-op when s is empty (nothing
// pinned).
func (a *Analysis) setRequiredLastChar(s string) {
	if s == "" {
		return
	}

	a.RequiredLastChar = s[len(s)-1]
	a.hasRequiredLastChar = true
}

// Match evaluates name against the compiled Analysis. segment and flags must
// be the same arguments AnalyzeSegment was called with; Match re-derives the
// general-matcher fallback from them.
func (a Analysis) Match(segment, name string, flags Flags) bool {
	if flags&Period != 0 && len(name) > 0 && name[0] == '.' && (len(segment) == 0 || segment[0] != '.') {
		return false
	}

	if a.hasRequiredLastChar {
		if len(name) == 0 || !byteEqualFold(name[len(name)-1], a.RequiredLastChar, flags&CaseFold != 0) {
			return false
		}
	}

	switch a.Template {
	case TemplateLiteral:
		return caseEqual(a.Prefix, name, flags&CaseFold != 0)

	case TemplateStarOnly:
		// Matches any component, including empty, agreeing with the general
		// backtracker's handling of a bare '*' (real directory entries are
		// never empty in practice, but Match must still agree here).
		return true

	case TemplateStarDotExt:
		return len(name) >= len(a.Suffix) && caseEqual(a.Suffix, name[len(name)-len(a.Suffix):], flags&CaseFold != 0)

	case TemplatePrefixStar:
		return len(name) >= len(a.Prefix) && caseEqual(a.Prefix, name[:len(a.Prefix)], flags&CaseFold != 0)

	case TemplatePrefixStarExt:
		if len(name) < len(a.Prefix)+len(a.Suffix) {
			return false
		}

		return caseEqual(a.Prefix, name[:len(a.Prefix)], flags&CaseFold != 0) &&
			caseEqual(a.Suffix, name[len(name)-len(a.Suffix):], flags&CaseFold != 0)

	case TemplateBracketAffixes:
		if len(name) < len(a.Prefix)+len(a.Suffix)+1 {
			return false
		}

		mid := name[len(a.Prefix) : len(name)-len(a.Suffix)]
		if len(mid) != 1 {
			return false
		}

		return caseEqual(a.Prefix, name[:len(a.Prefix)], flags&CaseFold != 0) &&
			caseEqual(a.Suffix, name[len(name)-len(a.Suffix):], flags&CaseFold != 0) &&
			a.Bracket.test(mid[0], flags&CaseFold != 0)

	default:
		return Match(segment, name, flags)
	}
}

func caseEqual(a, b string, fold bool) bool {
	if !fold {
		return a == b
	}

	if len(a) != len(b) {
		return false
	}

	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if ca >= 'A' && ca <= 'Z' {
			ca += 'a' - 'A'
		}

		if cb >= 'A' && cb <= 'Z' {
			cb += 'a' - 'A'
		}

		if ca != cb {
			return false
		}
	}

	return true
}

func byteEqualFold(a, b byte, fold bool) bool {
	if a == b {
		return true
	}

	if !fold {
		return false
	}

	if a >= 'A' && a <= 'Z' {
		a += 'a' - 'A'
	}

	if b >= 'A' && b <= 'Z' {
		b += 'a' - 'A'
	}

	return a == b
}

func containsExtGlobIntroducer(p []byte) bool {
	for i := 0; i+1 < len(p); i++ {
		if isExtOp(p[i]) && p[i+1] == '(' {
			return true
		}
	}

	return false
}

// unescape removes backslash escapes from a literal run, for templates whose
// affixes must compare against unescaped name bytes.
func unescape(s string, flags Flags) string {
	if flags&NoEscape != 0 || indexByte(s, '\\') < 0 {
		return s
	}

	out := make([]byte, 0, len(s))

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			i++
		}

		out = append(out, s[i])
	}

	return string(out)
}

func indexByte(s string, b byte) int {
	for i := 0; i < len(s); i++ {
		if s[i] == b {
			return i
		}
	}

	return -1
}
