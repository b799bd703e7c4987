package fnmatch

import "testing"

func TestAnalyzeSegmentShapes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		segment string
		want    Template
	}{
		{"readme.txt", TemplateLiteral},
		{"*", TemplateStarOnly},
		{"*.txt", TemplateStarDotExt},
		{"report*", TemplatePrefixStar},
		{"report*.txt", TemplatePrefixStarExt},
		{"file[[:digit:]].txt", TemplateBracketAffixes},
		{"file?.txt", TemplateGeneral},
		{"a*b*c", TemplateGeneral},
		{"@(foo|bar).txt", TemplateGeneral},
	}

	for _, c := range cases {
		flags := ExtGlob
		got := AnalyzeSegment(c.segment, flags)
		if got.Template != c.want {
			t.Errorf("AnalyzeSegment(%q).Template = %v, want %v", c.segment, got.Template, c.want)
		}
	}
}

func TestAnalysisMatchAgreesWithMatch(t *testing.T) {
	t.Parallel()

	segments := []string{
		"readme.txt", "*", "*.txt", "report*", "report*.txt",
		"file[[:digit:]].txt", "file?.txt", "a*b*c",
	}
	names := []string{"readme.txt", "report.txt", "report123.txt", "file5.txt", "fileA.txt", "axxbyyc", ""}

	for _, seg := range segments {
		a := AnalyzeSegment(seg, 0)
		for _, name := range names {
			want := Match(seg, name, 0)
			got := a.Match(seg, name, 0)

			if got != want {
				t.Errorf("segment %q name %q: Analysis.Match=%v Match=%v", seg, name, got, want)
			}
		}
	}
}
