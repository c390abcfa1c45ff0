package query

import (
	"strings"
	"testing"

	"github.com/oukaro/zhenbot/lang"
)

// ---------------------------------------------------------------------------
// Explicit direction prefixes
// ---------------------------------------------------------------------------

func TestParse_ExplicitDirection(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		wantSrc  lang.Code
		wantTgt  lang.Code
		wantText string
	}{
		{"angle with colon", "en>zh: hello world", lang.En, lang.Zh, "hello world"},
		{"angle no colon", "en>zh hello", lang.En, lang.Zh, "hello"},
		{"arrow with spaces", "zh -> en 开会推迟到几点?", lang.Zh, lang.En, "开会推迟到几点?"},
		{"uppercase", "EN > ZH: hello", lang.En, lang.Zh, "hello"},
		{"mixed case", "Zh->En: 你好", lang.Zh, lang.En, "你好"},
		{"no space after colon", "en>zh:hello", lang.En, lang.Zh, "hello"},
		{"same pair", "zh>zh: 你好", lang.Zh, lang.Zh, "你好"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q, ok := Parse(tc.in, lang.En, lang.Zh)
			if !ok {
				t.Fatalf("Parse(%q) returned no query", tc.in)
			}
			if q.SourceLang != tc.wantSrc || q.TargetLang != tc.wantTgt {
				t.Errorf("direction = %s→%s, want %s→%s", q.SourceLang, q.TargetLang, tc.wantSrc, tc.wantTgt)
			}
			if q.Text != tc.wantText {
				t.Errorf("text = %q, want %q", q.Text, tc.wantText)
			}
		})
	}
}

func TestParse_PrefixWithEmptyRemainder(t *testing.T) {
	if q, ok := Parse("en>zh:   ", lang.En, lang.Zh); ok {
		t.Fatalf("expected no query, got %+v", q)
	}
}

// ---------------------------------------------------------------------------
// Auto-detection
// ---------------------------------------------------------------------------

func TestParse_AutoDetectCJK(t *testing.T) {
	q, ok := Parse("开会推迟到几点?", lang.En, lang.Zh)
	if !ok {
		t.Fatal("expected a query")
	}
	if q.SourceLang != lang.Zh || q.TargetLang != lang.En {
		t.Errorf("direction = %s→%s, want zh→en", q.SourceLang, q.TargetLang)
	}
	if q.Text != "开会推迟到几点?" {
		t.Errorf("text = %q", q.Text)
	}
}

func TestParse_AutoDetectEnglish(t *testing.T) {
	// Either the statistical detector recognizes English or the Latin-script
	// fallback kicks in; both yield en→zh.
	q, ok := Parse("hello world", lang.Zh, lang.En)
	if !ok {
		t.Fatal("expected a query")
	}
	if q.SourceLang != lang.En || q.TargetLang != lang.Zh {
		t.Errorf("direction = %s→%s, want en→zh", q.SourceLang, q.TargetLang)
	}
}

func TestParse_AutoDetectFallsBackToDefaults(t *testing.T) {
	// Digits only: no CJK, no statistical match, no Latin letters.
	q, ok := Parse("12345 67890", lang.Zh, lang.En)
	if !ok {
		t.Fatal("expected a query")
	}
	if q.SourceLang != lang.Zh || q.TargetLang != lang.En {
		t.Errorf("direction = %s→%s, want caller defaults zh→en", q.SourceLang, q.TargetLang)
	}
}

func TestParse_MixedScriptPrefersCJK(t *testing.T) {
	q, ok := Parse("please translate 你好", lang.En, lang.Zh)
	if !ok {
		t.Fatal("expected a query")
	}
	if q.SourceLang != lang.Zh || q.TargetLang != lang.En {
		t.Errorf("direction = %s→%s, want zh→en (CJK wins)", q.SourceLang, q.TargetLang)
	}
}

// ---------------------------------------------------------------------------
// Empty and delimiter-only input
// ---------------------------------------------------------------------------

func TestParse_NoQuery(t *testing.T) {
	for _, in := range []string{"", "   ", "\t\n", " | | ", "|||"} {
		if q, ok := Parse(in, lang.En, lang.Zh); ok {
			t.Errorf("Parse(%q) = %+v, want no query", in, q)
		}
	}
}

// ---------------------------------------------------------------------------
// Segment normalization
// ---------------------------------------------------------------------------

func TestNormalizeSegments(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a|b|c", "a|b|c"},
		{" a | b ", "a|b"},
		{"a||b", "a|b"},
		{"| leading | trailing |", "leading|trailing"},
		{"single", "single"},
	}

	for _, tc := range tests {
		if got := normalizeSegments(tc.in); got != tc.want {
			t.Errorf("normalizeSegments(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeSegments_Idempotent(t *testing.T) {
	for _, normalized := range []string{"a|b|c", "hello", "开会|推迟"} {
		if got := normalizeSegments(normalized); got != normalized {
			t.Errorf("normalizeSegments(%q) = %q, not idempotent", normalized, got)
		}
	}
}

// ---------------------------------------------------------------------------
// Truncation
// ---------------------------------------------------------------------------

func TestParse_TruncatesToMaxRunes(t *testing.T) {
	// Multi-byte runes: truncation must count characters, not bytes.
	long := strings.Repeat("好", maxTextLength+500)
	q, ok := Parse(long, lang.En, lang.Zh)
	if !ok {
		t.Fatal("expected a query")
	}
	if got := len([]rune(q.Text)); got != maxTextLength {
		t.Errorf("text length = %d runes, want %d", got, maxTextLength)
	}
}

func TestParse_TruncationBeforeNormalization(t *testing.T) {
	// The delimiter lands beyond the cap, so the surviving text is a single
	// segment of exactly maxTextLength runes.
	long := strings.Repeat("a", maxTextLength) + " | tail"
	q, ok := Parse(long, lang.En, lang.Zh)
	if !ok {
		t.Fatal("expected a query")
	}
	if strings.Contains(q.Text, "tail") {
		t.Error("text beyond the cap survived truncation")
	}
	if got := len([]rune(q.Text)); got != maxTextLength {
		t.Errorf("text length = %d runes, want %d", got, maxTextLength)
	}
}
