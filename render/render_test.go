package render

import (
	"strings"
	"testing"

	"github.com/oukaro/zhenbot/lang"
	"github.com/oukaro/zhenbot/query"
	"github.com/oukaro/zhenbot/translator"
)

func sampleQuery() *query.Query {
	return &query.Query{Text: "hello|world", SourceLang: lang.En, TargetLang: lang.Zh}
}

func TestHeader(t *testing.T) {
	if got := Header(lang.En, lang.Zh); got != "🌐 EN → ZH" {
		t.Errorf("Header = %q", got)
	}
	if got := Header(lang.Zh, lang.En); got != "🌐 ZH → EN" {
		t.Errorf("Header = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Translation candidates
// ---------------------------------------------------------------------------

func TestTranslation_PrimaryOnly(t *testing.T) {
	res := &translator.Result{PrimaryText: "你好|世界"}
	candidates := Translation(sampleQuery(), res)

	if len(candidates) != 1 {
		t.Fatalf("got %d candidates, want 1", len(candidates))
	}

	primary := candidates[0]
	if !strings.HasPrefix(primary.Body, "🌐 EN → ZH\n") {
		t.Errorf("primary body missing header: %q", primary.Body)
	}
	if !strings.Contains(primary.Body, "你好\n世界") {
		t.Errorf("segments not rendered as lines: %q", primary.Body)
	}
	if primary.Description != "你好 世界" {
		t.Errorf("description = %q", primary.Description)
	}
}

func TestTranslation_WithRomanization(t *testing.T) {
	res := &translator.Result{PrimaryText: "你好", RomanizedText: "nǐ hǎo"}
	candidates := Translation(sampleQuery(), res)

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}
	if !strings.Contains(candidates[1].Body, "nǐ hǎo") {
		t.Errorf("romanized body = %q", candidates[1].Body)
	}
}

func TestTranslation_AlternatesCappedAtThree(t *testing.T) {
	res := &translator.Result{
		PrimaryText:    "hi",
		AlternateTexts: []string{"one", "two", "three", "four"},
	}
	candidates := Translation(sampleQuery(), res)

	if len(candidates) != 2 {
		t.Fatalf("got %d candidates, want 2", len(candidates))
	}

	alt := candidates[1]
	if got := strings.Count(alt.Body, "• "); got != 3 {
		t.Errorf("got %d bullets, want 3: %q", got, alt.Body)
	}
	if strings.Contains(alt.Body, "four") {
		t.Errorf("fourth alternate should be dropped: %q", alt.Body)
	}
	if alt.Description != "one" {
		t.Errorf("description = %q, want first alternate", alt.Description)
	}
}

// ---------------------------------------------------------------------------
// Descriptions
// ---------------------------------------------------------------------------

func TestDescribe_CollapsesAndTruncates(t *testing.T) {
	long := strings.Repeat("word ", 40) // well past the limit once joined
	got := describe(long)

	if strings.ContainsAny(got, "\n\t") {
		t.Errorf("description is not single-line: %q", got)
	}
	if runes := []rune(got); len(runes) != descriptionLimit {
		t.Errorf("description length = %d runes, want %d", len(runes), descriptionLimit)
	}
	if !strings.HasSuffix(got, "…") {
		t.Errorf("missing ellipsis marker: %q", got)
	}
}

func TestDescribe_ShortStringsUntouched(t *testing.T) {
	if got := describe("short text"); got != "short text" {
		t.Errorf("describe = %q", got)
	}
}

// ---------------------------------------------------------------------------
// Help and error candidates
// ---------------------------------------------------------------------------

func TestHelp(t *testing.T) {
	c := Help(lang.En, lang.Zh)
	if c.Title == "" || c.Description == "" {
		t.Error("help candidate missing title or description")
	}
	if !strings.Contains(c.Body, "en→zh") {
		t.Errorf("help body does not mention defaults: %q", c.Body)
	}
}

func TestError(t *testing.T) {
	c := Error("connection refused")
	if !strings.Contains(c.Body, "connection refused") {
		t.Errorf("error body = %q", c.Body)
	}
	if !strings.HasPrefix(c.Body, "⚠️") {
		t.Errorf("error body missing warning marker: %q", c.Body)
	}
	if c.Description != "connection refused" {
		t.Errorf("description = %q", c.Description)
	}
}
