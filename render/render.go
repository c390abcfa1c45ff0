// Package render builds user-facing display candidates from translation
// results. Candidates are platform-neutral: the chat adapter converts them
// into whatever the transport wants (inline articles, plain messages).
package render

import (
	"fmt"
	"strings"

	"github.com/oukaro/zhenbot/i18n"
	"github.com/oukaro/zhenbot/lang"
	"github.com/oukaro/zhenbot/query"
	"github.com/oukaro/zhenbot/translator"
)

// maxAlternates caps how many alternate translations are listed.
const maxAlternates = 3

// descriptionLimit caps candidate descriptions, in runes.
const descriptionLimit = 80

// Candidate is one display entry: a title, a full message body, and a
// short single-line description.
type Candidate struct {
	Title       string
	Body        string
	Description string
}

// Header renders the direction line shown above every translation,
// e.g. "🌐 EN → ZH".
func Header(source, target lang.Code) string {
	return fmt.Sprintf("🌐 %s → %s", source.Upper(), target.Upper())
}

// Translation builds the ordered candidate list for a successful
// translation: the primary text, the romanization when present, and up to
// three alternates when present.
func Translation(q *query.Query, res *translator.Result) []Candidate {
	header := Header(q.SourceLang, q.TargetLang)

	primaryDisplay := segmentsToLines(res.PrimaryText)
	candidates := []Candidate{{
		Title:       header + " · " + i18n.T("Primary"),
		Body:        header + "\n" + primaryDisplay,
		Description: describe(primaryDisplay),
	}}

	if res.RomanizedText != "" {
		romanizedDisplay := segmentsToLines(res.RomanizedText)
		candidates = append(candidates, Candidate{
			Title:       header + " · " + i18n.T("Romanized"),
			Body:        header + "\n" + romanizedDisplay,
			Description: describe(romanizedDisplay),
		})
	}

	if len(res.AlternateTexts) > 0 {
		samples := res.AlternateTexts
		if len(samples) > maxAlternates {
			samples = samples[:maxAlternates]
		}
		lines := make([]string, 0, len(samples))
		for _, alt := range samples {
			lines = append(lines, "• "+segmentsToLines(alt))
		}
		candidates = append(candidates, Candidate{
			Title:       header + " · " + i18n.T("Alternatives"),
			Body:        header + "\n" + strings.Join(lines, "\n"),
			Description: describe(segmentsToLines(samples[0])),
		})
	}

	return candidates
}

// Help is shown when interpretation yields no query.
func Help(defaultSource, defaultTarget lang.Code) Candidate {
	body := fmt.Sprintf(
		i18n.T("Type something after the bot handle. Use \"|\" to separate segments when you want grouped translations (topic | detail).\nExamples:\n• @zhenbot en>zh: sustainability roadmap | 2025 goals\n• @zhenbot zh>en: 开会推迟到几点?\nDefaults to %s→%s when not detectable."),
		defaultSource, defaultTarget,
	)
	return Candidate{
		Title:       i18n.T("How to translate"),
		Body:        body,
		Description: i18n.T("Prefix with en>zh or zh>en, and use | to split sentences."),
	}
}

// Error is shown when translation fails.
func Error(message string) Candidate {
	return Candidate{
		Title:       i18n.T("Translation failed"),
		Body:        fmt.Sprintf(i18n.T("⚠️ Translation failed: %s"), message),
		Description: message,
	}
}

// segmentsToLines renders "|"-separated segments as separate lines.
func segmentsToLines(value string) string {
	parts := strings.Split(value, query.SegmentDelimiter)
	lines := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			lines = append(lines, s)
		}
	}
	return strings.Join(lines, "\n")
}

// describe collapses s to a single line and truncates it to the
// description limit with an ellipsis marker.
func describe(s string) string {
	single := strings.Join(strings.Fields(s), " ")
	runes := []rune(single)
	if len(runes) > descriptionLimit {
		return string(runes[:descriptionLimit-1]) + "…"
	}
	return single
}
