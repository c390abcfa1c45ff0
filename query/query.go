// Package query turns raw chat input (a message body or an inline-query
// string) into a normalized translation query.
//
// Interpretation is a fixed pipeline: an explicit direction prefix like
// "en>zh:" or "zh -> en" wins; otherwise the direction is auto-detected
// from the text (CJK characters, then statistical detection, then Latin
// script, then caller defaults). The text itself is truncated to a maximum
// length and normalized segment-by-segment around the "|" delimiter.
package query

import (
	"regexp"
	"strings"

	"github.com/abadojack/whatlanggo"

	"github.com/oukaro/zhenbot/lang"
)

// SegmentDelimiter separates phrases a user wants translated as a group.
const SegmentDelimiter = "|"

// maxTextLength is the cap on query text, counted in runes so multi-byte
// characters are never split.
const maxTextLength = 2048

// Precompiled matchers, initialized once at startup.
var (
	// directionPattern matches an explicit "en>zh" / "zh -> en:" prefix.
	directionPattern = regexp.MustCompile(`^(?i)(en|zh)\s*(?:>|->)\s*(en|zh)\s*:?`)

	// cjkPattern matches common CJK ideograph and symbol blocks. Used only
	// as a direction heuristic, not as real language identification.
	cjkPattern = regexp.MustCompile(`[\x{3000}-\x{303F}\x{3040}-\x{30FF}\x{3400}-\x{4DBF}\x{4E00}-\x{9FFF}\x{F900}-\x{FAFF}]`)

	latinPattern = regexp.MustCompile(`[a-zA-Z]`)
)

// Query is a normalized translation query: non-empty text plus a resolved
// language direction. It is consumed immediately and never persisted.
type Query struct {
	Text       string
	SourceLang lang.Code
	TargetLang lang.Code
}

// Parse interprets raw input text. It returns (nil, false) when the input
// does not yield a translatable query: empty input, or input that
// normalizes to nothing (e.g. only delimiters and whitespace).
//
// Parse is pure and deterministic given its inputs.
func Parse(raw string, defaultSource, defaultTarget lang.Code) (*Query, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}

	var source, target lang.Code
	text := trimmed

	if m := directionPattern.FindStringSubmatchIndex(trimmed); m != nil {
		// Captured codes are guaranteed parseable by the pattern.
		source, _ = lang.Parse(trimmed[m[2]:m[3]])
		target, _ = lang.Parse(trimmed[m[4]:m[5]])
		text = strings.TrimSpace(trimmed[m[1]:])
	} else {
		source, target = autoDetectDirection(trimmed, defaultSource, defaultTarget)
	}

	normalized := normalizeSegments(truncateRunes(text, maxTextLength))
	if normalized == "" {
		return nil, false
	}

	return &Query{
		Text:       normalized,
		SourceLang: source,
		TargetLang: target,
	}, true
}

// autoDetectDirection picks a language pair for text without an explicit
// direction prefix. Ordered policy, first match wins:
//
//  1. Any CJK character: assume zh→en (users typing Chinese usually want
//     an English translation).
//  2. Statistical detection says English: en→zh; says Mandarin: zh→en.
//  3. Any Latin letter (short words, slang the detector misses): en→zh.
//  4. Caller-supplied defaults.
func autoDetectDirection(text string, defaultSource, defaultTarget lang.Code) (lang.Code, lang.Code) {
	if cjkPattern.MatchString(text) {
		return lang.Zh, lang.En
	}

	info := whatlanggo.Detect(text)
	switch info.Lang {
	case whatlanggo.Eng:
		return lang.En, lang.Zh
	case whatlanggo.Cmn:
		return lang.Zh, lang.En
	}

	if latinPattern.MatchString(text) {
		return lang.En, lang.Zh
	}

	return defaultSource, defaultTarget
}

// normalizeSegments trims every "|"-separated segment, drops empty ones,
// and rejoins the survivors. Idempotent on already-normalized input.
func normalizeSegments(raw string) string {
	parts := strings.Split(raw, SegmentDelimiter)
	segments := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, SegmentDelimiter)
}

// truncateRunes caps s at max runes.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
