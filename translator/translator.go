// Package translator implements the translation client: a single
// bearer-authenticated call to an OpenAI-compatible chat/completions
// endpoint with a constrained prompt/response contract, and a lenient
// decoder for the structured reply.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oukaro/zhenbot/lang"
)

// systemPrompt pins the remote model to a compact JSON answer: the
// translation plus an optional romanization, nothing else.
const systemPrompt = `Translate src->tgt. JSON: {"t":"translation","r":"romanized_if_zh"}. No alternatives. No commentary.`

// ---------------------------------------------------------------------------
// Request / result types
// ---------------------------------------------------------------------------

// Request is the wire-level input to Translate. It mirrors query.Query
// structurally but is a separate type so the interpreter's output shape
// stays decoupled from the client's input shape.
type Request struct {
	Text       string
	SourceLang lang.Code
	TargetLang lang.Code
}

// Result is a decoded translation. RomanizedText is empty when the
// provider sent none (or sent only whitespace). AlternateTexts is always
// empty: alternatives are suppressed to control token cost even when the
// provider returns them.
type Result struct {
	PrimaryText       string
	AlternateTexts    []string
	RomanizedText     string
	ProviderLatencyMS int64
}

// StatusError reports a non-2xx response from the provider.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("translation provider failed (%d): %s", e.Code, truncate(e.Body, 500))
}

// ---------------------------------------------------------------------------
// Client
// ---------------------------------------------------------------------------

// Client issues translation calls. It holds one shared HTTP client with a
// fixed whole-exchange timeout and is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	model      string
}

// New builds a Client for the given provider. baseURL may be the API root
// or the full chat/completions URL; the suffix is appended only when
// missing.
func New(baseURL, apiKey, model string, timeout time.Duration) (*Client, error) {
	endpoint, err := resolveEndpoint(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		apiKey:     apiKey,
		model:      model,
	}, nil
}

// resolveEndpoint validates the provider URL and appends the
// chat/completions suffix unless the URL's path already ends with it.
// Query strings and fragments survive untouched.
func resolveEndpoint(baseURL string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing provider URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("provider URL %q is not absolute", baseURL)
	}

	path := strings.TrimRight(u.Path, "/")
	if !strings.HasSuffix(path, "/chat/completions") {
		path += "/chat/completions"
	}
	u.Path = path
	return u.String(), nil
}

// Translate performs one translation call. Failures are either a network/
// timeout error, a *StatusError for non-2xx responses, or a decode error
// when the response envelope lacks content. A malformed inner payload is
// not a failure: it degrades to the raw content text.
func (c *Client) Translate(ctx context.Context, request Request) (*Result, error) {
	start := time.Now()

	body, err := buildChatRequest(c.model, request)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("translation request failed: %w", err)
	}

	respBody, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Body: string(respBody)}
	}

	content, err := extractContent(respBody)
	if err != nil {
		return nil, err
	}

	payload, usedFallback := decodePayload(content)
	if usedFallback {
		slog.Warn("provider payload was not valid JSON, using raw content as translation")
	}

	romanized := payload.romanized
	if strings.TrimSpace(romanized) == "" {
		romanized = ""
	}

	return &Result{
		PrimaryText:       payload.translation,
		AlternateTexts:    nil, // suppressed to save tokens
		RomanizedText:     romanized,
		ProviderLatencyMS: time.Since(start).Milliseconds(),
	}, nil
}

// buildChatRequest assembles the chat/completions body: the fixed system
// instruction plus a user message encoding "src=..;tgt=..;text=..".
// Temperature is pinned to 0 for determinism.
func buildChatRequest(model string, request Request) ([]byte, error) {
	type msg struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	}
	prompt := fmt.Sprintf("src=%s;tgt=%s;text=%s", request.SourceLang, request.TargetLang, request.Text)
	req := struct {
		Model       string  `json:"model"`
		Temperature float64 `json:"temperature"`
		Messages    []msg   `json:"messages"`
	}{
		Model:       model,
		Temperature: 0,
		Messages: []msg{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		},
	}
	return json.Marshal(req)
}

// extractContent pulls choices[0].message.content out of the response
// envelope.
func extractContent(body []byte) (string, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return "", fmt.Errorf("invalid JSON response: %w", err)
	}

	if choices, ok := raw["choices"].([]any); ok && len(choices) > 0 {
		if choice, ok := choices[0].(map[string]any); ok {
			if message, ok := choice["message"].(map[string]any); ok {
				if content, ok := message["content"].(string); ok {
					return content, nil
				}
			}
		}
	}

	return "", errors.New("provider response missing content")
}

// ---------------------------------------------------------------------------
// Lenient payload decode
// ---------------------------------------------------------------------------

// payload is the normalized inner provider answer.
type payload struct {
	translation  string
	alternatives []string
	romanized    string
}

// rawPayload accepts both long-form keys and their short aliases.
type rawPayload struct {
	Translation  string   `json:"translation"`
	T            string   `json:"t"`
	Alternatives []string `json:"alternatives"`
	A            []string `json:"a"`
	Romanized    string   `json:"romanized"`
	R            string   `json:"r"`
}

// decodePayload extracts the provider payload from the content string.
// The content should contain a JSON object but may be wrapped in prose or
// markdown fencing, so the candidate is the slice from the first "{" to
// the last "}" (the whole string when no "{" exists). When the candidate
// does not decode to a payload with a translation, the entire trimmed
// content becomes the translation — this step never fails.
//
// The second return value reports whether the raw-text fallback was used.
func decodePayload(content string) (payload, bool) {
	candidate := content
	if start := strings.Index(content, "{"); start >= 0 {
		if end := strings.LastIndex(content, "}"); end > start {
			candidate = content[start : end+1]
		}
	}

	var raw rawPayload
	if err := json.Unmarshal([]byte(candidate), &raw); err == nil {
		p := payload{
			translation:  firstNonEmpty(raw.Translation, raw.T),
			alternatives: raw.Alternatives,
			romanized:    firstNonEmpty(raw.Romanized, raw.R),
		}
		if p.alternatives == nil {
			p.alternatives = raw.A
		}
		if p.translation != "" {
			return p, false
		}
	}

	return payload{translation: strings.TrimSpace(content)}, true
}

func firstNonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// truncate shortens s for error messages.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
