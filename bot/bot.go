// Package bot wires the query interpreter and the translation client to
// Telegram: inline queries are answered with result articles, direct
// messages with plain replies. The bot itself holds no state beyond its
// configuration; every update is handled in its own goroutine.
package bot

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"

	"github.com/oukaro/zhenbot/config"
	"github.com/oukaro/zhenbot/i18n"
	"github.com/oukaro/zhenbot/lang"
	"github.com/oukaro/zhenbot/query"
	"github.com/oukaro/zhenbot/render"
	"github.com/oukaro/zhenbot/translator"
)

// pollTimeout is the long-poll timeout for GetUpdates, in seconds.
const pollTimeout = 30

// Bot runs the Telegram update loop.
type Bot struct {
	api        *tgbotapi.BotAPI
	translator *translator.Client
	cfg        *config.Config
}

// New connects to the Telegram Bot API.
func New(cfg *config.Config, tr *translator.Client) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("connecting to Telegram: %w", err)
	}
	return &Bot{api: api, translator: tr, cfg: cfg}, nil
}

// Run long-polls for updates until ctx is cancelled. Each update is
// handled concurrently; in-flight translations are bounded only by the
// client's fixed per-call timeout, not by ctx.
func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(u)

	slog.Info("bot started", "username", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			slog.Info("bot stopped")
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			go b.handleUpdate(update)
		}
	}
}

func (b *Bot) handleUpdate(update tgbotapi.Update) {
	switch {
	case update.InlineQuery != nil:
		b.handleInlineQuery(update.InlineQuery)
	case update.Message != nil && update.Message.Text != "":
		b.handleMessage(update.Message)
	}
}

// ---------------------------------------------------------------------------
// Inline queries
// ---------------------------------------------------------------------------

func (b *Bot) handleInlineQuery(q *tgbotapi.InlineQuery) {
	parsed, ok := query.Parse(q.Query, b.cfg.DefaultSourceLang, b.cfg.DefaultTargetLang)

	var candidates []render.Candidate
	switch {
	case !ok:
		candidates = []render.Candidate{render.Help(b.cfg.DefaultSourceLang, b.cfg.DefaultTargetLang)}
	default:
		res, err := b.translator.Translate(context.Background(), translator.Request{
			Text:       parsed.Text,
			SourceLang: parsed.SourceLang,
			TargetLang: parsed.TargetLang,
		})
		if err != nil {
			slog.Error("inline translation failed", "err", err)
			candidates = []render.Candidate{render.Error(err.Error())}
		} else {
			candidates = render.Translation(parsed, res)
			slog.Debug("inline translation served",
				"direction", parsed.SourceLang.String()+"→"+parsed.TargetLang.String(),
				"latency_ms", res.ProviderLatencyMS)
		}
	}

	answer := tgbotapi.InlineConfig{
		InlineQueryID: q.ID,
		Results:       toArticles(candidates),
		CacheTime:     0,
		IsPersonal:    true,
	}
	if _, err := b.api.Request(answer); err != nil {
		slog.Error("failed to answer inline query", "err", err)
	}
}

// toArticles converts display candidates into inline query result
// articles with fresh IDs.
func toArticles(candidates []render.Candidate) []interface{} {
	results := make([]interface{}, 0, len(candidates))
	for _, c := range candidates {
		article := tgbotapi.NewInlineQueryResultArticle(uuid.NewString(), c.Title, c.Body)
		article.Description = c.Description
		results = append(results, article)
	}
	return results
}

// ---------------------------------------------------------------------------
// Direct messages
// ---------------------------------------------------------------------------

func (b *Bot) handleMessage(msg *tgbotapi.Message) {
	text := msg.Text

	if strings.HasPrefix(text, "/") {
		if commandName(text) == "start" {
			b.send(msg.Chat.ID, b.startText())
		}
		// Other commands are ignored.
		return
	}

	parsed, ok := query.Parse(text, b.cfg.DefaultSourceLang, b.cfg.DefaultTargetLang)
	if !ok {
		b.send(msg.Chat.ID, i18n.T("Could not understand the input. Please try again."))
		return
	}

	// Show "typing..." while the provider call is in flight.
	if _, err := b.api.Request(tgbotapi.NewChatAction(msg.Chat.ID, tgbotapi.ChatTyping)); err != nil {
		slog.Debug("failed to send chat action", "err", err)
	}

	res, err := b.translator.Translate(context.Background(), translator.Request{
		Text:       parsed.Text,
		SourceLang: parsed.SourceLang,
		TargetLang: parsed.TargetLang,
	})
	if err != nil {
		slog.Error("translation failed", "err", err)
		b.send(msg.Chat.ID, fmt.Sprintf(i18n.T("⚠️ Translation failed: %s"), err))
		return
	}

	header := render.Header(parsed.SourceLang, parsed.TargetLang)
	b.send(msg.Chat.ID, header+"\n\n"+res.PrimaryText)

	if res.RomanizedText != "" {
		b.send(msg.Chat.ID, i18n.T("Romanized:")+"\n"+res.RomanizedText)
	}
}

// startText builds the /start greeting from the bot's own username and
// the configured language pair.
func (b *Bot) startText() string {
	src := lang.Display(b.cfg.DefaultSourceLang)
	tgt := lang.Display(b.cfg.DefaultTargetLang)
	return fmt.Sprintf(
		i18n.T("👋 Inline Translation Bot\nType @%s followed by text anywhere to translate between %s and %s.\nYou can also send me text directly here!"),
		b.api.Self.UserName, src.Name, tgt.Name,
	)
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		slog.Error("failed to send message", "err", err)
	}
}

// commandName extracts the bare command from "/start", "/start@SomeBot",
// or "/start args".
func commandName(text string) string {
	cmd := strings.TrimPrefix(strings.Fields(text)[0], "/")
	if name, _, found := strings.Cut(cmd, "@"); found {
		return name
	}
	return cmd
}
