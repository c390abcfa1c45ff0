// zhenbot — Telegram translation relay between English and Chinese,
// backed by an OpenAI-compatible chat/completions endpoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"

	"github.com/oukaro/zhenbot/bot"
	"github.com/oukaro/zhenbot/config"
	"github.com/oukaro/zhenbot/i18n"
	"github.com/oukaro/zhenbot/query"
	"github.com/oukaro/zhenbot/render"
	"github.com/oukaro/zhenbot/translator"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// ---------------------------------------------------------------------------
// Root command
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "zhenbot",
		Short: "Telegram EN↔ZH translation bot",
		Long: `zhenbot — Telegram translation relay between English and Chinese.

Accepts direct messages and inline queries, picks a language direction
from an explicit prefix (en>zh, zh->en) or auto-detection, and relays the
text to an OpenAI-compatible chat/completions endpoint.

Configuration comes from the environment (a .env file is honored) with
optional defaults in zhenbot.yaml:
  BOT_TOKEN             Telegram bot token (required for serve)
  TRANSLATION_API_URL   provider base URL (required)
  TRANSLATION_API_KEY   provider bearer token (required)
  TRANSLATION_MODEL     provider model name (required)
  DEFAULT_SOURCE_LANG   fallback source language (default en)
  DEFAULT_TARGET_LANG   fallback target language (default zh)
  HTTP_TIMEOUT_MS       provider call timeout (default 15000)
  BOT_LOCALE            locale of the bot's own messages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newTranslateCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	setupLogging()

	if err := newRootCmd().Execute(); err != nil {
		slog.Error("zhenbot failed", "err", err)
		os.Exit(1)
	}
}

func setupLogging() {
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		TimeFormat: time.Kitchen,
	})))
}

// ---------------------------------------------------------------------------
// serve
// ---------------------------------------------------------------------------

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			i18n.Init(cfg.BotLocale)

			tr, err := translator.New(cfg.TranslationAPIURL, cfg.TranslationAPIKey, cfg.TranslationModel, cfg.Timeout())
			if err != nil {
				return fmt.Errorf("initializing translator: %w", err)
			}

			b, err := bot.New(cfg, tr)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return b.Run(ctx)
		},
	}
}

// ---------------------------------------------------------------------------
// translate — one-shot pipeline check from the shell
// ---------------------------------------------------------------------------

func newTranslateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "translate <text>",
		Short: "Translate once and print the result (no Telegram)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := cfg.ValidateProvider(); err != nil {
				return err
			}

			i18n.Init(cfg.BotLocale)

			parsed, ok := query.Parse(strings.Join(args, " "), cfg.DefaultSourceLang, cfg.DefaultTargetLang)
			if !ok {
				return errors.New("nothing to translate")
			}

			tr, err := translator.New(cfg.TranslationAPIURL, cfg.TranslationAPIKey, cfg.TranslationModel, cfg.Timeout())
			if err != nil {
				return fmt.Errorf("initializing translator: %w", err)
			}

			res, err := tr.Translate(cmd.Context(), translator.Request{
				Text:       parsed.Text,
				SourceLang: parsed.SourceLang,
				TargetLang: parsed.TargetLang,
			})
			if err != nil {
				return err
			}

			for _, c := range render.Translation(parsed, res) {
				fmt.Println(c.Body)
				fmt.Println()
			}
			slog.Info("translated", "latency_ms", res.ProviderLatencyMS)

			return nil
		},
	}
}

// ---------------------------------------------------------------------------
// version
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("zhenbot %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
