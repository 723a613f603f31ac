package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/swibrow/faq/internal/config"
	"github.com/swibrow/faq/internal/corpus"
	"github.com/swibrow/faq/internal/faq"
	"github.com/swibrow/faq/internal/history"
	"github.com/swibrow/faq/internal/keywords"
	"github.com/swibrow/faq/internal/log"
	"github.com/swibrow/faq/internal/translate"
	"github.com/swibrow/faq/internal/ui"
)

var (
	flagQuiet   bool
	flagVerbose bool
	flagFAQs    string
	flagFrom    string
	flagTo      string
	flagLimit   int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "faq [question]",
		Short:         "Keyword FAQ chatbot",
		Long:          "Answer questions from a FAQ corpus by keyword overlap, with a built-in translator.",
		Args:          cobra.MinimumNArgs(1),
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&flagFAQs, "faqs", "", "FAQ corpus file (JSON or YAML)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Show match details and debug logs")
	rootCmd.Flags().BoolVarP(&flagQuiet, "quiet", "q", false, "Output only the answer (for piping)")

	chatCmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		Args:  cobra.NoArgs,
		RunE:  runChat,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the loaded FAQ entries in match order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			m, err := buildMatcher(cfg)
			if err != nil {
				return err
			}
			ui.DisplayEntries(os.Stdout, m.Entries())
			return nil
		},
	}

	translateCmd := &cobra.Command{
		Use:   "translate [text]",
		Short: "Translate text, or start the interactive translator",
		RunE:  runTranslate,
	}
	translateCmd.Flags().StringVar(&flagFrom, "from", "en", "Source language (code, name or menu number)")
	translateCmd.Flags().StringVar(&flagTo, "to", "hi", "Target language (code, name or menu number)")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or manage configuration",
	}

	configShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := config.Show()
			if err != nil {
				return err
			}
			fmt.Println(output)
			return nil
		},
	}

	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Create a default configuration file and sample corpus",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.ConfigDir()
			if err != nil {
				return err
			}
			cfg := config.DefaultConfig()
			cfg.FAQFile = filepath.Join(dir, "faqs.json")
			if err := config.Save(cfg); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			if _, err := os.Stat(cfg.FAQFile); os.IsNotExist(err) {
				if err := corpus.Save(cfg.FAQFile, corpus.Sample()); err != nil {
					return fmt.Errorf("writing sample corpus: %w", err)
				}
			}
			fmt.Printf("Default config created at %s\n", filepath.Join(dir, "config.yaml"))
			fmt.Printf("Sample FAQs at %s\n", cfg.FAQFile)
			return nil
		},
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past questions",
	}
	historyCmd.PersistentFlags().IntVarP(&flagLimit, "limit", "n", 20, "Maximum entries to show")

	historyListCmd := &cobra.Command{
		Use:   "list",
		Short: "List recent questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(func(ctx context.Context, store *history.Store) ([]history.Interaction, error) {
				return store.List(ctx, flagLimit)
			})
		},
	}

	historySearchCmd := &cobra.Command{
		Use:   "search [words]",
		Short: "Search past questions by keyword",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			extractor, err := newExtractor(cfg)
			if err != nil {
				return err
			}
			terms, err := extractor.Extract(strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("extracting search terms: %w", err)
			}
			return withHistory(func(ctx context.Context, store *history.Store) ([]history.Interaction, error) {
				return store.Search(ctx, terms.Sorted(), flagLimit)
			})
		},
	}

	historyUnansweredCmd := &cobra.Command{
		Use:   "unanswered",
		Short: "List questions the corpus could not answer, most asked first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withHistory(func(ctx context.Context, store *history.Store) ([]history.Interaction, error) {
				return store.Unanswered(ctx, flagLimit)
			})
		},
	}

	historyClearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear all recorded questions",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openHistoryStore()
			if err != nil {
				return err
			}
			defer store.Close() //nolint:errcheck

			if err := store.Clear(context.Background()); err != nil {
				return fmt.Errorf("clearing history: %w", err)
			}
			fmt.Println("History cleared.")
			return nil
		},
	}

	historyCmd.AddCommand(historyListCmd, historySearchCmd, historyUnansweredCmd, historyClearCmd)
	configCmd.AddCommand(configShowCmd, configInitCmd)
	rootCmd.AddCommand(chatCmd, listCmd, translateCmd, historyCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		ui.DisplayError(err.Error())
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if flagFAQs != "" {
		cfg.FAQFile = flagFAQs
	}
	log.NewLogger(log.Options{
		Level:   cfg.Log.Level,
		File:    cfg.Log.File,
		Verbose: flagVerbose,
	})
	return cfg, nil
}

func newExtractor(cfg *config.Config) (*keywords.Extractor, error) {
	annotator, err := keywords.NewAnnotator(cfg.Annotator)
	if err != nil {
		return nil, fmt.Errorf("initializing annotator: %w", err)
	}
	return keywords.NewExtractor(annotator), nil
}

func buildMatcher(cfg *config.Config) (*faq.Matcher, error) {
	extractor, err := newExtractor(cfg)
	if err != nil {
		return nil, err
	}

	// An unreadable corpus still leaves the built-in entries.
	loaded := corpus.Load(cfg.FAQFile)
	if loaded.Degraded {
		ui.DisplayWarning(fmt.Sprintf("FAQ corpus unavailable, using built-in answers only: %v", loaded.Err))
		log.Warn(log.Fields{"path": loaded.Path, "error": loaded.Err.Error()}, "[buildMatcher] corpus load failed")
	} else if loaded.Skipped > 0 {
		log.Warn(log.Fields{"path": loaded.Path, "skipped": loaded.Skipped}, "[buildMatcher] skipped entries with no question")
	}

	mc := cfg.Matcher
	opts := faq.DefaultOptions()
	opts.SimilarityThreshold = mc.SimilarityThreshold
	if len(mc.GreetingPhrases) > 0 {
		opts.GreetingPhrases = mc.GreetingPhrases
	}
	if mc.GreetingResponse != "" {
		opts.GreetingResponse = mc.GreetingResponse
	}
	if mc.FallbackMessage != "" {
		opts.FallbackMessage = mc.FallbackMessage
	}
	if mc.FailureMessage != "" {
		opts.FailureMessage = mc.FailureMessage
	}

	m, err := faq.New(extractor, loaded.Pairs, opts, faq.WithLogger(log.Logger()))
	if err != nil {
		return nil, fmt.Errorf("building matcher: %w", err)
	}
	log.Info(log.Fields{"entries": len(m.Entries()), "path": loaded.Path}, "[buildMatcher] FAQ corpus ready")
	return m, nil
}

func openHistoryStore() (*history.Store, error) {
	dir, err := config.ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("config directory: %w", err)
	}
	store, err := history.Open(dir)
	if err != nil {
		return nil, fmt.Errorf("opening history: %w", err)
	}
	return store, nil
}

// recorder returns a callback that stores every result, or nil when history
// is disabled or unavailable. The returned close func is always safe to call.
func recorder(cfg *config.Config) (func(string, faq.Result), func()) {
	if !cfg.History.Enabled {
		return nil, func() {}
	}
	store, err := openHistoryStore()
	if err != nil {
		ui.DisplayWarning(fmt.Sprintf("history disabled: %v", err))
		return nil, func() {}
	}

	session := uuid.NewString()
	record := func(query string, res faq.Result) {
		r := history.Record{
			SessionID: session,
			Query:     query,
			Outcome:   res.Outcome.String(),
			Answer:    res.Text,
			Score:     res.Score,
		}
		if res.Entry != nil && res.Outcome == faq.OutcomeAnswer {
			r.MatchedQuestion = res.Entry.Question
		}
		if res.Query != nil {
			r.Keywords = res.Query.Sorted()
		}
		if err := store.Save(context.Background(), r); err != nil {
			log.Warn(log.Fields{"error": err.Error()}, "[recorder] saving history failed")
		}
	}
	return record, func() { _ = store.Close() }
}

func run(cmd *cobra.Command, args []string) error {
	question := strings.Join(args, " ")

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := buildMatcher(cfg)
	if err != nil {
		return err
	}

	record, closeHistory := recorder(cfg)
	defer closeHistory()

	res := m.Match(question)
	if record != nil {
		record(question, res)
	}

	if flagQuiet {
		ui.DisplayQuiet(os.Stdout, res)
		return nil
	}
	ui.DisplayAnswer(os.Stdout, res, flagVerbose)
	return nil
}

func runChat(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	m, err := buildMatcher(cfg)
	if err != nil {
		return err
	}

	record, closeHistory := recorder(cfg)
	defer closeHistory()

	return ui.Chat(os.Stdin, os.Stdout, m, ui.ChatOptions{
		ShowPrompt: ui.IsInteractive(),
		OnResult:   record,
	})
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	tr, err := translate.New(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if len(args) == 0 {
		return ui.TranslateLoop(ctx, os.Stdin, os.Stdout, tr)
	}

	source, err := translate.LookupLanguage(flagFrom)
	if err != nil {
		return err
	}
	target, err := translate.LookupLanguage(flagTo)
	if err != nil {
		return err
	}

	text := strings.Join(args, " ")
	translated, err := tr.Translate(ctx, text, source, target)
	if err != nil {
		ui.DisplayTranslationError(os.Stderr, err)
		return fmt.Errorf("translation failed: %w", err)
	}
	ui.DisplayTranslation(os.Stdout, source, target, text, translated)
	return nil
}

func withHistory(fetch func(context.Context, *history.Store) ([]history.Interaction, error)) error {
	if _, err := loadConfig(); err != nil {
		return err
	}
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close() //nolint:errcheck

	interactions, err := fetch(context.Background(), store)
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}
	if len(interactions) == 0 {
		fmt.Println("No matching history.")
		return nil
	}

	for _, ix := range interactions {
		fmt.Printf("  Q: %s\n  A: %s\n", ix.Query, ix.Answer)
		fmt.Printf("  (%s", ix.Outcome)
		if ix.MatchedQuestion != "" {
			fmt.Printf(", matched %q at %.2f", ix.MatchedQuestion, ix.Score)
		}
		if ix.UseCount > 1 {
			fmt.Printf(", asked %d times", ix.UseCount)
		}
		fmt.Println(")")
		fmt.Println()
	}
	return nil
}
