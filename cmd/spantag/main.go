package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jask/spantag/internal/annotate"
	"github.com/jask/spantag/internal/binder"
	"github.com/jask/spantag/internal/config"
	"github.com/jask/spantag/internal/database"
	"github.com/jask/spantag/internal/logging"
	"github.com/jask/spantag/internal/session"
	"github.com/jask/spantag/internal/tui"
)

var (
	// Global flags
	configPath  string
	sessionName string
	sentences   string
	outputDir   string
	dbPath      string
	logPath     string
	verbose     bool

	cfg    config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "spantag",
	Short: "Keyboard-driven span labelling for plain-text corpora",
	Long: `spantag serves a corpus one sentence at a time. Move over the words,
select spans and label them from the keyboard, then confirm to write the
annotation to <output_dir>/<sentence id>.txt.

Runs are stored in sqlite by name, so quitting and starting again with the
same --session resumes where you left off.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		applyFlags(cmd)

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		logger, err = logging.New(cfg.Log.Path, level)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runAnnotator,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.config/spantag/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "sqlite database path")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "Log file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.Flags().StringVarP(&sessionName, "session", "s", "", "Run name to start or resume")
	rootCmd.Flags().StringVar(&sentences, "sentences", "", "Corpus file, one sentence per line")
	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "", "Directory for annotation files")

	rootCmd.AddCommand(keysCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(resetCmd)
}

// applyFlags lets explicitly set flags win over file and env configuration.
func applyFlags(cmd *cobra.Command) {
	set := func(name string, dst *string, val string) {
		if f := cmd.Flags().Lookup(name); f != nil && f.Changed {
			*dst = val
		}
	}
	set("session", &cfg.Session.Name, sessionName)
	set("sentences", &cfg.Session.Sentences, sentences)
	set("output", &cfg.Session.OutputDir, outputDir)
	set("db", &cfg.Database.Path, dbPath)
	set("log", &cfg.Log.Path, logPath)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openDB migrates and opens the configured database.
func openDB() (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}
	if err := database.RunMigrations(cfg.Database.Path); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return db, nil
}

func runAnnotator(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	b, err := binder.New(cfg.Labels, cfg.Keys)
	if err != nil {
		return fmt.Errorf("key bindings: %w", err)
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer db.Close()

	sess, err := session.Open(ctx, db, session.Options{
		Name:         cfg.Session.Name,
		SentencePath: cfg.Session.Sentences,
		OutputDir:    cfg.Session.OutputDir,
		Logger:       logger.Named("session"),
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	m, err := annotate.New(ctx, sess, cfg.GroupNames(), annotate.WithLogger(logger.Named("annotate")))
	if err != nil {
		return err
	}

	run := sess.Run()
	app := tui.New(ctx, b, m,
		tui.WithLogger(logger.Named("tui")),
		tui.WithTitle(fmt.Sprintf("%s · %s", run.Name, filepath.Base(run.SentencePath))),
	)
	logger.Info("annotator started", zap.String("run", run.Name), zap.Int("sentence", sess.Current()))

	if _, err := tea.NewProgram(app, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return app.Err()
}
