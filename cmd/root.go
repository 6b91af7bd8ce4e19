package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/config"
	"github.com/abhisek/vokabel/internal/logging"
	"github.com/abhisek/vokabel/internal/store"
)

// env is what every subcommand shares once the root pre-run has loaded it.
type env struct {
	cfg       *config.Config
	log       *logrus.Logger
	logCloser io.Closer
}

var rt env

var rootCmd = &cobra.Command{
	Use:   "vokabel",
	Short: "German vocabulary trainer",
	Long: `Vokabel keeps a personal German vocabulary and quizzes you on it.
Answers are graded by a language model and example sentences are
refreshed as you practice.

Set GROQ_API_KEY (or GEMINI_API_KEY, OPENAI_API_KEY, ANTHROPIC_API_KEY,
OPENROUTER_API_KEY) to enable grading, or configure a provider in the
config file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if rt.logCloser != nil {
			rt.logCloser.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("file", "", "Path to the vocabulary file (overrides VOKABEL_FILE)")
	flags.String("config", "", "Path to the config file (default "+config.DefaultPath()+")")
	flags.Bool("log-stderr", false, "Write logs to stderr instead of the log file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(rmCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

func setup(cmd *cobra.Command) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	toStderr, _ := cmd.Flags().GetBool("log-stderr")
	log, closer, err := logging.Setup(cfg.Log, logging.Options{Stderr: toStderr})
	if err != nil {
		return fmt.Errorf("set up logging: %w", err)
	}

	rt = env{cfg: cfg, log: log, logCloser: closer}
	return nil
}

// resolveFilePath returns the vocabulary path using --file (highest
// priority), then the config file, then VOKABEL_FILE or the default XDG path.
func resolveFilePath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("file"); p != "" {
		return p, store.EnsureDir(p)
	}
	if rt.cfg != nil && rt.cfg.File != "" {
		return rt.cfg.File, store.EnsureDir(rt.cfg.File)
	}
	return store.DefaultPath()
}

// openStore opens the vocabulary file selected for this invocation.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	path, err := resolveFilePath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve vocabulary path: %w", err)
	}
	st, err := store.Open(path, store.WithLogger(rt.log))
	if err != nil {
		return nil, fmt.Errorf("open vocabulary: %w", err)
	}
	return st, nil
}
