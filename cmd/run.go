package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/app"
	"github.com/abhisek/vokabel/internal/examplegen"
	"github.com/abhisek/vokabel/internal/grading"
	"github.com/abhisek/vokabel/internal/llm"
	"github.com/abhisek/vokabel/internal/refresh"
	"github.com/abhisek/vokabel/internal/selector"
	"github.com/abhisek/vokabel/internal/session"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the interactive trainer (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func init() {
	runCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}

	provider, err := newProvider(cmd)
	status := "offline"
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Answers will not be graded and examples will not be refreshed.")
	} else {
		status = provider.ModelID()
	}

	grader := grading.New(provider, grading.DefaultConfig(), rt.log)
	policy := refresh.New(nil, rt.log)
	policy.Threshold = rt.cfg.RefreshThreshold
	if provider != nil {
		policy.Generator = examplegen.New(provider, examplegen.DefaultConfig())
	}
	picker := selector.New()

	// Only run has the flag; the bare root command always shows the splash.
	skip, _ := cmd.Flags().GetBool("no-splash")

	rt.log.WithField("file", st.Path()).Info("starting vokabel")
	return app.Run(app.Options{
		Repo: st,
		NewPractice: func() *session.Practice {
			return session.New(session.Deps{
				Store:     st,
				Picker:    picker,
				Grader:    grader,
				Presenter: policy,
				Log:       rt.log,
			})
		},
		Status:      status,
		LLMReady:    provider != nil,
		SkipWelcome: skip,
		Log:         rt.log,
	})
}

// newProvider builds the configured LLM provider, or an error when none is
// usable.
func newProvider(cmd *cobra.Command) (llm.Provider, error) {
	if !rt.cfg.LLMReady() {
		return nil, rt.cfg.LLM.Validate()
	}
	return llm.NewProvider(cmd.Context(), rt.cfg.LLM, rt.log)
}
