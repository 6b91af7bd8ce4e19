package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the language model configuration",
}

var llmCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Send a one-line prompt to verify the provider works",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Provider: %s\n", rt.cfg.LLM.Provider)

		provider, err := newProvider(cmd)
		if err != nil {
			return fmt.Errorf("provider not usable: %w", err)
		}
		fmt.Fprintf(out, "Model:    %s\n", provider.ModelID())

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeCheck)
		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			Messages: []llm.Message{
				{Role: llm.RoleUser, Content: `Reply with the single German word "Hallo".`},
			},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}

		fmt.Fprintf(out, "Reply:    %s\n", resp.Text())
		fmt.Fprintf(out, "Latency:  %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Fprintf(out, "Tokens:   %d in, %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		if cost := llm.LookupCost(provider.ModelID()); cost != nil {
			fmt.Fprintf(out, "Cost:     $%.6f\n", cost.Cost(resp.Usage.InputTokens, resp.Usage.OutputTokens))
		}
		return nil
	},
}

func init() {
	llmCmd.AddCommand(llmCheckCmd)
}
