package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/selector"
	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/ui/theme"
	"github.com/abhisek/vokabel/internal/vocab"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the vocabulary",
	RunE: func(cmd *cobra.Command, args []string) error {
		rank, _ := cmd.Flags().GetBool("rank")
		category, _ := cmd.Flags().GetString("category")
		if category != "" && !vocab.Category(category).Valid() {
			return fmt.Errorf("unknown category %q (want new, correct or incorrect)", category)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		entries, err := st.Load(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No words yet. Add one with: vokabel add")
			return nil
		}

		order := make([]selector.Candidate, len(entries))
		if rank {
			order = selector.Rank(entries, time.Now())
		} else {
			for i := range entries {
				order[i] = selector.Candidate{Index: i}
			}
		}

		headers := []string{"WORD", "TYPE", "GENDER", "DEFINITION", "CATEGORY", "ASKED"}
		if rank {
			headers = append(headers, "PRIORITY")
		}

		var rows [][]string
		var shown []vocab.Entry
		for _, c := range order {
			e := entries[c.Index]
			if category != "" && e.Category != vocab.Category(category) {
				continue
			}
			gender := "-"
			if g := e.GenderValue(); g != "" {
				gender = g.Article()
			}
			row := []string{
				e.Word, string(e.PartOfSpeech), gender, truncate(e.Definition, 40),
				string(e.Category), strconv.Itoa(e.TimesAsked),
			}
			if rank {
				row = append(row, fmt.Sprintf("%.1f", c.Priority))
			}
			rows = append(rows, row)
			shown = append(shown, e)
		}

		t := newTable(headers, rows, func(row, col int) lipgloss.Style {
			e := shown[row]
			switch col {
			case 2:
				if g := e.GenderValue(); g != "" {
					return lipgloss.NewStyle().Foreground(theme.GenderColor(g))
				}
			case 4:
				return theme.CategoryStyle(e.Category)
			}
			return lipgloss.NewStyle()
		})
		return printTable(cmd.OutOrStdout(), t)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats <word>",
	Short: "Show the learning statistics of a word",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		entries, err := st.Load(cmd.Context())
		if err != nil {
			return err
		}
		i := store.IndexOf(entries, args[0])
		if i < 0 {
			return fmt.Errorf("word %q not found", args[0])
		}

		e := entries[i]
		s := vocab.Stats(e)
		last := "never"
		if !s.LastAsked.IsZero() {
			last = s.LastAsked.Local().Format("2006-01-02 15:04:05")
		}

		rows := [][]string{
			{"Word:", e.Word},
			{"Type:", string(e.PartOfSpeech)},
		}
		if g := e.GenderValue(); g != "" {
			rows = append(rows, []string{"Gender:", string(g)})
		}
		rows = append(rows,
			[]string{"Definition:", e.Definition},
			[]string{"Example:", e.Example},
		)
		if prev := e.PreviousExampleValue(); prev != "" {
			rows = append(rows, []string{"Previous example:", prev})
		}
		rows = append(rows,
			[]string{"Category:", string(s.Category)},
			[]string{"Times asked:", strconv.Itoa(s.TimesAsked)},
			[]string{"Last asked:", last},
			[]string{"Examples seen:", strconv.Itoa(s.ExampleCount)},
			[]string{"Last refresh at ask:", strconv.Itoa(s.RefreshedAtAsk)},
			[]string{"Priority:", fmt.Sprintf("%.1f", selector.Priority(e, time.Now()))},
		)

		t := newTable(nil, rows, func(row, col int) lipgloss.Style {
			if col == 0 {
				return theme.Label
			}
			switch rows[row][0] {
			case "Gender:":
				return lipgloss.NewStyle().Foreground(theme.GenderColor(e.GenderValue()))
			case "Category:":
				return theme.CategoryStyle(s.Category)
			}
			return lipgloss.NewStyle()
		})
		return printTable(cmd.OutOrStdout(), t)
	},
}

func init() {
	listCmd.Flags().Bool("rank", false, "Order by practice priority, most urgent first")
	listCmd.Flags().StringP("category", "c", "", "Only show words in this category")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n-1])) + "…"
}
