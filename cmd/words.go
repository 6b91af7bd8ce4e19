package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/store"
	"github.com/abhisek/vokabel/internal/vocab"
)

var addCmd = &cobra.Command{
	Use:   "add <word>",
	Short: "Add a word to the vocabulary",
	Example: `  vokabel add Hund --pos noun --gender der --definition dog --example "Der Hund bellt."
  vokabel add laufen --pos verb --definition "to run" --example "Ich laufe jeden Tag."`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fields := vocab.Fields{Word: args[0]}
		readFieldFlags(cmd, &fields)

		e, err := vocab.NewEntry(fields)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		entries, err := st.Load(cmd.Context())
		if err != nil {
			return err
		}
		if store.IndexOf(entries, e.Word) >= 0 {
			fmt.Fprintf(cmd.ErrOrStderr(), "Note: %q is already in the vocabulary.\n", e.Word)
		}

		if _, err := st.Add(cmd.Context(), e); err != nil {
			return fmt.Errorf("add word: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %q.\n", e.Word)
		return nil
	},
}

var editCmd = &cobra.Command{
	Use:   "edit <word>",
	Short: "Edit a word; only the given fields change",
	Long: `Edit the first entry matching <word> (case-insensitive). Fields not
passed as flags keep their value, and the learning history is preserved.`,
	Example: `  vokabel edit Hund --definition "dog, hound"
  vokabel edit Hund --word Hündin --gender die`,
	Args: cobra.ExactArgs(1),
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

		fields := vocab.FieldsOf(entries[i])
		if cmd.Flags().Changed("word") {
			fields.Word, _ = cmd.Flags().GetString("word")
		}
		readFieldFlags(cmd, &fields)

		updated, err := vocab.Update(entries[i], fields)
		if err != nil {
			return err
		}
		if _, err := st.Replace(cmd.Context(), i, updated); err != nil {
			return fmt.Errorf("edit word: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %q.\n", updated.Word)
		return nil
	},
}

var rmCmd = &cobra.Command{
	Use:     "rm <word>",
	Aliases: []string{"remove", "delete"},
	Short:   "Remove a word from the vocabulary",
	Args:    cobra.ExactArgs(1),
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
		removed, err := st.Delete(cmd.Context(), i)
		if err != nil {
			return fmt.Errorf("remove word: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %q.\n", removed.Word)
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{addCmd, editCmd} {
		c.Flags().StringP("pos", "p", "", "Part of speech: "+joinPOS())
		c.Flags().StringP("gender", "g", "", "Gender for nouns: der, die or das")
		c.Flags().StringP("definition", "d", "", "English definition")
		c.Flags().StringP("example", "e", "", "German example sentence")
	}
	editCmd.Flags().StringP("word", "w", "", "New spelling of the word")
}

// readFieldFlags copies every explicitly set field flag into f.
func readFieldFlags(cmd *cobra.Command, f *vocab.Fields) {
	if cmd.Flags().Changed("pos") {
		pos, _ := cmd.Flags().GetString("pos")
		f.PartOfSpeech = vocab.PartOfSpeech(pos)
	}
	if cmd.Flags().Changed("gender") {
		f.Gender, _ = cmd.Flags().GetString("gender")
	}
	if cmd.Flags().Changed("definition") {
		f.Definition, _ = cmd.Flags().GetString("definition")
	}
	if cmd.Flags().Changed("example") {
		f.Example, _ = cmd.Flags().GetString("example")
	}
}

func joinPOS() string {
	names := make([]string, len(vocab.PartsOfSpeech))
	for i, p := range vocab.PartsOfSpeech {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}
