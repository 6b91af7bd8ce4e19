package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/vokabel/internal/transfer"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import words from a JSON or YAML file",
	Long: `Import words from a JSON or YAML list of entries. Words already in the
vocabulary are skipped. Imported words start with a fresh learning history
unless --keep-progress is given. Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		keep, _ := cmd.Flags().GetBool("keep-progress")

		format, err := transfer.ParseFormat(formatName, args[0])
		if err != nil {
			return err
		}

		var r io.Reader = cmd.InOrStdin()
		if args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()
			r = f
		}
		incoming, err := transfer.Decode(r, format)
		if err != nil {
			return err
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		existing, err := st.Load(cmd.Context())
		if err != nil {
			return err
		}

		merged, res := transfer.Merge(existing, incoming, keep)
		if res.Added > 0 {
			if err := st.Save(cmd.Context(), merged); err != nil {
				return fmt.Errorf("save vocabulary: %w", err)
			}
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Imported %d word(s).\n", res.Added)
		if len(res.Skipped) > 0 {
			fmt.Fprintf(out, "Skipped %d already present: %s\n", len(res.Skipped), strings.Join(res.Skipped, ", "))
		}
		if len(res.Invalid) > 0 {
			fmt.Fprintf(out, "Skipped %d with missing fields: %s\n", len(res.Invalid), strings.Join(res.Invalid, ", "))
		}
		rt.log.WithField("added", res.Added).Info("vocabulary imported")
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the vocabulary as JSON or YAML",
	Long:  `Export the vocabulary, including learning history, to a file or to stdout when no file (or "-") is given.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "-"
		if len(args) == 1 {
			path = args[0]
		}
		formatName, _ := cmd.Flags().GetString("format")
		format, err := transfer.ParseFormat(formatName, path)
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

		if path == "-" {
			return transfer.Encode(cmd.OutOrStdout(), format, entries)
		}

		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create export file: %w", err)
		}
		if err := transfer.Encode(f, format, entries); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close export file: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d word(s) to %s.\n", len(entries), path)
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("format", "f", "", "Input format: json or yaml (default from the file extension)")
	importCmd.Flags().Bool("keep-progress", false, "Keep category, counters and example history from the file")
	exportCmd.Flags().StringP("format", "f", "", "Output format: json or yaml (default from the file extension)")
}
