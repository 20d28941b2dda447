package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/assemble"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/chai"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/report"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/store"
)

var encodeCmd = &cobra.Command{
	Use:   "encode",
	Short: "Assemble the codebook of a character set and dictionary",
	Long: `Analyze every character of a character set, encode it and every word of
the dictionary, and write the codebook as tab-separated word, code and
frequency lines, most frequent first.

Characters and words that cannot be encoded are reported and skipped.

Example:
  chai encode --set general -o codes.txt
  chai encode --sqlite codes.db`,
	RunE: runEncode,
}

func init() {
	rootCmd.AddCommand(encodeCmd)
	encodeCmd.Flags().String("set", "", "character set (default is data.characters of the scheme, or general)")
	encodeCmd.Flags().String("dictionary", "", "dictionary file or URL (default is data.dictionary of the scheme)")
	encodeCmd.Flags().StringP("output", "o", "-", "codebook file, - for stdout")
	encodeCmd.Flags().String("sqlite", "", "also write the codebook to this SQLite database")
	encodeCmd.Flags().Bool("table", false, "print aligned columns instead of tab-separated lines")
}

func runEncode(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	setName, _ := cmd.Flags().GetString("set")
	dictLocation, _ := cmd.Flags().GetString("dictionary")
	output, _ := cmd.Flags().GetString("output")
	sqlitePath, _ := cmd.Flags().GetString("sqlite")
	table, _ := cmd.Flags().GetBool("table")

	e, err := loadEngine(ctx)
	if err != nil {
		return err
	}

	if setName == "" {
		setName = e.Config.Data.Characters
	}
	if setName == "" {
		setName = string(repertoire.General)
	}
	set, err := repertoire.ParseSet(setName)
	if err != nil {
		return err
	}
	names := e.Repertoire.Filter(set)

	if dictLocation == "" {
		dictLocation = resolve(e.Config.Data.Dictionary)
	}
	var dict []chai.DictEntry
	if dictLocation != "" {
		if dict, err = assemble.LoadDictionary(ctx, dictLocation); err != nil {
			return err
		}
	}

	logger.Info("encoding", "set", set, "characters", len(names), "words", len(dict))
	entries, failed, err := e.Encode(ctx, names, dict, batchOptions())
	if err != nil {
		return err
	}
	logger.Info("encoded", "entries", len(entries), "failed", len(failed))

	if err := writeCodebook(cmd.OutOrStdout(), output, entries, table); err != nil {
		return err
	}

	if sqlitePath != "" {
		if err := writeSQLite(cmd, sqlitePath, e.Config.Info.Name, e.Config.Info.Version, entries); err != nil {
			return err
		}
	}

	if len(failed) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), report.NewRenderer(true).Failures(failed))
	}
	return nil
}

func writeCodebook(stdout io.Writer, output string, entries []chai.CodeEntry, table bool) error {
	w := stdout
	if output != "-" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if table {
		_, err := io.WriteString(w, report.NewRenderer(output != "-").Codebook(entries))
		return err
	}
	return assemble.WriteCodebook(w, entries)
}

func writeSQLite(cmd *cobra.Command, path, name, version string, entries []chai.CodeEntry) error {
	book, err := store.Open(path)
	if err != nil {
		return err
	}
	defer book.Close()

	meta := map[string]string{store.MetaScheme: name, store.MetaVersion: version}
	if err := book.Write(cmd.Context(), entries, meta); err != nil {
		return err
	}
	logger.Info("codebook stored", "path", path)
	return nil
}
