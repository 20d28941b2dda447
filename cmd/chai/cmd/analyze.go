package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/report"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <characters>",
	Short: "Show the decomposition and codes of characters",
	Long: `Decompose each character into roots and show the chosen scheme, its
criteria vector, how many candidates there were and the resulting codes.

Example:
  chai analyze 天
  chai analyze 天地人`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	analyzeCmd.Flags().Bool("plain", false, "no colors")
	analyzeCmd.Flags().String("template", "", "Go template for each analysis")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	tmpl, _ := cmd.Flags().GetString("template")

	e, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}

	r := report.NewRenderer(plain)
	if tmpl != "" {
		if err := r.SetTemplate(tmpl); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	failed := make(map[string]error)
	for _, char := range strings.Join(args, "") {
		name := string(char)
		a, err := e.Analyzer.Analyze(name)
		if err != nil {
			failed[name] = err
			continue
		}
		codes, err := e.Assembler.EncodeChar(e.Character(a))
		if err != nil {
			logger.Warn("encoding failed", "char", name, "err", err)
		}
		text, err := r.Analysis(a, codes)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
		fmt.Fprintln(out)
	}

	if len(failed) > 0 {
		fmt.Fprint(out, r.Failures(failed))
		return fmt.Errorf("%d of %d characters failed", len(failed), len([]rune(strings.Join(args, ""))))
	}
	return nil
}
