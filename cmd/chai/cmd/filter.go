package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/report"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
)

var filterCmd = &cobra.Command{
	Use:   "filter [set]",
	Short: "List the characters of a character set",
	Long: `List the repertoire's characters in a character set tier, in code point
order. Without a set, print how many characters each tier holds.

Sets: minimal, gb2312, general, basic, extended, supplementary, maximal

Example:
  chai filter general
  chai filter`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)
	filterCmd.Flags().Bool("plain", false, "no colors")
}

func runFilter(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	e, err := loadEngine(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprint(out, report.NewRenderer(plain).Counts(e.Repertoire.Count()))
		return nil
	}

	set, err := repertoire.ParseSet(args[0])
	if err != nil {
		return err
	}
	fmt.Fprintln(out, strings.Join(e.Repertoire.Filter(set), "\n"))
	return nil
}
