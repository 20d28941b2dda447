package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize chai configuration",
	Long: `Initialize a scheme template in your config directory.

This creates chai.yaml with:
  - form.mapping       (stroke classes and roots → keys)
  - form.selector      (criteria choosing among decompositions)
  - encoder.char_rules (which roots and sounds make a character's code)
  - encoder.word_rules (how character codes combine into word codes)

Edit the file, point data.repertoire at a repertoire, then run
'chai analyze <characters>'.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir, err := config.EnsureConfigDir(getConfigDir())
	if err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	path := filepath.Join(configDir, configFile)

	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	}
	if err := config.Save(path, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit form.mapping to choose your roots and keys")
	fmt.Fprintln(out, "  2. Run 'chai analyze <characters>' to check decompositions")
	fmt.Fprintln(out, "  3. Run 'chai encode' to assemble the codebook")
	return nil
}
