// Package cmd contains all CLI commands for the chai tool.
package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/config"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/repertoire"
	"github.com/hanzi-chai/hanzi-chai.github.io-sub002/internal/worker"
)

// configFile is the scheme file looked up in the config directory.
const configFile = "chai.yaml"

var (
	cfgDir string
	logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "chai"})
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "chai",
	Short: "Decompose Chinese characters into roots and assemble input codes",
	Long: `chai analyzes Chinese characters with a shape-based input scheme.

Each character's glyph is split into the scheme's roots, the best split is
chosen by an ordered list of criteria, and the roots and readings are
assembled into codes following the scheme's encoder rules.

The scheme is read from chai.yaml in the config directory, or from the file
given with --scheme.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if viper.GetBool("verbose") {
			logger.SetLevel(log.DebugLevel)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default is $HOME/.config/chai)")
	rootCmd.PersistentFlags().String("scheme", "", "scheme file or URL (default is chai.yaml in the config directory)")
	rootCmd.PersistentFlags().String("repertoire", "", "repertoire file or URL (default is data.repertoire of the scheme)")
	rootCmd.PersistentFlags().Bool("verbose", false, "verbose output")
	rootCmd.PersistentFlags().Int("workers", 0, "parallel analyses (default is one per CPU)")

	viper.BindPFlag("scheme", rootCmd.PersistentFlags().Lookup("scheme"))
	viper.BindPFlag("repertoire", rootCmd.PersistentFlags().Lookup("repertoire"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("workers", rootCmd.PersistentFlags().Lookup("workers"))
}

// initConfig reads in ENV variables and settles the config directory.
func initConfig() {
	if cfgDir != "" {
		viper.Set("config_dir", cfgDir)
	} else {
		dir, err := config.GetConfigDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error finding home directory:", err)
			os.Exit(1)
		}
		viper.SetDefault("config_dir", dir)
	}

	viper.SetEnvPrefix("CHAI")
	viper.AutomaticEnv()
}

// getConfigDir returns the configuration directory path.
func getConfigDir() string {
	return viper.GetString("config_dir")
}

// schemeLocation returns where the scheme is read from.
func schemeLocation() string {
	if s := viper.GetString("scheme"); s != "" {
		return s
	}
	return filepath.Join(getConfigDir(), configFile)
}

// resolve makes a data location from the scheme relative to the scheme's
// directory. URLs and absolute paths are kept.
func resolve(location string) string {
	if location == "" || filepath.IsAbs(location) || strings.Contains(location, "://") {
		return location
	}
	scheme := schemeLocation()
	if strings.Contains(scheme, "://") {
		return scheme[:strings.LastIndex(scheme, "/")+1] + location
	}
	return filepath.Join(filepath.Dir(scheme), location)
}

func loadScheme(ctx context.Context) (*config.Config, error) {
	location := schemeLocation()
	logger.Debug("loading scheme", "location", location)
	cfg, err := config.Load(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("loading scheme: %w\nRun 'chai init' to create one", err)
	}
	return cfg, nil
}

// loadEngine reads the scheme and its repertoire and builds the engine.
func loadEngine(ctx context.Context) (*worker.Engine, error) {
	cfg, err := loadScheme(ctx)
	if err != nil {
		return nil, err
	}

	location := viper.GetString("repertoire")
	if location == "" {
		location = resolve(cfg.Data.Repertoire)
	}
	if location == "" {
		return nil, fmt.Errorf("no repertoire: set data.repertoire or pass --repertoire")
	}

	logger.Debug("loading repertoire", "location", location)
	rep, err := repertoire.Load(ctx, location)
	if err != nil {
		return nil, err
	}
	logger.Debug("repertoire loaded", "characters", rep.Size())

	return worker.NewEngine(cfg, rep)
}

func batchOptions() worker.Options {
	return worker.Options{Workers: viper.GetInt("workers"), Logger: logger}
}
