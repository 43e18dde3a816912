// Command nfhookctl loads a declarative hook-chain configuration, wires it
// through pkg/nfplugin and pkg/nfhook, and either validates it or runs a
// synthetic packet through the resulting chains — a bench tool for
// exercising the registry and verdict engine without a real network stack.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	logger  *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "nfhookctl",
	Short: "Inspect and exercise nfhook chain configurations",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if viper.GetBool("verbose") {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})).
			With("component", "nfhookctl")
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "chain config file (YAML or JSON)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func loadConfig() (*ChainConfig, error) {
	if cfgFile == "" {
		return nil, fmt.Errorf("--config is required")
	}
	v := viper.New()
	v.SetConfigFile(cfgFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config %q: %w", cfgFile, err)
	}
	var cfg ChainConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config %q: %w", cfgFile, err)
	}
	return &cfg, nil
}
