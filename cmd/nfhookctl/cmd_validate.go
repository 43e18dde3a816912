package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/corehook/nfhook/pkg/nfhook"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Load a chain config and print the resulting registration order",
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ns := nfhook.NewNamespace(nfhook.WithLogger(logger))
	dev := ns.RegisterDevice("nfhookctl0")

	for i, e := range cfg.Entries {
		ops, err := e.buildOps(dev)
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if err := ns.Register(ops); err != nil {
			return fmt.Errorf("entry %d: registering: %w", i, err)
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FAMILY\tHOOK\tPRIORITY\tPLUGIN")
	for _, e := range cfg.Entries {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\n", e.Family, e.Hook, e.Priority, e.Plugin)
	}
	return w.Flush()
}
