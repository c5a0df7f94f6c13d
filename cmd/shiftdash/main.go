package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"shiftdash/pkg/engine"
	"shiftdash/pkg/report"
	"shiftdash/pkg/schema"
)

// shiftdash is the offline twin of the browser build: the same pipeline run
// against local CSV files, for debugging a site's exports without a browser.

type buildOptions struct {
	settingsFile string
	targetDate   string
	pretty       bool
}

func newBuildCmd() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build [files...]",
		Short: "Run the attendance report build against local CSV files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBuild(cmd, args, opts)
		},
	}

	cmd.Flags().StringVar(&opts.settingsFile, "settings", "", "Settings JSON file (optional; empty settings bucket everything to unknown)")
	cmd.Flags().StringVar(&opts.targetDate, "date", "", "Target date YYYY-MM-DD (default: most recent work date in the data)")
	cmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Indent the output JSON")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string, opts buildOptions) error {
	var settingsData []byte
	if opts.settingsFile != "" {
		data, err := os.ReadFile(opts.settingsFile)
		if err != nil {
			return fmt.Errorf("reading settings: %w", err)
		}
		settingsData = data
	}
	settings := schema.ParseSettings(settingsData)

	inputs := make([]engine.Input, 0, len(args))
	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		inputs = append(inputs, engine.ParseInput(filepath.Base(path), data))
	}

	result, err := report.BuildAll(inputs, settings, opts.targetDate, report.Options{})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	if opts.pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(result)
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [files...]",
		Short: "Show how each file would be classified, without building",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				in := engine.ParseInput(filepath.Base(path), data)
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%d rows\n", in.Name, in.Kind, len(in.Records))
			}
			return nil
		},
	}
}

func main() {
	root := &cobra.Command{
		Use:   "shiftdash",
		Short: "Daily attendance report builder",
	}
	root.AddCommand(newBuildCmd())
	root.AddCommand(newClassifyCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
