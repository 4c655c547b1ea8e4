// Command veneer renders template files through the embedded scripting
// language's evaluator and records each render in a history database.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oxhq/veneer/internal/cli"
	"github.com/oxhq/veneer/internal/config"
	"github.com/oxhq/veneer/internal/model"
	"github.com/oxhq/veneer/internal/util"
)

func main() {
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "veneer",
		Short: "Render .veneer templates",
	}

	root.AddCommand(newRenderCmd(), newRenderDirCmd(), newDiffCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRenderCmd() *cobra.Command {
	var cfg model.Config

	cmd := &cobra.Command{
		Use:   "render <file>",
		Short: "Render a single template file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := cli.NewRunner(&cfg)
			if err != nil {
				config.PrintFatal(err, cfg.JSONOutput)
				os.Exit(1)
			}

			cfg.Root = filepath.Dir(args[0])
			res, err := runner.RenderFile(context.Background(), &cfg, args[0])
			if err != nil {
				config.PrintFatal(err, cfg.JSONOutput)
				os.Exit(1)
			}
			config.PrintResultCLI(&res, &cfg)
			if !res.Success {
				os.Exit(1)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.OutDir, "out", "o", "", "Output directory; the rendered file keeps its base name with a .html extension.")
	fs.StringVar(&cfg.DSN, "db", "./veneer.db", "Render-history database DSN.")
	fs.BoolVar(&cfg.Debug, "debug-sql", false, "Log SQL statements.")
	fs.BoolVarP(&cfg.ShowDiff, "diff", "d", false, "Print a diff against the prior render instead of writing it.")
	fs.IntVarP(&cfg.DiffContext, "diff-context", "C", 3, "Lines of context for --diff.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose output.")
	fs.BoolVarP(&cfg.JSONOutput, "json", "j", false, "Output the result as JSON.")
	fs.BoolVar(&cfg.StdoutMode, "stdout", true, "Write rendered output to stdout instead of --out.")

	return cmd
}

func newRenderDirCmd() *cobra.Command {
	var cfg model.Config

	cmd := &cobra.Command{
		Use:   "render-dir",
		Short: "Render every template matching --include under --root",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := cli.NewRunner(&cfg)
			if err != nil {
				config.PrintFatal(err, cfg.JSONOutput)
				os.Exit(1)
			}

			summary, results, err := runner.Run(context.Background(), &cfg)
			if err != nil {
				config.PrintFatal(err, cfg.JSONOutput)
				os.Exit(1)
			}

			exitCode := 0
			for i := range results {
				config.PrintResultCLI(&results[i], &cfg)
				if !results[i].Success {
					exitCode = 1
				}
			}
			config.PrintSummary(summary, &cfg)
			if exitCode != 0 {
				os.Exit(exitCode)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&cfg.Root, "root", "r", ".", "Root directory to scan for templates.")
	fs.StringSliceVar(&cfg.Include, "include", []string{"**/*.veneer"}, "Include file patterns (doublestar glob).")
	fs.StringSliceVar(&cfg.Exclude, "exclude", nil, "Exclude file patterns (doublestar glob).")
	fs.StringVarP(&cfg.OutDir, "out", "o", "", "Output directory (mirrors --root's tree).")
	fs.StringVar(&cfg.DSN, "db", "./veneer.db", "Render-history database DSN.")
	fs.BoolVar(&cfg.Debug, "debug-sql", false, "Log SQL statements.")
	fs.BoolVarP(&cfg.ShowDiff, "diff", "d", false, "Print a diff against the prior render instead of writing it.")
	fs.IntVarP(&cfg.DiffContext, "diff-context", "C", 3, "Lines of context for --diff.")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable verbose per-file output.")
	fs.BoolVarP(&cfg.JSONOutput, "json", "j", false, "Output results as JSON.")
	fs.BoolVar(&cfg.StdoutMode, "stdout", false, "Write rendered output to stdout instead of --out.")
	cmd.MarkFlagsOneRequired("out", "stdout")

	return cmd
}

func newDiffCmd() *cobra.Command {
	var context int

	cmd := &cobra.Command{
		Use:   "diff <old-output> <new-output>",
		Short: "Print a unified diff between two prior render outputs",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			oldContent, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			newContent, err := os.ReadFile(args[1])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[1], err)
			}
			fmt.Print(util.UnifiedDiff(string(oldContent), string(newContent), args[1], context, true))
			return nil
		},
	}

	cmd.Flags().IntVarP(&context, "context", "C", 3, "Lines of context.")
	return cmd
}
