package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/oxhq/veneer/internal/model"
	"github.com/oxhq/veneer/internal/util"
)

// PrintResultCLI reports the outcome of rendering a single template.
func PrintResultCLI(res *model.Result, cfg *model.Config) {
	if cfg.JSONOutput {
		if b, err := json.Marshal(res); err == nil {
			fmt.Println(string(b))
		} else {
			fmt.Fprintf(os.Stderr, "error converting result to JSON: %v\n", err)
		}
		return
	}

	if !res.Success {
		fmt.Fprintf(os.Stderr, "✗ %s: %s (%s)\n", res.SourcePath, res.Error, res.ErrorCode)
		return
	}

	if cfg.ShowDiff {
		diff := util.UnifiedDiff(res.PreviousOutput, res.Output, res.SourcePath, cfg.DiffContext, true)
		if diff == "" {
			fmt.Printf("= %s — no change\n", res.SourcePath)
		} else {
			fmt.Print(diff)
		}
		return
	}

	if cfg.StdoutMode {
		fmt.Print(res.Output)
		return
	}

	if cfg.Verbose {
		fmt.Printf("✓ %s -> %s (%dms)\n", res.SourcePath, res.OutputPath, res.DurationMS)
		return
	}

	fmt.Printf("✓ %s\n", res.SourcePath)
}

// PrintFatal reports an error that aborted the whole run.
func PrintFatal(err error, jsonOut bool) {
	if jsonOut {
		fmt.Printf("{\"error\":%q}\n", err.Error())
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

// PrintSummary reports how many templates rendered successfully across a
// render-dir run.
func PrintSummary(summary model.Summary, cfg *model.Config) {
	if cfg.JSONOutput || cfg.StdoutMode {
		return
	}
	fmt.Fprintf(os.Stderr, "\nrendered %d, failed %d\n", summary.FilesRendered, summary.FilesFailed)
}

// PrintUsage prints the CLI's flag usage.
func PrintUsage(fs *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, "\nUsage: veneer [flags] [template files...]\n")
	fmt.Fprintf(os.Stderr, "\nFlags:\n")
	fs.PrintDefaults()
}
