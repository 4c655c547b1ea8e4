package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/oxhq/veneer/internal/model"
)

// Load loads a .env file (if present, ignoring its absence) and then parses
// CLI flags into a model.Config, the same layering the teacher's
// db/sqlite_integration_test.go uses for its own environment setup.
func Load(args []string) (*model.Config, []string, error) {
	_ = godotenv.Load()

	fs := pflag.NewFlagSet("veneer", pflag.ContinueOnError)
	fs.Usage = func() { PrintUsage(fs) }

	root := fs.StringP("root", "r", ".", "Root directory to scan for templates.")
	include := fs.StringSlice("include", []string{"**/*.veneer"}, "Include file patterns (doublestar glob).")
	exclude := fs.StringSlice("exclude", nil, "Exclude file patterns (doublestar glob).")
	outDir := fs.StringP("out", "o", "", "Output directory (mirrors --root's tree). Required unless --stdout.")
	dsn := fs.String("db", envOr("VENEER_DATABASE_URL", "./veneer.db"), "Render-history database DSN (local path or libsql:// URL).")
	debug := fs.Bool("debug-sql", false, "Log SQL statements executed against the render-history database.")
	showDiff := fs.BoolP("diff", "d", false, "Print a diff against the prior render instead of writing output.")
	diffContext := fs.IntP("diff-context", "C", 3, "Lines of context for --diff.")
	verbose := fs.BoolP("verbose", "v", false, "Enable verbose per-file output.")
	jsonOutput := fs.BoolP("json", "j", false, "Output results as JSON.")
	stdout := fs.Bool("stdout", false, "Write rendered output to stdout instead of --out.")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	if !*stdout && *outDir == "" {
		fs.Usage()
		return nil, nil, fmt.Errorf("--out is required unless --stdout is set")
	}

	cfg := &model.Config{
		Root:        *root,
		Include:     *include,
		Exclude:     *exclude,
		OutDir:      *outDir,
		DSN:         *dsn,
		Debug:       *debug,
		ShowDiff:    *showDiff,
		DiffContext: *diffContext,
		Verbose:     *verbose,
		JSONOutput:  *jsonOutput,
		StdoutMode:  *stdout,
	}

	return cfg, fs.Args(), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
