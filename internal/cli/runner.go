// Package cli orchestrates a render run: discover template files, render
// each one through internal/tmpl and internal/render, write the output
// atomically, and record one models.RenderLog row per file.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/oxhq/veneer/db"
	"github.com/oxhq/veneer/internal/globals"
	"github.com/oxhq/veneer/internal/hostvm"
	"github.com/oxhq/veneer/internal/model"
	"github.com/oxhq/veneer/internal/object"
	"github.com/oxhq/veneer/internal/render"
	"github.com/oxhq/veneer/internal/scope"
	"github.com/oxhq/veneer/internal/symbol"
	"github.com/oxhq/veneer/internal/tmpl"
	"github.com/oxhq/veneer/models"

	"github.com/oxhq/veneer/core"
)

// Runner holds the collaborators a render run needs: file discovery,
// atomic output writing, and render-history persistence.
type Runner struct {
	Walker *core.FileWalker
	Writer *core.AtomicWriter
	DB     *gorm.DB

	Workers int // 0 means runtime.NumCPU()
}

// NewRunner connects the render-history database and wires up a Runner.
func NewRunner(cfg *model.Config) (*Runner, error) {
	conn, err := db.Connect(cfg.DSN, cfg.Debug)
	if err != nil {
		return nil, fmt.Errorf("connecting render-history database: %w", err)
	}
	return &Runner{
		Walker: core.NewFileWalker(),
		Writer: core.NewAtomicWriter(core.DefaultAtomicConfig()),
		DB:     conn,
	}, nil
}

// Run discovers templates under cfg.Root matching cfg.Include/Exclude,
// renders each one, and returns a Summary plus a Result per file.
func (r *Runner) Run(ctx context.Context, cfg *model.Config) (model.Summary, []model.Result, error) {
	files, err := r.Walker.FastScan(ctx, core.FileScope{
		Path:    cfg.Root,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return model.Summary{}, nil, fmt.Errorf("scanning for templates: %w", err)
	}
	if len(files) == 0 {
		return model.Summary{}, nil, model.ErrNoTemplatesFound
	}
	sort.Strings(files)

	session := &models.RenderSession{
		ID:       uuid.NewString(),
		RootPath: cfg.Root,
	}
	if err := r.DB.Create(session).Error; err != nil {
		return model.Summary{}, nil, fmt.Errorf("recording render session: %w", err)
	}

	results := make([]model.Result, len(files))
	workers := r.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan int, len(files))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.renderOne(session.ID, cfg, files[i])
			}
		}()
	}
	for i := range files {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var summary model.Summary
	for _, res := range results {
		if res.Success {
			summary.FilesRendered++
		} else {
			summary.FilesFailed++
		}
	}

	now := time.Now()
	r.DB.Model(session).Updates(map[string]any{
		"ended_at":     &now,
		"files_count":  len(files),
		"errors_count": summary.FilesFailed,
	})

	return summary, results, nil
}

// RenderFile renders a single template file under its own one-file render
// session, for the `render` subcommand's ad-hoc single-file use.
func (r *Runner) RenderFile(ctx context.Context, cfg *model.Config, path string) (model.Result, error) {
	session := &models.RenderSession{ID: uuid.NewString(), RootPath: path}
	if err := r.DB.Create(session).Error; err != nil {
		return model.Result{}, fmt.Errorf("recording render session: %w", err)
	}
	res := r.renderOne(session.ID, cfg, path)

	now := time.Now()
	errCount := 0
	if !res.Success {
		errCount = 1
	}
	r.DB.Model(session).Updates(map[string]any{
		"ended_at":     &now,
		"files_count":  1,
		"errors_count": errCount,
	})
	return res, nil
}

// renderOne renders a single template file and records the attempt. It
// uses a named return so the deferred duration/log write always observes
// the final result, including on early-return error paths.
func (r *Runner) renderOne(sessionID string, cfg *model.Config, path string) (res model.Result) {
	start := time.Now()
	res.SourcePath = path

	logRow := &models.RenderLog{
		ID:         uuid.NewString(),
		SessionID:  sessionID,
		SourcePath: path,
	}
	defer func() {
		res.DurationMS = time.Since(start).Milliseconds()
		logRow.DurationMS = res.DurationMS
		r.DB.Create(logRow)
	}()

	fail := func(code model.ErrorCode, err error) {
		res.Success = false
		res.ErrorCode = code
		res.Error = err.Error()
		logRow.Status = models.ErrorCode(code)
		logRow.ErrorText = err.Error()
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fail(model.ErrorCodeIO, err)
		return
	}

	bindings, bindingNames, err := loadBindings(path)
	if err != nil {
		fail(model.ErrorCodeIO, err)
		return
	}
	if b, err := json.Marshal(bindingNames); err == nil {
		logRow.Bindings = b
	}

	vm := hostvm.NewMapViewModel(bindings, globals.NewDefaultRegistry())
	t, err := tmpl.Parse(string(source), nil, nil)
	if err != nil {
		fail(model.ErrorCodeParse, err)
		return
	}

	output, err := render.Render(t, scope.New(vm))
	if err != nil {
		fail(model.ErrorCodeScript, err)
		return
	}
	res.Output = output

	outPath := outputPath(cfg, path)
	res.OutputPath = outPath

	if cfg.ShowDiff {
		if prev, err := os.ReadFile(outPath); err == nil {
			res.PreviousOutput = string(prev)
		}
	} else if !cfg.StdoutMode {
		if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
			fail(model.ErrorCodeIO, err)
			return
		}
		if err := r.Writer.WriteFile(outPath, output); err != nil {
			fail(model.ErrorCodeIO, err)
			return
		}
	}

	res.Success = true
	logRow.Status = models.ErrorCodeNone
	logRow.OutputPath = outPath
	return
}

// outputPath mirrors cfg.Root's relative layout under cfg.OutDir, swapping
// a .veneer extension for .html.
func outputPath(cfg *model.Config, sourcePath string) string {
	rel, err := filepath.Rel(cfg.Root, sourcePath)
	if err != nil {
		rel = filepath.Base(sourcePath)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".html"
	return filepath.Join(cfg.OutDir, rel)
}

// loadBindings reads an optional `<path>.json` sidecar of flat top-level
// bindings for the template, returning the constructed attribute map and
// the sorted list of binding names (for RenderLog.Bindings).
func loadBindings(templatePath string) (map[symbol.Symbol]object.Object, []string, error) {
	sidecar := templatePath + ".json"
	raw, err := os.ReadFile(sidecar)
	if os.IsNotExist(err) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, nil, fmt.Errorf("parsing bindings %s: %w", sidecar, err)
	}

	attrs := make(map[symbol.Symbol]object.Object, len(fields))
	names := make([]string, 0, len(fields))
	for k, v := range fields {
		attrs[symbol.Intern(k)] = jsonToObject(v)
		names = append(names, k)
	}
	sort.Strings(names)
	return attrs, names, nil
}

func jsonToObject(v any) object.Object {
	switch x := v.(type) {
	case nil:
		return object.Nil
	case bool:
		return object.Bool(x)
	case float64:
		return object.NewNumber(x)
	case string:
		return object.NewString(x)
	case []any:
		elems := make([]object.Object, len(x))
		for i, e := range x {
			elems[i] = jsonToObject(e)
		}
		return object.NewArray(elems)
	case map[string]any:
		h := object.NewHash()
		for k, e := range x {
			h.Set(object.NewString(k), jsonToObject(e))
		}
		return h
	default:
		return object.NewString(fmt.Sprint(x))
	}
}
