package core

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
)

// FileWalker provides high-performance parallel file system traversal for
// discovering template sources.
type FileWalker struct {
	workers    int
	bufferSize int
}

// NewFileWalker creates a new file walker optimized for performance.
func NewFileWalker() *FileWalker {
	return &FileWalker{
		workers:    runtime.NumCPU() * 2, // 2x CPU cores for I/O bound work
		bufferSize: 1000,
	}
}

// WalkResult represents a discovered template file.
type WalkResult struct {
	Path  string
	Info  fs.FileInfo
	Error error
}

// Walk performs parallel directory traversal with pattern matching.
func (fw *FileWalker) Walk(ctx context.Context, scope FileScope) (<-chan WalkResult, error) {
	if err := fw.validateScope(scope); err != nil {
		return nil, err
	}

	results := make(chan WalkResult, fw.bufferSize)
	paths := make(chan string, fw.bufferSize)

	var wg sync.WaitGroup
	for i := 0; i < fw.workers; i++ {
		wg.Add(1)
		go fw.worker(ctx, paths, results, &wg)
	}

	go func() {
		defer close(paths)
		processed := 0
		var visited map[string]struct{}
		if scope.FollowSymlinks {
			visited = make(map[string]struct{})
			if resolved, err := filepath.EvalSymlinks(scope.Path); err == nil {
				visited[resolved] = struct{}{}
			} else {
				visited[scope.Path] = struct{}{}
			}
		}
		fw.scanDirectory(ctx, scope.Path, scope, paths, 0, &processed, visited)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	return results, nil
}

func (fw *FileWalker) worker(
	ctx context.Context,
	paths <-chan string,
	results chan<- WalkResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-paths:
			if !ok {
				return
			}
			result := fw.processFile(path)
			select {
			case <-ctx.Done():
				return
			case results <- result:
			}
		}
	}
}

// scanDirectory recursively discovers files matching patterns.
func (fw *FileWalker) scanDirectory(
	ctx context.Context,
	dirPath string,
	scope FileScope,
	paths chan<- string,
	depth int,
	processed *int,
	visited map[string]struct{},
) {
	if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
		return
	}
	select {
	case <-ctx.Done():
		return
	default:
	}

	if scope.MaxDepth > 0 && depth > scope.MaxDepth {
		return
	}

	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return // Skip directories we can't read
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		fullPath := filepath.Join(dirPath, entry.Name())

		if fw.isExcluded(fullPath, scope.Exclude) {
			continue
		}

		if entry.Type()&os.ModeSymlink != 0 && scope.FollowSymlinks {
			resolvedPath, err := filepath.EvalSymlinks(fullPath)
			if err != nil || resolvedPath == "" {
				continue
			}
			info, err := os.Stat(resolvedPath)
			if err != nil {
				continue
			}
			if info.IsDir() {
				if visited != nil {
					if _, seen := visited[resolvedPath]; seen {
						continue
					}
					visited[resolvedPath] = struct{}{}
				}
				fw.scanDirectory(ctx, fullPath, scope, paths, depth+1, processed, visited)
				continue
			}
		}

		if entry.IsDir() {
			if visited != nil {
				realPath := fullPath
				if resolved, err := filepath.EvalSymlinks(fullPath); err == nil && resolved != "" {
					realPath = resolved
				}
				if _, seen := visited[realPath]; seen {
					continue
				}
				visited[realPath] = struct{}{}
			}
			fw.scanDirectory(ctx, fullPath, scope, paths, depth+1, processed, visited)
			continue
		}

		if fw.isIncluded(fullPath, scope.Include) {
			if scope.MaxFiles > 0 && *processed >= scope.MaxFiles {
				return
			}
			select {
			case <-ctx.Done():
				return
			case paths <- fullPath:
				*processed++
			}
		}
	}
}

func (fw *FileWalker) processFile(path string) WalkResult {
	info, err := os.Stat(path)
	if err != nil {
		return WalkResult{Path: path, Error: err}
	}
	return WalkResult{Path: path, Info: info}
}

func (fw *FileWalker) isIncluded(path string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	for _, pattern := range patterns {
		if fw.matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

func (fw *FileWalker) isExcluded(path string, patterns []string) bool {
	for _, pattern := range patterns {
		if fw.matchPattern(path, pattern) {
			return true
		}
	}
	return false
}

// matchPattern performs glob-style pattern matching with ** support.
func (fw *FileWalker) matchPattern(path, pattern string) bool {
	if matched, err := doublestar.PathMatch(pattern, path); err == nil && matched {
		return true
	}
	if !strings.Contains(pattern, "/") {
		basename := filepath.Base(path)
		if matched, err := doublestar.PathMatch(pattern, basename); err == nil && matched {
			return true
		}
	}
	return false
}

func (fw *FileWalker) validateScope(scope FileScope) error {
	if scope.Path == "" {
		return fmt.Errorf("path is required")
	}
	info, err := os.Stat(scope.Path)
	if err != nil {
		return fmt.Errorf("cannot access path %s: %w", scope.Path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path %s is not a directory", scope.Path)
	}
	return nil
}

// FastScan performs file discovery without reporting stat errors.
func (fw *FileWalker) FastScan(ctx context.Context, scope FileScope) ([]string, error) {
	var files []string
	var mu sync.Mutex

	results, err := fw.Walk(ctx, scope)
	if err != nil {
		return nil, err
	}

	for result := range results {
		if result.Error != nil {
			continue
		}
		mu.Lock()
		files = append(files, result.Path)
		mu.Unlock()
	}

	return files, nil
}
