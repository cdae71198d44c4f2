package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gnana997/tsmeta/pkg/extractor"
	"github.com/gnana997/tsmeta/pkg/util"
)

// runExtract discovers matching source files and writes their extracted
// metadata as a JSON array on stdout.
func runExtract(globs []string) error {
	cfg, err := loadProjectConfig()
	if err != nil {
		return fmt.Errorf("load project config: %w", err)
	}

	st, err := buildStack(cfg)
	if err != nil {
		return err
	}
	defer st.close()

	files, err := discoverFiles(".", resolveIncludes(globs, cfg), resolveExcludes(cfg))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		st.logger.Warn("no files matched")
		fmt.Println("[]")
		return nil
	}

	results := extractParallel(st, files)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// discoverFiles walks the tree under root collecting files that match an
// include pattern and no exclude pattern. Excluded directories are pruned.
func discoverFiles(root string, include, exclude []string) ([]string, error) {
	for _, pattern := range include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		relPath, rerr := filepath.Rel(root, path)
		if rerr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		for _, pattern := range exclude {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
		}
		if d.IsDir() {
			return nil
		}

		for _, pattern := range include {
			if matched, _ := doublestar.PathMatch(pattern, relPath); matched {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// extractParallel runs extraction across a worker pool sized to the parser
// pool and returns results in discovery order. Failed files are logged and
// skipped.
func extractParallel(st *stack, files []string) []*extractor.Metadata {
	numWorkers := util.GetOptimalPoolSize()
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	type job struct {
		index int
		path  string
	}
	jobs := make(chan job)
	slots := make([]*extractor.Metadata, len(files))

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				meta, err := st.extractor.ExtractFile(j.path)
				if err != nil {
					st.logger.Warn("extraction failed", "file", j.path, "error", err)
					continue
				}
				slots[j.index] = meta
			}
		}()
	}
	for i, path := range files {
		jobs <- job{index: i, path: path}
	}
	close(jobs)
	wg.Wait()

	results := make([]*extractor.Metadata, 0, len(files))
	for _, meta := range slots {
		if meta != nil {
			results = append(results, meta)
		}
	}
	return results
}
