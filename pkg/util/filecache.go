package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileCache provides read access to source files using memory-mapped regions.
//
// Module resolution revisits the same barrel files over and over while
// following re-export chains, so files stay mapped until Close(). Reads are
// O(1) byte slicing on the mapped region; only accessed pages are loaded
// into RAM. If mmap fails for a file the cache falls back to os.ReadFile.
//
// Thread-safe: parallel reads via RWMutex, exclusive loads. Counters have
// their own mutex so cache hits under the read lock can still bump them.
type FileCache struct {
	mu       sync.RWMutex
	mapped   map[string]*MappedFile
	fallback map[string][]byte
	logger   *slog.Logger

	statsMu sync.Mutex
	stats   FileCacheStats
}

// MappedFile is a memory-mapped source file.
type MappedFile struct {
	Path string
	Data mmap.MMap
	file *os.File
	Size int64
}

// FileCacheStats tracks cache behavior for observability.
type FileCacheStats struct {
	FilesCached  int
	CacheHits    int64
	CacheMisses  int64
	MmapFailures int64
}

// NewFileCache creates an empty cache. Logger may be nil.
func NewFileCache(logger *slog.Logger) *FileCache {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileCache{
		mapped:   make(map[string]*MappedFile),
		fallback: make(map[string][]byte),
		logger:   logger,
	}
}

// Read returns the contents of the file at path, loading and mapping it on
// first access. The returned slice aliases the mapped region and must not be
// modified or retained past Close().
func (fc *FileCache) Read(path string) ([]byte, error) {
	fc.mu.RLock()
	if mf, ok := fc.mapped[path]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return mf.Data, nil
	}
	if data, ok := fc.fallback[path]; ok {
		fc.mu.RUnlock()
		fc.recordHit()
		return data, nil
	}
	fc.mu.RUnlock()

	fc.mu.Lock()
	defer fc.mu.Unlock()

	// Double-check: another goroutine may have loaded it.
	if mf, ok := fc.mapped[path]; ok {
		fc.recordHit()
		return mf.Data, nil
	}
	if data, ok := fc.fallback[path]; ok {
		fc.recordHit()
		return data, nil
	}
	fc.recordMiss()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	// mmap rejects empty files; cache them in the fallback map.
	if info.Size() == 0 {
		f.Close()
		fc.fallback[path] = []byte{}
		return fc.fallback[path], nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		fc.recordMmapFailure()
		fc.logger.Warn("mmap failed, falling back to ReadFile",
			"path", path,
			"error", err)
		f.Close()
		raw, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("read %s: %w", path, rerr)
		}
		fc.fallback[path] = raw
		return raw, nil
	}

	mf := &MappedFile{Path: path, Data: data, file: f, Size: info.Size()}
	fc.mapped[path] = mf
	return mf.Data, nil
}

// Invalidate drops one file from the cache, unmapping it if mapped. Slices
// previously returned by Read for that path become invalid. Used when a
// watched file changes on disk.
func (fc *FileCache) Invalidate(path string) {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	if mf, ok := fc.mapped[path]; ok {
		if err := mf.Data.Unmap(); err != nil {
			fc.logger.Warn("unmap failed", "path", path, "error", err)
		}
		if mf.file != nil {
			mf.file.Close()
		}
		delete(fc.mapped, path)
	}
	delete(fc.fallback, path)
}

// Size returns the number of currently cached files.
func (fc *FileCache) Size() int {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	return len(fc.mapped) + len(fc.fallback)
}

// Stats returns a snapshot of cache metrics.
func (fc *FileCache) Stats() FileCacheStats {
	fc.mu.RLock()
	cached := len(fc.mapped) + len(fc.fallback)
	fc.mu.RUnlock()

	fc.statsMu.Lock()
	defer fc.statsMu.Unlock()
	s := fc.stats
	s.FilesCached = cached
	return s
}

func (fc *FileCache) recordHit() {
	fc.statsMu.Lock()
	fc.stats.CacheHits++
	fc.statsMu.Unlock()
}

func (fc *FileCache) recordMiss() {
	fc.statsMu.Lock()
	fc.stats.CacheMisses++
	fc.statsMu.Unlock()
}

func (fc *FileCache) recordMmapFailure() {
	fc.statsMu.Lock()
	fc.stats.MmapFailures++
	fc.statsMu.Unlock()
}

// Close unmaps all files and releases file descriptors. The cache is unusable
// afterwards; any slices previously returned by Read become invalid.
func (fc *FileCache) Close() error {
	fc.mu.Lock()
	defer fc.mu.Unlock()

	var firstErr error
	for path, mf := range fc.mapped {
		if err := mf.Data.Unmap(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("unmap %s: %w", path, err)
		}
		if mf.file != nil {
			mf.file.Close()
		}
	}
	fc.mapped = make(map[string]*MappedFile)
	fc.fallback = make(map[string][]byte)
	return firstErr
}
