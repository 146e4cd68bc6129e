package discovery

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/home-lang/den/concurrency"
	"github.com/home-lang/den/log"
)

// Filter decides whether a directory entry belongs in a scan result.
type Filter func(dir string, entry fs.DirEntry) bool

// WithExtension matches regular files whose name ends in ext.
func WithExtension(ext string) Filter {
	return func(dir string, entry fs.DirEntry) bool {
		return !entry.IsDir() && strings.HasSuffix(entry.Name(), ext)
	}
}

// Executables matches regular files with any execute bit set. Entries whose
// metadata cannot be read are excluded.
func Executables() Filter {
	return func(dir string, entry fs.DirEntry) bool {
		if entry.IsDir() {
			return false
		}
		info, err := entry.Info()
		if err != nil {
			return false
		}
		return info.Mode().IsRegular() && info.Mode().Perm()&0111 != 0
	}
}

// Scanner walks sets of directories concurrently, one pool task per
// directory.
type Scanner struct {
	pool *concurrency.Pool
}

// NewScanner creates a scanner running on pool.
func NewScanner(pool *concurrency.Pool) *Scanner {
	return &Scanner{pool: pool}
}

// ScanDirectories lists every directory in dirs on the pool, keeps the
// entries accepted by filter, and returns their paths sorted. Duplicate
// paths (the same directory listed twice) appear once. Directories that
// cannot be read are skipped; the scan always returns the partial result it
// could gather rather than an all-or-nothing error.
//
// The call blocks until every directory task has completed; the returned
// slice is owned by the caller and no longer written to.
func (s *Scanner) ScanDirectories(dirs []string, filter Filter) []string {
	var mu sync.Mutex
	var results []string
	seen := concurrency.NewMap[struct{}](concurrency.DefaultShardCount)

	batch := concurrency.NewBatchProcessor(s.pool)
	for _, dir := range dirs {
		dir := dir
		batch.AddFunc(func() {
			entries, err := os.ReadDir(dir)
			if err != nil {
				log.DebugLog.Printf("skipping unreadable directory %s: %v", dir, err)
				return
			}
			for _, entry := range entries {
				if !filter(dir, entry) {
					continue
				}
				path := filepath.Join(dir, entry.Name())
				if !seen.PutIfAbsent(path, struct{}{}) {
					continue
				}
				mu.Lock()
				results = append(results, path)
				mu.Unlock()
			}
		})
	}
	if err := batch.ProcessBatch(); err != nil {
		log.WarningLog.Printf("directory scan incomplete: %v", err)
	}

	sort.Strings(results)
	return results
}
