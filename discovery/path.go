package discovery

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/home-lang/den/concurrency"
	"github.com/home-lang/den/log"
)

// SplitPathList splits a PATH-style environment value into directories,
// dropping empty segments. POSIX treats an empty segment as the current
// directory; den skips it instead, matching the scan's "no surprises from
// stale PATH entries" stance.
func SplitPathList(pathVar string) []string {
	var dirs []string
	seen := map[string]bool{}
	for _, dir := range filepath.SplitList(pathVar) {
		if dir == "" || seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

// Index is the shell's view of every executable reachable through PATH.
// Lookups and completion reads hit the concurrent map; the index is built
// once per scan and treated as read-only afterwards.
type Index struct {
	commands *concurrency.Map[string]
}

// BuildIndex scans dirs in parallel and indexes executable names to their
// full paths. Directory order is PATH precedence: when the same command name
// appears in several directories, the earliest directory wins, exactly as
// execution would resolve it. Unreadable directories are skipped.
func BuildIndex(pool *concurrency.Pool, shards int, dirs []string) *Index {
	// Each worker fills its own slot, so listing needs no locking; the
	// precedence-sensitive merge happens sequentially after the join.
	perDir := make([][]string, len(dirs))
	filter := Executables()

	indices := make([]int, len(dirs))
	for i := range indices {
		indices[i] = i
	}
	if err := concurrency.ParallelForEach(pool, indices, func(i int) {
		entries, err := os.ReadDir(dirs[i])
		if err != nil {
			log.DebugLog.Printf("skipping PATH entry %s: %v", dirs[i], err)
			return
		}
		names := make([]string, 0, len(entries))
		for _, entry := range entries {
			if filter(dirs[i], entry) {
				names = append(names, entry.Name())
			}
		}
		perDir[i] = names
	}); err != nil {
		log.WarningLog.Printf("PATH scan incomplete: %v", err)
	}

	commands := concurrency.NewMap[string](shards)
	for i, names := range perDir {
		for _, name := range names {
			commands.PutIfAbsent(name, filepath.Join(dirs[i], name))
		}
	}
	return &Index{commands: commands}
}

// Lookup resolves a command name to its full path.
func (idx *Index) Lookup(name string) (string, bool) {
	return idx.commands.Get(name)
}

// Names returns every indexed command name, sorted.
func (idx *Index) Names() []string {
	names := idx.commands.Keys()
	sort.Strings(names)
	return names
}

// Len returns the number of indexed commands.
func (idx *Index) Len() int {
	return idx.commands.Count()
}
