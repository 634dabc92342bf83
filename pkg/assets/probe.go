package assets

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Probe performs case-insensitive filesystem lookups against a directory
// tree whose on-disk casing may not match the casing referenced in a
// config file. Directory listings are read once and cached per directory,
// matching spec.md §4.3's "directory listings cached per-call" contract.
// A Probe is safe for concurrent use.
type Probe struct {
	mu    sync.Mutex
	cache map[string]map[string]string
}

// NewProbe creates an empty, ready-to-use Probe.
func NewProbe() *Probe {
	return &Probe{cache: make(map[string]map[string]string)}
}

// listing returns a lower-cased-name -> actual-name index for dir, reading
// and caching it on first access. A missing or unreadable directory yields
// an empty (but cached) listing rather than an error, since probe failures
// are expected and recovered by the caller.
func (p *Probe) listing(dir string) map[string]string {
	p.mu.Lock()
	if l, ok := p.cache[dir]; ok {
		p.mu.Unlock()
		return l
	}
	p.mu.Unlock()

	resolved := p.resolveDirCase(dir)
	l := make(map[string]string)
	if entries, err := os.ReadDir(longPathAware(resolved)); err == nil {
		for _, entry := range entries {
			l[strings.ToLower(entry.Name())] = entry.Name()
		}
	}

	p.mu.Lock()
	p.cache[dir] = l
	p.mu.Unlock()
	return l
}

// resolveDirCase tolerates a case mismatch in dir's own final path segment
// (not just the file name being looked up within it), recursing up through
// parent directories as needed. This extends L3's case-insensitive fallback
// to directory references themselves (a config may say "Model" where the
// installed tree has "MODEL"), not just to the file name at the end of a
// reference.
func (p *Probe) resolveDirCase(dir string) string {
	if _, err := os.Stat(longPathAware(dir)); err == nil {
		return dir
	}

	cleaned := filepath.Clean(dir)
	parent := filepath.Dir(cleaned)
	base := filepath.Base(cleaned)
	if parent == cleaned || base == "" || base == "." || base == string(filepath.Separator) {
		return dir
	}

	parentListing := p.listing(parent)
	if actual, ok := parentListing[strings.ToLower(base)]; ok {
		return filepath.Join(parent, actual)
	}
	return dir
}

// FindFile looks for a regular file named name inside dir, trying a literal
// join first and falling back to a case-insensitive scan of dir's entries.
func (p *Probe) FindFile(dir, name string) (string, bool) {
	return p.find(dir, name, false)
}

// FindDir looks for a subdirectory named name inside dir, with the same
// literal-then-case-insensitive strategy as FindFile.
func (p *Probe) FindDir(dir, name string) (string, bool) {
	return p.find(dir, name, true)
}

func (p *Probe) find(dir, name string, wantDir bool) (string, bool) {
	direct := filepath.Join(dir, name)
	if info, err := os.Stat(longPathAware(direct)); err == nil && info.IsDir() == wantDir {
		return direct, true
	}

	actual, ok := p.listing(dir)[strings.ToLower(name)]
	if !ok {
		return "", false
	}
	resolved := filepath.Join(p.resolveDirCase(dir), actual)
	if info, err := os.Stat(longPathAware(resolved)); err == nil && info.IsDir() == wantDir {
		return resolved, true
	}
	return "", false
}

// ListFiles returns the lower-cased-name -> actual-name index for dir,
// giving callers that need to scan many candidate names against one
// directory (the texture expander and prefix search) a single cached pass
// instead of repeated stat calls.
func (p *Probe) ListFiles(dir string) map[string]string {
	return p.listing(dir)
}

// Exists reports whether path exists on disk, regardless of case.
func (p *Probe) Exists(path string) bool {
	if _, err := os.Stat(longPathAware(path)); err == nil {
		return true
	}
	dir, name := filepath.Split(filepath.Clean(path))
	dir = strings.TrimSuffix(dir, string(filepath.Separator))
	if dir == "" || name == "" {
		return false
	}
	_, ok := p.listing(dir)[strings.ToLower(name)]
	return ok
}

// MakeRelative computes abs's path relative to root, trying a literal
// prefix strip first and falling back to a case-insensitive comparison,
// since the on-disk asset tree may differ in case from what configs
// contain (spec.md §4.3).
func MakeRelative(abs, root string) (string, bool) {
	abs = filepath.Clean(abs)
	root = filepath.Clean(root)

	if rel, ok := stripPrefix(abs, root, false); ok {
		return rel, true
	}
	return stripPrefix(abs, root, true)
}

func stripPrefix(abs, root string, foldCase bool) (string, bool) {
	a, r := abs, root
	if foldCase {
		a, r = strings.ToLower(abs), strings.ToLower(root)
	}
	if !strings.HasPrefix(a, r) || len(a) == len(r) {
		return "", false
	}
	rest := abs[len(r):]
	rest = strings.TrimPrefix(rest, string(filepath.Separator))
	if rest == "" {
		return "", false
	}
	return strings.ReplaceAll(rest, string(filepath.Separator), `\`), true
}
