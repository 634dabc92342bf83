package assets

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/omsi-tools/mapbundler/pkg/logging"
)

// Resolve implements P2b: the bulk-synchronous parallel recursive
// extraction phase (spec.md §4.8, §9). Starting from seeds, every round
// dispatches each not-yet-extracted file entry discovered so far to its
// format extractor in parallel, unions the results into a monotonically
// growing visited set, and continues until a round adds nothing new.
func Resolve(seeds *Set, root string, logger *logging.Logger) (*Set, error) {
	if seeds == nil {
		return nil, errors.New("no seeds to resolve")
	}

	probe := NewProbe()
	ctx := &ExtractContext{Probe: probe, Root: root, Logger: logger}

	visited := NewSet()
	frontier := visited.Union(seeds)
	applyImplicitFolders(frontier, visited)

	for len(frontier) > 0 {
		var pending []Entry
		for _, e := range frontier {
			if e.Kind != KindFile {
				continue
			}
			if _, ok := extractorFor(e.Path); ok {
				pending = append(pending, e)
			}
		}

		if len(pending) == 0 {
			break
		}

		results := make([]*Set, len(pending))
		runParallel(len(pending), func(i int) {
			extractor, _ := extractorFor(pending[i].Path)
			results[i] = extractor(ctx, pending[i].Path)
		})

		var next []Entry
		for _, r := range results {
			if r == nil {
				continue
			}
			next = append(next, visited.Union(r)...)
		}
		applyImplicitFolders(next, visited)

		frontier = next
	}

	return visited, nil
}

// applyImplicitFolders records the parent-folder marker spec.md §4.8
// implies for any file entry rooted under Money or TicketPacks: those
// trees are bundled as whole units, so any reference into them implicitly
// anchors their immediate containing folder even though nothing in the
// file itself is a folder marker.
func applyImplicitFolders(entries []Entry, visited *Set) {
	for _, e := range entries {
		if e.Kind != KindFile {
			continue
		}
		lower := strings.ToLower(firstSegment(e.Path))
		if lower != "money" && lower != "ticketpacks" {
			continue
		}
		if dir, _ := splitRelative(e.Path); dir != "" {
			visited.AddFolder(dir)
		}
	}
}
