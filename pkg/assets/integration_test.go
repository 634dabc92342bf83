package assets

import (
	"os"
	"path/filepath"
	"testing"
)

// writeFixture writes content to root/toOSPath(relWithSlashes), creating
// parent directories as needed. relWithSlashes uses forward slashes for
// readability; it is converted to the host separator internally.
func writeFixture(t *testing.T, root, relWithSlashes, content string) string {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(relWithSlashes))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("unable to create fixture directory: %v", err)
	}
	if err := os.WriteFile(abs, []byte(content), 0o644); err != nil {
		t.Fatalf("unable to write fixture file: %v", err)
	}
	return abs
}

func hasEntry(entries []Entry, kind Kind, path string) bool {
	for _, e := range entries {
		if e.Kind == kind && e.Path == path {
			return true
		}
	}
	return false
}

// scenario 1 (spec.md §8): Phase 1 alone, no Phase 2 extractors involved.
func TestScenarioSeedFromGlobalConfig(t *testing.T) {
	root := t.TempDir()
	mapDir := filepath.Join(root, "Maps", "TestMap")

	writeFixture(t, root, "Maps/TestMap/global.cfg", "[map]\n0\n0\ntile_0.map\n")
	tilePath := writeFixture(t, root, "Maps/TestMap/tile_0.map", "")

	probe := NewProbe()
	seeds, err := CollectSeeds(probe, root, mapDir)
	if err != nil {
		t.Fatalf("CollectSeeds failed: %v", err)
	}

	wantRel, ok := MakeRelative(tilePath, root)
	if !ok {
		t.Fatalf("MakeRelative failed for %s", tilePath)
	}
	entries := seeds.Entries()
	if len(entries) != 1 {
		t.Fatalf("got %d seed entries, want 1: %+v", len(entries), entries)
	}
	if !hasEntry(entries, KindFile, wantRel) {
		t.Errorf("expected seed set to contain %q, got %+v", wantRel, entries)
	}

	resolved, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.Len() != 1 {
		t.Fatalf("Phase 2 should add nothing for an empty tile map, got %d entries: %+v", resolved.Len(), resolved.Entries())
	}
}

// scenario 2 (spec.md §8): a .sco whose mesh has no extractable textures
// triggers both-cased Texture-folder fallback markers, alongside its
// separately-referenced, on-disk texture via [matl].
func TestScenarioSceneryObjectTextureFallback(t *testing.T) {
	root := t.TempDir()
	mapDir := filepath.Join(root, "Maps", "TestMap")

	writeFixture(t, root, "Maps/TestMap/global.cfg", "[map]\n0\n0\ntile_0.map\n")
	writeFixture(t, root, "Maps/TestMap/tile_0.map", "[object]\n1\nSceneryobjects\\A\\a.sco\n")
	writeFixture(t, root, "Sceneryobjects/A/a.sco", "[mesh]\nm.o3d\n[matl]\nt.dds\n")
	writeFixture(t, root, "Sceneryobjects/A/model/m.o3d", "BINARYMESHDATANOEMBEDDEDNAME")
	writeFixture(t, root, "Sceneryobjects/A/texture/t.dds", "texture bytes")

	probe := NewProbe()
	seeds, err := CollectSeeds(probe, root, mapDir)
	if err != nil {
		t.Fatalf("CollectSeeds failed: %v", err)
	}

	resolved, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	entries := resolved.Entries()

	for _, want := range []string{
		`Sceneryobjects\A\a.sco`,
		`Sceneryobjects\A\model\m.o3d`,
		`Sceneryobjects\A\texture\t.dds`,
	} {
		if !hasEntry(entries, KindFile, want) {
			t.Errorf("missing expected file entry %q in %+v", want, entries)
		}
	}
	for _, want := range []string{
		`Sceneryobjects\A\Texture`,
		`Sceneryobjects\A\texture`,
	} {
		if !hasEntry(entries, KindFolder, want) {
			t.Errorf("missing expected folder fallback marker %q in %+v", want, entries)
		}
	}
}

// scenario 3 (spec.md §8): a vehicle referenced from ailists.cfg resolves
// to the .bus file plus a FOLDER: marker for its containing directory.
func TestScenarioVehicleViaAIList(t *testing.T) {
	root := t.TempDir()
	mapDir := filepath.Join(root, "Maps", "TestMap")

	writeFixture(t, root, "Maps/TestMap/global.cfg", "[humans]\nHumans\\driver.hum\n")
	writeFixture(t, root, "Maps/TestMap/ailists.cfg", "Vehicles\\SOR\\bus1.bus\t3\n")
	writeFixture(t, root, "Humans/driver.hum", "")
	writeFixture(t, root, "Vehicles/SOR/bus1.bus", "")

	probe := NewProbe()
	seeds, err := CollectSeeds(probe, root, mapDir)
	if err != nil {
		t.Fatalf("CollectSeeds failed: %v", err)
	}
	resolved, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	entries := resolved.Entries()

	if !hasEntry(entries, KindFile, `Vehicles\SOR\bus1.bus`) {
		t.Errorf("missing bus file entry in %+v", entries)
	}
	if !hasEntry(entries, KindFolder, `Vehicles\SOR`) {
		t.Errorf("missing FOLDER:Vehicles\\SOR marker in %+v", entries)
	}
}

// scenario 4 (spec.md §8): a .zug naming two .ovh cars in the same folder
// yields exactly one (coinciding) folder marker for that folder.
func TestScenarioTrainFolderMarkersCoincide(t *testing.T) {
	root := t.TempDir()
	mapDir := filepath.Join(root, "Maps", "TestMap")

	writeFixture(t, root, "Maps/TestMap/global.cfg", "[humans]\nHumans\\driver.hum\n")
	writeFixture(t, root, "Maps/TestMap/ailists.cfg", "Trains\\T\\train1.zug\t1\n")
	writeFixture(t, root, "Humans/driver.hum", "")
	writeFixture(t, root, "Trains/T/train1.zug", "Vehicles\\T\\a.ovh\n1\nVehicles\\T\\b.ovh\n2\n")
	writeFixture(t, root, "Vehicles/T/a.ovh", "")
	writeFixture(t, root, "Vehicles/T/b.ovh", "")

	probe := NewProbe()
	seeds, err := CollectSeeds(probe, root, mapDir)
	if err != nil {
		t.Fatalf("CollectSeeds failed: %v", err)
	}
	resolved, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	entries := resolved.Entries()

	// spec.md §8 scenario 4: resolving a .zug yields exactly the zug itself
	// and a single FOLDER: marker for the vehicle folder — the individual
	// .ovh references inside are never added as KindFile entries (and so
	// never recurse into extractOvh), since the whole folder is already
	// claimed wholesale by the marker. driver.hum is also present since the
	// fixture's global.cfg seeds it independently via [humans].
	want := []Entry{
		{Kind: KindFile, Path: `Trains\T\train1.zug`},
		{Kind: KindFolder, Path: `Vehicles\T`},
		{Kind: KindFile, Path: `Humans\driver.hum`},
	}
	if len(entries) != len(want) {
		t.Fatalf("want exactly %+v, got %+v", want, entries)
	}
	for _, w := range want {
		if !hasEntry(entries, w.Kind, w.Path) {
			t.Errorf("missing expected entry %+v in %+v", w, entries)
		}
	}
}

// scenario 5 (spec.md §8): a case-mismatched reference is resolved via the
// filesystem probe's case-insensitive fallback, and the emitted path
// matches the on-disk casing.
func TestScenarioCaseMismatchResolvedViaProbe(t *testing.T) {
	root := t.TempDir()
	mapDir := filepath.Join(root, "Maps", "TestMap")

	writeFixture(t, root, "Maps/TestMap/global.cfg", "[map]\n0\n0\ntile_0.map\n")
	writeFixture(t, root, "Maps/TestMap/tile_0.map", "[object]\n1\nSceneryobjects\\A\\a.sco\n")
	writeFixture(t, root, "Sceneryobjects/A/a.sco", "[mesh]\nM.o3d\n")
	// On-disk casing differs from the reference ("M.o3d" vs "MODEL\\m.o3d").
	writeFixture(t, root, "Sceneryobjects/A/MODEL/m.o3d", "BINARYMESHDATANOEMBEDDEDNAME")

	probe := NewProbe()
	seeds, err := CollectSeeds(probe, root, mapDir)
	if err != nil {
		t.Fatalf("CollectSeeds failed: %v", err)
	}
	resolved, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	entries := resolved.Entries()

	if !hasEntry(entries, KindFile, `Sceneryobjects\A\MODEL\m.o3d`) {
		t.Errorf("expected on-disk casing MODEL\\m.o3d to be resolved, got %+v", entries)
	}
}

// scenario 6 (spec.md §8): a cycle between two .cfg files terminates, with
// each file appearing exactly once in the resolved set.
func TestScenarioCycleTerminates(t *testing.T) {
	root := t.TempDir()
	mapDir := filepath.Join(root, "Maps", "TestMap")

	writeFixture(t, root, "Maps/TestMap/global.cfg", "[humans]\nHumans\\a.hum\n")
	// [model] and [mesh] payloads are resolved relative to the referencing
	// file's own folder, so both cfgs name each other with bare filenames.
	writeFixture(t, root, "Humans/a.hum", "[model]\na.cfg\n")
	writeFixture(t, root, "Humans/a.cfg", "[mesh]\nb.cfg\n")
	writeFixture(t, root, "Humans/b.cfg", "[mesh]\na.cfg\n")

	probe := NewProbe()
	seeds, err := CollectSeeds(probe, root, mapDir)
	if err != nil {
		t.Fatalf("CollectSeeds failed: %v", err)
	}
	resolved, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	entries := resolved.Entries()

	fileCount := func(path string) int {
		n := 0
		for _, e := range entries {
			if e.Kind == KindFile && e.Path == path {
				n++
			}
		}
		return n
	}
	if fileCount(`Humans\a.cfg`) != 1 {
		t.Errorf("expected a.cfg to appear exactly once, got %d in %+v", fileCount(`Humans\a.cfg`), entries)
	}
	if fileCount(`Humans\b.cfg`) != 1 {
		t.Errorf("expected b.cfg to appear exactly once, got %d in %+v", fileCount(`Humans\b.cfg`), entries)
	}
}

// Boundary behavior (spec.md §8): an empty .zug file yields only its own
// path.
func TestBoundaryEmptyZugYieldsOnlyItself(t *testing.T) {
	ctx := &ExtractContext{Probe: NewProbe(), Root: t.TempDir()}
	writeFixture(t, ctx.Root, "Trains/T/empty.zug", "")

	result := extractZug(ctx, `Trains\T\empty.zug`)
	entries := result.Entries()
	if len(entries) != 1 || entries[0].Path != `Trains\T\empty.zug` || entries[0].Kind != KindFile {
		t.Errorf("got %+v, want exactly the zug's own path", entries)
	}
}

// Invariant (spec.md §8): resolving twice over the same inputs yields
// identical sets.
func TestResolveIsIdempotent(t *testing.T) {
	root := t.TempDir()
	mapDir := filepath.Join(root, "Maps", "TestMap")

	writeFixture(t, root, "Maps/TestMap/global.cfg", "[map]\n0\n0\ntile_0.map\n")
	writeFixture(t, root, "Maps/TestMap/tile_0.map", "[object]\n1\nSceneryobjects\\A\\a.sco\n")
	writeFixture(t, root, "Sceneryobjects/A/a.sco", "[matl]\nt.dds\n")
	writeFixture(t, root, "Sceneryobjects/A/texture/t.dds", "texture bytes")
	// A no-op file not referenced anywhere.
	writeFixture(t, root, "Sceneryobjects/A/texture/unused.dds", "unused bytes")

	probe := NewProbe()
	seeds, err := CollectSeeds(probe, root, mapDir)
	if err != nil {
		t.Fatalf("CollectSeeds failed: %v", err)
	}

	first, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("first Resolve failed: %v", err)
	}
	second, err := Resolve(seeds, root, nil)
	if err != nil {
		t.Fatalf("second Resolve failed: %v", err)
	}

	firstEntries, secondEntries := first.Entries(), second.Entries()
	if len(firstEntries) != len(secondEntries) {
		t.Fatalf("got %d entries first run, %d second run", len(firstEntries), len(secondEntries))
	}
	for i := range firstEntries {
		if firstEntries[i] != secondEntries[i] {
			t.Errorf("entry %d differs: %+v vs %+v", i, firstEntries[i], secondEntries[i])
		}
	}
	if hasEntry(firstEntries, KindFile, `Sceneryobjects\A\texture\unused.dds`) {
		t.Errorf("unreferenced file should not appear in the resolved set: %+v", firstEntries)
	}
}
