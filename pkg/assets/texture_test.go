package assets

import (
	"path/filepath"
	"testing"
)

func TestExpandTextureVariantsFindsPlainMatchAndSidecars(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Sceneryobjects/A/texture/t.dds", "data")
	writeFixture(t, root, "Sceneryobjects/A/texture/t.dds.cfg", "")
	writeFixture(t, root, "Sceneryobjects/A/texture/t.dds.surf", "")

	probe := NewProbe()
	context := filepath.Join(root, "Sceneryobjects", "A")
	set := NewSet()
	ExpandTextureVariants(probe, root, context, "t", set)

	entries := set.Entries()
	for _, want := range []string{
		`Sceneryobjects\A\texture\t.dds`,
		`Sceneryobjects\A\texture\t.dds.cfg`,
		`Sceneryobjects\A\texture\t.dds.surf`,
	} {
		if !hasEntry(entries, KindFile, want) {
			t.Errorf("missing %q in %+v", want, entries)
		}
	}
}

func TestExpandTextureVariantsSearchesSeasonalSubfolders(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Sceneryobjects/A/texture/t.dds", "data")
	writeFixture(t, root, "Sceneryobjects/A/texture/winter/t.dds", "winter data")

	probe := NewProbe()
	context := filepath.Join(root, "Sceneryobjects", "A")
	set := NewSet()
	ExpandTextureVariants(probe, root, context, "t", set)

	entries := set.Entries()
	if !hasEntry(entries, KindFile, `Sceneryobjects\A\texture\winter\t.dds`) {
		t.Errorf("missing seasonal variant in %+v", entries)
	}
}

func TestExpandTextureVariantsSearchesOtherSubdirsOneLevelDeep(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Sceneryobjects/A/texture/variant/t.dds", "data")

	probe := NewProbe()
	context := filepath.Join(root, "Sceneryobjects", "A")
	set := NewSet()
	ExpandTextureVariants(probe, root, context, "t", set)

	entries := set.Entries()
	if !hasEntry(entries, KindFile, `Sceneryobjects\A\texture\variant\t.dds`) {
		t.Errorf("missing non-seasonal subdirectory match in %+v", entries)
	}
}

func TestExpandTextureVariantsFallsBackToGlobalTextureFolder(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Sceneryobjects/A/a.sco", "")
	writeFixture(t, root, "Texture/t.dds", "data")

	probe := NewProbe()
	context := filepath.Join(root, "Sceneryobjects", "A")
	set := NewSet()
	ExpandTextureVariants(probe, root, context, "t", set)

	entries := set.Entries()
	if !hasEntry(entries, KindFile, `Texture\t.dds`) {
		t.Errorf("missing global Texture fallback match in %+v", entries)
	}
}

func TestExpandTextureVariantsEmptyBaseNameIsNoOp(t *testing.T) {
	root := t.TempDir()
	probe := NewProbe()
	set := NewSet()
	ExpandTextureVariants(probe, root, root, "", set)
	if len(set.Entries()) != 0 {
		t.Errorf("expected no entries for an empty base name, got %+v", set.Entries())
	}
}

func TestExpandTextureVariantsMatchesAcrossMultipleExtensions(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "Sceneryobjects/A/texture/t.dds", "data")
	writeFixture(t, root, "Sceneryobjects/A/texture/t.png", "data")

	probe := NewProbe()
	context := filepath.Join(root, "Sceneryobjects", "A")
	set := NewSet()
	ExpandTextureVariants(probe, root, context, "t", set)

	entries := set.Entries()
	if !hasEntry(entries, KindFile, `Sceneryobjects\A\texture\t.dds`) {
		t.Errorf("missing .dds match in %+v", entries)
	}
	if !hasEntry(entries, KindFile, `Sceneryobjects\A\texture\t.png`) {
		t.Errorf("missing .png match in %+v", entries)
	}
}
