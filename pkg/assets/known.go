package assets

// knownTopLevelFolders is the fixed set of asset-root-relative folder names
// that a normalized path's first segment must match (case-insensitively).
var knownTopLevelFolders = map[string]bool{
	"sceneryobjects": true,
	"splines":        true,
	"vehicles":       true,
	"humans":         true,
	"texture":        true,
	"sound":          true,
	"script":         true,
	"trains":         true,
	"money":          true,
	"ticketpacks":    true,
}

// textureExtensions is the set of recognized image extensions probed by the
// texture variant expander (L4) and the binary scavenger (L5).
var textureExtensions = []string{"jpg", "jpeg", "bmp", "dds", "png", "tga"}

// textureSidecarExtensions travel alongside a texture file when present.
var textureSidecarExtensions = []string{"cfg", "surf"}

// seasonalSubfolders is the exhaustive list of conventional variant
// subdirectories the texture expander descends into. Matching is always
// case-insensitive against the on-disk listing, so only one casing needs
// to appear here.
var seasonalSubfolders = []string{"night", "alpha", "winter", "wintersnow", "spring", "fall"}

// vehicleExtensions are the extensions recognized by the AI-list and
// parking-list parsers as vehicle references.
var vehicleExtensions = []string{"bus", "ovh", "zug", "sco"}

// genericScanExtensions is the set of extensions the generic fallback path
// scanner (used by Phase 1 and by any source file after structured parsing)
// recognizes when walking raw text for embedded path references.
var genericScanExtensions = []string{
	"sco", "ovh", "bus", "zug", "sli", "hum", "wav", "jpg", "jpeg", "bmp",
	"dds", "png", "tga", "cfg", "osc", "x", "o3d", "surf", "map", "otp", "txt",
}

// folderMarkerPrefix is the reserved sentinel identifying a whole-subtree
// copy marker in serialized form (spec.md's "poor man's tagged union").
const folderMarkerPrefix = "FOLDER:"

// isKnownRoot reports whether name (already lower-cased) is one of the
// fixed top-level asset folders.
func isKnownRoot(name string) bool {
	return knownTopLevelFolders[name]
}
