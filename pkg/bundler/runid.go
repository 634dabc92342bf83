package bundler

import (
	"github.com/google/uuid"

	"github.com/omsi-tools/mapbundler/pkg/encoding"
)

// newRunID generates a short, collision-resistant run identifier embedded in
// the manifest and the default archive filename, reusing the teacher's own
// Base62 alphabet (pkg/encoding.EncodeBase62) the way the original desktop
// app's temp-dir-per-map-name scheme could not when run concurrently against
// the same map.
func newRunID() string {
	id := uuid.New()
	encoded := encoding.EncodeBase62(id[:])
	if len(encoded) > 10 {
		encoded = encoded[:10]
	}
	return encoded
}
