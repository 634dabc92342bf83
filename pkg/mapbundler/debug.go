package mapbundler

import "os"

// DebugEnabled controls whether verbose diagnostic logging is enabled. It's
// set automatically based on the MAPBUNDLER_DEBUG environment variable.
var DebugEnabled bool

func init() {
	DebugEnabled = os.Getenv("MAPBUNDLER_DEBUG") == "1"
}
