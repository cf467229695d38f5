package pptxtojson

import "fmt"

// Version information for this module.
const (
	VersionMajor = 1
	VersionMinor = 0
	VersionPatch = 0
)

// Version is the full version string of this module.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
