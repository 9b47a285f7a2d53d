package runekit

import "fmt"

// Engine version components.
const (
	VersionMajor uint32 = 0
	VersionMinor uint32 = 1
	VersionPatch uint32 = 0
)

// VersionInfo is the engine's semantic version triple.
type VersionInfo struct {
	Major uint32
	Minor uint32
	Patch uint32
}

// String returns the dotted form, e.g. "0.1.0".
func (v VersionInfo) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Version reports the engine version. It is pure and needs no engine:
// callers can check compatibility before constructing one.
func Version() VersionInfo {
	return VersionInfo{
		Major: VersionMajor,
		Minor: VersionMinor,
		Patch: VersionPatch,
	}
}
