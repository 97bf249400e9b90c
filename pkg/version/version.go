// Package version reports the build version, overridable at link time with
// -ldflags "-X cafe/pkg/version.Version=...".
package version

// Version is the release tag; "dev" for local builds.
var Version = "dev"

// String is the line printed by -version.
func String() string {
	return "cafe " + Version
}
