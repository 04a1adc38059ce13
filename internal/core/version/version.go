// Package version reports the build identity of a scribe binary
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information for the API binary
// version, commit and date are stamped with
// -ldflags "-X 'scribe/internal/core/version.version=v0.1.0' -X 'scribe/internal/core/version.commit=abcd'"
func Info() BuildInfo { return For("scribe-api") }

// For returns build information labelled with service
func For(service string) BuildInfo {
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
