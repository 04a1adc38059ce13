// Package module defines the minimal contract for a modkit module
package module

import (
	phttp "scribe/internal/platform/net/http"
)

// Module is a mountable slice of the API
// Ports returns the bundle other modules may resolve through the registry
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}
