package module

import (
	"time"

	"scribe/internal/platform/config"
	"scribe/internal/services/api/popular/service"
)

// Options holds configuration settings for the popular module
type Options struct {
	Window   time.Duration
	Limit    int
	Defaults []string
}

// FromConfig reads CORE_POPULAR_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	pc := cfg.Prefix("CORE_POPULAR_")
	return Options{
		Window:   pc.MayDuration("WINDOW", 24*time.Hour),
		Limit:    pc.MayInt("LIMIT", 5),
		Defaults: pc.MayCSV("DEFAULTS", []string{"CMS", "Discover"}),
	}
}

func (o Options) serviceOptions() service.Options {
	return service.Options{Window: o.Window, Limit: o.Limit, Defaults: o.Defaults}
}
