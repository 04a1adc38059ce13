package module

import (
	"scribe/internal/core/search"
	"scribe/internal/platform/config"
	"scribe/internal/services/api/search/service"
)

// Options holds configuration settings for the search module
type Options struct {
	Concurrency    int
	HighlightOpen  string
	HighlightClose string
	EscapeHTML     bool
	WatchBase      string
	Record         bool
}

// FromConfig reads CORE_SEARCH_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_SEARCH_")
	return Options{
		Concurrency:    sc.MayInt("CONCURRENCY", search.DefaultConcurrency),
		HighlightOpen:  sc.MayString("HIGHLIGHT_OPEN", search.DefaultOpen),
		HighlightClose: sc.MayString("HIGHLIGHT_CLOSE", search.DefaultClose),
		EscapeHTML:     sc.MayBool("ESCAPE_HTML", true),
		WatchBase:      sc.MayString("WATCH_BASE", service.DefaultWatchBase),
		Record:         sc.MayBool("RECORD", true),
	}
}

func (o Options) serviceConfig() service.Config {
	return service.Config{
		Highlighter: search.Highlighter{
			Open:       o.HighlightOpen,
			Close:      o.HighlightClose,
			EscapeHTML: o.EscapeHTML,
		},
		WatchBase:   o.WatchBase,
		Record:      o.Record,
		Concurrency: o.Concurrency,
	}
}
