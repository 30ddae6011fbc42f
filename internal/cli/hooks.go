package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports pipeline, cache and server events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnLoadComplete(_ context.Context, source string, nodes, rels int, err error) {
	if err != nil {
		h.logger.Debug("load failed", "source", source, "error", err)
		return
	}
	h.logger.Debug("load", "source", source, "nodes", nodes, "relationships", rels)
}

func (h *logHooks) OnRenderStart(_ context.Context, format string, rels int) {
	h.logger.Debug("render start", "format", format, "relationships", rels)
}

func (h *logHooks) OnRenderComplete(_ context.Context, format string, drawn, size int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "error", err)
		return
	}
	h.logger.Debug("render", "format", format, "drawn", drawn, "bytes", size, "duration", dur.Round(time.Microsecond))
}

func (h *logHooks) OnExportComplete(_ context.Context, classes, exported, skipped int, dur time.Duration, err error) {
	if err != nil {
		h.logger.Debug("export failed", "error", err)
		return
	}
	h.logger.Debug("export", "classes", classes, "relationships", exported, "skipped", skipped, "duration", dur.Round(time.Microsecond))
}

func (h *logHooks) OnCacheHit(_ context.Context, format string) {
	h.logger.Debug("cache hit", "format", format)
}

func (h *logHooks) OnCacheMiss(_ context.Context, format string) {
	h.logger.Debug("cache miss", "format", format)
}

func (h *logHooks) OnCacheSet(_ context.Context, format string, size int) {
	h.logger.Debug("cache set", "format", format, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("request", "method", method, "route", route)
}

func (h *logHooks) OnResponse(_ context.Context, method, route string, status int, dur time.Duration) {
	h.logger.Debug("response", "method", method, "route", route, "status", status, "duration", dur.Round(time.Microsecond))
}
