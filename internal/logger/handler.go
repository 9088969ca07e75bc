package logger

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const tagKey = "tag" // The slog attribute key used for filtering tags

// filteringHandler wraps a base slog.Handler to add custom filtering.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config // Reference to processed config
	tag         string  // Tag attached through WithAttrs, if any
}

// newFilteringHandler creates a handler with filtering capabilities.
func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled checks if the level is enabled by the base handler.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

// passes applies an enabled/disabled set pair. Disabled wins; an empty
// enabled set admits everything.
func passes(enabled, disabled map[string]struct{}, value string) bool {
	if foundInSet(disabled, value) {
		return false
	}
	if enabled != nil && !foundInSet(enabled, value) {
		return false
	}
	return true
}

// Helper function for set lookup
func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// recordSource returns the package directory name and file name of the
// record's caller.
func recordSource(r slog.Record) (pkg, file string, ok bool) {
	if r.PC == 0 {
		return "", "", false
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", "", false
	}
	return filepath.Base(filepath.Dir(frame.File)), filepath.Base(frame.File), true
}

// recordTag returns the record's tag attribute, lowercased.
func (h *filteringHandler) recordTag(r slog.Record) (string, bool) {
	tag, found := h.tag, h.tag != ""
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}

// Handle applies filtering logic before passing the record to the base handler.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	if debugFilter {
		fmt.Fprintf(os.Stderr, "[FILTER] Message: Level=%s, Msg=%s\n", r.Level, r.Message)
	}

	if pkg, file, ok := recordSource(r); ok {
		if !passes(h.cfg.enabledPackagesSet, h.cfg.disabledPackagesSet, strings.ToLower(pkg)) {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: package '%s'\n", pkg)
			}
			return nil
		}
		if !passes(h.cfg.enabledFilesSet, h.cfg.disabledFilesSet, strings.ToLower(file)) {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: file '%s'\n", file)
			}
			return nil
		}
	}

	tag, tagFound := h.recordTag(r)
	if tagFound {
		if !passes(h.cfg.enabledTagsSet, h.cfg.disabledTagsSet, tag) {
			if debugFilter {
				fmt.Fprintf(os.Stderr, "[FILTER] FILTERED OUT: tag '%s'\n", tag)
			}
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Filtering for specific tags drops untagged messages.
		if debugFilter {
			fmt.Fprintln(os.Stderr, "[FILTER] FILTERED OUT: Message has no tag but specific tags are enabled")
		}
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
	next.tag = h.tag
	for _, a := range attrs {
		if a.Key == tagKey {
			next.tag = strings.ToLower(a.Value.String())
		}
	}
	return next
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	next := newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
	next.tag = h.tag
	return next
}
