package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/classlink/pkg/cache"
	"github.com/matzehuels/classlink/pkg/diagram"
	"github.com/matzehuels/classlink/pkg/errors"
	"github.com/matzehuels/classlink/pkg/observability"
)

// Runner executes pipeline runs with caching.
//
// The Runner is stateless except for the cache and logger; multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
	TTL    time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
		TTL:    cache.TTLArtifact,
	}
}

// ExecuteFile reads the diagram at path and runs the pipeline on it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return r.execute(ctx, path, data, opts)
}

// Execute runs the pipeline on a JSON diagram document.
func (r *Runner) Execute(ctx context.Context, input []byte, opts Options) (*Result, error) {
	return r.execute(ctx, "request", input, opts)
}

func (r *Runner) execute(ctx context.Context, source string, input []byte, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger

	loadStart := time.Now()
	d, err := diagram.ReadJSON(bytes.NewReader(input))
	observability.Pipeline().OnLoadComplete(ctx, source, countNodes(d), countRels(d), err)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Diagram:     d,
		DiagramHash: cache.Hash(input),
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
		Dangling:    d.Dangling(),
		Stats: Stats{
			Nodes:         len(d.Nodes),
			Relationships: len(d.Relationships),
			LoadTime:      time.Since(loadStart),
		},
		CacheHit: true,
	}
	logger.Debug("loaded diagram", "source", source, "nodes", result.Stats.Nodes,
		"relationships", result.Stats.Relationships, "duration", result.Stats.LoadTime)
	for _, rel := range result.Dangling {
		logger.Warn("relationship endpoint missing, not drawn", "id", rel.ID, "from", rel.From, "to", rel.To)
	}

	renderStart := time.Now()
	for _, format := range opts.Formats {
		data, hit, err := r.artifact(ctx, d, result.DiagramHash, format, opts)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		result.Artifacts[format] = data
		result.CacheHit = result.CacheHit && hit
	}
	result.Stats.RenderTime = time.Since(renderStart)

	if slices.Contains(opts.Formats, FormatXMI) {
		result.Skipped = ExportSkipped(d)
	}

	logger.Info("rendered outputs", "formats", opts.Formats, "cached", result.CacheHit,
		"duration", result.Stats.RenderTime)
	return result, nil
}

// artifact returns one format, from the cache when possible.
func (r *Runner) artifact(ctx context.Context, d *diagram.Diagram, hash, format string, opts Options) ([]byte, bool, error) {
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))

	if !opts.Refresh {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, format)
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, format)
	}

	start := time.Now()
	data, err := r.produce(ctx, d, format, opts)
	duration := time.Since(start)
	if format == FormatXMI {
		skipped := len(ExportSkipped(d))
		observability.Pipeline().OnExportComplete(ctx, len(d.Nodes), len(d.Relationships)-skipped, skipped, duration, err)
	}
	if err != nil {
		return nil, false, err
	}

	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		opts.Logger.Warn("cache write failed", "format", format, "error", err)
	} else {
		observability.Cache().OnCacheSet(ctx, format, len(data))
	}
	return data, false, nil
}

func (r *Runner) produce(ctx context.Context, d *diagram.Diagram, format string, opts Options) ([]byte, error) {
	if format == FormatXMI {
		return RenderFormat(ctx, d, format, opts)
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, format, len(d.Relationships))
	data, err := RenderFormat(ctx, d, format, opts)
	drawn := len(d.Relationships) - len(d.Dangling())
	observability.Pipeline().OnRenderComplete(ctx, format, drawn, len(data), time.Since(start), err)
	return data, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func countNodes(d *diagram.Diagram) int {
	if d == nil {
		return 0
	}
	return len(d.Nodes)
}

func countRels(d *diagram.Diagram) int {
	if d == nil {
		return 0
	}
	return len(d.Relationships)
}
