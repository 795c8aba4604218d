package pipeline

import (
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/courseflow/courseflow/pkg/analytics"
	"github.com/courseflow/courseflow/pkg/cache"
	"github.com/courseflow/courseflow/pkg/errors"
	"github.com/courseflow/courseflow/pkg/export"
	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/observability"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// Runner executes pipeline runs with caching. It is stateless apart from
// the cache and logger; multiple goroutines can share one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// takes the default, a nil logger takes log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs fetch → normalize → layout → analytics → artifacts.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := r.logger(opts)
	result := &Result{Artifacts: make(map[string][]byte)}

	// Stage 1: fetch raw inputs.
	fetchStart := time.Now()
	raw, graphHit, err := r.fetchGraph(ctx, opts)
	if err != nil {
		return nil, err
	}
	progress, err := r.fetchProgress(ctx, opts)
	if err != nil {
		return nil, err
	}
	result.Stats.FetchTime = time.Since(fetchStart)
	result.CacheInfo.GraphHit = graphHit
	logger.Info("fetched prerequisite data",
		"course", opts.CourseID,
		"rawNodes", len(raw.Nodes),
		"cached", graphHit,
		"duration", result.Stats.FetchTime)

	// Stage 2: normalize with metadata join.
	normStart := time.Now()
	observability.Pipeline().OnNormalizeStart(ctx, len(raw.Nodes), raw.RawEdgeCount())
	metadata, err := r.loadMetadata(ctx, opts, raw)
	if err != nil {
		return nil, err
	}
	result.Graph = prereq.Normalize(ctx, raw, metadata)
	result.Stats.NormalizeTime = time.Since(normStart)
	result.Stats.NodeCount = len(result.Graph.Nodes)
	result.Stats.EdgeCount = len(result.Graph.Edges)
	observability.Pipeline().OnNormalizeComplete(ctx, result.Stats.NodeCount, result.Stats.EdgeCount, result.Stats.NormalizeTime)

	if data, err := json.Marshal(result.Graph); err == nil {
		result.GraphHash = cache.Hash(data)
	}
	logger.Info("normalized graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.NormalizeTime)

	// Stage 3: layout.
	layoutStart := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, result.Stats.NodeCount)
	positioned, layoutHit, err := r.computeLayout(ctx, opts, result.Graph, result.GraphHash, progress)
	if err != nil {
		return nil, err
	}
	result.Layout = positioned
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.LayoutHit = layoutHit
	observability.Pipeline().OnLayoutComplete(ctx, len(positioned.Nodes), result.Stats.LayoutTime)
	logger.Info("computed layout",
		"nodes", len(positioned.Nodes),
		"cached", layoutHit,
		"duration", result.Stats.LayoutTime)

	// Stage 4: analytics and optional logic evaluation.
	result.Summary = analytics.Compute(positioned.Nodes, positioned.Edges)
	if opts.Satisfaction {
		result.Satisfied = prereq.SatisfactionMap(result.Graph, progress.Completed)
		result.Unlocked = prereq.UnlockedMap(result.Graph, progress.Completed)
	}

	// Stage 5: artifacts.
	renderStart := time.Now()
	if err := r.renderArtifacts(ctx, opts, result); err != nil {
		return nil, err
	}
	result.Stats.RenderTime = time.Since(renderStart)
	logger.Info("rendered artifacts",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

func (r *Runner) fetchGraph(ctx context.Context, opts Options) (prereq.RawGraph, bool, error) {
	key := r.Keyer.GraphKey(opts.CourseID)

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var raw prereq.RawGraph
			if err := json.Unmarshal(data, &raw); err == nil {
				return raw, true, nil
			}
		}
	}

	raw, err := opts.Source.FetchGraph(ctx, opts.CourseID)
	if err != nil {
		return prereq.RawGraph{}, false, err
	}
	if data, err := json.Marshal(raw); err == nil {
		_ = r.Cache.Set(ctx, key, data, opts.CacheTTL)
	}
	return raw, false, nil
}

func (r *Runner) fetchProgress(ctx context.Context, opts Options) (prereq.UserProgress, error) {
	if opts.StudentID == "" {
		return prereq.UserProgress{}, nil
	}
	return opts.Source.FetchProgress(ctx, opts.StudentID)
}

// loadMetadata resolves catalog metadata for every course id the raw
// graph references. Without a metadata source the join is skipped and
// nodes carry ids only.
func (r *Runner) loadMetadata(ctx context.Context, opts Options, raw prereq.RawGraph) (map[int]prereq.CourseMetadata, error) {
	if opts.Metadata == nil {
		return nil, nil
	}
	ids := raw.CourseIDs()
	if len(ids) == 0 {
		return nil, nil
	}
	meta, err := opts.Metadata.MetadataByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "loading catalog metadata")
	}
	return meta, nil
}

func (r *Runner) computeLayout(ctx context.Context, opts Options, g prereq.Graph, graphHash string, progress prereq.UserProgress) (*layout.Result, bool, error) {
	cfg := opts.layoutConfig()
	key := r.Keyer.LayoutKey(graphHash, cache.LayoutKeyOpts{
		Direction:      opts.Direction,
		NodeSeparation: cfg.NodeSeparation,
		RankSeparation: cfg.RankSeparation,
		MarginX:        cfg.MarginX,
		MarginY:        cfg.MarginY,
		TargetCourseID: opts.CourseID,
		ProgressHash:   progressHash(progress),
	})

	if !opts.Refresh && graphHash != "" {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var res layout.Result
			if err := json.Unmarshal(data, &res); err == nil {
				return &res, true, nil
			}
		}
	}

	res, err := layout.Build(g, progress, opts.CourseID, cfg)
	if err != nil {
		return nil, false, err
	}
	if graphHash != "" {
		if data, err := json.Marshal(res); err == nil {
			_ = r.Cache.Set(ctx, key, data, opts.CacheTTL)
		}
	}
	return res, false, nil
}

func (r *Runner) renderArtifacts(ctx context.Context, opts Options, result *Result) error {
	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			data, err := export.Marshal(export.FromResult(result.Layout, result.Summary))
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "encoding json artifact")
			}
			result.Artifacts[FormatJSON] = data
		case FormatDOT:
			result.Artifacts[FormatDOT] = []byte(export.ToDOT(result.Layout, layout.Direction(opts.Direction)))
		case FormatSVG:
			dot := export.ToDOT(result.Layout, layout.Direction(opts.Direction))
			data, err := export.RenderSVG(ctx, dot)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "rendering svg artifact")
			}
			result.Artifacts[FormatSVG] = data
		case FormatPNG:
			dot := export.ToDOT(result.Layout, layout.Direction(opts.Direction))
			data, err := export.RenderPNG(ctx, dot)
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "rendering png artifact")
			}
			result.Artifacts[FormatPNG] = data
		}
	}
	return nil
}

func (r *Runner) logger(opts Options) *log.Logger {
	if opts.Logger != nil {
		return opts.Logger
	}
	return r.Logger
}

// progressHash folds a student's four id sets into one stable hash.
func progressHash(p prereq.UserProgress) string {
	return cache.Hash([]byte(
		cache.HashInts(p.Completed) +
			cache.HashInts(p.InProgress) +
			cache.HashInts(p.Planned) +
			cache.HashInts(p.Failed),
	))
}
