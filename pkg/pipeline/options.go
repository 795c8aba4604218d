package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/courseflow/courseflow/pkg/analytics"
	"github.com/courseflow/courseflow/pkg/catalog"
	"github.com/courseflow/courseflow/pkg/errors"
	"github.com/courseflow/courseflow/pkg/layout"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// Format constants for output artifacts.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

// ValidFormats is the set of supported artifact formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
}

// DefaultCacheTTL is how long fetched graphs and computed layouts stay
// cached when the caller does not override it.
const DefaultCacheTTL = time.Hour

// Source supplies the raw inputs of a pipeline run. catalog.Client is the
// production implementation; tests substitute stubs.
type Source interface {
	FetchGraph(ctx context.Context, courseID int) (prereq.RawGraph, error)
	FetchProgress(ctx context.Context, studentID string) (prereq.UserProgress, error)
}

// Options configures a pipeline run. The struct serializes for API
// requests; runtime collaborators are excluded.
type Options struct {
	// CourseID is the course whose prerequisite graph is explored.
	CourseID int `json:"course_id"`

	// StudentID selects whose progress annotates the graph. Empty means
	// an anonymous run: every course resolves to available or locked.
	StudentID string `json:"student_id,omitempty"`

	// Layout tuning. Zero values take the layout defaults.
	Direction      string  `json:"direction,omitempty"`
	NodeSeparation float64 `json:"node_separation,omitempty"`
	RankSeparation float64 `json:"rank_separation,omitempty"`
	MarginX        float64 `json:"margin_x,omitempty"`
	MarginY        float64 `json:"margin_y,omitempty"`

	// Formats lists the artifacts to produce. Nil defaults to json; an
	// explicitly empty list produces no artifacts, for hosts that
	// serialize the result themselves.
	Formats []string `json:"formats,omitempty"`

	// Refresh bypasses caches and refetches from the source.
	Refresh bool `json:"refresh,omitempty"`

	// CacheTTL overrides DefaultCacheTTL.
	CacheTTL time.Duration `json:"cache_ttl,omitempty"`

	// Satisfaction additionally evaluates the boolean prerequisite logic
	// and attaches per-node satisfied/unlocked maps to the result.
	Satisfaction bool `json:"satisfaction,omitempty"`

	// Runtime collaborators (not serialized).
	Source   Source                 `json:"-"`
	Metadata catalog.MetadataSource `json:"-"`
	Logger   *log.Logger            `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks required fields and fills defaults.
// Safe to call more than once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.CourseID <= 0 {
		return errors.New(errors.ErrCodeInvalidCourse, "course id must be positive, got %d", o.CourseID)
	}
	if o.Source == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "a graph source is required")
	}

	if o.Formats == nil {
		o.Formats = []string{FormatJSON}
	}
	for _, f := range o.Formats {
		if !ValidFormats[f] {
			return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: json, dot, svg, png)", f)
		}
	}

	if o.CacheTTL <= 0 {
		o.CacheTTL = DefaultCacheTTL
	}

	// Reject bad layout tuning up front rather than mid-run.
	cfg := o.layoutConfig()
	if err := cfg.ValidateAndSetDefaults(); err != nil {
		return err
	}
	o.Direction = string(cfg.Direction)

	o.validated = true
	return nil
}

func (o *Options) layoutConfig() layout.Config {
	return layout.Config{
		Direction:      layout.Direction(o.Direction),
		NodeSeparation: o.NodeSeparation,
		RankSeparation: o.RankSeparation,
		MarginX:        o.MarginX,
		MarginY:        o.MarginY,
	}
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the canonical normalized graph.
	Graph prereq.Graph

	// GraphHash is the content hash of the canonical graph.
	GraphHash string

	// Layout is the positioned graph.
	Layout *layout.Result

	// Summary aggregates the positioned graph.
	Summary analytics.Summary

	// Satisfied and Unlocked are present only when Options.Satisfaction
	// was set.
	Satisfied map[string]bool
	Unlocked  map[string]bool

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	FetchTime     time.Duration
	NormalizeTime time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	GraphHit  bool // Whether the raw graph came from cache
	LayoutHit bool // Whether the positioned layout came from cache
}
