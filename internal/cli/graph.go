package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/courseflow/courseflow/pkg/catalog"
	"github.com/courseflow/courseflow/pkg/pipeline"
)

// graphCommand creates the graph command, the main entry point of the CLI.
func (c *CLI) graphCommand() *cobra.Command {
	var (
		formatsStr string
		output     string
		noCache    bool
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "graph [course-id]",
		Short: "Fetch and lay out a course's prerequisite graph",
		Long: `Fetch and lay out a course's prerequisite graph.

The graph command fetches the prerequisite graph for the given course from
the catalog API, normalizes it, computes a layered layout, and writes the
requested artifacts. With --student, each course is annotated with that
student's progress status.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			courseID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid course id: %q", args[0])
			}
			opts.CourseID = courseID
			opts.Formats = parseFormats(formatsStr)
			return c.runGraph(cmd.Context(), opts, output, noCache)
		},
	}

	// Common flags
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "bypass caches and refetch from the catalog")

	// Graph flags
	cmd.Flags().StringVarP(&opts.StudentID, "student", "s", "", "student whose progress annotates the graph")
	cmd.Flags().BoolVar(&opts.Satisfaction, "satisfaction", false, "evaluate prerequisite logic per node")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), dot, svg, png (comma-separated)")

	// Layout flags
	cmd.Flags().StringVarP(&opts.Direction, "direction", "d", "", "layout direction: LR (default), RL, TB, BT")
	cmd.Flags().Float64Var(&opts.NodeSeparation, "node-sep", 0, "gap between nodes in a rank")
	cmd.Flags().Float64Var(&opts.RankSeparation, "rank-sep", 0, "gap between ranks")

	return cmd
}

// runGraph executes the pipeline and writes artifacts.
func (c *CLI) runGraph(ctx context.Context, opts pipeline.Options, output string, noCache bool) error {
	runner, backend, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()

	client := catalog.NewClient(c.Config.BaseURL, backend, c.Config.CacheTTL())
	opts.Source = client
	opts.Metadata = c.metadataSource(ctx, client)
	opts.Logger = c.Logger
	opts.CacheTTL = c.Config.CacheTTL()
	if opts.Direction == "" {
		opts.Direction = c.Config.Direction
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Building graph for course %d...", opts.CourseID))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Graph build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := writeArtifacts(result.Artifacts, opts, output); err != nil {
		return err
	}

	printStats(result.Stats.NodeCount, result.Stats.EdgeCount, result.CacheInfo.LayoutHit)
	printSummary(result)
	return nil
}

// metadataSource prefers the MongoDB store when configured, falling back
// to per-course catalog lookups.
func (c *CLI) metadataSource(ctx context.Context, client *catalog.Client) catalog.MetadataSource {
	if c.Config.MongoURI == "" {
		return client
	}
	store, err := catalog.NewMongoStore(ctx, c.Config.MongoURI, appName, "courses")
	if err != nil {
		c.Logger.Warn("mongo unavailable, using catalog lookups", "err", err)
		return client
	}
	return store
}

// writeArtifacts writes each rendered artifact to disk. With a single
// format the output flag names the file directly; with several it is the
// base path and each artifact gets its format as extension.
func writeArtifacts(artifacts map[string][]byte, opts pipeline.Options, output string) error {
	base := output
	if base == "" {
		base = fmt.Sprintf("course_%d", opts.CourseID)
	}

	for _, format := range opts.Formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}

		path := base + "." + format
		if output != "" && len(opts.Formats) == 1 {
			path = output
		}

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create output dir %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		printFile(path)
	}
	return nil
}

// printSummary prints the analytics block beneath the artifact list.
func printSummary(result *pipeline.Result) {
	s := result.Summary
	printNewline()
	printKeyValue("Depth", strconv.Itoa(s.MaxDepth))
	printKeyValue("Completed", strconv.Itoa(s.CompletedCourses))
	printKeyValue("Available", strconv.Itoa(s.AvailableCourses))
	printKeyValue("Locked", strconv.Itoa(s.LockedCourses))
	if s.AverageCredits > 0 {
		printKeyValue("Avg credits", strconv.FormatFloat(s.AverageCredits, 'f', 1, 64))
	}
}
