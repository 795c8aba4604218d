// Package pipeline orchestrates the full graph engine run:
// fetch → normalize → layout → analytics → artifacts.
//
// The [Runner] centralizes caching and logging so the CLI and the HTTP
// server behave identically. Raw graphs and positioned layouts are cached
// independently; a progress or config change invalidates only the layout.
//
// Usage:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    CourseID:  4521,
//	    StudentID: "s-1042",
//	    Source:    catalogClient,
//	    Metadata:  metadataStore,
//	    Formats:   []string{pipeline.FormatJSON},
//	}
//	result, err := runner.Execute(ctx, opts)
package pipeline
