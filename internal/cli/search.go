package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/courseflow/courseflow/pkg/catalog"
)

// searchCommand creates the search command for interactive course lookup.
func (c *CLI) searchCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "search [query...]",
		Short: "Search the catalog and pick a course",
		Long: `Search the catalog and pick a course.

The search command queries the catalog API for courses matching the given
terms and presents an interactive picker. Selecting a course prints the
graph command to explore its prerequisites.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSearch(cmd.Context(), strings.Join(args, " "), noCache)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runSearch queries the catalog and runs the interactive picker.
func (c *CLI) runSearch(ctx context.Context, query string, noCache bool) error {
	backend, err := c.newBackend(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	defer backend.Close()

	client := catalog.NewClient(c.Config.BaseURL, backend, c.Config.CacheTTL())

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Searching for %q...", query))
	spinner.Start()

	courses, err := client.SearchCourses(ctx, query)
	if err != nil {
		spinner.StopWithError("Search failed")
		return err
	}
	spinner.Stop()

	if len(courses) == 0 {
		printInfo("No courses match %q", query)
		return nil
	}

	model := NewCourseListModel(courses)
	program := tea.NewProgram(model, tea.WithContext(ctx))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}

	result, ok := final.(CourseListModel)
	if !ok || result.Selected == nil {
		return nil
	}

	course := result.Selected.Course
	printNewline()
	printSuccess("%s %s", course.Code, course.Title)
	if course.College != "" {
		printDetail("College: %s", course.College)
	}
	if course.Credits != "" {
		printDetail("Credits: %s", course.Credits)
	}
	printNewline()
	printNextStep("Explore prerequisites", "courseflow graph "+strconv.Itoa(course.CourseID))

	return nil
}
