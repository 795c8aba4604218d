package catalog

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/courseflow/courseflow/pkg/cache"
	"github.com/courseflow/courseflow/pkg/errors"
	"github.com/courseflow/courseflow/pkg/httputil"
	"github.com/courseflow/courseflow/pkg/prereq"
)

// MetadataSource supplies catalog metadata for a set of course ids.
// Implementations: [Client] (HTTP) and [MongoStore] (MongoDB).
type MetadataSource interface {
	MetadataByIDs(ctx context.Context, courseIDs []int) (map[int]prereq.CourseMetadata, error)
}

// Client talks to the prerequisite-data service over HTTP.
// Safe for concurrent use.
type Client struct {
	http    *httputil.Client
	baseURL string
}

// NewClient builds a client for the service at baseURL. Responses are
// cached in backend under the "catalog" namespace for ttl.
func NewClient(baseURL string, backend cache.Cache, ttl time.Duration) *Client {
	return &Client{
		http: httputil.NewClient(
			httputil.WithCache(backend, cache.NewDefaultKeyer(), "catalog", ttl),
		),
		baseURL: baseURL,
	}
}

// FetchGraph retrieves the raw prerequisite graph for a course. A 404 from
// the service maps to COURSE_NOT_FOUND.
func (c *Client) FetchGraph(ctx context.Context, courseID int) (prereq.RawGraph, error) {
	var raw prereq.RawGraph
	u := fmt.Sprintf("%s/prerequisites/course/%d/graph", c.baseURL, courseID)
	if err := c.http.GetJSON(ctx, u, &raw); err != nil {
		if errors.Is(err, errors.ErrCodeNotFound) {
			return prereq.RawGraph{}, errors.Wrap(errors.ErrCodeCourseNotFound, err, "course %d has no prerequisite graph", courseID)
		}
		return prereq.RawGraph{}, err
	}
	return raw, nil
}

// FetchProgress retrieves a student's academic history.
func (c *Client) FetchProgress(ctx context.Context, studentID string) (prereq.UserProgress, error) {
	var progress prereq.UserProgress
	u := fmt.Sprintf("%s/students/%s/progress", c.baseURL, url.PathEscape(studentID))
	if err := c.http.GetJSON(ctx, u, &progress); err != nil {
		return prereq.UserProgress{}, err
	}
	return progress, nil
}

// SearchCourses queries the catalog by free-text. Used by the interactive
// course picker.
func (c *Client) SearchCourses(ctx context.Context, query string) ([]prereq.CourseMetadata, error) {
	var out struct {
		Courses []prereq.CourseMetadata `json:"courses"`
	}
	u := fmt.Sprintf("%s/courses/search?q=%s", c.baseURL, url.QueryEscape(query))
	if err := c.http.GetJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	return out.Courses, nil
}

// MetadataByIDs fetches catalog metadata per course. Courses the service
// does not know are omitted from the map rather than failing the batch;
// the normalizer reports them as missing metadata downstream.
func (c *Client) MetadataByIDs(ctx context.Context, courseIDs []int) (map[int]prereq.CourseMetadata, error) {
	out := make(map[int]prereq.CourseMetadata, len(courseIDs))
	for _, id := range courseIDs {
		var meta prereq.CourseMetadata
		u := fmt.Sprintf("%s/courses/%d", c.baseURL, id)
		if err := c.http.GetJSON(ctx, u, &meta); err != nil {
			if errors.Is(err, errors.ErrCodeNotFound) {
				continue
			}
			return nil, err
		}
		out[id] = meta
	}
	return out, nil
}

var _ MetadataSource = (*Client)(nil)
