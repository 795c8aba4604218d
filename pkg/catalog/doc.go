// Package catalog talks to the systems that feed the graph engine: the
// prerequisite-data service that serves raw graphs and student progress,
// and the course-catalog metadata sources (the same HTTP service or a
// MongoDB collection for server deployments).
//
// All clients cache responses through [cache.Cache] and retry transient
// failures; see pkg/httputil.
package catalog
