// Package httputil provides the HTTP plumbing shared by the upstream
// service clients: retry with exponential backoff for transient failures
// and a caching GET helper backed by a [cache.Cache].
//
// # Retry
//
// [Retry] re-executes an operation when it fails with an error wrapped in
// [RetryableError]. Clients wrap network errors, 5xx responses, and 429
// rate limits; anything else fails fast.
//
// # Caching
//
// [Client.GetJSON] consults the configured cache before making a request
// and stores successful responses with the configured TTL, so repeated
// graph fetches for the same course do not hit the upstream service.
package httputil
