// Package gitiles implements a single-attempt fetcher for Gitiles hosts.
//
// Gitiles serves raw file content at <base><path>?format=TEXT as a base64
// encoded body. Every call to FetchOnce issues exactly one request; retrying
// is the caller's job.
package gitiles
