// Package fs is the local persistence layer. It maps manifest-relative paths
// onto a go-billy filesystem: osfs for real runs, memfs for tests.
package fs
