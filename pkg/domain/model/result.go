package model

import "time"

// Outcome is the terminal classification of a manifest entry for one run
type Outcome string

const (
	OutcomePending    Outcome = "pending"
	OutcomeSkipped    Outcome = "skipped"
	OutcomeDownloaded Outcome = "downloaded"
	OutcomeFailed     Outcome = "failed"
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	return string(o)
}

// IsTerminal returns true once the entry will not change state again in this run
func (o Outcome) IsTerminal() bool {
	return o == OutcomeSkipped || o == OutcomeDownloaded || o == OutcomeFailed
}

// DownloadAttempt records a single fetch attempt
type DownloadAttempt struct {
	Index int           // 1-based attempt number
	Delay time.Duration // Backoff waited before this attempt
	Err   error         // nil on success
}

// Succeeded reports whether the attempt returned decoded content
func (a DownloadAttempt) Succeeded() bool {
	return a.Err == nil
}

// DownloadResult is the terminal result of one manifest entry
type DownloadResult struct {
	Entry    ManifestEntry
	Outcome  Outcome
	Content  []byte            // Set when Downloaded
	Err      error             // Last error when Failed
	Attempts []DownloadAttempt // Empty when Skipped
}

// RunSummary is produced once after every entry reached a terminal outcome
type RunSummary struct {
	RunID      string
	Processed  int
	Skipped    int
	Downloaded int
	Failed     int
	Results    []DownloadResult
	Elapsed    time.Duration
}

// Add appends a terminal result and updates the counters
func (s *RunSummary) Add(r DownloadResult) {
	s.Results = append(s.Results, r)
	s.Processed++
	switch r.Outcome {
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeDownloaded:
		s.Downloaded++
	case OutcomeFailed:
		s.Failed++
	}
}

// HasFailures reports whether any entry ended Failed
func (s *RunSummary) HasFailures() bool {
	return s.Failed > 0
}

// EntryStatus describes the local presence of one entry without any network access
type EntryStatus struct {
	Entry  ManifestEntry
	Exists bool
}
