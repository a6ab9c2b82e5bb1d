package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/vendorfetch/pkg/domain/model"
)

func TestManifestEntry_Validate(t *testing.T) {
	tests := []struct {
		entry   string
		wantErr bool
	}{
		{"NOTICE", false},
		{"source/h264bsd_util.c", false},
		{"a/./b.c", false},
		{"a/../b.c", false},
		{"", true},
		{"/etc/passwd", true},
		{"..", true},
		{"../outside.c", true},
		{"a/../../outside.c", true},
		{`windows\path.c`, true},
		{".", true},
	}

	for _, tt := range tests {
		t.Run(tt.entry, func(t *testing.T) {
			err := model.ManifestEntry(tt.entry).Validate()
			if tt.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}

func TestNewManifest(t *testing.T) {
	m, err := model.NewManifest("https://example.com/", []string{"b.c", "a.c"})
	gt.NoError(t, err)
	gt.Equal(t, m.Len(), 2)

	// Order is preserved
	entries := m.Entries()
	gt.Equal(t, entries[0], model.ManifestEntry("b.c"))
	gt.Equal(t, entries[1], model.ManifestEntry("a.c"))

	// Returned slice is a copy
	entries[0] = "mutated"
	gt.Equal(t, m.Entries()[0], model.ManifestEntry("b.c"))
}

func TestNewManifest_Invalid(t *testing.T) {
	_, err := model.NewManifest("", []string{"a.c"})
	gt.Error(t, err)

	_, err = model.NewManifest("https://example.com/", []string{"a.c", "a.c"})
	gt.Error(t, err)

	_, err = model.NewManifest("https://example.com/", []string{"a.c", "/abs.c"})
	gt.Error(t, err)
}

func TestRunSummary_Add(t *testing.T) {
	var s model.RunSummary
	s.Add(model.DownloadResult{Entry: "a", Outcome: model.OutcomeSkipped})
	s.Add(model.DownloadResult{Entry: "b", Outcome: model.OutcomeDownloaded})
	s.Add(model.DownloadResult{Entry: "c", Outcome: model.OutcomeFailed})
	s.Add(model.DownloadResult{Entry: "d", Outcome: model.OutcomeDownloaded})

	gt.Equal(t, s.Processed, 4)
	gt.Equal(t, s.Skipped, 1)
	gt.Equal(t, s.Downloaded, 2)
	gt.Equal(t, s.Failed, 1)
	gt.True(t, s.HasFailures())
	gt.Equal(t, len(s.Results), 4)
}

func TestOutcome_IsTerminal(t *testing.T) {
	gt.False(t, model.OutcomePending.IsTerminal())
	gt.True(t, model.OutcomeSkipped.IsTerminal())
	gt.True(t, model.OutcomeDownloaded.IsTerminal())
	gt.True(t, model.OutcomeFailed.IsTerminal())
}
