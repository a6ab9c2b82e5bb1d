package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/m-mizutani/vendorfetch/pkg/domain/model"
	"github.com/m-mizutani/vendorfetch/pkg/domain/types"
)

func colorOutcome(o model.Outcome) string {
	switch o {
	case model.OutcomeDownloaded:
		return color.GreenString(o.String())
	case model.OutcomeSkipped:
		return color.CyanString(o.String())
	case model.OutcomeFailed:
		return color.RedString(o.String())
	default:
		return o.String()
	}
}

// renderReport prints one row per manifest entry followed by the totals
func renderReport(w io.Writer, summary *model.RunSummary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Path", "Outcome", "Attempts", "Error"})

	for i, r := range summary.Results {
		var errMsg string
		if r.Err != nil {
			errMsg = fmt.Sprintf("[%s] %v", types.Kind(r.Err), r.Err)
		}
		t.AppendRow(table.Row{i + 1, r.Entry.String(), colorOutcome(r.Outcome), len(r.Attempts), errMsg})
	}

	t.AppendFooter(table.Row{
		"", fmt.Sprintf("%d processed", summary.Processed),
		fmt.Sprintf("%d downloaded / %d skipped / %d failed", summary.Downloaded, summary.Skipped, summary.Failed),
		"", summary.Elapsed.Round(time.Millisecond).String(),
	})
	t.Render()
}

// renderStatus prints local presence of each entry
func renderStatus(w io.Writer, statuses []model.EntryStatus) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"#", "Path", "Local"})

	present := 0
	for i, s := range statuses {
		state := color.YellowString("missing")
		if s.Exists {
			state = color.GreenString("present")
			present++
		}
		t.AppendRow(table.Row{i + 1, s.Entry.String(), state})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d/%d present", present, len(statuses)), ""})
	t.Render()
}
