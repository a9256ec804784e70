package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/xolan/stt/internal/config"
	"github.com/xolan/stt/internal/service"
	"github.com/xolan/stt/internal/timeutil"
)

// WriteStatus prints one summary line per tracker block.
func WriteStatus(w io.Writer, statuses []*service.Status, cfg config.Config) {
	loc, err := timeutil.LoadLocation(cfg.Timezone)
	if err != nil {
		loc = time.Local
	}
	head := color.New(color.Bold, color.Underline)
	running := color.New(color.FgGreen, color.Bold)
	idle := color.New(color.Faint)

	tbl := uitable.New()
	tbl.MaxColWidth = 40
	tbl.Separator = "  "
	tbl.AddRow(head.Sprint("Block"), head.Sprint("Running"), head.Sprint("Current"), head.Sprint("Today"), head.Sprint("Total"))

	for _, st := range statuses {
		state := idle.Sprint("idle")
		current := idle.Sprint("-")
		if st.Running != nil {
			state = running.Sprint(FormatEntryLabel(st.RunningPath, st.Running))
			started := ""
			if st.Running.StartTime != nil {
				started = fmt.Sprintf(" (since %s)", FormatStartTime(*st.Running.StartTime, st.Now, loc))
			}
			current = FormatDuration(st.Current, cfg) + started
		}
		tbl.AddRow(fmt.Sprintf("#%d", st.Block), state, current, FormatDuration(st.Today, cfg), FormatDuration(st.Total, cfg))
	}
	_, _ = fmt.Fprintln(w, tbl)
}
