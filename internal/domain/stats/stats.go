package stats

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/GriffinCanCode/vcbot/internal/domain/blueprint"
	"github.com/GriffinCanCode/vcbot/internal/domain/palette"
)

// Line is one entry of the report.
type Line struct {
	Name    string `json:"name"`
	Pixels  int    `json:"pixels"`
	Percent int    `json:"percent"`
}

func (l Line) String() string {
	return fmt.Sprintf("%s pixels: %d (%d%%)", l.Name, l.Pixels, l.Percent)
}

// Report summarizes the composition of a blueprint's logic layer.
type Report struct {
	Checksum string `json:"checksum"`
	Width    uint32 `json:"width"`
	Height   uint32 `json:"height"`

	// Lines holds the non-empty categories in palette order, followed by
	// the Trace and Bus totals.
	Lines []Line `json:"lines"`

	UsedArea    int `json:"used_area"`
	UsedPercent int `json:"used_percent"`

	// Counts holds the pixel count of every category by name, including
	// zero counts and the individual Bus/Trace channels.
	Counts       map[string]int `json:"counts"`
	Unclassified int            `json:"unclassified"`
	Empty        int            `json:"empty"`
}

// Summarize counts the logic pixels of bp per category.
func Summarize(bp *blueprint.Blueprint) *Report {
	tally := make([]int, palette.Len())
	var used, unclassified int

	logic := bp.Logic
	for i := 0; i+3 < len(logic); i += 4 {
		if logic[i+3] == 0 {
			continue
		}
		used++
		idx := palette.Index(color.RGBA{R: logic[i], G: logic[i+1], B: logic[i+2], A: logic[i+3]})
		if idx < 0 {
			unclassified++
			continue
		}
		tally[idx]++
	}

	total := bp.Area()
	r := &Report{
		Checksum:     bp.ChecksumHex(),
		Width:        bp.Width,
		Height:       bp.Height,
		Lines:        make([]Line, 0, 8),
		UsedArea:     used,
		UsedPercent:  Percent(used, total),
		Counts:       make(map[string]int, len(tally)),
		Unclassified: unclassified,
		Empty:        total - used,
	}

	var busTotal, traceTotal int
	for i, c := range palette.Categories() {
		n := tally[i]
		r.Counts[c.Name] = n
		switch c.Group {
		case palette.GroupBus:
			busTotal += n
		case palette.GroupTrace:
			traceTotal += n
		default:
			if n > 0 {
				r.Lines = append(r.Lines, Line{Name: c.Name, Pixels: n, Percent: Percent(n, total)})
			}
		}
	}
	if traceTotal > 0 {
		r.Lines = append(r.Lines, Line{Name: string(palette.GroupTrace), Pixels: traceTotal, Percent: Percent(traceTotal, total)})
	}
	if busTotal > 0 {
		r.Lines = append(r.Lines, Line{Name: string(palette.GroupBus), Pixels: busTotal, Percent: Percent(busTotal, total)})
	}
	return r
}

// Percent returns 100*n/total rounded half up, using integer arithmetic so
// that exact halves never round down.
func Percent(n, total int) int {
	if total <= 0 {
		return 0
	}
	return int((200*int64(n) + int64(total)) / (2 * int64(total)))
}

// Fragments returns the report body: one fragment per line plus the used
// area, in output order.
func (r *Report) Fragments() []string {
	out := make([]string, 0, len(r.Lines)+1)
	for _, l := range r.Lines {
		out = append(out, l.String())
	}
	return append(out, fmt.Sprintf("Used area: %d (%d%%)", r.UsedArea, r.UsedPercent))
}

// String renders the report as a fenced text block.
func (r *Report) String() string {
	var sb strings.Builder
	sb.WriteString("```\n")
	fmt.Fprintf(&sb, "checksum: %s\n", r.Checksum)
	fmt.Fprintf(&sb, "width:    %d\n", r.Width)
	fmt.Fprintf(&sb, "height:   %d\n", r.Height)
	sb.WriteString("-----------\n")
	sb.WriteString(strings.Join(r.Fragments(), ", "))
	sb.WriteString("\n```")
	return sb.String()
}
