// Package printers renders resolved schedules for non-interactive output.
package printers

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/mattn/go-isatty"

	"tableflip.dev/timescope/pkg/timeline"
	"tableflip.dev/timescope/pkg/timeutil"
)

// PrettyPrint writes resolved schedules as a table, optionally with ids.
type PrettyPrint struct {
	ShowID bool
}

func init() {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

// Title prints a bold, underlined section heading.
func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Schedule prints every object of the snapshot, grouped by layer row order.
func (pp *PrettyPrint) Schedule(r *timeline.Resolved) {
	rows := timeline.BuildRows(r)

	table := uitable.New()
	table.MaxColWidth = 60
	if pp.ShowID {
		table.AddRow("LAYER", "OBJECT", "INSTANCE", "START", "END")
	} else {
		table.AddRow("LAYER", "OBJECT", "START", "END")
	}

	for _, layer := range rows.Names() {
		for _, id := range r.ObjectIDs() {
			obj := r.Objects[id]
			if obj.Layer != layer {
				continue
			}
			for _, in := range obj.Instances {
				end := "..."
				if in.End != nil {
					end = timeutil.FormatTime(*in.End)
				}
				if pp.ShowID {
					table.AddRow(layer, obj.ID, in.ID, timeutil.FormatTime(in.Start), end)
				} else {
					table.AddRow(layer, obj.ID, timeutil.FormatTime(in.Start), end)
				}
			}
		}
	}
	fmt.Println(table)
}

// Objects prints the declarative input set, one row per object.
func (pp *PrettyPrint) Objects(objs []timeline.Object) {
	if len(objs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	table := uitable.New()
	table.MaxColWidth = 60
	table.AddRow("LAYER", "OBJECT", "ENABLE")
	for _, obj := range objs {
		table.AddRow(obj.Layer, obj.ID, describeEnable(obj.Enable))
	}
	fmt.Println(table)
}

func describeEnable(enable []timeline.Enable) string {
	if len(enable) == 0 {
		return "never"
	}
	out := ""
	for i, en := range enable {
		if i > 0 {
			out += ", "
		}
		switch {
		case en.End != nil:
			out += fmt.Sprintf("[%s, %s)", timeutil.FormatTime(en.Start), timeutil.FormatTime(*en.End))
		case en.Duration != nil:
			out += fmt.Sprintf("%s for %s", timeutil.FormatTime(en.Start), timeutil.FormatTime(*en.Duration))
		default:
			out += fmt.Sprintf("[%s, ...)", timeutil.FormatTime(en.Start))
		}
		if en.Repeat > 0 {
			out += fmt.Sprintf(" every %s", timeutil.FormatTime(en.Repeat))
		}
	}
	return out
}
