package render

import (
	"fmt"
	"strings"
)

// Op is one recorded surface call.
type Op struct {
	Name string
	Args []float64
	Text string // SetFillColor argument
}

func (o Op) String() string {
	if o.Text != "" {
		return fmt.Sprintf("%s(%s)", o.Name, o.Text)
	}
	parts := make([]string, len(o.Args))
	for i, a := range o.Args {
		parts[i] = fmt.Sprintf("%.2f", a)
	}
	return fmt.Sprintf("%s(%s)", o.Name, strings.Join(parts, ", "))
}

// Recorder is a Surface that records every call. It also tracks the dash
// state so callers can check it was restored.
type Recorder struct {
	Ops    []Op
	dashed bool
}

var _ Surface = (*Recorder)(nil)

func (r *Recorder) BeginPath()          { r.add("BeginPath") }
func (r *Recorder) MoveTo(x, y float64) { r.add("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64) { r.add("LineTo", x, y) }
func (r *Recorder) ClosePath()          { r.add("ClosePath") }
func (r *Recorder) Stroke()             { r.add("Stroke") }
func (r *Recorder) Fill()               { r.add("Fill") }

func (r *Recorder) SetDash(pattern ...float64) {
	r.dashed = len(pattern) > 0
	r.add("SetDash", pattern...)
}

func (r *Recorder) SetFillColor(color string) {
	r.Ops = append(r.Ops, Op{Name: "SetFillColor", Text: color})
}

// Dashed reports whether the current dash pattern is non-empty.
func (r *Recorder) Dashed() bool { return r.dashed }

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// Reset discards all recorded calls.
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
	r.dashed = false
}

func (r *Recorder) String() string {
	lines := make([]string, len(r.Ops))
	for i, op := range r.Ops {
		lines[i] = op.String()
	}
	return strings.Join(lines, "\n")
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}
