package render

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/classlink/pkg/diagram"
)

func nodesAB() diagram.NodeSet {
	return diagram.NodeSet{
		{ID: "A", X: 0, Y: 0, Width: 100, Height: 50},
		{ID: "B", X: 200, Y: 0, Width: 100, Height: 50},
	}
}

func approxOp(t *testing.T, got Op, name string, args ...float64) {
	t.Helper()
	if got.Name != name || len(got.Args) != len(args) {
		t.Fatalf("op = %v, want %s%v", got, name, args)
	}
	for i := range args {
		if math.Abs(got.Args[i]-args[i]) > 1e-6 {
			t.Fatalf("op = %v, want %s%v", got, name, args)
		}
	}
}

func TestRenderCompositionScenario(t *testing.T) {
	var rec Recorder
	rel := diagram.Relationship{ID: "r1", From: "A", To: "B", Kind: diagram.Composition}
	if !Draw(&rec, rel, nodesAB()) {
		t.Fatal("Draw() = false, want true")
	}

	sin60 := 18 * math.Sin(math.Pi/3)
	want := []struct {
		name string
		args []float64
	}{
		{"BeginPath", nil},
		{"MoveTo", []float64{100, 25}},
		{"LineTo", []float64{200, 25}},
		{"Stroke", nil},
		{"BeginPath", nil},
		{"MoveTo", []float64{200, 25}},
		{"LineTo", []float64{191, 25 + sin60}},
		{"LineTo", []float64{182, 25}},
		{"LineTo", []float64{191, 25 - sin60}},
		{"ClosePath", nil},
		{"SetFillColor", nil},
		{"Fill", nil},
		{"Stroke", nil},
	}
	if len(rec.Ops) != len(want) {
		t.Fatalf("got %d ops, want %d:\n%s", len(rec.Ops), len(want), rec.String())
	}
	for i, w := range want {
		approxOp(t, rec.Ops[i], w.name, w.args...)
	}
	if rec.Ops[10].Text != FillColor {
		t.Errorf("fill color = %q, want %q", rec.Ops[10].Text, FillColor)
	}
	if rec.Count("SetDash") != 0 {
		t.Error("composition line should be solid")
	}
}

func TestRenderByKind(t *testing.T) {
	tests := []struct {
		kind      diagram.Kind
		lineTos   int
		closes    int
		fills     int
		dashCalls int
		strokes   int
	}{
		{diagram.Association, 1, 0, 0, 0, 1},
		{diagram.Inheritance, 3, 1, 0, 0, 2},
		{diagram.Realization, 3, 1, 0, 0, 2},
		{diagram.Dependency, 3, 1, 0, 2, 2},
		{diagram.Aggregation, 4, 1, 0, 0, 2},
		{diagram.Composition, 4, 1, 1, 0, 2},
		{diagram.Kind("usage"), 1, 0, 0, 0, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			var rec Recorder
			Render(&rec, diagram.Point{X: 100, Y: 25}, diagram.Point{X: 200, Y: 25}, tt.kind)

			checks := []struct {
				name string
				want int
			}{
				{"LineTo", tt.lineTos},
				{"ClosePath", tt.closes},
				{"Fill", tt.fills},
				{"SetDash", tt.dashCalls},
				{"Stroke", tt.strokes},
			}
			for _, c := range checks {
				if got := rec.Count(c.name); got != c.want {
					t.Errorf("%s count = %d, want %d\n%s", c.name, got, c.want, rec.String())
				}
			}
			if rec.Dashed() {
				t.Error("dash pattern not restored after Render")
			}
		})
	}
}

func TestInheritanceAndRealizationShareArrowhead(t *testing.T) {
	var inh, rea Recorder
	from, to := diagram.Point{X: 10, Y: 80}, diagram.Point{X: 140, Y: 12}
	Render(&inh, from, to, diagram.Inheritance)
	Render(&rea, from, to, diagram.Realization)

	if inh.String() != rea.String() {
		t.Errorf("inheritance and realization differ:\n%s\n---\n%s", inh.String(), rea.String())
	}
	if Styles[diagram.Inheritance].Decoration != Styles[diagram.Realization].Decoration {
		t.Error("style table should map both kinds to the same decoration")
	}
}

func TestArrowheadGeometry(t *testing.T) {
	var rec Recorder
	Render(&rec, diagram.Point{X: 100, Y: 25}, diagram.Point{X: 200, Y: 25}, diagram.Inheritance)

	dx := 20 * math.Cos(math.Pi/6)
	approxOp(t, rec.Ops[5], "MoveTo", 200, 25)
	approxOp(t, rec.Ops[6], "LineTo", 200-dx, 35)
	approxOp(t, rec.Ops[7], "LineTo", 200-dx, 15)
	approxOp(t, rec.Ops[8], "ClosePath")
}

func TestDependencyDecorationIsSolid(t *testing.T) {
	var rec Recorder
	Render(&rec, diagram.Point{X: 0, Y: 0}, diagram.Point{X: 0, Y: 100}, diagram.Dependency)

	names := make([]string, len(rec.Ops))
	for i, op := range rec.Ops {
		names[i] = op.Name
	}

	first := slices.Index(names, "SetDash")
	if first != 0 || len(rec.Ops[0].Args) != 2 {
		t.Fatalf("dependency should start by enabling dashes, got:\n%s", rec.String())
	}
	reset := first + 1 + slices.Index(names[first+1:], "SetDash")
	if len(rec.Ops[reset].Args) != 0 {
		t.Errorf("second SetDash should clear the pattern, got %v", rec.Ops[reset])
	}
	if closeAt := slices.Index(names, "ClosePath"); closeAt < reset {
		t.Error("arrowhead drawn before dash pattern was restored")
	}
	if rec.Count("Fill") != 0 {
		t.Error("dependency arrowhead should be open")
	}
}

func TestDrawMissingNode(t *testing.T) {
	var rec Recorder
	rel := diagram.Relationship{ID: "r", From: "A", To: "ghost", Kind: diagram.Composition}
	if Draw(&rec, rel, nodesAB()) {
		t.Error("Draw() = true for dangling relationship")
	}
	if len(rec.Ops) != 0 {
		t.Errorf("dangling relationship drew %d ops", len(rec.Ops))
	}
}

func TestDrawAll(t *testing.T) {
	d := &diagram.Diagram{
		Nodes: nodesAB(),
		Relationships: []diagram.Relationship{
			{ID: "1", From: "A", To: "B", Kind: diagram.Association},
			{ID: "2", From: "B", To: "A", Kind: diagram.Inheritance},
			{ID: "3", From: "A", To: "C", Kind: diagram.Dependency},
		},
	}
	var rec Recorder
	if got := DrawAll(&rec, d); got != 2 {
		t.Errorf("DrawAll() = %d, want 2", got)
	}
}

func TestStyleFor(t *testing.T) {
	for _, k := range diagram.Kinds {
		if _, ok := StyleFor(k); !ok {
			t.Errorf("StyleFor(%q) missing", k)
		}
	}
	s, ok := StyleFor("usage")
	if ok || s.Line != Solid || s.Decoration != NoDecoration {
		t.Errorf("StyleFor(unknown) = %v, %v", s, ok)
	}
}

func TestRecorderReset(t *testing.T) {
	var rec Recorder
	rec.SetDash(1, 2)
	rec.Stroke()
	rec.Reset()
	if len(rec.Ops) != 0 || rec.Dashed() {
		t.Error("Reset() should clear ops and dash state")
	}
}
