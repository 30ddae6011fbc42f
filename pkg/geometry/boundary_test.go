package geometry

import (
	"math"
	"testing"

	"github.com/matzehuels/classlink/pkg/diagram"
)

const eps = 1e-9

func near(a, b diagram.Point) bool {
	return math.Abs(a.X-b.X) < eps && math.Abs(a.Y-b.Y) < eps
}

func TestResolveBoundaryPoint(t *testing.T) {
	a := diagram.Node{ID: "A", X: 0, Y: 0, Width: 100, Height: 50}

	tests := []struct {
		name    string
		subject diagram.Node
		other   diagram.Node
		want    diagram.Point
	}{
		{
			name:    "rightward",
			subject: a,
			other:   diagram.Node{X: 200, Y: 0, Width: 100, Height: 50},
			want:    diagram.Point{X: 100, Y: 25},
		},
		{
			name:    "leftward",
			subject: diagram.Node{X: 200, Y: 0, Width: 100, Height: 50},
			other:   a,
			want:    diagram.Point{X: 200, Y: 25},
		},
		{
			name:    "downward",
			subject: a,
			other:   diagram.Node{X: 0, Y: 200, Width: 100, Height: 50},
			want:    diagram.Point{X: 50, Y: 50},
		},
		{
			name:    "upward",
			subject: diagram.Node{X: 0, Y: 200, Width: 100, Height: 50},
			other:   a,
			want:    diagram.Point{X: 50, Y: 200},
		},
		{
			name:    "shallow rightward slope",
			subject: a,
			other:   diagram.Node{X: 450, Y: 100, Width: 100, Height: 50},
			// angle = atan(100/450); dy = 50 * 100/450
			want: diagram.Point{X: 100, Y: 25 + 50*100.0/450},
		},
		{
			name:    "coincident centers exit right",
			subject: a,
			other:   a,
			want:    diagram.Point{X: 100, Y: 25},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveBoundaryPoint(tt.subject, tt.other)
			if !near(got, tt.want) {
				t.Errorf("ResolveBoundaryPoint() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEndpointsCompositionScenario(t *testing.T) {
	a := diagram.Node{ID: "A", X: 0, Y: 0, Width: 100, Height: 50}
	b := diagram.Node{ID: "B", X: 200, Y: 0, Width: 100, Height: 50}

	start, end := Endpoints(a, b)
	if !near(start, diagram.Point{X: 100, Y: 25}) {
		t.Errorf("start = %v, want (100, 25)", start)
	}
	if !near(end, diagram.Point{X: 200, Y: 25}) {
		t.Errorf("end = %v, want (200, 25)", end)
	}
}

// The half-width offset overshoots the short side of a wide box at a
// diagonal. Clamping pins it to the corner; the raw formula leaves the box.
func TestClampingWideRectangle(t *testing.T) {
	wide := diagram.Node{X: 0, Y: 0, Width: 200, Height: 50}  // center (100, 25)
	other := diagram.Node{X: 180, Y: 85, Width: 40, Height: 40} // center (200, 105)

	raw := RawBoundaryPoint(wide, other)
	if !near(raw, diagram.Point{X: 200, Y: 105}) {
		t.Errorf("RawBoundaryPoint() = %v, want (200, 105)", raw)
	}
	if OnPerimeter(wide, raw, eps) {
		t.Error("raw point should lie outside the box for this case")
	}

	clamped := ResolveBoundaryPoint(wide, other)
	if !near(clamped, diagram.Point{X: 200, Y: 50}) {
		t.Errorf("ResolveBoundaryPoint() = %v, want (200, 50)", clamped)
	}
	if !OnPerimeter(wide, clamped, eps) {
		t.Errorf("clamped point %v should lie on the perimeter", clamped)
	}
}

func TestClampingTallRectangle(t *testing.T) {
	tall := diagram.Node{X: 0, Y: 0, Width: 40, Height: 200}    // center (20, 100)
	other := diagram.Node{X: 80, Y: 280, Width: 40, Height: 40} // center (100, 300)

	// angle = atan2(200, 80): vertical branch, dx = 100 / 2.5 = 40 > 20
	raw := RawBoundaryPoint(tall, other)
	if !near(raw, diagram.Point{X: 60, Y: 200}) {
		t.Errorf("RawBoundaryPoint() = %v, want (60, 200)", raw)
	}
	clamped := ResolveBoundaryPoint(tall, other)
	if !near(clamped, diagram.Point{X: 40, Y: 200}) {
		t.Errorf("ResolveBoundaryPoint() = %v, want (40, 200)", clamped)
	}
}

func TestSquareBoxesNeedNoClamp(t *testing.T) {
	sq := diagram.Node{X: 0, Y: 0, Width: 60, Height: 60}
	for deg := 0.0; deg < 360; deg += 11 {
		rad := deg * math.Pi / 180
		other := diagram.Node{X: 30 + 400*math.Cos(rad) - 10, Y: 30 + 400*math.Sin(rad) - 10, Width: 20, Height: 20}
		raw := RawBoundaryPoint(sq, other)
		clamped := ResolveBoundaryPoint(sq, other)
		if !near(raw, clamped) {
			t.Errorf("at %v°: raw %v != clamped %v", deg, raw, clamped)
		}
	}
}

func TestResolvedPointsLieOnPerimeter(t *testing.T) {
	subjects := []diagram.Node{
		{X: 0, Y: 0, Width: 120, Height: 40},
		{X: -50, Y: 10, Width: 30, Height: 90},
		{X: 5, Y: 5, Width: 70, Height: 70},
	}

	for _, s := range subjects {
		c := s.Center()
		for deg := 7.0; deg < 360; deg += 15 {
			rad := deg * math.Pi / 180
			other := diagram.Node{
				X:     c.X + 500*math.Cos(rad) - 25,
				Y:     c.Y + 500*math.Sin(rad) - 15,
				Width: 50, Height: 30,
			}

			start, end := Endpoints(s, other)
			if !OnPerimeter(s, start, eps) {
				t.Errorf("subject %v at %v°: start %v not on perimeter", s, deg, start)
			}
			if !OnPerimeter(other, end, eps) {
				t.Errorf("subject %v at %v°: end %v not on other's perimeter", s, deg, end)
			}

			// The visible segment points the same way as the center line.
			dir := diagram.Point{X: other.Center().X - c.X, Y: other.Center().Y - c.Y}
			seg := diagram.Point{X: end.X - start.X, Y: end.Y - start.Y}
			if dir.X*seg.X+dir.Y*seg.Y <= 0 {
				t.Errorf("subject %v at %v°: segment %v opposes center line %v", s, deg, seg, dir)
			}
		}
	}
}

func TestAngle(t *testing.T) {
	if got := Angle(diagram.Point{}, diagram.Point{X: 0, Y: 10}); math.Abs(got-math.Pi/2) > eps {
		t.Errorf("Angle(down) = %v, want π/2", got)
	}
	if got := Angle(diagram.Point{X: 10}, diagram.Point{}); math.Abs(got-math.Pi) > eps {
		t.Errorf("Angle(left) = %v, want π", got)
	}
}

func TestOnPerimeter(t *testing.T) {
	n := diagram.Node{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		p    diagram.Point
		want bool
	}{
		{diagram.Point{X: 0, Y: 5}, true},
		{diagram.Point{X: 10, Y: 10}, true},
		{diagram.Point{X: 5, Y: 5}, false},
		{diagram.Point{X: 11, Y: 5}, false},
		{diagram.Point{X: 10, Y: 12}, false},
	}
	for _, tt := range tests {
		if got := OnPerimeter(n, tt.p, eps); got != tt.want {
			t.Errorf("OnPerimeter(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
