package domain

import "testing"

func TestPosition2D_Dst(t *testing.T) {
	a := Position2D{X: 0, Y: 0}
	b := Position2D{X: 3, Y: 4}
	if got := a.Dst(b); got != 5 {
		t.Errorf("Dst = %v, want 5", got)
	}
}

func TestPosition2D_Normalize(t *testing.T) {
	got := Position2D{X: 0, Y: -10}.Normalize()
	if got != (Position2D{X: 0, Y: -1}) {
		t.Errorf("Normalize = %+v, want {0 -1}", got)
	}

	zero := Position2D{}.Normalize()
	if zero != (Position2D{}) {
		t.Errorf("Normalize(zero) = %+v, want zero", zero)
	}
}

func TestPosition2D_Arithmetic(t *testing.T) {
	p := Position2D{X: 1, Y: 2}.Add(Position2D{X: 3, Y: 4}).Sub(Position2D{X: 1, Y: 1}).Scale(2)
	if p != (Position2D{X: 6, Y: 10}) {
		t.Errorf("result = %+v, want {6 10}", p)
	}
}
