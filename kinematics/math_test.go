package kinematics

import (
	"math"
	"testing"
)

func TestLimitAngleRange(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{180, 180},
		{-180, 180},
		{540, 180},
		{-200, 160},
		{200, -160},
		{360, 0},
		{-540, 180},
	}
	for _, c := range cases {
		got := LimitAngle(c.in)
		if math.Abs(got-c.want) > 1e-9 {
			t.Errorf("LimitAngle(%v) = %v, want %v", c.in, got, c.want)
		}
		if got <= -180 || got > 180 {
			t.Errorf("LimitAngle(%v) = %v, out of (-180, 180]", c.in, got)
		}
	}
}

func TestLimitAngleIdempotent(t *testing.T) {
	for a := -720.0; a <= 720.0; a += 17.3 {
		once := LimitAngle(a)
		twice := LimitAngle(once)
		if math.Abs(once-twice) > 1e-9 {
			t.Errorf("LimitAngle not idempotent at %v: %v != %v", a, once, twice)
		}
	}
}

func TestShortestAngleDiffRangeAndIdentity(t *testing.T) {
	for a := -720.0; a <= 720.0; a += 23.1 {
		for b := -720.0; b <= 720.0; b += 31.7 {
			d := ShortestAngleDiff(a, b)
			if d < -180 || d > 180 {
				t.Fatalf("ShortestAngleDiff(%v, %v) = %v out of [-180, 180]", a, b, d)
			}
			// a - d must be congruent to b modulo 360.
			residual := math.Mod(a-d-b, 360)
			if residual > 180 {
				residual -= 360
			}
			if residual < -180 {
				residual += 360
			}
			if math.Abs(residual) > 1e-6 {
				t.Fatalf("ShortestAngleDiff(%v, %v) = %v: a-d !== b (mod 360), residual %v", a, b, d, residual)
			}
		}
	}
}

func TestClamp(t *testing.T) {
	if Clamp(5, 3) != 3 {
		t.Errorf("expected clamp to saturate positive side")
	}
	if Clamp(-5, 3) != -3 {
		t.Errorf("expected clamp to saturate negative side")
	}
	if Clamp(1, 3) != 1 {
		t.Errorf("expected clamp to pass through in-range value")
	}
}
