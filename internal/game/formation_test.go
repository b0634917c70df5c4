package game

import "testing"

var allFormations = []FormationType{Formation442, Formation433, Formation532}

func TestHomePosition_GoalieStaysOnLine(t *testing.T) {
	for _, ft := range allFormations {
		for _, ball := range []Vec2{{}, {X: 40, Y: 30}, {X: -50, Y: -30}} {
			p := ft.HomePosition(1, ball)
			if p.X != -50 {
				t.Fatalf("formation %s: goalie should hold x=-50, got %.1f", ft, p.X)
			}
			if p.Y < -6 || p.Y > 6 {
				t.Fatalf("formation %s: goalie y %.1f outside goal mouth", ft, p.Y)
			}
		}
	}
}

func TestHomePosition_ShiftsWithBall(t *testing.T) {
	for _, ft := range allFormations {
		for unum := 2; unum <= TeamSize; unum++ {
			centre := ft.HomePosition(unum, V(0, 0))
			forward := ft.HomePosition(unum, V(20, 0))
			if forward.X <= centre.X {
				t.Fatalf("formation %s unum %d: should push up with the ball (%.1f → %.1f)", ft, unum, centre.X, forward.X)
			}
			wide := ft.HomePosition(unum, V(0, 20))
			if wide.Y <= centre.Y {
				t.Fatalf("formation %s unum %d: should slide toward the ball side", ft, unum)
			}
		}
	}
}

func TestHomePosition_StaysOnPitch(t *testing.T) {
	for _, ft := range allFormations {
		for unum := 1; unum <= TeamSize; unum++ {
			for _, ball := range []Vec2{{X: 52, Y: 34}, {X: -52, Y: -34}} {
				p := ft.HomePosition(unum, ball)
				if p.X < -PitchHalfLength || p.X > PitchHalfLength || p.Y < -PitchHalfWidth || p.Y > PitchHalfWidth {
					t.Fatalf("formation %s unum %d: (%.1f,%.1f) off the pitch", ft, unum, p.X, p.Y)
				}
			}
		}
	}
}

func TestHomePosition_InvalidUnum(t *testing.T) {
	if p := Formation442.HomePosition(0, V(0, 0)); p != (Vec2{}) {
		t.Fatalf("unum 0 should map to origin, got (%.1f,%.1f)", p.X, p.Y)
	}
	if p := Formation442.HomePosition(12, V(0, 0)); p != (Vec2{}) {
		t.Fatalf("unum 12 should map to origin, got (%.1f,%.1f)", p.X, p.Y)
	}
}

func TestParseFormation(t *testing.T) {
	cases := map[string]FormationType{
		"":      Formation442,
		"4-4-2": Formation442,
		"433":   Formation433,
		"5-3-2": Formation532,
	}
	for in, want := range cases {
		got, err := ParseFormation(in)
		if err != nil || got != want {
			t.Fatalf("ParseFormation(%q) = %s, %v; want %s", in, got, err, want)
		}
	}
	if _, err := ParseFormation("3-5-2"); err == nil {
		t.Fatal("unknown formation should fail")
	}
}
