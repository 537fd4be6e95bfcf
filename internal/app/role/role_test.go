package role

import "testing"

func TestParseRoundTrip(t *testing.T) {
	for _, r := range []Role{Viewer, Sales, Admin} {
		if got := Parse(r.String()); got != r {
			t.Errorf("expected %v, got %v", r, got)
		}
	}
	if got := Parse("root"); got != Viewer {
		t.Errorf("expected unknown role to fall back to viewer, got %v", got)
	}
}
