package graph

import "testing"

// TestParseAtomType_Known tests recognized atom type tags
func TestParseAtomType_Known(t *testing.T) {
	if got := ParseAtomType("process"); got != AtomProcess {
		t.Errorf("ParseAtomType(process) = %q", got)
	}
	if got := ParseAtomType("regulation"); got != AtomRegulation {
		t.Errorf("ParseAtomType(regulation) = %q", got)
	}
}

// TestParseAtomType_Unknown tests that unrecognized tags absorb into unknown
func TestParseAtomType_Unknown(t *testing.T) {
	if got := ParseAtomType("quasar"); got != AtomUnknown {
		t.Errorf("ParseAtomType(quasar) = %q, want unknown", got)
	}
	if got := ParseAtomType(""); got != AtomUnknown {
		t.Errorf("ParseAtomType(\"\") = %q, want unknown", got)
	}
}

// TestParseEdgeType_DependencyClass tests the dependency edge class
func TestParseEdgeType_DependencyClass(t *testing.T) {
	if !ParseEdgeType("requires").IsDependency() {
		t.Error("requires should be a dependency edge")
	}
	if !ParseEdgeType("depends_on").IsDependency() {
		t.Error("depends_on should be a dependency edge")
	}
	if ParseEdgeType("triggers").IsDependency() {
		t.Error("triggers should not be a dependency edge")
	}
	if got := ParseEdgeType("teleports"); got != EdgeUnknown {
		t.Errorf("ParseEdgeType(teleports) = %q, want unknown", got)
	}
}

// TestCriticality_Ordering tests LOW < MEDIUM < HIGH < CRITICAL
func TestCriticality_Ordering(t *testing.T) {
	levels := []Criticality{CriticalityLow, CriticalityMedium, CriticalityHigh, CriticalityCritical}
	for i := 0; i < len(levels)-1; i++ {
		if !levels[i].Less(levels[i+1]) {
			t.Errorf("%s should be less than %s", levels[i], levels[i+1])
		}
		if levels[i+1].Less(levels[i]) {
			t.Errorf("%s should not be less than %s", levels[i+1], levels[i])
		}
	}
}

// TestCriticality_RoundTrip tests name parsing and text marshalling
func TestCriticality_RoundTrip(t *testing.T) {
	for _, name := range []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"} {
		c := ParseCriticality(name)
		if c.String() != name {
			t.Errorf("round trip %s -> %s", name, c.String())
		}
		text, err := c.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText failed: %v", err)
		}
		var back Criticality
		if err := back.UnmarshalText(text); err != nil {
			t.Fatalf("UnmarshalText failed: %v", err)
		}
		if back != c {
			t.Errorf("text round trip %s -> %s", c, back)
		}
	}

	if ParseCriticality("SEVERE") != CriticalityLow {
		t.Error("unrecognized criticality should default to LOW")
	}
}
