package scoring

import "testing"

func TestScore_NewerGenerationWins(t *testing.T) {
	tests := []struct {
		name  string
		newer string
		older string
	}{
		{"2.0 pro beats 1.5 pro", "gemini-2.0-pro", "gemini-1.5-pro"},
		{"2.0 flash beats 1.5 flash", "gemini-2.0-flash", "gemini-1.5-flash"},
		{"1.5 pro beats 1.0 pro", "gemini-1.5-pro", "gemini-1.0-pro"},
		{"2.0 flash beats 1.5 pro", "gemini-2.0-flash", "gemini-1.5-pro"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if Score(tc.newer) <= Score(tc.older) {
				t.Errorf("Score(%q)=%d should exceed Score(%q)=%d",
					tc.newer, Score(tc.newer), tc.older, Score(tc.older))
			}
		})
	}
}

func TestScore_VisionNeverDecreases(t *testing.T) {
	ids := []string{
		"gemini-pro",
		"gemini-1.5-flash",
		"gemini-2.0-pro",
		"gemini-ultra",
		"some-unknown-model",
	}

	for _, id := range ids {
		if Score(id+"-vision") < Score(id) {
			t.Errorf("adding vision marker decreased score for %q: %d < %d",
				id, Score(id+"-vision"), Score(id))
		}
	}
}

func TestScore_VisionBeatsSameGeneration(t *testing.T) {
	if Score("gemini-pro-vision") <= Score("gemini-pro") {
		t.Error("vision variant should outrank text variant of same generation")
	}
	// Vision dominates even across generations
	if Score("gemini-pro-vision") <= Score("gemini-2.0-pro") {
		t.Error("vision model should outrank newer non-vision model")
	}
}

func TestScore_ProBeatsFlash(t *testing.T) {
	if Score("gemini-1.5-pro") <= Score("gemini-1.5-flash") {
		t.Error("pro tier should outrank flash tier within a generation")
	}
}

func TestScore_UnrecognizedGetsBaseline(t *testing.T) {
	if got := Score("totally-unknown"); got != 1 {
		t.Errorf("Expected baseline score 1, got %d", got)
	}
}

func TestScore_CaseInsensitive(t *testing.T) {
	if Score("Gemini-2.0-PRO") != Score("gemini-2.0-pro") {
		t.Error("scoring should be case-insensitive")
	}
}

func TestIsBetterModel_StrictAndIrreflexive(t *testing.T) {
	ids := []string{"gemini-pro", "gemini-2.0-flash", "gemini-pro-vision", "x"}
	for _, id := range ids {
		if IsBetterModel(id, id) {
			t.Errorf("IsBetterModel(%q, %q) must be false", id, id)
		}
	}

	// Equal scores keep the incumbent regardless of argument order.
	if IsBetterModel("gemini-pro", "gemini-pro-latest") ||
		IsBetterModel("gemini-pro-latest", "gemini-pro") {
		t.Error("equal-scored identifiers must not be better than each other")
	}
}

func TestIsVisionName(t *testing.T) {
	tests := []struct {
		id       string
		expected bool
	}{
		{"gemini-pro-vision", true},
		{"gemini-1.5-pro-Vision", true},
		{"gemini-2.0-flash", false},
		{"", false},
	}

	for _, tc := range tests {
		if got := IsVisionName(tc.id); got != tc.expected {
			t.Errorf("IsVisionName(%q) = %v, expected %v", tc.id, got, tc.expected)
		}
	}
}
