package fingerprint

import "testing"

func TestHash_Deterministic(t *testing.T) {
	inputs := []string{
		"",
		"Grant round 1 open.",
		"Grant round 1 open. Apply now.",
		"Unicode content: Grüße — 資金提供",
	}

	for _, input := range inputs {
		first := Hash(input)
		second := Hash(input)
		if first != second {
			t.Errorf("Hash(%q) not deterministic: %s != %s", input, first, second)
		}
		if len(first) != 64 {
			t.Errorf("Hash(%q) length = %d, want 64", input, len(first))
		}
	}
}

func TestHash_DistinctInputs(t *testing.T) {
	corpus := []string{
		"",
		" ",
		"a",
		"A",
		"Grant round 1 open.",
		"Grant round 1 open. ",
		"Grant round 2 open.",
		"Completely unrelated text about governance proposals.",
	}

	seen := make(map[string]string)
	for _, input := range corpus {
		digest := Hash(input)
		if prev, dup := seen[digest]; dup {
			t.Errorf("collision between %q and %q", prev, input)
		}
		seen[digest] = input
	}
}
