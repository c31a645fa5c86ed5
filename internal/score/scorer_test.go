package score

import (
	"strings"
	"testing"
	"time"

	"github.com/opportunities-radar/radar/internal/diff"
	"github.com/opportunities-radar/radar/internal/model"
)

func fixedScorer(now time.Time) *Scorer {
	s := NewScorer()
	s.now = func() time.Time { return now }
	return s
}

func grantsSource() model.Source {
	return model.Source{ID: "src-1", Name: "Base Grants", Category: model.CategoryGrants}
}

func TestScore_CategoryBaseOnly(t *testing.T) {
	scorer := NewScorer()

	// Neutral text: no keywords, no dates, under the volume threshold.
	d := diff.Result{
		Additions:  []string{"the quick brown fox jumped over the lazy dog"},
		HasChanges: true,
	}

	result := scorer.Score(grantsSource(), d, "the quick brown fox jumped over the lazy dog")

	if result.Score != 20 {
		t.Errorf("score = %d, want 20 (grants base, no bonuses)", result.Score)
	}
	if len(result.Tags) != 1 || result.Tags[0] != "grant" {
		t.Errorf("tags = %v, want [grant]", result.Tags)
	}
	if result.Action != "" {
		t.Errorf("action = %q, want none", result.Action)
	}
	if result.Deadline != nil {
		t.Errorf("deadline = %v, want none", result.Deadline)
	}
}

func TestScore_CategoryBases(t *testing.T) {
	scorer := NewScorer()
	d := diff.Result{
		Additions:  []string{"the quick brown fox jumped over the lazy dog"},
		HasChanges: true,
	}

	cases := []struct {
		category model.Category
		want     int
	}{
		{model.CategoryGrants, 20},
		{model.CategoryGovernance, 15},
		{model.CategoryProtocol, 10},
		{model.CategoryEcosystem, 5},
	}

	for _, tc := range cases {
		source := model.Source{Category: tc.category}
		result := scorer.Score(source, d, "neutral text")
		if result.Score != tc.want {
			t.Errorf("category %s: score = %d, want %d", tc.category, result.Score, tc.want)
		}
	}
}

func TestScore_FullScenario(t *testing.T) {
	scorer := fixedScorer(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	newContent := "Grant round 1 open. New: Applications for round 2 close December 1, 2030. Apply now."
	d := diff.Result{
		Additions:  []string{"New: Applications for round 2 close December 1, 2030. Apply now."},
		HasChanges: true,
	}

	result := scorer.Score(grantsSource(), d, newContent)

	// base 20 + high-priority 15 ("apply now") + action 10 ("apply") +
	// deadline 15; the change is under the volume threshold and no
	// medium-priority keyword matches.
	if result.Score != 60 {
		t.Errorf("score = %d, want 60", result.Score)
	}
	if result.Action != "Apply" {
		t.Errorf("action = %q, want Apply", result.Action)
	}
	if result.Deadline == nil {
		t.Fatal("expected a deadline")
	}
	if y, m, day := result.Deadline.Date(); y != 2030 || m != time.December || day != 1 {
		t.Errorf("deadline = %v, want 2030-12-01", result.Deadline)
	}
	if !hasTag(result.Tags, "grant") || !hasTag(result.Tags, "deadline") {
		t.Errorf("tags = %v, want grant and deadline", result.Tags)
	}
}

func TestScore_Bounds(t *testing.T) {
	scorer := fixedScorer(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	// Every bonus at once: volume, high, medium, action, deadline.
	loaded := strings.Repeat("major update to the grant funding governance proposal. apply now. ", 30)
	d := diff.Result{Additions: []string{loaded}, HasChanges: true}

	result := scorer.Score(grantsSource(), d, loaded+" Deadline: December 1, 2030")
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("score = %d, out of [0,100]", result.Score)
	}

	empty := scorer.Score(model.Source{Category: "unknown"}, diff.Result{}, "")
	if empty.Score < 0 || empty.Score > 100 {
		t.Errorf("score = %d, out of [0,100]", empty.Score)
	}
}

func TestScore_TagsAccumulate(t *testing.T) {
	scorer := NewScorer()

	d := diff.Result{
		Additions:  []string{"a new grant was approved through the governance process"},
		HasChanges: true,
	}

	result := scorer.Score(model.Source{Category: model.CategoryProtocol}, d, "no dates here")

	if !hasTag(result.Tags, "grant") || !hasTag(result.Tags, "governance") {
		t.Errorf("tags = %v, want both grant and governance", result.Tags)
	}
}

func TestScore_PriorityBonusIsOneShot(t *testing.T) {
	scorer := NewScorer()

	single := diff.Result{
		Additions:  []string{"urgent notice about the program changes today"},
		HasChanges: true,
	}
	multiple := diff.Result{
		Additions:  []string{"urgent breaking announcement: funding deadline approaching, apply now"},
		HasChanges: true,
	}

	source := model.Source{Category: model.CategoryEcosystem}
	singleScore := scorer.Score(source, single, "no dates").Score
	multiScore := scorer.Score(source, multiple, "no dates").Score

	// Both get exactly one high-priority bonus; the multi-keyword text
	// differs only by the action bonus it also earns.
	if singleScore != 5+highPriorityBonus {
		t.Errorf("single keyword score = %d, want %d", singleScore, 5+highPriorityBonus)
	}
	if multiScore != 5+highPriorityBonus+actionBonus {
		t.Errorf("multi keyword score = %d, want %d", multiScore, 5+highPriorityBonus+actionBonus)
	}
}

func TestScore_DeadlineStrictlyFuture(t *testing.T) {
	now := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	scorer := fixedScorer(now)

	past := scorer.Score(grantsSource(), diff.Result{}, "Deadline: January 5, 2020")
	if past.Deadline != nil {
		t.Errorf("past date accepted as deadline: %v", past.Deadline)
	}

	future := scorer.Score(grantsSource(), diff.Result{}, "Deadline: January 5, 2030")
	if future.Deadline == nil {
		t.Fatal("future deadline not detected")
	}
	if !future.Deadline.After(now) {
		t.Errorf("deadline %v not after %v", future.Deadline, now)
	}
	if !hasTag(future.Tags, "deadline") {
		t.Errorf("tags = %v, want deadline", future.Tags)
	}
}

func TestScore_DeadlineScansFullContent(t *testing.T) {
	scorer := fixedScorer(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	// The date lives in unchanged page furniture, not the additions.
	d := diff.Result{
		Additions:  []string{"we shipped a small improvement to the docs"},
		HasChanges: true,
	}
	content := "we shipped a small improvement to the docs. Applications close March 15, 2031."

	result := scorer.Score(model.Source{Category: model.CategoryEcosystem}, d, content)
	if result.Deadline == nil {
		t.Error("deadline in unchanged content should still be picked up")
	}
}

func TestScore_Deterministic(t *testing.T) {
	scorer := fixedScorer(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	d := diff.Result{
		Additions:  []string{"new governance proposal: vote on the treasury upgrade by October 2, 2030"},
		HasChanges: true,
	}
	content := "full page content with the proposal text, vote by October 2, 2030"

	first := scorer.Score(grantsSource(), d, content)
	for i := 0; i < 5; i++ {
		again := scorer.Score(grantsSource(), d, content)
		if again.Score != first.Score || again.Action != first.Action ||
			len(again.Tags) != len(first.Tags) {
			t.Fatalf("non-deterministic result: %+v vs %+v", first, again)
		}
	}
}

func TestParseDate_Layouts(t *testing.T) {
	cases := []struct {
		raw  string
		ok   bool
		want string
	}{
		{"December 1, 2030", true, "2030-12-01"},
		{"December 1 2030", true, "2030-12-01"},
		{"Mar 3rd, 2030", true, "2030-03-03"},
		{"12/1/2030", true, "2030-12-01"},
		{"1-2-2031", true, "2031-01-02"},
		{"not a date", false, ""},
		{"30-40-50", false, ""},
	}

	for _, tc := range cases {
		when, ok := parseDate(tc.raw)
		if ok != tc.ok {
			t.Errorf("parseDate(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
			continue
		}
		if ok && when.Format("2006-01-02") != tc.want {
			t.Errorf("parseDate(%q) = %s, want %s", tc.raw, when.Format("2006-01-02"), tc.want)
		}
	}
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
