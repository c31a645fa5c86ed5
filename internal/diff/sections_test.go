package diff

import (
	"strings"
	"testing"
)

func TestGroupSections_Empty(t *testing.T) {
	if got := GroupSections(nil); got != nil {
		t.Errorf("GroupSections(nil) = %v, want nil", got)
	}
}

func TestGroupSections_DropsShortFragments(t *testing.T) {
	got := GroupSections([]string{"ok", "-", "x", "this fragment is long enough to keep"})
	if len(got) != 1 {
		t.Fatalf("got %d sections, want 1: %v", len(got), got)
	}
	if got[0] != "this fragment is long enough to keep" {
		t.Errorf("unexpected section: %q", got[0])
	}
}

func TestGroupSections_JoinsContinuations(t *testing.T) {
	got := GroupSections([]string{
		"the grant program has",
		"been extended through winter",
	})
	if len(got) != 1 {
		t.Fatalf("got %d sections, want 1: %v", len(got), got)
	}
	want := "the grant program has been extended through winter"
	if got[0] != want {
		t.Errorf("section = %q, want %q", got[0], want)
	}
}

func TestGroupSections_HeadingStartsNewSection(t *testing.T) {
	got := GroupSections([]string{
		"some introductory text here",
		"# New Grants Round",
		"applications are open now",
	})
	if len(got) != 2 {
		t.Fatalf("got %d sections, want 2: %v", len(got), got)
	}
	if got[0] != "some introductory text here" {
		t.Errorf("first section = %q", got[0])
	}
	if !strings.HasPrefix(got[1], "# New Grants Round") {
		t.Errorf("second section = %q", got[1])
	}
}

func TestGroupSections_ListMarkersStartNewSections(t *testing.T) {
	got := GroupSections([]string{
		"1. first item in this list",
		"2. second item in this list",
		"- a bulleted item as well",
	})
	if len(got) != 3 {
		t.Fatalf("got %d sections, want 3: %v", len(got), got)
	}
}

func TestGroupSections_LongFragmentStartsNewSection(t *testing.T) {
	long := strings.Repeat("lengthy paragraph content ", 10) // > 200 chars
	got := GroupSections([]string{
		"short leading fragment text",
		long,
	})
	if len(got) != 2 {
		t.Fatalf("got %d sections, want 2: %v", len(got), got)
	}
	if got[1] != strings.TrimSpace(long) {
		t.Errorf("long fragment not its own section")
	}
}

func TestGroupSections_FlushesFinalSection(t *testing.T) {
	got := GroupSections([]string{"Deadline: submissions close soon"})
	if len(got) != 1 {
		t.Fatalf("got %d sections, want 1: %v", len(got), got)
	}
}
