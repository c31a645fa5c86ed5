// Package diff computes semantic diffs between content snapshots and
// groups the resulting fragments into coherent sections.
package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Result describes the delta between two content snapshots. Additions
// and deletions hold trimmed, non-blank fragments only; Patch is a
// reversible text transform from the old content to the new.
type Result struct {
	Patch      string
	Additions  []string
	Deletions  []string
	HasChanges bool
}

// Engine wraps diff-match-patch with the semantic cleanup pass that
// keeps fragments from breaking mid-word.
type Engine struct {
	dmp *diffmatchpatch.DiffMatchPatch
}

// NewEngine creates a new diff engine.
func NewEngine() *Engine {
	return &Engine{dmp: diffmatchpatch.New()}
}

// Compute diffs oldContent against newContent. Whitespace-only edits
// produce no fragments, so HasChanges stays false for them.
func (e *Engine) Compute(oldContent, newContent string) Result {
	patches := e.dmp.PatchMake(oldContent, newContent)
	patchText := e.dmp.PatchToText(patches)

	diffs := e.dmp.DiffMain(oldContent, newContent, false)
	diffs = e.dmp.DiffCleanupSemantic(diffs)

	var additions, deletions []string
	for _, d := range diffs {
		text := strings.TrimSpace(d.Text)
		if text == "" {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			additions = append(additions, text)
		case diffmatchpatch.DiffDelete:
			deletions = append(deletions, text)
		}
	}

	return Result{
		Patch:      patchText,
		Additions:  additions,
		Deletions:  deletions,
		HasChanges: len(additions) > 0 || len(deletions) > 0,
	}
}

// Apply applies an encoded patch to content, reproducing the text the
// patch was generated toward. Applying a patch to content it was not
// generated against is undefined; Apply exists for round-trip
// verification, not the live pipeline.
func (e *Engine) Apply(content, patchText string) (string, error) {
	patches, err := e.dmp.PatchFromText(patchText)
	if err != nil {
		return "", fmt.Errorf("parse patch: %w", err)
	}
	result, _ := e.dmp.PatchApply(patches, content)
	return result, nil
}
