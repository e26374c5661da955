package parser

import (
	"strings"
	"testing"

	"github.com/aidanlsb/talon/internal/wikilink"
)

func TestExtractRefs(t *testing.T) {
	body := "# Intro\nSee [[Setup]] and [[guides/Advanced|the advanced guide]].\n"

	refs, marked := ExtractRefs(body)
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].Name != "Setup" || refs[0].Display != "Setup" {
		t.Errorf("refs[0]=%+v", refs[0])
	}
	if refs[1].Name != "Advanced" || refs[1].Display != "the advanced guide" {
		t.Errorf("refs[1]=%+v", refs[1])
	}
	if refs[0].Line != 2 || refs[1].Line != 2 {
		t.Errorf("lines: %d, %d", refs[0].Line, refs[1].Line)
	}

	if strings.Contains(marked, "[[") {
		t.Errorf("marked body still contains wikilink syntax: %q", marked)
	}
	if !strings.Contains(marked, wikilink.Placeholder("Setup", "Setup")) {
		t.Errorf("missing placeholder for Setup: %q", marked)
	}
	if !strings.Contains(marked, wikilink.Placeholder("Advanced", "the advanced guide")) {
		t.Errorf("missing placeholder for Advanced: %q", marked)
	}
}

func TestExtractRefsCountMatchesMarkers(t *testing.T) {
	body := "[[x]] a [[x]] b [[y|Y]]\nand [[x]] once more"
	refs, marked := ExtractRefs(body)
	if len(refs) != 4 {
		t.Fatalf("expected 4 refs (duplicates kept), got %d", len(refs))
	}
	markers := wikilink.PlaceholderRe.FindAllString(marked, -1)
	if len(markers) != len(refs) {
		t.Fatalf("marker count %d != ref count %d", len(markers), len(refs))
	}
	// Order preserved
	want := []string{"x", "x", "y", "x"}
	for i, r := range refs {
		if r.Name != want[i] {
			t.Errorf("refs[%d].Name=%q, want %q", i, r.Name, want[i])
		}
	}
}

func TestExtractRefsSkipsCode(t *testing.T) {
	body := "```\n[[not-a-ref]]\n```\nuse `[[also-not]]` inline\n[[real]]"
	refs, marked := ExtractRefs(body)
	if len(refs) != 1 || refs[0].Name != "real" {
		t.Fatalf("refs=%+v", refs)
	}
	if !strings.Contains(marked, "[[not-a-ref]]") {
		t.Errorf("fenced content was modified: %q", marked)
	}
	if !strings.Contains(marked, "`[[also-not]]`") {
		t.Errorf("inline code was modified: %q", marked)
	}
}

func TestExtractRefsNoRefs(t *testing.T) {
	body := "nothing here\nat all"
	refs, marked := ExtractRefs(body)
	if len(refs) != 0 {
		t.Fatalf("expected no refs, got %d", len(refs))
	}
	if marked != body {
		t.Errorf("body changed: %q", marked)
	}
}

func TestExtractRefsMalformedLeftAlone(t *testing.T) {
	body := "a [[brack]et]] run, an empty [[]] pair, and a dangling [[open"
	refs, marked := ExtractRefs(body)
	if len(refs) != 0 {
		t.Fatalf("expected no refs, got %+v", refs)
	}
	if marked != body {
		t.Errorf("malformed brackets should stay literal: %q", marked)
	}
}
