package parser

import (
	"strings"
	"testing"
)

func TestSplitFrontmatter(t *testing.T) {
	content := `---
tags: [theme/justice, period_ancient]
author: someone
---
# Body

Text here.`

	meta, body, err := SplitFrontmatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta == nil {
		t.Fatal("expected metadata")
	}
	if meta["author"] != "someone" {
		t.Errorf("author=%v", meta["author"])
	}
	tags, ok := meta["tags"].([]interface{})
	if !ok || len(tags) != 2 {
		t.Fatalf("tags=%#v", meta["tags"])
	}
	if !strings.HasPrefix(body, "# Body") {
		t.Errorf("body=%q", body)
	}
}

func TestSplitFrontmatterAbsent(t *testing.T) {
	tests := []string{
		"# Just a doc\n\nNo header.",
		"",
		"text\n---\nnot frontmatter\n---\n",
		" ---\nindented opener is not frontmatter\n---\n",
	}
	for _, in := range tests {
		meta, body, err := SplitFrontmatter(in)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", in, err)
		}
		if meta != nil {
			t.Errorf("expected nil metadata for %q, got %v", in, meta)
		}
		if body != in {
			t.Errorf("body changed for %q: %q", in, body)
		}
	}
}

func TestSplitFrontmatterUnclosed(t *testing.T) {
	in := "---\ntags: x\nno closing delimiter"
	meta, body, err := SplitFrontmatter(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta != nil || body != in {
		t.Errorf("expected input unchanged, got meta=%v body=%q", meta, body)
	}
}

func TestSplitFrontmatterMalformed(t *testing.T) {
	in := "---\n{not: valid: yaml: [\n---\nbody"
	meta, body, err := SplitFrontmatter(in)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if meta != nil {
		t.Errorf("expected nil metadata, got %v", meta)
	}
	if body != in {
		t.Errorf("expected input unchanged on malformed YAML, got %q", body)
	}
}

func TestSplitFrontmatterDotsTerminator(t *testing.T) {
	in := "---\ntags: a\n...\nbody"
	meta, body, err := SplitFrontmatter(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta["tags"] != "a" {
		t.Errorf("tags=%v", meta["tags"])
	}
	if body != "body" {
		t.Errorf("body=%q", body)
	}
}

// Splitting is idempotent on the body: parsing the returned body again must
// yield no metadata and the body unchanged.
func TestSplitFrontmatterIdempotentOnBody(t *testing.T) {
	content := "---\ntags: a\n---\n# Title\n\nText."
	_, body, err := SplitFrontmatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	meta2, body2, err := SplitFrontmatter(body)
	if err != nil {
		t.Fatalf("unexpected error on second split: %v", err)
	}
	if meta2 != nil {
		t.Errorf("expected nil metadata on second split, got %v", meta2)
	}
	if body2 != body {
		t.Errorf("body changed on second split: %q vs %q", body2, body)
	}
}
