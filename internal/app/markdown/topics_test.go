package markdown

import "testing"

func TestSplitTopics(t *testing.T) {
	doc := `Course outline for the semester.

# Introduction
Welcome.

## Variables
Use var or :=.

` + "```go" + `
## not a heading
x := 1
` + "```" + `

## Functions ##
Functions are values.
`

	got := SplitTopics(doc)

	want := []Section{
		{Title: "Overview", Content: "Course outline for the semester."},
		{Title: "Introduction", Content: "Welcome."},
		{Title: "Variables", Content: "Use var or :=.\n\n```go\n## not a heading\nx := 1\n```"},
		{Title: "Functions", Content: "Functions are values."},
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d sections, got %d: %+v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("section %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestSplitTopicsWithoutHeadings(t *testing.T) {
	got := SplitTopics("just some notes\nacross lines\n")
	if len(got) != 1 || got[0].Title != "Overview" || got[0].Content != "just some notes\nacross lines" {
		t.Errorf("unexpected sections %+v", got)
	}
}

func TestSplitTopicsBlank(t *testing.T) {
	if got := SplitTopics("  \n\n"); len(got) != 0 {
		t.Errorf("expected no sections, got %+v", got)
	}
}

func TestSplitTopicsKeepsEmptyHeadedSection(t *testing.T) {
	got := SplitTopics("## Lab\n## Quiz\nTen questions.")
	if len(got) != 2 {
		t.Fatalf("expected 2 sections, got %+v", got)
	}
	if got[0].Title != "Lab" || got[0].Content != "" {
		t.Errorf("unexpected first section %+v", got[0])
	}
	if got[1].Title != "Quiz" || got[1].Content != "Ten questions." {
		t.Errorf("unexpected second section %+v", got[1])
	}
}
