package storage

import (
	"strings"
	"testing"
)

func TestObjectName(t *testing.T) {
	name := ObjectName("topics/12", "Syllabus.MD")

	if !strings.HasPrefix(name, "topics/12/") {
		t.Errorf("expected prefix topics/12/, got %s", name)
	}
	if !strings.HasSuffix(name, ".md") {
		t.Errorf("expected lower-cased .md extension, got %s", name)
	}
	if other := ObjectName("topics/12", "Syllabus.MD"); other == name {
		t.Errorf("expected unique names, got %s twice", name)
	}
}

func TestContentType(t *testing.T) {
	cases := map[string]string{
		"a.md":       "text/markdown; charset=utf-8",
		"a.markdown": "text/markdown; charset=utf-8",
		"a.txt":      "text/plain; charset=utf-8",
		"a.bin":      "application/octet-stream",
	}
	for in, want := range cases {
		if got := contentType(in); got != want {
			t.Errorf("contentType(%s): expected %s, got %s", in, want, got)
		}
	}
}
