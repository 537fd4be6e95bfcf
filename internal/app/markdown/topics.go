// Package markdown splits an imported Markdown document into course topics.
package markdown

import (
	"bufio"
	"strings"
)

// Section is one topic cut from a document.
type Section struct {
	Title   string
	Content string
}

const overviewTitle = "Overview"

// SplitTopics starts a new section at every level 1 or 2 ATX heading.
// Headings inside fenced code blocks are ignored. Text before the first
// heading becomes an "Overview" section when it is not blank.
func SplitTopics(doc string) []Section {
	var (
		sections []Section
		title    = overviewTitle
		body     strings.Builder
		fenced   bool
		started  bool
	)

	flush := func() {
		content := strings.TrimSpace(body.String())
		if started || content != "" {
			sections = append(sections, Section{Title: title, Content: content})
		}
		body.Reset()
	}

	sc := bufio.NewScanner(strings.NewReader(doc))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := sc.Text()
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			fenced = !fenced
		}
		if !fenced {
			if h, ok := heading(trimmed); ok {
				flush()
				title = h
				started = true
				continue
			}
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	flush()

	return sections
}

func heading(line string) (string, bool) {
	for _, prefix := range []string{"## ", "# "} {
		if strings.HasPrefix(line, prefix) {
			title := strings.TrimSpace(strings.TrimRight(strings.TrimPrefix(line, prefix), "#"))
			if title == "" {
				return "", false
			}
			return title, true
		}
	}
	return "", false
}
