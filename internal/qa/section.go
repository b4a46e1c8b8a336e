package qa

import (
	"regexp"
	"strings"
)

var headingLinePattern = regexp.MustCompile(`^#+\s`)

// sectionPatterns are the three heading shapes that mark a section:
// a markdown heading containing only the name, a markdown heading that
// continues after the name, or a bold-emphasis line starting with it.
func sectionPatterns(name string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)^#+\s*` + quoted + `\s*$`),
		regexp.MustCompile(`(?i)^#+\s*` + quoted + `[:\s]`),
		regexp.MustCompile(`(?i)^\*\*` + quoted + `\*\*`),
	}
}

// findSection scans top to bottom; first matching line wins. The
// returned line number is 1-based.
func (c *Checker) findSection(name string) (bool, int) {
	patterns := sectionPatterns(name)
	for i, line := range c.lines {
		for _, pattern := range patterns {
			if pattern.MatchString(line) {
				return true, i + 1
			}
		}
	}
	return false, 0
}

// extractSection returns the trimmed body between the section heading
// and the next markdown heading of any level, or "" if the section was
// never found.
func (c *Checker) extractSection(name string) string {
	found, startLine := c.findSection(name)
	if !found {
		return ""
	}

	var body []string
	for i := startLine; i < len(c.lines); i++ {
		if headingLinePattern.MatchString(c.lines[i]) {
			break
		}
		body = append(body, c.lines[i])
	}
	return strings.TrimSpace(strings.Join(body, "\n"))
}
