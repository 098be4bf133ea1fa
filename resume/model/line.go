package model

import "strings"

// LineKind tags how a section line is drawn.
type LineKind int

const (
	// LineDetail is body text; bulleted sections prefix it with a bullet.
	LineDetail LineKind = iota
	// LineHeading is an entry heading such as "Engineer | 2020" or "Company: Acme". Never bulleted.
	LineHeading
	// LineBlank separates entries and only advances the cursor.
	LineBlank
)

// Line is one tagged line of section content.
type Line struct {
	Kind LineKind
	Text string
}

func Heading(text string) Line { return Line{Kind: LineHeading, Text: text} }
func Detail(text string) Line  { return Line{Kind: LineDetail, Text: text} }
func Blank() Line              { return Line{Kind: LineBlank} }

// IsPlaceholder reports whether text carries no section content.
func IsPlaceholder(text string) bool {
	t := strings.TrimSpace(text)
	return t == "" || t == NotProvided
}

// EducationLines returns one detail line per non-empty education entry.
func (c Content) EducationLines() []Line {
	var lines []Line
	for _, e := range c.Education {
		if e.IsEmpty() {
			continue
		}
		lines = append(lines, Detail(e.String()))
	}
	return lines
}

// ExperienceLines returns the tagged lines for all experience entries,
// separated by blank lines.
func (c Content) ExperienceLines() []Line {
	var lines []Line
	for _, e := range c.Experience {
		entry := e.Lines()
		if len(entry) == 0 {
			continue
		}
		if len(lines) > 0 {
			lines = append(lines, Blank())
		}
		lines = append(lines, entry...)
	}
	return lines
}

// HasContent reports whether lines hold anything worth a section heading.
// A lone "Not provided" placeholder counts as empty.
func HasContent(lines []Line) bool {
	for _, l := range lines {
		if l.Kind == LineBlank {
			continue
		}
		if !IsPlaceholder(l.Text) {
			return true
		}
	}
	return false
}
