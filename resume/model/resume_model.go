package model

import (
	"errors"
	"fmt"
	"strings"
)

// NotProvided is the placeholder stored for sections the user left empty.
const NotProvided = "Not provided"

const (
	maxFieldLen   = 500
	maxEntries    = 50
	maxHighlights = 40
)

// Content is the structured resume payload handed to the renderer.
type Content struct {
	Name       string            `json:"name"`
	Title      string            `json:"title"`
	Contact    Contact           `json:"contact"`
	Education  []EducationEntry  `json:"education"`
	Experience []ExperienceEntry `json:"experience"`
	Skills     []string          `json:"skills"`
}

// Contact holds the optional contact fields in display order.
type Contact struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	Link     string `json:"link"`
}

// Fields returns the non-empty contact fields in display order.
func (c Contact) Fields() []string {
	var out []string
	for _, v := range []string{c.Email, c.Phone, c.Location, c.Link} {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// EducationEntry is one degree/school/year group.
type EducationEntry struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// IsEmpty reports whether every sub-field is blank.
func (e EducationEntry) IsEmpty() bool {
	return strings.TrimSpace(e.Degree) == "" && strings.TrimSpace(e.School) == "" && strings.TrimSpace(e.Year) == ""
}

// String formats the entry as "Degree - School - (Year)" with empty parts dropped.
func (e EducationEntry) String() string {
	var parts []string
	if v := strings.TrimSpace(e.Degree); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(e.School); v != "" {
		parts = append(parts, v)
	}
	if v := strings.TrimSpace(e.Year); v != "" {
		parts = append(parts, "("+v+")")
	}
	return strings.Join(parts, " - ")
}

// ExperienceEntry is one job with its highlight lines.
type ExperienceEntry struct {
	Title      string   `json:"title"`
	Company    string   `json:"company"`
	Date       string   `json:"date"`
	Highlights []string `json:"highlights"`
}

// IsEmpty reports whether the entry carries no text at all.
func (e ExperienceEntry) IsEmpty() bool {
	if strings.TrimSpace(e.Title) != "" || strings.TrimSpace(e.Company) != "" || strings.TrimSpace(e.Date) != "" {
		return false
	}
	for _, h := range e.Highlights {
		if strings.TrimSpace(h) != "" {
			return false
		}
	}
	return true
}

// Lines returns the tagged lines for the entry: the "title | date" and
// company lines are headings. A title without a date is a detail, as is each
// highlight.
func (e ExperienceEntry) Lines() []Line {
	var lines []Line
	title := strings.TrimSpace(e.Title)
	if date := strings.TrimSpace(e.Date); date != "" {
		if title != "" {
			title += " | " + date
		} else {
			title = "| " + date
		}
		lines = append(lines, Heading(title))
	} else if title != "" {
		lines = append(lines, Detail(title))
	}
	if company := strings.TrimSpace(e.Company); company != "" {
		lines = append(lines, Heading("Company: "+company))
	}
	for _, h := range e.Highlights {
		for _, part := range strings.Split(h, "\n") {
			if part = strings.TrimSpace(part); part != "" {
				lines = append(lines, Detail(part))
			}
		}
	}
	return lines
}

// SkillsLine joins the non-empty skills with ", ".
func (c Content) SkillsLine() string {
	var out []string
	for _, s := range c.Skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return strings.Join(out, ", ")
}

// Validate enforces input bounds so a single render stays bounded.
func (c Content) Validate() error {
	if len(c.Name) > maxFieldLen || len(c.Title) > maxFieldLen {
		return errors.New("name and title must be at most 500 characters")
	}
	for _, v := range c.Contact.Fields() {
		if len(v) > maxFieldLen {
			return errors.New("contact fields must be at most 500 characters")
		}
	}
	if len(c.Education) > maxEntries {
		return fmt.Errorf("at most %d education entries are allowed", maxEntries)
	}
	if len(c.Experience) > maxEntries {
		return fmt.Errorf("at most %d experience entries are allowed", maxEntries)
	}
	for i, exp := range c.Experience {
		if len(exp.Highlights) > maxHighlights {
			return fmt.Errorf("experience[%d] has more than %d highlights", i, maxHighlights)
		}
	}
	if len(c.Skills) > maxEntries*4 {
		return errors.New("too many skills")
	}
	return nil
}
