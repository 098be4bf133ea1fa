package form

import (
	"net/url"
	"strings"

	"resume-builder/resume/model"
)

// DefaultStyle is used when a submission names no template.
const DefaultStyle = "modern"

// Fields mirrors the posted resume form. Repeated groups are parallel
// slices indexed by entry.
type Fields struct {
	Name     string
	Title    string
	Email    string
	Phone    string
	Location string
	LinkedIn string

	EducationDegrees []string
	EducationSchools []string
	EducationYears   []string

	ExperienceTitles       []string
	ExperienceCompanies    []string
	ExperienceDates        []string
	ExperienceDescriptions []string

	Skills []string

	TemplateStyle string
}

// FromValues reads the form field names used by the resume form page.
func FromValues(v url.Values) Fields {
	return Fields{
		Name:                   v.Get("name"),
		Title:                  v.Get("title"),
		Email:                  v.Get("email"),
		Phone:                  v.Get("phone"),
		Location:               v.Get("location"),
		LinkedIn:               v.Get("linkedin"),
		EducationDegrees:       v["education_degree[]"],
		EducationSchools:       v["education_school[]"],
		EducationYears:         v["education_year[]"],
		ExperienceTitles:       v["experience_title[]"],
		ExperienceCompanies:    v["experience_company[]"],
		ExperienceDates:        v["experience_date[]"],
		ExperienceDescriptions: v["experience_description[]"],
		Skills:                 v["skills[]"],
		TemplateStyle:          v.Get("template_style"),
	}
}

// Style returns the requested template, defaulting to modern.
func (f Fields) Style() string {
	if s := strings.TrimSpace(f.TemplateStyle); s != "" {
		return s
	}
	return DefaultStyle
}

// Content trims every field and drops entry groups whose sub-fields are all
// empty. Descriptions become one highlight per non-blank line and skill
// inputs are split on commas.
func (f Fields) Content() model.Content {
	c := model.Content{
		Name:  strings.TrimSpace(f.Name),
		Title: strings.TrimSpace(f.Title),
		Contact: model.Contact{
			Email:    strings.TrimSpace(f.Email),
			Phone:    strings.TrimSpace(f.Phone),
			Location: strings.TrimSpace(f.Location),
			Link:     strings.TrimSpace(f.LinkedIn),
		},
	}

	for i := 0; i < maxLen(f.EducationDegrees, f.EducationSchools, f.EducationYears); i++ {
		entry := model.EducationEntry{
			Degree: at(f.EducationDegrees, i),
			School: at(f.EducationSchools, i),
			Year:   at(f.EducationYears, i),
		}
		if !entry.IsEmpty() {
			c.Education = append(c.Education, entry)
		}
	}

	for i := 0; i < maxLen(f.ExperienceTitles, f.ExperienceCompanies, f.ExperienceDates, f.ExperienceDescriptions); i++ {
		entry := model.ExperienceEntry{
			Title:      at(f.ExperienceTitles, i),
			Company:    at(f.ExperienceCompanies, i),
			Date:       at(f.ExperienceDates, i),
			Highlights: splitLines(at(f.ExperienceDescriptions, i)),
		}
		if !entry.IsEmpty() {
			c.Experience = append(c.Experience, entry)
		}
	}

	c.Skills = SplitSkills(f.Skills...)
	return c
}

// SplitSkills splits each input on commas and drops blanks.
func SplitSkills(inputs ...string) []string {
	var out []string
	for _, input := range inputs {
		for _, s := range strings.Split(input, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// Normalize applies the same trimming and empty-group rules to content
// that arrived already structured.
func Normalize(c model.Content) model.Content {
	out := model.Content{
		Name:  strings.TrimSpace(c.Name),
		Title: strings.TrimSpace(c.Title),
		Contact: model.Contact{
			Email:    strings.TrimSpace(c.Contact.Email),
			Phone:    strings.TrimSpace(c.Contact.Phone),
			Location: strings.TrimSpace(c.Contact.Location),
			Link:     strings.TrimSpace(c.Contact.Link),
		},
	}
	for _, e := range c.Education {
		e = model.EducationEntry{Degree: strings.TrimSpace(e.Degree), School: strings.TrimSpace(e.School), Year: strings.TrimSpace(e.Year)}
		if !e.IsEmpty() {
			out.Education = append(out.Education, e)
		}
	}
	for _, e := range c.Experience {
		var highlights []string
		for _, h := range e.Highlights {
			highlights = append(highlights, splitLines(h)...)
		}
		e = model.ExperienceEntry{
			Title:      strings.TrimSpace(e.Title),
			Company:    strings.TrimSpace(e.Company),
			Date:       strings.TrimSpace(e.Date),
			Highlights: highlights,
		}
		if !e.IsEmpty() {
			out.Experience = append(out.Experience, e)
		}
	}
	out.Skills = SplitSkills(c.Skills...)
	return out
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(strings.ReplaceAll(s, "\r\n", "\n"), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

func at(values []string, i int) string {
	if i < len(values) {
		return strings.TrimSpace(values[i])
	}
	return ""
}

func maxLen(groups ...[]string) int {
	n := 0
	for _, g := range groups {
		if len(g) > n {
			n = len(g)
		}
	}
	return n
}
