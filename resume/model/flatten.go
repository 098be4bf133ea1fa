package model

import "strings"

// Flattened is the text form of a Content stored with each resume record.
type Flattened struct {
	Education  string
	Experience string
	Skills     string
}

// Flatten renders the sections as newline-joined text, using NotProvided
// for sections without entries.
func (c Content) Flatten() Flattened {
	var edu []string
	for _, l := range c.EducationLines() {
		edu = append(edu, l.Text)
	}

	var exp []string
	for _, e := range c.Experience {
		var parts []string
		for _, l := range e.Lines() {
			parts = append(parts, l.Text)
		}
		if len(parts) > 0 {
			exp = append(exp, strings.Join(parts, "\n"))
		}
	}

	return Flattened{
		Education:  orNotProvided(strings.Join(edu, "\n")),
		Experience: orNotProvided(strings.Join(exp, "\n\n")),
		Skills:     orNotProvided(c.SkillsLine()),
	}
}

func orNotProvided(s string) string {
	if strings.TrimSpace(s) == "" {
		return NotProvided
	}
	return s
}
