package form

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"resume-builder/resume/model"
)

// ValidationError lists the problems found in a submission.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "invalid resume: " + strings.Join(e.Problems, "; ")
}

// Request is the JSON body accepted for resume generation.
type Request struct {
	model.Content
	Style string `json:"style"`
}

const requestSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "name": {"type": "string", "maxLength": 500},
    "title": {"type": "string", "maxLength": 500},
    "style": {"type": "string", "maxLength": 32},
    "contact": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "email": {"type": "string", "maxLength": 500},
        "phone": {"type": "string", "maxLength": 500},
        "location": {"type": "string", "maxLength": 500},
        "link": {"type": "string", "maxLength": 500}
      }
    },
    "education": {
      "type": "array",
      "maxItems": 50,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "degree": {"type": "string", "maxLength": 500},
          "school": {"type": "string", "maxLength": 500},
          "year": {"type": "string", "maxLength": 50}
        }
      }
    },
    "experience": {
      "type": "array",
      "maxItems": 50,
      "items": {
        "type": "object",
        "additionalProperties": false,
        "properties": {
          "title": {"type": "string", "maxLength": 500},
          "company": {"type": "string", "maxLength": 500},
          "date": {"type": "string", "maxLength": 100},
          "highlights": {
            "type": "array",
            "maxItems": 40,
            "items": {"type": "string", "maxLength": 2000}
          }
        }
      }
    },
    "skills": {
      "type": "array",
      "maxItems": 200,
      "items": {"type": "string", "maxLength": 500}
    }
  }
}`

var schemaLoader = gojsonschema.NewStringLoader(requestSchema)

// ParseJSON validates body against the request schema and returns the
// normalized content and the requested style.
func ParseJSON(body []byte) (model.Content, string, error) {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewBytesLoader(body))
	if err != nil {
		return model.Content{}, "", &ValidationError{Problems: []string{fmt.Sprintf("malformed json: %v", err)}}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return model.Content{}, "", &ValidationError{Problems: problems}
	}

	var req Request
	if err := json.Unmarshal(body, &req); err != nil {
		return model.Content{}, "", &ValidationError{Problems: []string{err.Error()}}
	}

	style := strings.TrimSpace(req.Style)
	if style == "" {
		style = DefaultStyle
	}
	return Normalize(req.Content), style, nil
}
