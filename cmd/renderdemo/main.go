package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	flag "github.com/spf13/pflag"

	"resume-builder/internal/extract"
	"resume-builder/resume/form"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
)

func main() {
	outDir := flag.StringP("out", "o", "./out", "directory for generated PDFs")
	styleName := flag.StringP("style", "s", form.DefaultStyle, "template style (modern, creative, simple)")
	all := flag.Bool("all", false, "render every template style")
	contentPath := flag.String("content", "", "optional JSON file with resume content")
	flag.Parse()

	content, requested, err := loadContent(*contentPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load content failed: %v\n", err)
		os.Exit(1)
	}
	if requested != "" && !flag.CommandLine.Changed("style") {
		*styleName = requested
	}

	styles, err := selectStyles(*styleName, *all)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	renderer := render.New()
	for _, style := range styles {
		doc, err := renderer.Render(content, style)
		if err != nil {
			fmt.Fprintf(os.Stderr, "render %s failed: %v\n", style, err)
			os.Exit(1)
		}

		outPath := filepath.Join(*outDir, doc.FileName)
		if err := writeOutputs(outPath, content, doc.Bytes); err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}

		if err := validateRendered(outPath, doc.Pages, render.DisplayName(content.Name)); err != nil {
			fmt.Fprintf(os.Stderr, "render validation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("OK: wrote %s (%d page(s))\n", outPath, doc.Pages)
	}
}

func selectStyles(name string, all bool) ([]render.Style, error) {
	if all {
		return render.Styles, nil
	}
	style, ok := render.ParseStyle(name)
	if !ok {
		return nil, fmt.Errorf("unknown style %q", name)
	}
	return []render.Style{style}, nil
}

func loadContent(path string) (model.Content, string, error) {
	if path == "" {
		return sampleContent(), "", nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return model.Content{}, "", err
	}
	content, style, err := form.ParseJSON(raw)
	if err != nil {
		return model.Content{}, "", err
	}
	return content, style, nil
}

func writeOutputs(outPath string, content model.Content, pdfBytes []byte) error {
	dir := filepath.Dir(outPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(outPath, pdfBytes, 0o644); err != nil {
		return err
	}

	contentPath := filepath.Join(dir, "sample_resume_content.json")
	payload, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(contentPath, payload, 0o644)
}

func sampleContent() model.Content {
	return model.Content{
		Name:  "Jordan Lee",
		Title: "Senior Backend Engineer",
		Contact: model.Contact{
			Email:    "jordan.lee@example.com",
			Phone:    "+1-555-0102",
			Location: "Austin, TX",
			Link:     "https://www.linkedin.com/in/jordanlee",
		},
		Education: []model.EducationEntry{
			{Degree: "BSc Computer Science", School: "University of Texas", Year: "2015"},
		},
		Experience: []model.ExperienceEntry{
			{
				Title:   "Senior Backend Engineer",
				Company: "Acme Logistics",
				Date:    "2021 - Present",
				Highlights: []string{
					"Designed a routing service that reduced shipment latency by 18%.",
					"Implemented distributed tracing to cut incident triage time by 35%.",
				},
			},
			{
				Title:      "Backend Engineer",
				Company:    "Blue Harbor Systems",
				Date:       "2018 - 2021",
				Highlights: []string{"Built event-driven ingestion pipelines for compliance data feeds."},
			},
		},
		Skills: []string{"Go", "PostgreSQL", "AWS", "Docker", "Kubernetes"},
	}
}

// validateRendered reads the PDF back and checks the page count and header.
func validateRendered(path string, wantPages int, name string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	pages, err := extract.PageTextsFromBytes(context.Background(), data)
	if err != nil {
		return err
	}
	if len(pages) != wantPages {
		return fmt.Errorf("expected %d pages, found %d", wantPages, len(pages))
	}
	if len(pages) == 0 || !strings.Contains(compact(pages[0]), compact(name)) {
		return fmt.Errorf("header %q not found on first page", name)
	}
	return nil
}

func compact(s string) string {
	return strings.Join(strings.Fields(s), "")
}
