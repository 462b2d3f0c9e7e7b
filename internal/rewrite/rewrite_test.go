package rewrite_test

import (
	"strings"
	"testing"

	"docpress/internal/rewrite"
)

func TestApply_ReplacesMappedPlaceholders(t *testing.T) {
	html := `<p><img src="temp://a.png" alt=""/></p><p><img src="temp://b.jpg" alt=""/></p>`
	mappings := []rewrite.Mapping{
		{Placeholder: "temp://a.png", URL: "https://cms.example.com/media/a.png"},
		{Placeholder: "temp://b.jpg", URL: "https://cms.example.com/media/b.jpg"},
	}

	got := rewrite.Apply(html, mappings)

	if strings.Contains(got, "temp://") {
		t.Errorf("Apply() left placeholders in output: %q", got)
	}
	if !strings.Contains(got, "https://cms.example.com/media/a.png") {
		t.Errorf("Apply() missing first URL, got %q", got)
	}
	if !strings.Contains(got, "https://cms.example.com/media/b.jpg") {
		t.Errorf("Apply() missing second URL, got %q", got)
	}
}

func TestApply_Idempotent(t *testing.T) {
	html := `<p><img src="temp://a.png" alt=""/>text temp://a.png</p>`
	mappings := []rewrite.Mapping{
		{Placeholder: "temp://a.png", URL: "https://cms.example.com/media/a.png"},
	}

	once := rewrite.Apply(html, mappings)
	twice := rewrite.Apply(once, mappings)

	if once != twice {
		t.Errorf("Apply() not idempotent:\nonce:  %q\ntwice: %q", once, twice)
	}
}

func TestApply_UnmappedPlaceholderUntouched(t *testing.T) {
	html := `<img src="temp://mapped.png"/><img src="temp://orphan.png"/>`
	mappings := []rewrite.Mapping{
		{Placeholder: "temp://mapped.png", URL: "https://cms.example.com/m.png"},
	}

	got := rewrite.Apply(html, mappings)

	if !strings.Contains(got, "temp://orphan.png") {
		t.Errorf("Apply() modified unmapped placeholder, got %q", got)
	}
	if strings.Contains(got, "temp://mapped.png") {
		t.Errorf("Apply() left mapped placeholder, got %q", got)
	}
}

func TestApply_EmptyMapping(t *testing.T) {
	html := `<img src="temp://a.png"/>`

	if got := rewrite.Apply(html, nil); got != html {
		t.Errorf("Apply() with nil mapping = %q, want unchanged", got)
	}
}

func TestApply_SkipsIncompleteMappings(t *testing.T) {
	html := `<img src="temp://a.png"/>`
	mappings := []rewrite.Mapping{
		{Placeholder: "temp://a.png", URL: ""},
		{Placeholder: "", URL: "https://cms.example.com/x.png"},
	}

	if got := rewrite.Apply(html, mappings); got != html {
		t.Errorf("Apply() with incomplete mappings = %q, want unchanged", got)
	}
}
