package stylist

import (
	"fmt"
	"strings"
	"testing"

	"shopfront/internal/model"
)

func TestBuildPromptIncludesCatalogAndMessage(t *testing.T) {
	catalog := []model.Product{
		{
			Name:     "Áo khoác denim",
			Category: "outerwear",
			Price:    650000,
			Variants: []model.Variant{
				{Attributes: map[string]string{"size": "L"}, Price: 650000, Stock: 3},
			},
		},
	}

	prompt, err := BuildPrompt(catalog, nil, "cần áo khoác mùa đông")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	for _, want := range []string{"Áo khoác denim", "650000", "cần áo khoác mùa đông", "size=L"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt is missing %q", want)
		}
	}
	if !strings.Contains(prompt, "Never invent a") {
		t.Errorf("prompt is missing the anti-invention rule")
	}
}

func TestBuildPromptCapsCatalogItems(t *testing.T) {
	catalog := make([]model.Product, maxCatalogItems+30)
	for i := range catalog {
		catalog[i] = model.Product{Name: fmt.Sprintf("item-%03d", i), Price: 1000}
	}

	prompt, err := BuildPrompt(catalog, nil, "hi")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if !strings.Contains(prompt, fmt.Sprintf("item-%03d", maxCatalogItems-1)) {
		t.Errorf("prompt dropped an item inside the cap")
	}
	if strings.Contains(prompt, fmt.Sprintf("item-%03d", maxCatalogItems)) {
		t.Errorf("prompt contains an item beyond the cap")
	}
}

func TestBuildPromptTruncatesDescriptions(t *testing.T) {
	long := strings.Repeat("ă", maxDescriptionLen+50)
	catalog := []model.Product{{Name: "x", Description: long}}

	prompt, err := BuildPrompt(catalog, nil, "hi")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if strings.Contains(prompt, long) {
		t.Errorf("description was not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("ă", maxDescriptionLen)) {
		t.Errorf("truncated description was cut below the limit or mangled")
	}
}

func TestBuildPromptHistoryOrderAndCap(t *testing.T) {
	history := make([]ChatMessage, maxHistoryTurns+4)
	for i := range history {
		role := "user"
		if i%2 == 1 {
			role = "model"
		}
		history[i] = ChatMessage{Role: role, Text: fmt.Sprintf("turn-%02d", i)}
	}

	prompt, err := BuildPrompt(nil, history, "latest")
	if err != nil {
		t.Fatalf("BuildPrompt() error = %v", err)
	}

	if strings.Contains(prompt, "turn-00") {
		t.Errorf("prompt kept a turn older than the cap")
	}
	if !strings.Contains(prompt, fmt.Sprintf("turn-%02d", len(history)-1)) {
		t.Errorf("prompt dropped the most recent turn")
	}

	// Oldest kept turn must come before the newest.
	oldest := strings.Index(prompt, fmt.Sprintf("turn-%02d", len(history)-maxHistoryTurns))
	newest := strings.Index(prompt, fmt.Sprintf("turn-%02d", len(history)-1))
	if oldest == -1 || newest == -1 || oldest > newest {
		t.Errorf("history turns out of order in prompt")
	}

	if !strings.HasSuffix(prompt, "Customer: latest\nStylist:") {
		t.Errorf("prompt does not end with the current message, got tail %q", prompt[len(prompt)-40:])
	}
}
