package stylist

import (
	"encoding/json"
	"fmt"
	"strings"

	"shopfront/internal/model"
)

// ChatMessage is one turn of the conversation. Role is "user" or "model".
type ChatMessage struct {
	Role string `json:"role" validate:"required,oneof=user model"`
	Text string `json:"text" validate:"required"`
}

// Prompt assembly limits. The catalog excerpt is the dominant cost, so both
// the item count and the per-item description are capped.
const (
	maxCatalogItems   = 40
	maxDescriptionLen = 160
	maxHistoryTurns   = 20
)

const persona = `You are the shop's personal stylist. You help customers pick
outfits and accessories from the catalog below.

Rules:
- Recommend ONLY products that appear in the catalog JSON. Never invent a
  product, price, or variant. If nothing in the catalog fits the request, say
  so and suggest the closest match.
- Quote prices exactly as given, in Vietnamese đồng.
- Mention the product name and price for every recommendation.
- Answer in the language the customer writes in.
- Keep replies short and conversational, at most a few sentences per
  recommendation.`

// promptProduct is the trimmed catalog entry serialized into the prompt.
type promptProduct struct {
	Name        string   `json:"name"`
	Category    string   `json:"category,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Price       int64    `json:"price_vnd"`
	Description string   `json:"description,omitempty"`
	Options     []string `json:"options,omitempty"`
}

// BuildPrompt renders the full generation prompt: persona, catalog excerpt,
// prior turns, then the current message.
func BuildPrompt(catalog []model.Product, history []ChatMessage, message string) (string, error) {
	excerpt := make([]promptProduct, 0, min(len(catalog), maxCatalogItems))
	for _, p := range catalog {
		if len(excerpt) == maxCatalogItems {
			break
		}
		excerpt = append(excerpt, trimProduct(p))
	}

	catalogJSON, err := json.Marshal(excerpt)
	if err != nil {
		return "", fmt.Errorf("marshaling catalog excerpt: %w", err)
	}

	var b strings.Builder
	b.WriteString(persona)
	b.WriteString("\n\nCatalog:\n")
	b.Write(catalogJSON)
	b.WriteString("\n")

	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	for _, turn := range history {
		label := "Customer"
		if turn.Role == "model" {
			label = "Stylist"
		}
		fmt.Fprintf(&b, "\n%s: %s", label, turn.Text)
	}

	fmt.Fprintf(&b, "\nCustomer: %s\nStylist:", message)
	return b.String(), nil
}

func trimProduct(p model.Product) promptProduct {
	desc := p.Description
	// Rune-based cut, descriptions are frequently Vietnamese.
	if r := []rune(desc); len(r) > maxDescriptionLen {
		desc = string(r[:maxDescriptionLen])
	}

	var options []string
	for _, v := range p.Variants {
		parts := make([]string, 0, len(v.Attributes))
		for k, val := range v.Attributes {
			parts = append(parts, k+"="+val)
		}
		if len(parts) > 0 {
			options = append(options, strings.Join(parts, " "))
		}
	}

	return promptProduct{
		Name:        p.Name,
		Category:    p.Category,
		Brand:       p.Brand,
		Price:       p.Price,
		Description: desc,
		Options:     options,
	}
}
