// Package catalog reads the product catalog from the external store. The
// store owns the data; this package only searches it and shapes results
// for the prompt.
package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/esil-events/chatbot/pkg/models"
)

// Searcher finds products whose name contains the query,
// case-insensitively, newest first.
type Searcher interface {
	Search(ctx context.Context, query string) ([]models.Product, error)
}

// maxContextProducts caps how many results are surfaced into the prompt.
const maxContextProducts = 3

// descriptionLimit is the length at which product descriptions are cut in
// the prompt context.
const descriptionLimit = 100

// NoProductFound is the context sentence used when the lookup returns
// nothing. The response templates reference it, so the wording is fixed.
const NoProductFound = "Aucun produit correspondant n'a été trouvé dans notre catalogue."

// FormatContext renders products as the prompt's product-context block.
// At most three products appear; each description is truncated.
func FormatContext(products []models.Product) string {
	if len(products) == 0 {
		return NoProductFound
	}
	if len(products) > maxContextProducts {
		products = products[:maxContextProducts]
	}

	var b strings.Builder
	b.WriteString("Produits trouvés dans le catalogue :\n")
	for _, p := range products {
		avail := "disponible"
		if !p.Available || p.Stock <= 0 {
			avail = "indisponible"
		}
		fmt.Fprintf(&b, "- %s (réf. %s, %s) : %.2f€ TTC, %s, stock %d\n  %s\n",
			p.Name, p.Reference, p.Category, p.PriceTTC, avail, p.Stock,
			truncate(p.Description, descriptionLimit))
	}
	return strings.TrimRight(b.String(), "\n")
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
