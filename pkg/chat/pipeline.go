// Package chat orchestrates the response pipeline: intent classification,
// product lookup, prompt assembly and the generative call, with the
// response cache consulted first.
package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/esil-events/chatbot/pkg/cache"
	"github.com/esil-events/chatbot/pkg/catalog"
	"github.com/esil-events/chatbot/pkg/llm"
	"github.com/esil-events/chatbot/pkg/models"
	"github.com/esil-events/chatbot/pkg/nlp"
	"github.com/esil-events/chatbot/pkg/prompt"
)

// Pipeline answers chat messages. The catalog and cache boundaries fail
// soft: their errors are logged and the pipeline proceeds with an empty
// product context or an empty cache. Only a generative API failure
// escapes to the caller.
type Pipeline struct {
	cache     *cache.Cache
	catalog   catalog.Searcher
	generator llm.Generator
	log       zerolog.Logger
}

// Result is the outcome of one pipeline run.
type Result struct {
	Response     string
	Intent       models.Intent
	CacheHit     bool
	ProductCount int
}

// New creates a Pipeline. A nil cache disables caching.
func New(c *cache.Cache, searcher catalog.Searcher, gen llm.Generator, log zerolog.Logger) *Pipeline {
	return &Pipeline{cache: c, catalog: searcher, generator: gen, log: log}
}

// Respond produces the assistant's reply for a message with its
// conversation history.
func (p *Pipeline) Respond(ctx context.Context, message string, history []models.ChatMessage) (Result, error) {
	intent := nlp.Classify(message)

	if p.cache != nil {
		if cached, ok := p.cache.Get(message); ok {
			p.log.Debug().Str("intent", string(intent)).Msg("cache hit")
			return Result{Response: cached, Intent: intent, CacheHit: true}, nil
		}
	}

	productContext := ""
	productCount := 0
	if intent == models.IntentProductSearch || intent == models.IntentProductInfo {
		products := p.lookupProducts(ctx, message)
		productCount = len(products)
		productContext = catalog.FormatContext(products)
	}

	reply, err := p.generator.Generate(ctx, prompt.Build(message, history, productContext))
	if err != nil {
		return Result{Intent: intent}, err
	}

	if p.cache != nil {
		p.cache.Put(message, reply)
	}

	return Result{
		Response:     reply,
		Intent:       intent,
		ProductCount: productCount,
	}, nil
}

// lookupProducts extracts keywords and searches the catalog. Failures
// degrade to no products; the caller formats the fallback context.
func (p *Pipeline) lookupProducts(ctx context.Context, message string) []models.Product {
	keywords := nlp.ExtractKeywords(message)
	if len(keywords) == 0 {
		return nil
	}

	query := strings.Join(keywords, " ")
	products, err := p.catalog.Search(ctx, query)
	if err != nil {
		p.log.Warn().Err(err).Str("query", query).Msg("catalog lookup failed, continuing without products")
		return nil
	}
	return products
}
