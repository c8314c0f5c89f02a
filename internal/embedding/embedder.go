package embedding

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const (
	// DefaultModel is the embedding model used when none is configured.
	DefaultModel = "text-embedding-004"
	// DefaultDimension is the output dimensionality of DefaultModel.
	DefaultDimension = 768

	// neutralComponent is the per-component value of the fallback vector
	// substituted when embedding fails.
	neutralComponent = 0.1
)

// Vector is an embedding result. Fallback distinguishes a genuinely
// computed vector from the neutral default substituted on failure, so
// callers and tests can tell degraded output apart from real output.
type Vector struct {
	Values   []float32 `json:"values"`
	Fallback bool      `json:"fallback,omitempty"`
	Reason   string    `json:"reason,omitempty"`
}

// Embedder maps text to fixed-length semantic vectors. Implementations
// never return an error: on failure they substitute a neutral default
// vector so one failed embedding cannot block an entire ranking pass.
type Embedder interface {
	Embed(ctx context.Context, text string) Vector
	EmbedBatch(ctx context.Context, texts []string) []Vector
	Dimension() int
	Close() error
}

// NeutralVector returns the fixed fallback vector for the given dimension.
func NeutralVector(dim int, reason string) Vector {
	values := make([]float32, dim)
	for i := range values {
		values[i] = neutralComponent
	}
	return Vector{Values: values, Fallback: true, Reason: reason}
}

// GeminiEmbedder produces embeddings via the Gemini embedding API. The
// underlying client is expensive to construct and is initialized lazily,
// exactly once, on first use; concurrent first callers share the single
// initialization.
type GeminiEmbedder struct {
	apiKey string
	model  string
	dim    int

	once    sync.Once
	client  *genai.Client
	em      *genai.EmbeddingModel
	initErr error
}

// NewGeminiEmbedder creates an embedder for the default model.
func NewGeminiEmbedder(apiKey string) *GeminiEmbedder {
	return NewGeminiEmbedderForModel(apiKey, DefaultModel, DefaultDimension)
}

// NewGeminiEmbedderForModel creates an embedder for a specific model and
// output dimension. The dimension is fixed for the process lifetime and is
// also used to size fallback vectors.
func NewGeminiEmbedderForModel(apiKey, model string, dim int) *GeminiEmbedder {
	if model == "" {
		model = DefaultModel
	}
	if dim <= 0 {
		dim = DefaultDimension
	}
	return &GeminiEmbedder{apiKey: apiKey, model: model, dim: dim}
}

// Dimension returns the output dimensionality of the configured model.
func (g *GeminiEmbedder) Dimension() int {
	return g.dim
}

// handle returns the shared embedding model, initializing it on first use.
func (g *GeminiEmbedder) handle(ctx context.Context) (*genai.EmbeddingModel, error) {
	g.once.Do(func() {
		if g.apiKey == "" {
			g.initErr = fmt.Errorf("embedding API key is not set")
			return
		}
		client, err := genai.NewClient(ctx, option.WithAPIKey(g.apiKey))
		if err != nil {
			g.initErr = fmt.Errorf("failed to create embedding client: %w", err)
			return
		}
		g.client = client
		g.em = client.EmbeddingModel(g.model)
	})
	return g.em, g.initErr
}

// Embed maps text to a vector, substituting the neutral default on any
// failure.
func (g *GeminiEmbedder) Embed(ctx context.Context, text string) Vector {
	em, err := g.handle(ctx)
	if err != nil {
		log.Printf("embedding unavailable, using neutral vector: %v", err)
		return NeutralVector(g.dim, err.Error())
	}

	resp, err := em.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		log.Printf("embed call failed, using neutral vector: %v", err)
		return NeutralVector(g.dim, err.Error())
	}
	if resp.Embedding == nil || len(resp.Embedding.Values) == 0 {
		return NeutralVector(g.dim, "empty embedding response")
	}
	return Vector{Values: resp.Embedding.Values}
}

// EmbedBatch embeds many texts in one model invocation to amortize
// overhead. The per-element contract matches Embed: a failed batch yields
// neutral vectors for every element rather than an error.
func (g *GeminiEmbedder) EmbedBatch(ctx context.Context, texts []string) []Vector {
	vectors := make([]Vector, len(texts))
	if len(texts) == 0 {
		return vectors
	}

	em, err := g.handle(ctx)
	if err != nil {
		log.Printf("embedding unavailable, using neutral vectors: %v", err)
		for i := range vectors {
			vectors[i] = NeutralVector(g.dim, err.Error())
		}
		return vectors
	}

	batch := em.NewBatch()
	for _, text := range texts {
		batch.AddContent(genai.Text(text))
	}

	resp, err := em.BatchEmbedContents(ctx, batch)
	if err != nil {
		log.Printf("batch embed failed, using neutral vectors: %v", err)
		for i := range vectors {
			vectors[i] = NeutralVector(g.dim, err.Error())
		}
		return vectors
	}

	for i := range vectors {
		if i < len(resp.Embeddings) && resp.Embeddings[i] != nil && len(resp.Embeddings[i].Values) > 0 {
			vectors[i] = Vector{Values: resp.Embeddings[i].Values}
		} else {
			vectors[i] = NeutralVector(g.dim, "missing embedding in batch response")
		}
	}
	return vectors
}

// Close releases the underlying client, if it was ever initialized.
func (g *GeminiEmbedder) Close() error {
	if g.client != nil {
		return g.client.Close()
	}
	return nil
}
