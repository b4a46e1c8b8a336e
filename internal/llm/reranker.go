package llm

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Reranker orders candidate documents by relevance to a query.
type Reranker interface {
	Rerank(ctx context.Context, query string, candidates []string, topK int) ([]int, error)
}

// LLMReranker asks a language model to rank candidates and returns the
// indices of the best matches, most relevant first.
type LLMReranker struct {
	client Client
}

func NewLLMReranker(client Client) *LLMReranker {
	return &LLMReranker{client: client}
}

const rerankSystemPrompt = "You rank search results for a tax research assistant. " +
	"Respond with only a comma-separated list of zero-based indices, most relevant first."

func (r *LLMReranker) Rerank(ctx context.Context, query string, candidates []string, topK int) ([]int, error) {
	if len(candidates) == 0 {
		return nil, nil
	}
	if topK <= 0 || topK > len(candidates) {
		topK = len(candidates)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n\nCandidates:\n", query)
	for i, c := range candidates {
		fmt.Fprintf(&sb, "[%d] %s\n", i, c)
	}
	fmt.Fprintf(&sb, "\nReturn the indices of the %d most relevant candidates.", topK)

	resp, err := r.client.GenerateWithSystem(ctx, rerankSystemPrompt, sb.String())
	if err != nil {
		return nil, fmt.Errorf("rerank request failed: %w", err)
	}

	indices := parseIndices(resp, len(candidates))
	if len(indices) == 0 {
		return nil, fmt.Errorf("reranker returned no usable indices: %q", resp)
	}
	if len(indices) > topK {
		indices = indices[:topK]
	}
	return indices, nil
}

// parseIndices pulls distinct in-range integers out of a model response,
// tolerating brackets, whitespace and stray prose.
func parseIndices(resp string, n int) []int {
	fields := strings.FieldsFunc(resp, func(r rune) bool {
		return r < '0' || r > '9'
	})
	seen := make(map[int]bool, len(fields))
	var indices []int
	for _, f := range fields {
		idx, err := strconv.Atoi(f)
		if err != nil || idx < 0 || idx >= n || seen[idx] {
			continue
		}
		seen[idx] = true
		indices = append(indices, idx)
	}
	return indices
}
