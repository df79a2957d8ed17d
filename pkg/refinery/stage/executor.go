package stage

import (
	"context"
	"sort"

	"yt-refinery/pkg/llm"
	"yt-refinery/pkg/llm/budget"
	"yt-refinery/pkg/refinery/wikilink"
)

// Document is one transcript handed to the synthesis stage.
type Document struct {
	VideoId string
	Content string
}

// Executor runs enrichment stages against the text-generation backend.
// Every stage checks the cost ceiling before the provider call and converts
// any provider error into a failed Result; retry policy belongs to callers.
type Executor struct {
	provider  llm.LLMProvider
	estimator *budget.Estimator
}

func NewExecutor(provider llm.LLMProvider, estimator *budget.Estimator) *Executor {
	return &Executor{provider: provider, estimator: estimator}
}

// Clean rewrites one transcript through the LLM. Callers keep the original
// content when this fails — a document is never lost to a cleaning failure.
func (e *Executor) Clean(ctx context.Context, transcript string) Result {
	// Cap output at twice the input tokens; enough headroom for a full
	// rewrite without letting the model ramble past the source.
	maxTokens := budget.CountTokens(transcript) * 2
	return e.run(ctx, cleanPrompt(transcript), maxTokens)
}

// Summarize produces a single-video summary.
func (e *Executor) Summarize(ctx context.Context, transcript, title string) Result {
	return e.run(ctx, summaryPrompt(title, transcript), 1000)
}

// Synthesize merges a whole document set into one research report in a single
// call. Its failure is fatal to a cluster run; there is no partial synthesis.
func (e *Executor) Synthesize(ctx context.Context, topic string, docs []Document) Result {
	// Deterministic prompt ordering regardless of map iteration upstream.
	sorted := append([]Document(nil), docs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].VideoId < sorted[j].VideoId })
	return e.run(ctx, synthesisPrompt(topic, sorted), 3000)
}

// ExtractKeywords asks the model for wikilink candidates. A failure yields an
// empty set: the report then simply ships without cross-references.
func (e *Executor) ExtractKeywords(ctx context.Context, text string) []string {
	result := e.run(ctx, keywordPrompt(text), 500)
	if result.Failed() {
		return nil
	}
	return wikilink.ParseKeywords(result.Content())
}

func (e *Executor) run(ctx context.Context, prompt string, maxTokens int) Result {
	if err := e.estimator.Check(prompt); err != nil {
		return Fail(ReasonBudgetExceeded)
	}

	response, err := e.provider.Generate(ctx, prompt, llm.WithMaxTokens(maxTokens))
	if err != nil {
		return Fail(err.Error())
	}
	return Ok(response)
}
