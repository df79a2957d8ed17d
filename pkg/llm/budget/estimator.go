package budget

import (
	"fmt"
)

// ErrBudgetExceeded is returned by Check when the estimated cost of a request
// is over the configured ceiling. The request must not be made and must not
// be retried against a cheaper model.
type ErrBudgetExceeded struct {
	EstimatedCost float64
	Limit         float64
}

func (e *ErrBudgetExceeded) Error() string {
	return fmt.Sprintf("estimated cost $%.4f exceeds limit of $%.2f", e.EstimatedCost, e.Limit)
}

// Estimate is a cost projection for one request.
type Estimate struct {
	TokenCount    int
	CostPer1K     float64
	EstimatedCost float64
	Provider      string
	Model         string
}

// Approximate $ per 1K input tokens. Local models are free.
var costRates = map[string]map[string]float64{
	"openai": {
		"gpt-4":         0.03,
		"gpt-3.5-turbo": 0.0015,
	},
	"ollama": {
		"llama2":    0.0,
		"llama3":    0.0,
		"mistral":   0.0,
		"codellama": 0.0,
	},
}

const defaultCostPer1K = 0.001

// Estimator projects request cost against a fixed ceiling. It is constructed
// once from config and threaded into the stage executor, so a run's budget
// policy never depends on ambient process state.
type Estimator struct {
	provider string
	model    string
	limit    float64
}

func NewEstimator(provider, model string, limit float64) *Estimator {
	return &Estimator{provider: provider, model: model, limit: limit}
}

// CountTokens approximates the token count of text. One token is roughly
// four characters for the model families in the rate table.
func CountTokens(text string) int {
	return len(text) / 4
}

func (e *Estimator) Estimate(text string) Estimate {
	tokens := CountTokens(text)
	rate := defaultCostPer1K
	if models, ok := costRates[e.provider]; ok {
		if r, ok := models[e.model]; ok {
			rate = r
		}
	}
	return Estimate{
		TokenCount:    tokens,
		CostPer1K:     rate,
		EstimatedCost: float64(tokens) / 1000 * rate,
		Provider:      e.provider,
		Model:         e.model,
	}
}

// Check returns ErrBudgetExceeded when text is too expensive to process.
func (e *Estimator) Check(text string) error {
	est := e.Estimate(text)
	if est.EstimatedCost > e.limit {
		return &ErrBudgetExceeded{EstimatedCost: est.EstimatedCost, Limit: e.limit}
	}
	return nil
}
