package stage

// ReasonBudgetExceeded marks a request rejected by the cost ceiling before
// any provider call was made.
const ReasonBudgetExceeded = "budget_exceeded"

// Result is the closed outcome of one stage execution: either Ok with
// content, or Failed with a reason. A stage never returns anything else and
// never panics across this boundary.
type Result struct {
	content string
	reason  string
	failed  bool
}

func Ok(content string) Result {
	return Result{content: content}
}

func Fail(reason string) Result {
	return Result{reason: reason, failed: true}
}

func (r Result) Failed() bool {
	return r.failed
}

// Content returns the stage output; empty for failed results.
func (r Result) Content() string {
	if r.failed {
		return ""
	}
	return r.content
}

// Reason returns the failure reason; empty for successful results.
func (r Result) Reason() string {
	return r.reason
}
