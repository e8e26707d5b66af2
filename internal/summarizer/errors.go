package summarizer

import "fmt"

// StageReduce names the second pass over the joined partial summaries.
const StageReduce = "reduce"

// ModelInvocationError reports a failure of the underlying summarization capability.
type ModelInvocationError struct {
	Stage string
	Err   error
}

func (e *ModelInvocationError) Error() string {
	return fmt.Sprintf("model invocation failed at %s: %v", e.Stage, e.Err)
}

func (e *ModelInvocationError) Unwrap() error {
	return e.Err
}
