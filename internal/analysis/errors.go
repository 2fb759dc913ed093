package analysis

import "errors"

// ErrSchema means the model output could not be parsed as the expected
// top-level JSON array, even after the single fix re-prompt.
var ErrSchema = errors.New("structured output schema mismatch")
