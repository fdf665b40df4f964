package coverage

import "errors"

// ErrAssignmentConflict means the assignment date falls inside an
// employee's approved leave. It is a conflict, not a validation failure.
var ErrAssignmentConflict = errors.New("Assignment date falls within approved leave")
