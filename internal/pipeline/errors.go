package pipeline

import (
	"fmt"
	"strings"

	"github.com/parkerjr2/seogen/internal/types"
)

// RepairFailedError reports a generation whose repaired response still failed
// validation. The loop issues exactly one repair call, so this is terminal
// for the attempt.
type RepairFailedError struct {
	Violations []types.Violation
}

func (e *RepairFailedError) Error() string {
	return fmt.Sprintf("validation failed after repair: %s",
		strings.Join(types.ViolationDetails(e.Violations), "; "))
}
