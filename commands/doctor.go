package commands

import (
	"context"

	"github.com/rpnesseling/adbw/diag"
)

// DoctorCommand checks the tool's prerequisites. The response is successful
// even when checks fail; callers inspect the check list (and
// diag.CriticalFailure) to decide the exit code.
func DoctorCommand(ctx context.Context) *CommandResponse {
	return NewSuccessResponse(diag.RunDoctor(ctx, conf))
}
