package validate

import (
	"context"
	"fmt"

	"github.com/omicsworks/seqgate/internal/constants"
	"github.com/omicsworks/seqgate/internal/domain"
	"github.com/omicsworks/seqgate/internal/samtools"
)

// Validator dispatches a detected input type to its format validator.
// The dispatch is a single exhaustive switch over the closed InputType set,
// so adding a format is a compile-time-checked extension.
type Validator struct {
	stats          samtools.StatsProvider
	shapeThreshold float64
}

// New creates a Validator. stats supplies BAM alignment statistics;
// shapeThreshold is the tolerated fraction of shape-mismatched rows in
// tabular files (a negative value selects the default).
func New(stats samtools.StatsProvider, shapeThreshold float64) *Validator {
	if shapeThreshold < 0 {
		shapeThreshold = constants.DefaultShapeErrorWarnThreshold
	}
	return &Validator{
		stats:          stats,
		shapeThreshold: shapeThreshold,
	}
}

// Validate runs the format validator matching inputType against the file.
// UNKNOWN is an explicit failure, never a silent skip. The context is
// honored only around the external stats call; file parsing itself is not
// interruptible mid-record.
func (v *Validator) Validate(ctx context.Context, path string, inputType domain.InputType) Outcome {
	switch inputType {
	case domain.InputTypeFASTQ:
		return ValidateFASTQ(path)
	case domain.InputTypeBAM:
		return ValidateBAM(ctx, path, v.stats)
	case domain.InputTypeCELL:
		return ValidateCELL(path, v.shapeThreshold)
	case domain.InputTypeMATRIX:
		return ValidateMATRIX(path, v.shapeThreshold)
	case domain.InputTypeUnknown:
		return Fail("unrecognized format: file matches no known input type")
	default:
		return Fail(fmt.Sprintf("unrecognized input type %q", inputType))
	}
}
