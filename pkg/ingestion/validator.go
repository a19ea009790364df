package ingestion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/carelens-ai/platform/pkg/common/models"
)

var (
	errInvalidSource = errors.New("invalid source")
	errNoRows        = errors.New("batch has no rows")
	errBatchTooBig   = errors.New("batch exceeds row limit")
)

type ValidationError struct {
	reason error
}

func (e ValidationError) Error() string {
	return e.reason.Error()
}

func (e ValidationError) Unwrap() error {
	return e.reason
}

func IsValidationError(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

type Validator struct {
	allowedSources map[string]struct{}
	maxBatchRows   int
}

func NewValidator(sources []string, maxBatchRows int) *Validator {
	vs := make(map[string]struct{})
	for _, src := range sources {
		if trimmed := strings.TrimSpace(strings.ToLower(src)); trimmed != "" {
			vs[trimmed] = struct{}{}
		}
	}
	return &Validator{allowedSources: vs, maxBatchRows: maxBatchRows}
}

func (v *Validator) Validate(req models.MentionBatchRequest) error {
	if v == nil {
		return ValidationError{reason: errors.New("validator not initialised")}
	}

	source := strings.TrimSpace(strings.ToLower(req.Source))
	if source == "" {
		return ValidationError{reason: fmt.Errorf("source required: %w", errInvalidSource)}
	}
	if len(v.allowedSources) > 0 {
		if _, ok := v.allowedSources[source]; !ok {
			return ValidationError{reason: fmt.Errorf("source '%s' not allowed: %w", source, errInvalidSource)}
		}
	}

	if len(req.Rows) == 0 {
		return ValidationError{reason: errNoRows}
	}
	if v.maxBatchRows > 0 && len(req.Rows) > v.maxBatchRows {
		return ValidationError{reason: fmt.Errorf("%d rows, limit %d: %w", len(req.Rows), v.maxBatchRows, errBatchTooBig)}
	}

	for i, row := range req.Rows {
		if len(row) == 0 {
			return ValidationError{reason: fmt.Errorf("row %d is empty", i)}
		}
	}

	return nil
}
