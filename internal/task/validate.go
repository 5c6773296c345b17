package task

import (
	"strings"

	"github.com/nowdo/nowdo/internal/clierr"
)

// ValidateTitle checks that a title is non-empty after trimming.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return clierr.New(clierr.InvalidInput, "title must not be empty")
	}
	return nil
}

// ValidatePriority checks that a priority is a known value.
func ValidatePriority(p Priority) error {
	if !p.IsValid() {
		return clierr.Newf(clierr.InvalidPriority, "invalid priority %q", p).
			WithDetails(map[string]any{
				"priority": string(p),
				"allowed":  Priorities(),
			})
	}
	return nil
}

// ValidateDuration checks the estimated duration and buffer minutes.
func ValidateDuration(duration, buffer int) error {
	if duration < 1 {
		return clierr.Newf(clierr.InvalidDuration,
			"duration must be a positive number of minutes, got %d", duration)
	}
	if buffer < 0 {
		return clierr.Newf(clierr.InvalidDuration,
			"buffer must not be negative, got %d", buffer)
	}
	return nil
}

// ValidateSteps checks the creation rule: at least one non-empty step.
// Blank entries are dropped; the cleaned list is returned.
func ValidateSteps(steps []string) ([]string, error) {
	cleaned := make([]string, 0, len(steps))
	for _, s := range steps {
		if t := strings.TrimSpace(s); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	if len(cleaned) == 0 {
		return nil, clierr.New(clierr.NoSteps,
			"a task needs at least one step describing how to do it")
	}
	return cleaned, nil
}

// ValidateRating checks a 1-5 rating used in completion records.
func ValidateRating(field string, v int) error {
	if v < 1 || v > 5 {
		return clierr.Newf(clierr.InvalidRating, "%s must be between 1 and 5, got %d", field, v).
			WithDetails(map[string]any{"field": field, "value": v})
	}
	return nil
}

// ValidateLabel checks that an inline label definition has both parts.
func ValidateLabel(name, icon string) error {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(icon) == "" {
		return clierr.New(clierr.InvalidInput, "a label needs both a name and an icon")
	}
	return nil
}

// ValidateDate returns a structured error for invalid date input.
func ValidateDate(field, input string, err error) *clierr.Error {
	return clierr.Newf(clierr.InvalidDate, "invalid %s date: %v", field, err).
		WithDetails(map[string]any{
			"field": field,
			"input": input,
		})
}

// ValidateTaskID returns a structured error for unparseable task ID input.
func ValidateTaskID(input string) *clierr.Error {
	return clierr.Newf(clierr.InvalidTaskID, "invalid task ID %q", input).
		WithDetails(map[string]any{"input": input})
}
