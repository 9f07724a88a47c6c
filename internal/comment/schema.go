package comment

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	// MinMessageLength is the shortest message accepted, counted in runes after trimming.
	MinMessageLength = 5

	msgNameRequired  = "Name is required"
	msgMessageLength = "Message must be at least 5 characters"
)

type fieldRules struct {
	field string
	value string
	rules []validation.Rule
}

// Validate checks a candidate comment and returns it trimmed.
// Rules run in order and the first failure is returned as a *ValidationError.
func Validate(in Input) (Input, error) {
	out := Input{
		Name:    strings.TrimSpace(in.Name),
		Message: strings.TrimSpace(in.Message),
	}

	checks := []fieldRules{
		{
			field: "name",
			value: out.Name,
			rules: []validation.Rule{
				validation.Required.Error(msgNameRequired),
			},
		},
		{
			field: "message",
			value: out.Message,
			rules: []validation.Rule{
				validation.Required.Error(msgMessageLength),
				validation.RuneLength(MinMessageLength, 0).Error(msgMessageLength),
			},
		},
	}

	for _, c := range checks {
		if err := validation.Validate(c.value, c.rules...); err != nil {
			return Input{}, &ValidationError{Field: c.field, Reason: err.Error()}
		}
	}

	return out, nil
}
