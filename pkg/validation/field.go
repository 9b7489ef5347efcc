package validation

import (
	"strconv"

	"github.com/goliatone/go-formflow/pkg/model"
)

// Field runs the rules of field against value. Every applicable check runs
// and messages are returned in rule order: required, minLength, maxLength,
// min, max, pattern. Only required applies to an empty value.
func Field(field model.Field, value model.Value) []string {
	rules := field.Rules
	label := field.DisplayLabel()
	var msgs []string

	if value.Empty() {
		if rules.Required {
			msgs = append(msgs, label+" is required")
		}
		return msgs
	}

	if rules.MinLength != nil && value.Len() < *rules.MinLength {
		msgs = append(msgs, label+" must be at least "+strconv.Itoa(*rules.MinLength)+" characters")
	}
	if rules.MaxLength != nil && value.Len() > *rules.MaxLength {
		msgs = append(msgs, label+" must be no more than "+strconv.Itoa(*rules.MaxLength)+" characters")
	}

	if (rules.Min != nil || rules.Max != nil) && value.Kind() == model.KindScalar {
		number, ok := value.Float()
		if !ok {
			msgs = append(msgs, label+" must be a number")
		} else {
			if rules.Min != nil && number < *rules.Min {
				msgs = append(msgs, label+" must be at least "+formatNumber(*rules.Min))
			}
			if rules.Max != nil && number > *rules.Max {
				msgs = append(msgs, label+" must be no more than "+formatNumber(*rules.Max))
			}
		}
	}

	if rules.Pattern != "" {
		re, err := model.CompilePattern(rules.Pattern)
		if err != nil || !re.MatchString(value.Text()) {
			msgs = append(msgs, label+" format is invalid")
		}
	}
	return msgs
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
