package schema

import (
	"strconv"
	"strings"

	"hourly-quote/internal/domain"
)

// Normalize checks a raw submission against the schema and returns the
// normalized custom-field values for the cart line. Problems are
// collected across all fields so the form can re-render every message
// at once; on any problem the returned map is nil.
//
// Per-type contract:
//   - text/email/number/textarea: required means a non-blank value;
//     no format enforcement beyond that (legacy permissiveness).
//   - checkbox: a set of selected options; every selected value must
//     be one of the configured options (trimmed, case-sensitive).
//   - radio/select: a single value; when required it must be one of
//     the configured options.
//   - file: required means an attachment is present; content and type
//     are the upload handler's business.
//   - anything else (a legacy schema may carry a type this build does
//     not list): handled as text.
func Normalize(s *domain.FieldSchema, values map[string][]string, attachments map[string]string) (map[string]string, *domain.ValidationError) {
	verr := &domain.ValidationError{}
	normalized := make(map[string]string)

	for _, f := range s.Fields {
		submitted := values[f.Name]
		switch f.Type {
		case domain.FieldCheckbox:
			opts := f.OptionList()
			if f.Required && len(opts) == 0 {
				verr.Add(f.Name, "has no configured options")
				continue
			}
			if f.Required && len(submitted) == 0 {
				verr.Add(f.Name, "requires at least one selection")
				continue
			}
			selected := make([]string, 0, len(submitted))
			ok := true
			for _, raw := range submitted {
				v := strings.TrimSpace(raw)
				if !containsOption(opts, v) {
					verr.Add(f.Name, "selection "+strconv.Quote(v)+" is not a configured option")
					ok = false
					break
				}
				selected = append(selected, v)
			}
			if ok && len(selected) > 0 {
				normalized[f.Name] = strings.Join(selected, ", ")
			}

		case domain.FieldRadio, domain.FieldSelect:
			opts := f.OptionList()
			if f.Required && len(opts) == 0 {
				verr.Add(f.Name, "has no configured options")
				continue
			}
			v := strings.TrimSpace(firstValue(submitted))
			if f.Required && v == "" {
				verr.Add(f.Name, "is required")
				continue
			}
			if f.Required && !containsOption(opts, v) {
				verr.Add(f.Name, "value "+strconv.Quote(v)+" is not a configured option")
				continue
			}
			if len(submitted) > 0 {
				normalized[f.Name] = v
			}

		case domain.FieldFile:
			name, attached := attachments[f.Name]
			if f.Required && !attached {
				verr.Add(f.Name, "requires an attachment")
				continue
			}
			if attached {
				normalized[f.Name] = name
			}

		default:
			// text, email, number and textarea, plus any type a stored
			// legacy schema carries that this build no longer lists:
			// required-field enforcement must survive either way.
			v := firstValue(submitted)
			if f.Required && strings.TrimSpace(v) == "" {
				verr.Add(f.Name, "is required")
				continue
			}
			if len(submitted) > 0 {
				normalized[f.Name] = strings.TrimSpace(v)
			}
		}
	}

	if verr.Any() {
		return nil, verr
	}
	return normalized, nil
}

func firstValue(vals []string) string {
	if len(vals) == 0 {
		return ""
	}
	return vals[0]
}

func containsOption(opts []string, v string) bool {
	for _, o := range opts {
		if o == v {
			return true
		}
	}
	return false
}
