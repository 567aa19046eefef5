package compat

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// usageTags is the fixed usage-profile vocabulary.
var usageTags = map[string]bool{
	"family":      true,
	"remote_work": true,
	"students":    true,
	"single":      true,
	"couple":      true,
	"shared":      true,
}

// maxUsageTags caps the normalized usage set.
const maxUsageTags = 10

// NormalizeOwnerPrefs validates and coerces a raw owner preference record
// into its canonical form. A nil payload yields the all-default record;
// absent fields take their defaults (Smoking/Pets "either", Usage empty,
// QuietHoursStrict false). Any field that cannot be coerced fails the
// whole call with an InvalidInputError naming that field.
func NormalizeOwnerPrefs(raw interface{}) (OwnerPrefs, error) {
	if raw == nil {
		return DefaultOwnerPrefs(), nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return OwnerPrefs{}, invalidInput("preferences")
	}

	prefs := DefaultOwnerPrefs()

	smoking, present, err := normalizeChoice(m["smoking"], "smoking", true)
	if err != nil {
		return OwnerPrefs{}, err
	}
	if present {
		prefs.Smoking = smoking
	}

	pets, present, err := normalizeChoice(m["pets"], "pets", true)
	if err != nil {
		return OwnerPrefs{}, err
	}
	if present {
		prefs.Pets = pets
	}

	usage, _, err := normalizeUsage(m["usage"])
	if err != nil {
		return OwnerPrefs{}, err
	}
	if usage == nil {
		usage = []string{}
	}
	prefs.Usage = usage

	prefs.QuietHoursAfter, err = normalizeInt(m["quietHoursAfter"], "quietHoursAfter", 0, 23)
	if err != nil {
		return OwnerPrefs{}, err
	}

	prefs.QuietHoursStrict, err = normalizeBool(m["quietHoursStrict"], "quietHoursStrict")
	if err != nil {
		return OwnerPrefs{}, err
	}

	prefs.MaxOccupants, err = normalizeInt(m["maxOccupants"], "maxOccupants", 1, 20)
	if err != nil {
		return OwnerPrefs{}, err
	}

	return prefs, nil
}

// NormalizeTenantAnswers validates and coerces a raw tenant answer record.
// Unlike owner preferences, every missing field stays absent: tenant
// silence on a dimension must remain distinguishable from owner
// indifference. Smoking and pets accept only yes/no here.
func NormalizeTenantAnswers(raw interface{}) (TenantAnswers, error) {
	if raw == nil {
		return TenantAnswers{}, nil
	}
	m, ok := raw.(map[string]interface{})
	if !ok {
		return TenantAnswers{}, invalidInput("answers")
	}

	var ans TenantAnswers

	smoking, present, err := normalizeChoice(m["smoking"], "smoking", false)
	if err != nil {
		return TenantAnswers{}, err
	}
	if present {
		ans.Smoking = &smoking
	}

	pets, present, err := normalizeChoice(m["pets"], "pets", false)
	if err != nil {
		return TenantAnswers{}, err
	}
	if present {
		ans.Pets = &pets
	}

	usage, present, err := normalizeUsage(m["usage"])
	if err != nil {
		return TenantAnswers{}, err
	}
	if present {
		ans.Usage = usage
	}

	ans.QuietHoursAfter, err = normalizeInt(m["quietHoursAfter"], "quietHoursAfter", 0, 23)
	if err != nil {
		return TenantAnswers{}, err
	}

	ans.Occupants, err = normalizeInt(m["occupants"], "occupants", 1, 20)
	if err != nil {
		return TenantAnswers{}, err
	}

	return ans, nil
}

// normalizeChoice coerces a yes/no(/either) value. The second return
// reports whether a value was actually provided.
func normalizeChoice(raw interface{}, field string, allowEither bool) (Choice, bool, error) {
	if raw == nil {
		return "", false, nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", false, invalidInput(field)
	}
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", false, nil
	}
	switch Choice(s) {
	case ChoiceYes, ChoiceNo:
		return Choice(s), true, nil
	case ChoiceEither:
		if allowEither {
			return ChoiceEither, true, nil
		}
	}
	return "", false, invalidInput(field)
}

// normalizeUsage accepts a string slice, a single string, or a
// comma-separated string. Entries are trimmed, lower-cased, checked
// against the vocabulary, deduplicated preserving first-seen order, and
// capped at maxUsageTags.
func normalizeUsage(raw interface{}) ([]string, bool, error) {
	if raw == nil {
		return nil, false, nil
	}

	var entries []string
	switch v := raw.(type) {
	case string:
		entries = strings.Split(v, ",")
	case []string:
		entries = v
	case []interface{}:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false, invalidInput("usage")
			}
			entries = append(entries, s)
		}
	default:
		return nil, false, invalidInput("usage")
	}

	seen := make(map[string]bool, len(entries))
	out := []string{}
	for _, e := range entries {
		tag := strings.ToLower(strings.TrimSpace(e))
		if tag == "" {
			continue
		}
		if !usageTags[tag] {
			return nil, false, invalidInput("usage")
		}
		if seen[tag] {
			continue
		}
		seen[tag] = true
		out = append(out, tag)
		if len(out) == maxUsageTags {
			break
		}
	}
	return out, true, nil
}

// normalizeInt coerces an optional bounded integer. Absent values and
// empty strings yield nil; anything else must parse as a finite number,
// which is truncated toward zero and range-checked inclusively.
func normalizeInt(raw interface{}, field string, min, max int) (*int, error) {
	if raw == nil {
		return nil, nil
	}

	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return nil, invalidInput(field)
		}
		f = parsed
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, nil
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, invalidInput(field)
		}
		f = parsed
	default:
		return nil, invalidInput(field)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalidInput(field)
	}
	n := int(math.Trunc(f))
	if n < min || n > max {
		return nil, invalidInput(field)
	}
	return &n, nil
}

// normalizeBool coerces boolean-ish input: booleans, "true"/"false",
// "yes"/"no", "1"/"0" (string or numeric). Absent defaults to false.
func normalizeBool(raw interface{}, field string) (bool, error) {
	if raw == nil {
		return false, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case float64:
		if v == 1 {
			return true, nil
		}
		if v == 0 {
			return false, nil
		}
	case int:
		if v == 1 {
			return true, nil
		}
		if v == 0 {
			return false, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "":
			return false, nil
		case "true", "1", "yes":
			return true, nil
		case "false", "0", "no":
			return false, nil
		}
	}
	return false, invalidInput(field)
}
