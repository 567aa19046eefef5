// Package compat implements the landlord/tenant compatibility engine:
// normalization of raw preference payloads, a presence check, and the
// deterministic five-dimension scorer. Everything in here is pure —
// no storage, no transport, no shared state.
package compat

import "fmt"

// Choice is a yes/no/either preference value.
type Choice string

const (
	ChoiceYes    Choice = "yes"
	ChoiceNo     Choice = "no"
	ChoiceEither Choice = "either"
)

// Severity labels attached to dimension evaluations.
type Severity string

const (
	SeverityHigh    Severity = "high"
	SeverityMedium  Severity = "medium"
	SeverityLow     Severity = "low"
	SeverityOK      Severity = "ok"
	SeverityNeutral Severity = "neutral"
)

// Dimension keys, in scoring order.
const (
	DimSmoking    = "smoking"
	DimPets       = "pets"
	DimUsage      = "usage"
	DimQuietHours = "quietHours"
	DimOccupants  = "occupants"
)

// DimensionOrder is the fixed evaluation order of the scorer. Conflict
// entries always appear in this order.
var DimensionOrder = []string{DimSmoking, DimPets, DimUsage, DimQuietHours, DimOccupants}

// OwnerPrefs is a landlord's normalized preference set for a property.
// Absent numeric fields mean "no limit configured"; Smoking/Pets default
// to ChoiceEither and Usage to an empty set.
type OwnerPrefs struct {
	Smoking          Choice   `json:"smoking" bson:"smoking"`
	Pets             Choice   `json:"pets" bson:"pets"`
	Usage            []string `json:"usage" bson:"usage"`
	QuietHoursAfter  *int     `json:"quietHoursAfter,omitempty" bson:"quietHoursAfter,omitempty"`
	QuietHoursStrict bool     `json:"quietHoursStrict" bson:"quietHoursStrict"`
	MaxOccupants     *int     `json:"maxOccupants,omitempty" bson:"maxOccupants,omitempty"`
}

// TenantAnswers is a tenant's normalized self-assessment. Every field is
// optional; nil means the tenant did not answer that dimension, which is
// distinct from an owner's "either".
type TenantAnswers struct {
	Smoking         *Choice  `json:"smoking,omitempty"`
	Pets            *Choice  `json:"pets,omitempty"`
	Usage           []string `json:"usage,omitempty"`
	QuietHoursAfter *int     `json:"quietHoursAfter,omitempty"`
	Occupants       *int     `json:"occupants,omitempty"`
}

// DimensionScore is one dimension's evaluation. It appears in the
// breakdown unconditionally and in the conflict list when Penalty > 0.
type DimensionScore struct {
	Dimension   string      `json:"dimension"`
	Penalty     int         `json:"penalty"`
	Severity    Severity    `json:"severity"`
	Message     string      `json:"message"`
	OwnerValue  interface{} `json:"ownerValue,omitempty"`
	TenantValue interface{} `json:"tenantValue,omitempty"`
}

// CompatibilityResult is the scorer output: a 0-100 score, the conflicts
// in evaluation order, and the full per-dimension breakdown.
type CompatibilityResult struct {
	Score     int                       `json:"score"`
	Conflicts []DimensionScore          `json:"conflicts"`
	Breakdown map[string]DimensionScore `json:"breakdown"`
}

// InvalidInputError reports a raw field that could not be coerced into
// its domain. It is the only error kind the normalizers return.
type InvalidInputError struct {
	Field string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid value for field %q", e.Field)
}

func invalidInput(field string) error {
	return &InvalidInputError{Field: field}
}

// DefaultOwnerPrefs returns the all-neutral owner preference set.
func DefaultOwnerPrefs() OwnerPrefs {
	return OwnerPrefs{
		Smoking: ChoiceEither,
		Pets:    ChoiceEither,
		Usage:   []string{},
	}
}

// HasAnyOwnerPrefs reports whether the owner configured at least one real
// preference. Scoring against an all-default record is meaningless and
// callers should refuse it before invoking ComputeCompatibility.
func HasAnyOwnerPrefs(p OwnerPrefs) bool {
	if p.Smoking != ChoiceEither || p.Pets != ChoiceEither {
		return true
	}
	if len(p.Usage) > 0 {
		return true
	}
	return p.QuietHoursAfter != nil || p.MaxOccupants != nil
}
