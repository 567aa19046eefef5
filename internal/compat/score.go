package compat

const msgNoInformation = "no information provided"

// ComputeCompatibility scores a normalized tenant answer set against a
// normalized owner preference set. The score starts at 100, each
// dimension's penalty is subtracted in fixed order, and the running total
// is floored at 0. Inputs must already be normalized; the scorer does not
// re-validate.
func ComputeCompatibility(owner OwnerPrefs, tenant TenantAnswers) CompatibilityResult {
	dims := []DimensionScore{
		scoreSmoking(owner, tenant),
		scorePets(owner, tenant),
		scoreUsage(owner, tenant),
		scoreQuietHours(owner, tenant),
		scoreOccupants(owner, tenant),
	}

	result := CompatibilityResult{
		Score:     100,
		Conflicts: []DimensionScore{},
		Breakdown: make(map[string]DimensionScore, len(dims)),
	}
	for _, d := range dims {
		result.Breakdown[d.Dimension] = d
		if d.Penalty > 0 {
			result.Conflicts = append(result.Conflicts, d)
			result.Score -= d.Penalty
			if result.Score < 0 {
				result.Score = 0
			}
		}
	}
	return result
}

func scoreSmoking(owner OwnerPrefs, tenant TenantAnswers) DimensionScore {
	d := DimensionScore{Dimension: DimSmoking, OwnerValue: string(owner.Smoking)}
	if tenant.Smoking != nil {
		d.TenantValue = string(*tenant.Smoking)
	}
	if owner.Smoking == ChoiceEither || tenant.Smoking == nil {
		d.Severity = SeverityNeutral
		d.Message = msgNoInformation
		return d
	}
	switch {
	case owner.Smoking == ChoiceNo && *tenant.Smoking == ChoiceYes:
		d.Penalty = 35
		d.Severity = SeverityHigh
		d.Message = "owner does not accept smokers"
	case owner.Smoking == ChoiceYes && *tenant.Smoking == ChoiceNo:
		d.Penalty = 15
		d.Severity = SeverityMedium
		d.Message = "owner prefers smokers"
	default:
		d.Severity = SeverityOK
		d.Message = "smoking preference matches"
	}
	return d
}

func scorePets(owner OwnerPrefs, tenant TenantAnswers) DimensionScore {
	d := DimensionScore{Dimension: DimPets, OwnerValue: string(owner.Pets)}
	if tenant.Pets != nil {
		d.TenantValue = string(*tenant.Pets)
	}
	if owner.Pets == ChoiceEither || tenant.Pets == nil {
		d.Severity = SeverityNeutral
		d.Message = msgNoInformation
		return d
	}
	switch {
	case owner.Pets == ChoiceNo && *tenant.Pets == ChoiceYes:
		d.Penalty = 25
		d.Severity = SeverityHigh
		d.Message = "owner does not accept pets"
	case owner.Pets == ChoiceYes && *tenant.Pets == ChoiceNo:
		d.Penalty = 10
		d.Severity = SeverityLow
		d.Message = "owner prefers tenants with pets"
	default:
		d.Severity = SeverityOK
		d.Message = "pet preference matches"
	}
	return d
}

func scoreUsage(owner OwnerPrefs, tenant TenantAnswers) DimensionScore {
	d := DimensionScore{Dimension: DimUsage, OwnerValue: owner.Usage, TenantValue: tenant.Usage}
	if len(owner.Usage) == 0 || len(tenant.Usage) == 0 {
		d.Severity = SeverityNeutral
		d.Message = msgNoInformation
		return d
	}

	wanted := make(map[string]bool, len(owner.Usage))
	for _, tag := range owner.Usage {
		wanted[tag] = true
	}
	for _, tag := range tenant.Usage {
		if wanted[tag] {
			d.Severity = SeverityOK
			d.Message = "common usage profile"
			return d
		}
	}

	d.Penalty = 20
	d.Severity = SeverityMedium
	d.Message = "different usage/profile type"
	return d
}

func scoreQuietHours(owner OwnerPrefs, tenant TenantAnswers) DimensionScore {
	d := DimensionScore{Dimension: DimQuietHours}
	if owner.QuietHoursAfter == nil || tenant.QuietHoursAfter == nil {
		d.Severity = SeverityNeutral
		d.Message = msgNoInformation
		return d
	}
	d.OwnerValue = *owner.QuietHoursAfter
	d.TenantValue = *tenant.QuietHoursAfter

	if nightScale(*tenant.QuietHoursAfter) > nightScale(*owner.QuietHoursAfter) {
		if owner.QuietHoursStrict {
			d.Penalty = 20
			d.Severity = SeverityHigh
			d.Message = "tenant stays up past strict quiet hours"
		} else {
			d.Penalty = 10
			d.Severity = SeverityMedium
			d.Message = "tenant stays up past preferred quiet hours"
		}
		return d
	}

	d.Severity = SeverityOK
	d.Message = "within quiet hours"
	return d
}

func scoreOccupants(owner OwnerPrefs, tenant TenantAnswers) DimensionScore {
	d := DimensionScore{Dimension: DimOccupants}
	if owner.MaxOccupants == nil || tenant.Occupants == nil {
		d.Severity = SeverityNeutral
		d.Message = msgNoInformation
		return d
	}
	d.OwnerValue = *owner.MaxOccupants
	d.TenantValue = *tenant.Occupants

	if *tenant.Occupants > *owner.MaxOccupants {
		d.Penalty = 30
		d.Severity = SeverityHigh
		d.Message = "exceeds maximum occupant count"
		return d
	}

	d.Severity = SeverityOK
	d.Message = "within occupant limit"
	return d
}

// nightScale maps clock hours onto a single overnight axis: hours before
// noon count as the small hours of the following night (1:00 reads as 25),
// so 23:00 compares as earlier than 1:00 of the same night.
func nightScale(h int) int {
	if h < 12 {
		return h + 24
	}
	return h
}
