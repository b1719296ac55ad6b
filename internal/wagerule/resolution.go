package wagerule

import "time"

// Covers reports whether the rule's validity interval overlaps the period:
// ValidFrom ≤ periodEnd and (no ValidUntil or ValidUntil ≥ periodStart).
func (r *WageRule) Covers(periodStart, periodEnd time.Time) bool {
	if r.ValidFrom.After(periodEnd) {
		return false
	}
	if r.ValidUntil != nil && r.ValidUntil.Before(periodStart) {
		return false
	}
	return true
}

// Resolve selects the single rule to apply for one client over a period.
// Priority: client-specific rules covering the period beat organization-wide
// defaults; within a bucket the latest ValidFrom wins. Two client-specific
// rules sharing a ValidFrom are broken by CreatedAt (most recent first), then
// by ID, so resolution is deterministic.
//
// A nil result means no rule applies; callers compute zero amounts and record
// calculation type "none".
func Resolve(rules []WageRule, clientID string, periodStart, periodEnd time.Time) *WageRule {
	var best *WageRule

	for i := range rules {
		r := &rules[i]
		if r.ClientID == nil || r.ClientID.String() != clientID {
			continue
		}
		if !r.Covers(periodStart, periodEnd) {
			continue
		}
		if better(r, best) {
			best = r
		}
	}
	if best != nil {
		return best
	}

	for i := range rules {
		r := &rules[i]
		if r.ClientID != nil || !r.IsDefault {
			continue
		}
		if !r.Covers(periodStart, periodEnd) {
			continue
		}
		if better(r, best) {
			best = r
		}
	}

	return best
}

func better(candidate, current *WageRule) bool {
	if current == nil {
		return true
	}
	if !candidate.ValidFrom.Equal(current.ValidFrom) {
		return candidate.ValidFrom.After(current.ValidFrom)
	}
	if !candidate.CreatedAt.Equal(current.CreatedAt) {
		return candidate.CreatedAt.After(current.CreatedAt)
	}
	return candidate.ID.String() > current.ID.String()
}
