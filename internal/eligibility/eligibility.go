// Package eligibility implements the listing/user matching rules.
package eligibility

import "earnbot/internal/model"

// IsEligible reports whether a user's preferences permit a listing to
// be sent to them. Gates are applied in order and short-circuit on the
// first failure:
//
//  1. Listing type: bounties require the bounty flag, projects the
//     project flag.
//  2. USD value: only applied when the listing carries a concrete USD
//     value. Range and variable compensations are never excluded on
//     value grounds.
//  3. Skills: only applied when both the user and the listing have at
//     least one skill tag. The sets must share at least one tag
//     (case-sensitive exact match).
func IsEligible(listing model.Listing, prefs model.UserPreferences) bool {
	if listing.Type == model.TypeBounty && !prefs.Bounties {
		return false
	}
	if listing.Type == model.TypeProject && !prefs.Projects {
		return false
	}

	if usd, ok := listing.Compensation.USD(); ok {
		if prefs.MinUSDValue != nil && usd < *prefs.MinUSDValue {
			return false
		}
		if prefs.MaxUSDValue != nil && usd > *prefs.MaxUSDValue {
			return false
		}
	}

	if len(prefs.Skills) > 0 && len(listing.Skills) > 0 && !intersects(listing.Skills, prefs.Skills) {
		return false
	}

	return true
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}
