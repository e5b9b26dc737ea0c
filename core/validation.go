// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import "fmt"

// ValidateGrant validates a Grant according to domain rules.
//
// Validation rules:
//   - Title must not be empty
//   - Amount bounds must be non-negative, min <= max when both present
//   - TRL bounds must be within 1-9, min <= max when both present
//
// NOT validated (optional by design):
//   - Deadline, EligibleCountries, Tags (absence widens applicability)
//   - Embedding (can be empty until the ingestion pipeline runs)
//   - ID (0 is valid before content hashing)
func ValidateGrant(grant *Grant) error {
	if grant == nil {
		return fmt.Errorf("%w: grant is nil", ErrInvalidGrant)
	}

	if grant.Title == "" {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrEmptyTitle)
	}

	if grant.AmountMin != nil && *grant.AmountMin < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrNegativeAmount)
	}
	if grant.AmountMax != nil && *grant.AmountMax < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrNegativeAmount)
	}
	if grant.AmountMin != nil && grant.AmountMax != nil && *grant.AmountMin > *grant.AmountMax {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrInvertedAmountBounds)
	}

	if err := validateTRLBound(grant.MinTRL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, err)
	}
	if err := validateTRLBound(grant.MaxTRL); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, err)
	}
	if grant.MinTRL != nil && grant.MaxTRL != nil && *grant.MinTRL > *grant.MaxTRL {
		return fmt.Errorf("%w: %w", ErrInvalidGrant, ErrInvertedTRLBounds)
	}

	return nil
}

// ValidateProfile validates a normalized Profile according to domain rules.
//
// Validation rules:
//   - TRL must be within the 1-9 scale
//   - FundingAsk must be non-negative
//
// Country is not validated; an empty country is a wildcard.
func ValidateProfile(profile *Profile) error {
	if profile == nil {
		return fmt.Errorf("%w: profile is nil", ErrInvalidProfile)
	}

	if profile.TRL < 1 || profile.TRL > 9 {
		return fmt.Errorf("%w: %w: value %d", ErrInvalidProfile, ErrInvalidTRL, profile.TRL)
	}

	if profile.FundingAsk < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidProfile, ErrNegativeFundingAsk)
	}

	return nil
}

func validateTRLBound(bound *int) error {
	if bound == nil {
		return nil
	}
	if *bound < 1 || *bound > 9 {
		return fmt.Errorf("%w: value %d", ErrInvalidTRLBound, *bound)
	}
	return nil
}
