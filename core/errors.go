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

import "errors"

// Domain validation errors
var (
	// ErrInvalidGrant indicates a Grant failed validation.
	ErrInvalidGrant = errors.New("invalid grant")

	// ErrInvalidProfile indicates a Profile failed validation.
	ErrInvalidProfile = errors.New("invalid profile")

	// ErrEmptyTitle indicates the grant Title field is empty.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvertedAmountBounds indicates amount_min exceeds amount_max.
	ErrInvertedAmountBounds = errors.New("amount_min cannot exceed amount_max")

	// ErrNegativeAmount indicates a negative amount bound.
	ErrNegativeAmount = errors.New("amount bounds cannot be negative")

	// ErrInvalidTRLBound indicates a TRL bound outside the 1-9 scale.
	ErrInvalidTRLBound = errors.New("TRL bounds must be between 1 and 9")

	// ErrInvertedTRLBounds indicates min_trl exceeds max_trl.
	ErrInvertedTRLBounds = errors.New("min_trl cannot exceed max_trl")

	// ErrInvalidTRL indicates a profile TRL outside the 1-9 scale.
	ErrInvalidTRL = errors.New("TRL must be between 1 and 9")

	// ErrNegativeFundingAsk indicates a negative funding ask.
	ErrNegativeFundingAsk = errors.New("funding ask cannot be negative")
)
