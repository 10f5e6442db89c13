// Copyright 2025 LicitIA
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

// ValidateTender validates a Tender according to domain rules.
//
// Validation rules:
//   - ExternalId must not be empty
//   - EntityName must not be empty
//   - ObjectText must not be empty
//   - Source must be a known platform
//   - Amount, when present, must not be negative
//
// NOT validated (optional by design):
//   - Department, Municipality, PublicationDate, ClosingDate, ContractType
//   - ID (0 is valid before the record is keyed)
func ValidateTender(tender *Tender) error {
	if tender == nil {
		return fmt.Errorf("%w: tender is nil", ErrInvalidTender)
	}

	if tender.ExternalId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTender, ErrEmptyExternalId)
	}

	if tender.EntityName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTender, ErrEmptyEntityName)
	}

	if tender.ObjectText == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTender, ErrEmptyObjectText)
	}

	if err := ValidateTenderSource(tender.Source); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTender, err)
	}

	if tender.Amount != nil && *tender.Amount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidTender, ErrNegativeAmount)
	}

	return nil
}

// ValidateExperience validates an Experience according to domain rules.
//
// Validation rules:
//   - CompanyName must not be empty
//   - ProjectDescription must not be empty
//   - Amount, when present, must not be negative
//
// NOT validated (optional by design):
//   - ContractingEntity, CompletionDate, Category, EngineeringArea, geography
//   - Keywords (empty until the importer extracts the signature)
//   - ID (0 is valid from database sequences)
func ValidateExperience(experience *Experience) error {
	if experience == nil {
		return fmt.Errorf("%w: experience is nil", ErrInvalidExperience)
	}

	if experience.CompanyName == "" {
		return fmt.Errorf("%w: %w", ErrInvalidExperience, ErrEmptyCompanyName)
	}

	if experience.ProjectDescription == "" {
		return fmt.Errorf("%w: %w", ErrInvalidExperience, ErrEmptyProjectDescription)
	}

	if experience.Amount != nil && *experience.Amount < 0 {
		return fmt.Errorf("%w: %w", ErrInvalidExperience, ErrNegativeAmount)
	}

	return nil
}

// ValidateTenderSource validates that a TenderSource has a valid value.
func ValidateTenderSource(source TenderSource) error {
	switch source {
	case SourceSECOPI, SourceSECOPII, SourceSECOPIntegrado:
		return nil
	}
	return fmt.Errorf("%w: value %d", ErrInvalidTenderSource, source)
}
