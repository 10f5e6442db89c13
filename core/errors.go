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

import "errors"

// Domain validation errors
var (
	// ErrInvalidTender indicates a Tender failed validation.
	ErrInvalidTender = errors.New("invalid tender")

	// ErrInvalidExperience indicates an Experience failed validation.
	ErrInvalidExperience = errors.New("invalid experience")

	// ErrEmptyExternalId indicates the ExternalId field is empty.
	ErrEmptyExternalId = errors.New("external id cannot be empty")

	// ErrEmptyEntityName indicates the EntityName field is empty.
	ErrEmptyEntityName = errors.New("entity name cannot be empty")

	// ErrEmptyObjectText indicates the ObjectText field is empty.
	ErrEmptyObjectText = errors.New("object text cannot be empty")

	// ErrInvalidTenderSource indicates an invalid TenderSource value.
	ErrInvalidTenderSource = errors.New("invalid tender source")

	// ErrEmptyCompanyName indicates the CompanyName field is empty.
	ErrEmptyCompanyName = errors.New("company name cannot be empty")

	// ErrEmptyProjectDescription indicates the ProjectDescription field is empty.
	ErrEmptyProjectDescription = errors.New("project description cannot be empty")

	// ErrNegativeAmount indicates a currency amount below zero.
	ErrNegativeAmount = errors.New("amount cannot be negative")
)
