// Copyright 2025 Sieve Labs
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
	// ErrInvalidDocument indicates a Document failed validation.
	ErrInvalidDocument = errors.New("invalid document")

	// ErrEmptyDocumentId indicates the document Id field is empty.
	ErrEmptyDocumentId = errors.New("document id cannot be empty")

	// ErrInvalidDocumentState indicates an invalid DocumentState value.
	ErrInvalidDocumentState = errors.New("invalid document state")

	// ErrInvalidFeedback indicates a FeedbackRecord failed validation.
	ErrInvalidFeedback = errors.New("invalid feedback record")

	// ErrEmptyFeedbackQuery indicates the feedback Query field is empty.
	ErrEmptyFeedbackQuery = errors.New("feedback query cannot be empty")

	// ErrInvalidRating indicates a feedback rating outside the accepted range.
	ErrInvalidRating = errors.New("rating must be between 1 and 5")
)
