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

import "fmt"

// ValidateDocument validates a Document according to domain rules.
//
// Validation rules:
//   - Id must not be empty
//   - State must be a known DocumentState
//
// NOT validated:
//   - Chunks (a ready document without chunks is legal input; it is simply
//     not searchable)
//   - Chunk embeddings (missing or mismatched embeddings degrade the semantic
//     sub-score to zero during scoring)
func ValidateDocument(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: document is nil", ErrInvalidDocument)
	}

	if doc.Id == "" {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, ErrEmptyDocumentId)
	}

	if err := ValidateDocumentState(doc.State); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return nil
}

// ValidateDocumentState validates that a DocumentState has a known value.
func ValidateDocumentState(state DocumentState) error {
	switch state {
	case DocumentStatePending, DocumentStateProcessing, DocumentStateReady, DocumentStateFailed:
		return nil
	default:
		return fmt.Errorf("%w: value %d", ErrInvalidDocumentState, state)
	}
}

// ValidateFeedbackRecord validates an advisory feedback record.
//
// Validation rules:
//   - Query must not be empty
//   - Rating must be in [1,5]
func ValidateFeedbackRecord(record *FeedbackRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFeedback)
	}

	if record.Query == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrEmptyFeedbackQuery)
	}

	if record.Rating < 1 || record.Rating > 5 {
		return fmt.Errorf("%w: %w", ErrInvalidFeedback, ErrInvalidRating)
	}

	return nil
}
