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


package search

import "errors"

var (
	// ErrDocumentSourceRequired is returned when a nil document source is provided.
	ErrDocumentSourceRequired = errors.New("document source is required")

	// ErrEmbedderRequired is returned when a nil embedder is provided.
	ErrEmbedderRequired = errors.New("embedder is required")

	// ErrEmptyQuery is returned for a query that is empty after trimming.
	ErrEmptyQuery = errors.New("query must not be empty")

	// ErrFeedbackStoreRequired is returned by RecordFeedback when no
	// feedback store was configured.
	ErrFeedbackStoreRequired = errors.New("feedback store is required")

	// ErrSearchFailed wraps unrecoverable failures, such as the document
	// source itself being unreachable.
	ErrSearchFailed = errors.New("search failed")
)
