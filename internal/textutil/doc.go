// Package textutil provides text processing utilities for title
// normalization and display formatting.
//
// The primary use cases are:
//   - Canonicalizing titles for duplicate detection and word search
//   - Trimming long overview text to a single display line
//
// Normalization folds diacritics, lowercases, expands "&" and "+" to "and",
// and collapses every non-alphanumeric run to a single space, so two
// spellings of the same title compare equal.
package textutil
