// Package tmdb provides the minimal TMDB API client used for metadata lookup.
//
// It authenticates requests with a bearer token and exposes movie and TV
// search with an optional release-year filter plus movie/TV detail retrieval.
// Responses are strongly typed so the tracker can rank candidates and fill
// entry metadata. Options allow tests to supply custom HTTP clients or stub
// behaviour without modifying production code.
package tmdb
