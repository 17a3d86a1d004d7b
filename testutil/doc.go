// Package testutil provides testing utilities for assessments.
//
// This package is intended for use in tests and benchmarks only.
// It generates reproducible random trait sets, selections, records and stores.
//
//	rng := testutil.NewRNG(seed)
//	own := rng.Set(vocab)
//	rec := rng.Record(vocab, "alice", 10, 4) // 10 peer submissions from 4 assessors
//	store := rng.Store(vocab, 25, 10)
package testutil
