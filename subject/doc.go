// Package subject holds assessment records and the in-memory collection of them.
//
// A Record stores one subject's self-assessment (Own) and every peer assessment
// about that subject in submission order. The two follow different write policies:
//
//   - Own is replaced wholesale by UpsertOwn (last write wins).
//   - Peers only grows. AppendPeerAssessment never de-duplicates, so repeated
//     submissions by the same assessor count repeatedly.
//
// Store is not safe for concurrent mutation; callers serialise load-mutate-save
// cycles (the johari.Assessment facade does this).
package subject
