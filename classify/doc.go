// Package classify derives the four awareness quadrants of a subject.
//
// Given the self-assessment O and peer assessments P1..Pn with U = P1 ∪ … ∪ Pn:
//
//	Arena   = traits in O attributed by at least one peer
//	Blind   = traits not in O attributed by at least one peer
//	Facade  = O \ U
//	Unknown = ¬O ∩ ¬U
//
// The quadrants are pairwise disjoint and cover the whole vocabulary for any n,
// including n = 0. Arena and Blind entries carry corroboration counts: the
// number of peer submissions naming the trait, and the number of distinct
// assessors among them.
package classify
