// Package ranking orders candidates by how many tags they share with a target.
package ranking

import (
	"sort"

	"github.com/tunakleague/collabin-backend/internal/domain"
)

// Candidate is one rankable entity and the tags it carries.
type Candidate struct {
	ID   int64
	Tags []int64
}

// Scored is a ranked candidate with its overlap count.
type Scored struct {
	ID      int64
	Overlap int
}

// Rank orders candidates by |target ∩ tags|, highest first.
//
// With an empty target every candidate is returned in input order with a
// zero overlap. Otherwise candidates sharing no tag are dropped and ties
// keep their input order; there is no secondary key.
func Rank(target []int64, candidates []Candidate) []Scored {
	out := make([]Scored, 0, len(candidates))

	if len(target) == 0 {
		for _, c := range candidates {
			out = append(out, Scored{ID: c.ID})
		}
		return out
	}

	want := make(map[int64]struct{}, len(target))
	for _, id := range target {
		want[id] = struct{}{}
	}

	for _, c := range candidates {
		if n := overlap(want, c.Tags); n > 0 {
			out = append(out, Scored{ID: c.ID, Overlap: n})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Overlap > out[j].Overlap
	})
	return out
}

// overlap counts distinct tags of tags present in want.
func overlap(want map[int64]struct{}, tags []int64) int {
	counted := make(map[int64]struct{}, len(tags))
	for _, t := range tags {
		if _, ok := want[t]; ok {
			counted[t] = struct{}{}
		}
	}
	return len(counted)
}

// CandidatesFromLinks groups association rows by owner. Candidates come
// out in the order their first row appears, which is the discovery order
// Rank preserves between ties.
func CandidatesFromLinks(links []domain.TagLink) []Candidate {
	pos := make(map[int64]int, len(links))
	out := make([]Candidate, 0, len(links))

	for _, l := range links {
		i, ok := pos[l.OwnerID]
		if !ok {
			i = len(out)
			pos[l.OwnerID] = i
			out = append(out, Candidate{ID: l.OwnerID})
		}
		out[i].Tags = append(out[i].Tags, l.TagID)
	}
	return out
}

// IDs projects scored candidates to their ids, keeping order.
func IDs(scored []Scored) []int64 {
	out := make([]int64, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.ID)
	}
	return out
}
