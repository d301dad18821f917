package directory

import (
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Candidate is one approximate match against the directory keys.
type Candidate struct {
	Key   string
	Score float64
}

// Matcher resolves user street input against a Directory. Exact lookup
// first, then similarity-ratio matching with a cutoff and a candidate cap.
type Matcher struct {
	cutoff        float64
	maxCandidates int
}

// NewMatcher creates a Matcher with the given similarity cutoff and
// candidate cap. Out-of-range values fall back to 0.6 and 5.
func NewMatcher(cutoff float64, maxCandidates int) *Matcher {
	if cutoff <= 0 || cutoff > 1 {
		cutoff = 0.6
	}
	if maxCandidates <= 0 {
		maxCandidates = 5
	}
	return &Matcher{cutoff: cutoff, maxCandidates: maxCandidates}
}

// Exact reports the weekday for an exact (normalized) key match.
func (m *Matcher) Exact(dir Directory, input string) (int, bool) {
	day, ok := dir[Normalize(input)]
	return day, ok
}

// Candidates returns up to the candidate cap of directory keys whose
// similarity ratio to the input meets the cutoff, ranked best first.
// Ties break alphabetically so results are deterministic.
func (m *Matcher) Candidates(dir Directory, input string) []Candidate {
	normalized := Normalize(input)

	var out []Candidate
	sm := difflib.NewMatcher(nil, chars(normalized))
	for _, key := range dir.Keys() {
		sm.SetSeq1(chars(key))
		// Cheap upper bounds first, full ratio only when they pass
		if sm.RealQuickRatio() < m.cutoff || sm.QuickRatio() < m.cutoff {
			continue
		}
		if ratio := sm.Ratio(); ratio >= m.cutoff {
			out = append(out, Candidate{Key: key, Score: ratio})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Key < out[j].Key
	})

	if len(out) > m.maxCandidates {
		out = out[:m.maxCandidates]
	}
	return out
}

// chars splits a string into single-character sequence elements so the
// sequence matcher compares strings character-wise.
func chars(s string) []string {
	return strings.Split(s, "")
}
