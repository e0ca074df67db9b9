package titles

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// DefaultThreshold is the lowest Jaro-Winkler score accepted as a match.
const DefaultThreshold = 0.92

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Candidate is a title belonging to an item with the given id.
type Candidate struct {
	ID    int
	Title string
}

// Match is the winning candidate and its score.
type Match struct {
	Candidate
	Score float64
	Exact bool
}

// Matcher finds the candidate whose title best matches a query.
type Matcher struct {
	threshold float64
}

// NewMatcher returns a matcher accepting scores at or above threshold.
// A non-positive threshold selects DefaultThreshold.
func NewMatcher(threshold float64) *Matcher {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Matcher{threshold: threshold}
}

// Best returns the best candidate for query. An exact match of the
// normalised forms always wins; otherwise the highest scoring candidate
// above the threshold does, with ties going to the earlier candidate.
func (m *Matcher) Best(query string, candidates []Candidate) (Match, bool) {
	q := Normalize(query)
	if q == "" {
		return Match{}, false
	}

	normalized := make([]string, len(candidates))
	for i, c := range candidates {
		normalized[i] = Normalize(c.Title)
		if normalized[i] == q {
			return Match{Candidate: c, Score: 1, Exact: true}, true
		}
	}

	queryNums := numberRegex.FindAllString(q, -1)
	best := Match{}
	found := false
	for i, c := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(q, normalized[i]))
		score = adjustScoreForNumbers(score, queryNums, numberRegex.FindAllString(normalized[i], -1))
		if score >= m.threshold && score > best.Score {
			best = Match{Candidate: c, Score: score}
			found = true
		}
	}
	return best, found
}

// adjustScoreForNumbers rewards candidates sharing a sequence number or
// year with the query and penalises those that lack one.
func adjustScoreForNumbers(score float64, queryNums, candidateNums []string) float64 {
	if len(queryNums) == 0 {
		if len(candidateNums) > 0 {
			return score * 0.95
		}
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range queryNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
