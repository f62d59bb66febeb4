package usecase

import (
	"sort"
	"strings"

	"github.com/gridironhq/keeper-league/external/espn"
)

const (
	substringMatchScore  = 80
	similarityMaxScore   = 70
	positionBonus        = 20
	matchAcceptThreshold = 70
	minLengthRatio       = 0.7
)

var nameSuffixes = map[string]struct{}{
	"jr": {}, "sr": {}, "ii": {}, "iii": {}, "iv": {}, "v": {},
}

// PlayerMatcher resolves Sleeper roster players against an ESPN boxscore.
// Candidates are held in a deterministic order so equal-score ties always
// resolve the same way.
type PlayerMatcher struct {
	byID     map[int64]*espn.PlayerStats
	byName   map[string]*espn.PlayerStats
	ordered  []*espn.PlayerStats
	ordNames []string
}

func NewPlayerMatcher(candidates map[int64]*espn.PlayerStats) *PlayerMatcher {
	m := &PlayerMatcher{
		byID:     candidates,
		byName:   make(map[string]*espn.PlayerStats, len(candidates)),
		ordered:  make([]*espn.PlayerStats, 0, len(candidates)),
		ordNames: make([]string, 0, len(candidates)),
	}

	for _, candidate := range candidates {
		m.ordered = append(m.ordered, candidate)
	}
	sort.Slice(m.ordered, func(i, j int) bool {
		a, b := m.ordered[i], m.ordered[j]
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ESPNID < b.ESPNID
	})

	for _, candidate := range m.ordered {
		normalized := NormalizePlayerName(candidate.Name)
		m.ordNames = append(m.ordNames, normalized)
		if normalized != "" {
			if _, exists := m.byName[normalized]; !exists {
				m.byName[normalized] = candidate
			}
		}
	}
	return m
}

// Match resolves a player by ESPN id, then exact normalized name, then
// similarity scoring with a same-position bonus. Returns nil when nothing
// clears the acceptance threshold.
func (m *PlayerMatcher) Match(espnID int64, name, position string) *espn.PlayerStats {
	if m == nil {
		return nil
	}

	if espnID > 0 {
		if candidate, ok := m.byID[espnID]; ok {
			return candidate
		}
	}

	normalized := NormalizePlayerName(name)
	if normalized == "" {
		return nil
	}
	if candidate, ok := m.byName[normalized]; ok {
		return candidate
	}

	position = strings.ToUpper(strings.TrimSpace(position))

	var best *espn.PlayerStats
	bestScore := 0
	for i, candidate := range m.ordered {
		candidateName := m.ordNames[i]
		if candidateName == "" {
			continue
		}

		score := nameSimilarityScore(normalized, candidateName)
		if score == 0 {
			continue
		}
		if position != "" && strings.EqualFold(candidate.Position, position) {
			score += positionBonus
		}
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}

	if bestScore < matchAcceptThreshold {
		return nil
	}
	return best
}

// NormalizePlayerName lowercases, strips punctuation, and drops generational
// suffixes so "A.J. Brown" and "AJ Brown Jr." compare equal.
func NormalizePlayerName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune(' ')
		}
	}

	fields := strings.Fields(b.String())
	for len(fields) > 1 {
		last := fields[len(fields)-1]
		if _, ok := nameSuffixes[last]; !ok {
			break
		}
		fields = fields[:len(fields)-1]
	}
	return strings.Join(fields, " ")
}

func nameSimilarityScore(a, b string) int {
	if a == "" || b == "" {
		return 0
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return substringMatchScore
	}

	shorter, longer := len(a), len(b)
	if shorter > longer {
		shorter, longer = longer, shorter
	}
	if float64(shorter)/float64(longer) <= minLengthRatio {
		return 0
	}

	matching := 0
	for i := 0; i < shorter; i++ {
		if a[i] == b[i] {
			matching++
		}
	}
	return int(float64(similarityMaxScore) * float64(matching) / float64(longer))
}
