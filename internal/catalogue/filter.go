package catalogue

import "github.com/nao1215/exotimeline/internal/model"

// MinDiscoveryYear is the earliest discovery year kept. Earlier entries are
// solar system bodies.
const MinDiscoveryYear = 1990.0

// Filter keeps complete entries discovered in or after MinDiscoveryYear,
// preserving catalogue order, and counts what was dropped.
func Filter(entries []model.CatalogueEntry) ([]model.Planet, model.FetchStats) {
	stats := model.FetchStats{Total: len(entries)}
	planets := make([]model.Planet, 0, len(entries))

	for _, e := range entries {
		p, ok := e.Planet()
		if !ok {
			stats.Incomplete++
			continue
		}
		if p.DiscoveryYear < MinDiscoveryYear {
			stats.PreCutoff++
			continue
		}
		planets = append(planets, p)
	}

	stats.Kept = len(planets)
	return planets, stats
}
