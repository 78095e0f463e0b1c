package main

import (
	"encoding/json"
	"fmt"

	"github.com/oddsline/dicederby/internal/fileutil"
	"github.com/oddsline/dicederby/internal/roster"
	"github.com/oddsline/dicederby/internal/statistics"
)

type competitorSummary struct {
	Name           string  `json:"name"`
	UnderdogFactor float64 `json:"underdog_factor"`
	Wins           int     `json:"wins"`
	WinRate        float64 `json:"win_rate"`
	ExpectedReturn float64 `json:"expected_return"`
}

type resultSummary struct {
	Trials      int                 `json:"trials"`
	Seed        int64               `json:"seed"`
	BoardLength int                 `json:"board_length"`
	Competitors []competitorSummary `json:"competitors"`
	MeanTurns   float64             `json:"mean_turns"`
	MedianTurns float64             `json:"median_turns"`
	MinTurns    int                 `json:"min_turns"`
	MaxTurns    int                 `json:"max_turns"`
}

// writeResults exports the aggregate as JSON, written atomically so a
// reader polling the file never sees a half-written document.
func writeResults(filename string, config *roster.Config, result *statistics.Result, seed int64) error {
	summary := resultSummary{
		Trials:      result.Trials,
		Seed:        seed,
		BoardLength: config.Race.BoardLength,
		Competitors: make([]competitorSummary, 0, len(config.Competitors)),
		MeanTurns:   result.MeanTurns(),
		MedianTurns: result.MedianTurns(),
		MinTurns:    result.MinTurns,
		MaxTurns:    result.MaxTurns,
	}
	for _, spec := range config.Competitors {
		rate := result.WinRate(spec.Name)
		summary.Competitors = append(summary.Competitors, competitorSummary{
			Name:           spec.Name,
			UnderdogFactor: spec.UnderdogFactor,
			Wins:           result.WinCounts[spec.Name],
			WinRate:        rate,
			ExpectedReturn: rate * spec.UnderdogFactor,
		})
	}

	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return fileutil.WriteFileAtomic(filename, append(data, '\n'), 0o644)
}
