package orchestrator

import (
	"time"

	"github.com/marcus/disclosure-assistant/internal/types"
	"github.com/marcus/disclosure-assistant/internal/wizard"
)

// Results-loader retry schedule. The loading stage's storage write can land
// after the results stage starts reading, so each miss backs off before the
// next read.
const (
	loadAttempts      = 5
	loadBaseDelay     = 150 * time.Millisecond
	loadBackoffFactor = 1.5
)

// Tab identifies which result tab the UI shows first.
type Tab string

// Result tabs.
const (
	TabNarratives Tab = "narratives"
	TabLetter     Tab = "letter"
)

// LoadedResults is the hydrated results-stage state: the persisted result,
// the regeneration counts for its session, and the default tab.
type LoadedResults struct {
	Results   wizard.PersistedResults
	Counts    wizard.RegenerationCounts
	ActiveTab Tab
}

// ResultsLoader bridges the loading stage's possibly-delayed storage write
// with the results stage's read.
type ResultsLoader struct {
	results *wizard.ResultStore
	counts  *wizard.CountStore
	sleep   func(time.Duration)
}

// NewResultsLoader returns a ResultsLoader over the given stores.
func NewResultsLoader(results *wizard.ResultStore, counts *wizard.CountStore) *ResultsLoader {
	return &ResultsLoader{
		results: results,
		counts:  counts,
		sleep:   time.Sleep,
	}
}

// Load polls for the persisted result with exponential backoff. Exhausting
// the attempt budget reports ok=false; the caller redirects home.
func (l *ResultsLoader) Load() (LoadedResults, bool) {
	delay := loadBaseDelay
	for attempt := 0; attempt < loadAttempts; attempt++ {
		if attempt > 0 {
			l.sleep(delay)
			delay = time.Duration(float64(delay) * loadBackoffFactor)
		}

		pr, ok := l.results.Load()
		if !ok {
			continue
		}
		return LoadedResults{
			Results:   pr,
			Counts:    l.counts.Load(pr.SessionID),
			ActiveTab: defaultTab(pr),
		}, true
	}
	return LoadedResults{}, false
}

// defaultTab picks the initially active tab: the letter when the tool only
// produces a letter, or when "both" produced a letter but no narratives;
// otherwise the narratives.
func defaultTab(pr wizard.PersistedResults) Tab {
	if pr.Tool == types.ToolResponseLetter {
		return TabLetter
	}
	if pr.Tool == types.ToolBoth && len(pr.Result.Narratives) == 0 && pr.Result.ResponseLetter != nil {
		return TabLetter
	}
	return TabNarratives
}
