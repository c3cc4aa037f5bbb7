package validate

import (
	"sort"

	"github.com/mapforge/engine/internal/model"
)

// topMessages is how many most-frequent messages the summary reports.
const topMessages = 3

// MessageCount pairs a validation message with how many tokens produced it.
type MessageCount struct {
	Message string
	Count   int
}

// Summary aggregates validation results over a token collection. It is a
// diagnostics view; nothing in the engine acts on it.
type Summary struct {
	Total        int
	Valid        int
	Invalid      int
	WithWarnings int
	Compliant    int

	TopErrors   []MessageCount
	TopWarnings []MessageCount
}

// Summarize validates every token in the collection and aggregates the
// outcome, including the three most frequent error and warning messages.
func Summarize(tokens []model.Token, cfg Config) Summary {
	sum := Summary{Total: len(tokens)}

	errCounts := make(map[string]int)
	warnCounts := make(map[string]int)

	for _, t := range tokens {
		res := Validate(t, cfg)
		if res.IsValid {
			sum.Valid++
		} else {
			sum.Invalid++
		}
		if len(res.Warnings) > 0 {
			sum.WithWarnings++
		}
		if res.DNDCompliant {
			sum.Compliant++
		}
		for _, msg := range res.Errors {
			errCounts[msg]++
		}
		for _, msg := range res.Warnings {
			warnCounts[msg]++
		}
	}

	sum.TopErrors = top(errCounts)
	sum.TopWarnings = top(warnCounts)
	return sum
}

// top returns the most frequent messages, ties broken alphabetically so the
// output is stable.
func top(counts map[string]int) []MessageCount {
	out := make([]MessageCount, 0, len(counts))
	for msg, n := range counts {
		out = append(out, MessageCount{Message: msg, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Message < out[j].Message
	})
	if len(out) > topMessages {
		out = out[:topMessages]
	}
	return out
}
