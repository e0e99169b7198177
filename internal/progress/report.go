// Package progress records graded attempts and aggregates a learner's
// history into a report.
package progress

import (
	"context"
	"math"
	"sort"

	"github.com/abhisek/tutor/internal/i18n"
	"github.com/abhisek/tutor/internal/store"
)

// maxRecommendations bounds how many of the weakest topics get a
// revision suggestion.
const maxRecommendations = 3

// TopicStat is the derived accuracy of one topic.
type TopicStat struct {
	Topic    string  `json:"topic"`
	Attempts int     `json:"attempts"`
	Accuracy float64 `json:"accuracy"`
}

// Report summarizes a learner's whole history. It is recomputed from the
// event log on every request.
type Report struct {
	User            string      `json:"user"`
	Total           int         `json:"total"`
	Accuracy        float64     `json:"accuracy"`
	TopicStats      []TopicStat `json:"topic_stats"`
	Recommendations []string    `json:"recommendations"`
}

// BuildReport aggregates events. Accuracies are percentages rounded to one
// decimal; topic stats are ordered weakest first, and topics with equal
// accuracy keep the order in which they first appear in events.
func BuildReport(ctx context.Context, events []store.AttemptEvent) *Report {
	r := &Report{
		TopicStats:      []TopicStat{},
		Recommendations: []string{},
	}

	type tally struct{ total, correct int }
	var (
		order   []string
		byTopic = make(map[string]*tally)
		correct int
	)
	for _, ev := range events {
		r.Total++
		t, ok := byTopic[ev.Topic]
		if !ok {
			t = &tally{}
			byTopic[ev.Topic] = t
			order = append(order, ev.Topic)
		}
		t.total++
		if ev.Correct {
			t.correct++
			correct++
		}
	}
	if r.Total == 0 {
		return r
	}
	r.Accuracy = percent(correct, r.Total)

	for _, topic := range order {
		t := byTopic[topic]
		r.TopicStats = append(r.TopicStats, TopicStat{
			Topic:    topic,
			Attempts: t.total,
			Accuracy: percent(t.correct, t.total),
		})
	}
	sort.SliceStable(r.TopicStats, func(i, j int) bool {
		return r.TopicStats[i].Accuracy < r.TopicStats[j].Accuracy
	})

	for _, ts := range r.TopicStats[:min(maxRecommendations, len(r.TopicStats))] {
		if ts.Topic == "" {
			continue
		}
		r.Recommendations = append(r.Recommendations,
			i18n.Td(ctx, "Recommendation", map[string]any{"Topic": ts.Topic}))
	}
	return r
}

func percent(n, total int) float64 {
	return math.Round(1000*float64(n)/float64(total)) / 10
}
