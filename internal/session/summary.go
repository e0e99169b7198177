package session

import "time"

// Summary holds the data displayed when a session ends.
type Summary struct {
	SessionID      string
	Subject        string
	Duration       time.Duration
	TotalQuestions int
	TotalCorrect   int
	Accuracy       float64 // 0.0-1.0
	Difficulty     int
	TopicResults   []TopicResult
}

// Summary builds the end-of-session summary. Topics are listed in the
// order they were first asked.
func (s *Session) Summary() Summary {
	results := make([]TopicResult, 0, len(s.order))
	for _, topic := range s.order {
		results = append(results, *s.topics[topic])
	}

	var accuracy float64
	if s.asked > 0 {
		accuracy = float64(s.correct) / float64(s.asked)
	}

	return Summary{
		SessionID:      s.ID,
		Subject:        s.cfg.Subject,
		Duration:       s.now().Sub(s.startTime),
		TotalQuestions: s.asked,
		TotalCorrect:   s.correct,
		Accuracy:       accuracy,
		Difficulty:     s.sel.Difficulty(),
		TopicResults:   results,
	}
}
