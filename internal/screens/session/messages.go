package session

import "time"

// timerTickMsg is sent every second to update the elapsed time.
type timerTickMsg time.Time

// feedbackDoneMsg is sent when the learner dismisses the feedback.
type feedbackDoneMsg struct{}

// sessionEndMsg is sent to trigger the session end flow.
type sessionEndMsg struct{}
