package models

import "time"

// Feedback is a single rating left by an app user.
// A zero Rating or Timestamp means the field was missing in the store.
type Feedback struct {
	UserID    string    `json:"userId" firestore:"userId"`
	Rating    float64   `json:"rating" firestore:"rating"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp"`
}
