package model

import "time"

// GenerationEvent records that an account generated passwords.
// It never contains the generated values.
type GenerationEvent struct {
	ID        string
	AccountID int64
	Length    int
	Alphabet  string
	Count     int
	CreatedAt time.Time
}

// GenerationEventResponse is the public view of a GenerationEvent.
type GenerationEventResponse struct {
	ID        string    `json:"id"`
	Length    int       `json:"length"`
	Alphabet  string    `json:"alphabet"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}
