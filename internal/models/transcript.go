package models

import "time"

// Exchange records one completed relay turn: the visitor's question and the fully
// accumulated assistant reply, together with the model that produced it.
type Exchange struct {
	ID        string
	Question  string
	Answer    string
	Model     string
	Timestamp time.Time
}
