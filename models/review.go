package models

import "time"

// Ratings holds the per-aspect scores of a review, 1-5 each.
// A zero value means the aspect was left unrated.
type Ratings struct {
	Ambience int `bson:"ambience,omitempty" json:"ambience,omitempty"`
	Service  int `bson:"service,omitempty" json:"service,omitempty"`
	Sound    int `bson:"sound,omitempty" json:"sound,omitempty"`
	Drinks   int `bson:"drinks,omitempty" json:"drinks,omitempty"`
}

type Review struct {
	ID        string    `bson:"_id" json:"id"`
	CafeID    string    `bson:"cafe_id" json:"cafe_id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Comment   string    `bson:"comment" json:"comment"`
	Ratings   Ratings   `bson:"ratings" json:"ratings"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
