package models

import "time"

// Tournament represents a community tournament listing.
type Tournament struct {
	ID          string     `bson:"_id" json:"id"`
	Name        string     `bson:"name" json:"name"`
	Description string     `bson:"description" json:"description"`
	Rules       string     `bson:"rules" json:"rules"`
	Location    string     `bson:"location" json:"location"`
	StartsAt    *time.Time `bson:"starts_at,omitempty" json:"starts_at,omitempty"`
	CoverImage  string     `bson:"cover_image" json:"cover_image"`
	Generation  Generation `bson:"generation" json:"generation"`
	Status      Status     `bson:"status" json:"status"`
	CreatedAt   time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `bson:"updated_at" json:"updated_at"`
}
