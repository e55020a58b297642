package model

import "time"

// Movie represents a film in the catalogue. IsCurrent is a two-state
// flag (showing / not showing) toggled by explicit activate and
// deactivate operations. Rating and HasOscar drive the top-N query:
// rating descending, Oscar winners first among equal ratings.
//
// Fields:
//  ID        – primary key identifier.
//  Title     – non-empty movie title.
//  Year      – release year, 1895..2100.
//  Rating    – rating on a 1..10 scale, one decimal place.
//  IsCurrent – whether the movie is currently showing.
//  HasOscar  – whether the movie won an Academy Award.
//  Tags      – tags attached to the movie via the movie_tags table.
//  CreatedAt – timestamp of creation.
//  UpdatedAt – timestamp of last update.
type Movie struct {
	ID        uint64    `json:"id"`         // movies.id
	Title     string    `json:"title"`      // movies.title
	Year      int       `json:"year"`       // movies.year
	Rating    float64   `json:"rating"`     // movies.rating
	IsCurrent bool      `json:"is_current"` // movies.is_current
	HasOscar  bool      `json:"has_oscar"`  // movies.has_oscar
	Tags      []Tag     `json:"tags"`       // loaded from movie_tags
	CreatedAt time.Time `json:"created_at"` // movies.created_at
	UpdatedAt time.Time `json:"updated_at"` // movies.updated_at
}
