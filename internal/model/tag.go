package model

// Tag labels movies (genre, collection, campaign). Tag names are unique
// case-insensitively: "Drama" and "drama" are the same tag.
//
// Fields:
//  ID   – primary key identifier.
//  Name – unique tag name.
type Tag struct {
	ID   uint64 `json:"id"`   // tags.id
	Name string `json:"name"` // tags.name
}
