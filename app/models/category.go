package models

type Category struct {
	Base        `bson:",inline"`
	Name        string `bson:"name"        gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description string `bson:"description" gorm:"type:text;not null"            json:"description"`
}

// CategoryRef is the slice of a category embedded in product listings.
type CategoryRef struct {
	ID   string `json:"_id"`
	Name string `json:"name"`
}
