package models

const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

type Product struct {
	Base        `bson:",inline"`
	ProductName string  `bson:"productName" gorm:"size:255;not null;uniqueIndex" json:"productName"`
	CategoryID  string  `bson:"categoryId"  gorm:"size:24;not null;index"        json:"categoryId"`
	Price       float64 `bson:"price"       gorm:"not null"                      json:"price"`
	Status      string  `bson:"status"      gorm:"size:16;not null"              json:"status"`

	// Category is resolved at read time for listings and never stored.
	Category *CategoryRef `bson:"-" gorm:"-" json:"category,omitempty"`
}
