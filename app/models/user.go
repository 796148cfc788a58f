package models

type User struct {
	Base  `bson:",inline"`
	Name  string `bson:"name"  gorm:"size:255;not null"             json:"name"`
	Email string `bson:"email" gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone string `bson:"phone" gorm:"size:64;not null"              json:"phone"`
}
