package models

import "time"

type Order struct {
	Base        `bson:",inline"`
	UserID      string      `bson:"userId"      gorm:"size:24;not null;index"                  json:"userId"`
	Items       []OrderItem `bson:"items"       gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount float64     `bson:"totalAmount" gorm:"not null"                                json:"totalAmount"`
	OrderDate   time.Time   `bson:"orderDate"   gorm:"not null"                                json:"orderDate"`
}

// OrderItem is one order line. In MongoDB lines are embedded in the order
// document; the SQL backend keeps them in order_items.
type OrderItem struct {
	ID        uint    `bson:"-"         gorm:"primaryKey;autoIncrement" json:"-"`
	OrderID   string  `bson:"-"         gorm:"size:24;not null;index"   json:"-"`
	ProductID string  `bson:"productId" gorm:"size:24;not null"         json:"productId"`
	Quantity  int     `bson:"quantity"  gorm:"not null"                 json:"quantity"`
	UnitPrice float64 `bson:"unitPrice" gorm:"not null"                 json:"unitPrice"`
}
