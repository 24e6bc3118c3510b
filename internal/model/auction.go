package model

import "time"

// Auction field names on the wire match the dashboard contract
// (itemName, startingBid, ...), not the snake_case used elsewhere.
type Auction struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ItemName    string    `gorm:"size:128;not null" json:"itemName"`
	Description string    `gorm:"type:text;not null" json:"description"`
	StartingBid float64   `gorm:"not null" json:"startingBid"`
	OpeningBid  float64   `gorm:"not null" json:"openingBid"`
	ClosingBid  float64   `gorm:"not null" json:"closingBid"`
	ClosingTime time.Time `gorm:"not null" json:"closingTime"`
	UserID      uint      `gorm:"not null;index" json:"userId"`
	CreatedAt   time.Time `json:"createdAt"`
}
