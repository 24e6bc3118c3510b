package model

import "time"

// AuditEvent rows are written asynchronously by the audit worker,
// never on the request path.
type AuditEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Action    string    `gorm:"size:32;not null;index" json:"action"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Username  string    `gorm:"size:64" json:"username"`
	Detail    string    `gorm:"size:255" json:"detail"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	AuditActionSignup        = "signup"
	AuditActionSignin        = "signin"
	AuditActionAuctionCreate = "auction_create"
)
