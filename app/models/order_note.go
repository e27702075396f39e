package models

import "time"

// OrderNote is an append-only, timestamped log entry on an order. Gateway
// events (payment confirmed, amount mismatch, unknown status) are recorded
// here for operators.
type OrderNote struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index" json:"order_id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
