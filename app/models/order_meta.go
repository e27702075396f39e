package models

import "time"

// Meta keys written by the PaymentSetu gateway subsystem.
const (
	MetaKeyTxnUTR         = "_paymentsetu_txn_utr"
	MetaKeyWebhookPayload = "_paymentsetu_webhook_payload"
	MetaKeyPaymentURL     = "_paymentsetu_payment_url"
)

// OrderMeta is the extensible key-value metadata store attached to orders.
type OrderMeta struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	OrderID   uint      `gorm:"not null;index:ux_order_meta_order_key,unique,priority:1" json:"order_id"`
	MetaKey   string    `gorm:"type:varchar(100);not null;index:ux_order_meta_order_key,unique,priority:2" json:"meta_key"`
	MetaValue string    `gorm:"type:longtext" json:"meta_value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
