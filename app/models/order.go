package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusOnHold     = "on-hold"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusFailed     = "failed"
	OrderStatusCancelled  = "cancelled"
)

// PaymentMethodPaymentSetu is the payment method tag stored on orders that
// chose the PaymentSetu UPI gateway at checkout.
const PaymentMethodPaymentSetu = "paymentsetu"

type Order struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	OrderNumber   string          `gorm:"type:varchar(64);not null;uniqueIndex" json:"order_number" validate:"required,max=64"`
	Total         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total"`
	Status        string          `gorm:"type:varchar(32);not null;default:'pending';index" json:"status" validate:"oneof=pending on-hold processing completed failed cancelled"`
	PaymentMethod string          `gorm:"type:varchar(50);not null;default:'';index" json:"payment_method"`
	TransactionID string          `gorm:"type:varchar(100);default:''" json:"transaction_id"`
	CustomerName  string          `gorm:"type:varchar(150);default:''" json:"customer_name" validate:"max=150"`
	CustomerEmail string          `gorm:"type:varchar(200);default:''" json:"customer_email" validate:"omitempty,email,max=200"`
	CustomerPhone string          `gorm:"type:varchar(20);default:''" json:"customer_phone" validate:"max=20"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	Notes []OrderNote `gorm:"foreignKey:OrderID" json:"notes,omitempty"`
	Meta  []OrderMeta `gorm:"foreignKey:OrderID" json:"meta,omitempty"`
}

func (o *Order) Validate() error {
	v := validator.New()

	return v.Struct(o)
}

// BeforeCreate assigns a stable external order number when none was set.
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if strings.TrimSpace(o.OrderNumber) == "" {
		o.OrderNumber = strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:16])
	}
	return nil
}

// IsPaid reports whether the order already reached a paid state. Paid orders
// are never mutated again by the gateway subsystem.
func (o *Order) IsPaid() bool {
	switch o.Status {
	case OrderStatusProcessing, OrderStatusCompleted:
		return true
	default:
		return false
	}
}

// TotalMinorUnits converts the order total to paisa. The same conversion is
// used when creating a provider order and when checking webhook amounts, so
// the two can never disagree on rounding.
func (o *Order) TotalMinorUnits() int64 {
	return o.Total.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
