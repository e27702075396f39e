package repository

import (
	"github.com/cartsetu/CartSetu/app/models"
	"github.com/cartsetu/CartSetu/internal/pkg/paymentsetu"
)

// OrderRepository defines the interface for order-related database operations
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id uint) (*models.Order, error)
	GetByOrderNumber(number string) (*models.Order, error)
	Update(order *models.Order) error
	GetMeta(orderID uint, key string) (string, error)
	ListNotes(orderID uint) ([]models.OrderNote, error)
	// ApplyReconciliation persists a reconciliation result (status change,
	// notes, metadata) in a single transaction. It is the only write path
	// the gateway subsystem uses against orders.
	ApplyReconciliation(order *models.Order, res *paymentsetu.Result) error
}

// SettingRepository defines the interface for settings storage. A missing
// key yields an empty value with no error.
type SettingRepository interface {
	GetValue(key string) (string, error)
	Set(key, value, settingType string) error
}

// WebhookEventRepository defines the interface for the webhook audit log
type WebhookEventRepository interface {
	CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error)
	MarkProcessed(id uint, processingError string) error
}

// Repositories holds all repository instances
type Repositories struct {
	Order        OrderRepository
	Setting      SettingRepository
	WebhookEvent WebhookEventRepository
}
