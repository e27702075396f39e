package repository

import (
	"errors"

	"github.com/cartsetu/CartSetu/app/models"
	"github.com/cartsetu/CartSetu/internal/pkg/paymentsetu"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates an order repository backed by GORM.
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &gormOrderRepository{db: db}
}

func (r *gormOrderRepository) Create(order *models.Order) error {
	if err := order.Validate(); err != nil {
		return err
	}
	return r.db.Create(order).Error
}

func (r *gormOrderRepository) GetByID(id uint) (*models.Order, error) {
	var order models.Order
	if err := r.db.First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) GetByOrderNumber(number string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Where("order_number = ?", number).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *gormOrderRepository) Update(order *models.Order) error {
	return r.db.Save(order).Error
}

func (r *gormOrderRepository) GetMeta(orderID uint, key string) (string, error) {
	var meta models.OrderMeta
	err := r.db.Where("order_id = ? AND meta_key = ?", orderID, key).First(&meta).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return meta.MetaValue, nil
}

func (r *gormOrderRepository) ListNotes(orderID uint) ([]models.OrderNote, error) {
	var notes []models.OrderNote
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC, id ASC").Find(&notes).Error
	return notes, err
}

// ApplyReconciliation writes an entire reconciliation result at once: the
// order row, upserted metadata and appended notes share one transaction, so
// a webhook either fully lands or not at all.
func (r *gormOrderRepository) ApplyReconciliation(order *models.Order, res *paymentsetu.Result) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if res.NewStatus != "" {
			order.Status = res.NewStatus
		}
		if res.TransactionRef != "" {
			order.TransactionID = res.TransactionRef
		}
		if err := tx.Save(order).Error; err != nil {
			return err
		}

		for key, value := range res.Meta {
			meta := models.OrderMeta{
				OrderID:   order.ID,
				MetaKey:   key,
				MetaValue: value,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "order_id"},
					{Name: "meta_key"},
				},
				DoUpdates: clause.AssignmentColumns([]string{"meta_value", "updated_at"}),
			}).Create(&meta).Error; err != nil {
				return err
			}
		}

		for _, content := range res.Notes {
			note := models.OrderNote{
				OrderID: order.ID,
				Content: content,
			}
			if err := tx.Create(&note).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
