package controllers

import (
	"errors"

	"github.com/cartsetu/CartSetu/app/models"
	"github.com/cartsetu/CartSetu/app/repository"
	"github.com/cartsetu/CartSetu/internal/pkg/paymentsetu"
	"gorm.io/gorm"
)

// In-memory repository fakes shared by the controller tests.

type fakeOrderRepo struct {
	orders   map[string]*models.Order
	applied  []*paymentsetu.Result
	lookups  int
	applyErr error
}

func newFakeOrderRepo(orders ...*models.Order) *fakeOrderRepo {
	r := &fakeOrderRepo{orders: map[string]*models.Order{}}
	for _, o := range orders {
		r.orders[o.OrderNumber] = o
	}
	return r
}

func (r *fakeOrderRepo) Create(order *models.Order) error {
	r.orders[order.OrderNumber] = order
	return nil
}

func (r *fakeOrderRepo) GetByID(id uint) (*models.Order, error) {
	for _, o := range r.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) GetByOrderNumber(number string) (*models.Order, error) {
	r.lookups++
	if o, ok := r.orders[number]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOrderRepo) Update(order *models.Order) error {
	r.orders[order.OrderNumber] = order
	return nil
}

func (r *fakeOrderRepo) GetMeta(orderID uint, key string) (string, error) {
	for _, res := range r.applied {
		if v, ok := res.Meta[key]; ok {
			return v, nil
		}
	}
	return "", nil
}

func (r *fakeOrderRepo) ListNotes(orderID uint) ([]models.OrderNote, error) {
	var notes []models.OrderNote
	for _, res := range r.applied {
		for _, content := range res.Notes {
			notes = append(notes, models.OrderNote{OrderID: orderID, Content: content})
		}
	}
	return notes, nil
}

func (r *fakeOrderRepo) ApplyReconciliation(order *models.Order, res *paymentsetu.Result) error {
	if r.applyErr != nil {
		return r.applyErr
	}
	if res.NewStatus != "" {
		order.Status = res.NewStatus
	}
	if res.TransactionRef != "" {
		order.TransactionID = res.TransactionRef
	}
	r.orders[order.OrderNumber] = order
	r.applied = append(r.applied, res)
	return nil
}

type fakeSettingRepo struct {
	values map[string]string
	err    error
}

func gatewaySettings(apiKey, prefix string) *fakeSettingRepo {
	return &fakeSettingRepo{values: map[string]string{
		models.SettingKeyGatewayEnabled: "yes",
		models.SettingKeyAPIKey:         apiKey,
		models.SettingKeyOrderPrefix:    prefix,
	}}
}

func (r *fakeSettingRepo) GetValue(key string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	return r.values[key], nil
}

func (r *fakeSettingRepo) Set(key, value, settingType string) error {
	if r.values == nil {
		r.values = map[string]string{}
	}
	r.values[key] = value
	return nil
}

type fakeWebhookEventRepo struct {
	events    []*models.WebhookEvent
	processed map[uint]string
}

func newFakeWebhookEventRepo() *fakeWebhookEventRepo {
	return &fakeWebhookEventRepo{processed: map[uint]string{}}
}

func (r *fakeWebhookEventRepo) CreateIfNotExists(event *models.WebhookEvent) (bool, *models.WebhookEvent, error) {
	for _, ev := range r.events {
		if ev.EventID == event.EventID {
			return false, ev, nil
		}
	}
	event.ID = uint(len(r.events) + 1)
	r.events = append(r.events, event)
	return true, event, nil
}

func (r *fakeWebhookEventRepo) MarkProcessed(id uint, processingError string) error {
	r.processed[id] = processingError
	return nil
}

func testRepos(orders *fakeOrderRepo, settings *fakeSettingRepo) (*repository.Repositories, *fakeWebhookEventRepo) {
	events := newFakeWebhookEventRepo()
	return &repository.Repositories{
		Order:        orders,
		Setting:      settings,
		WebhookEvent: events,
	}, events
}

var errStorageDown = errors.New("storage down")
