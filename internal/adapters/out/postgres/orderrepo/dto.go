// Package orderrepo persists order aggregates with GORM. Order lines live in their own
// table; the shipping address and payment result are embedded in the order row.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderDTO struct {
	ID              uuid.UUID          `gorm:"type:uuid;primaryKey"`
	OwnerID         uuid.UUID          `gorm:"type:uuid;index"`
	Items           []OrderItemDTO     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ShippingAddress ShippingAddressDTO `gorm:"embedded;embeddedPrefix:shipping_"`
	PaymentMethod   string
	ItemsPrice      decimal.Decimal  `gorm:"type:numeric(12,2)"`
	TaxPrice        decimal.Decimal  `gorm:"type:numeric(12,2)"`
	ShippingPrice   decimal.Decimal  `gorm:"type:numeric(12,2)"`
	TotalPrice      decimal.Decimal  `gorm:"type:numeric(12,2)"`
	Status          int              `gorm:"index"`
	PaymentResult   PaymentResultDTO `gorm:"embedded;embeddedPrefix:payment_"`
	PaidAt          *time.Time
	DeliveredAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime:false;index"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime:false"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is one order line. Position keeps the lines in the order they were placed.
type OrderItemDTO struct {
	ID         uint      `gorm:"primaryKey"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Position   int
	ProductRef string
	Name       string
	Quantity   int
	UnitPrice  decimal.Decimal `gorm:"type:numeric(12,2)"`
}

func (OrderItemDTO) TableName() string {
	return "order_items"
}

type ShippingAddressDTO struct {
	Address    string
	City       string
	PostalCode string
	Country    string
}

// PaymentResultDTO columns are NULL until the order is paid.
type PaymentResultDTO struct {
	ExternalID *string
	Status     *string
	UpdateTime *string
	PayerEmail *string
}

func fromDomain(o *order.Order) OrderDTO {
	items := o.Items()
	itemDTOs := make([]OrderItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, OrderItemDTO{
			OrderID:    o.ID().Bytes(),
			Position:   i,
			ProductRef: item.ProductRef(),
			Name:       item.Name(),
			Quantity:   item.Quantity(),
			UnitPrice:  item.UnitPrice().Amount(),
		})
	}

	address := o.ShippingAddress()
	totals := o.Totals()

	return OrderDTO{
		ID:      o.ID().Bytes(),
		OwnerID: o.OwnerID().Bytes(),
		Items:   itemDTOs,
		ShippingAddress: ShippingAddressDTO{
			Address:    address.Address(),
			City:       address.City(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
		},
		PaymentMethod: o.PaymentMethod(),
		ItemsPrice:    totals.ItemsPrice.Amount(),
		TaxPrice:      totals.TaxPrice.Amount(),
		ShippingPrice: totals.ShippingPrice.Amount(),
		TotalPrice:    totals.TotalPrice.Amount(),
		Status:        int(o.Status()),
		PaymentResult: paymentResultDTO(o.PaymentResult()),
		PaidAt:        o.PaidAt(),
		DeliveredAt:   o.DeliveredAt(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
}

// lifecycleColumns are the only columns a transition may change.
func lifecycleColumns(dto OrderDTO) map[string]any {
	return map[string]any{
		"status":              dto.Status,
		"payment_external_id": dto.PaymentResult.ExternalID,
		"payment_status":      dto.PaymentResult.Status,
		"payment_update_time": dto.PaymentResult.UpdateTime,
		"payment_payer_email": dto.PaymentResult.PayerEmail,
		"paid_at":             dto.PaidAt,
		"delivered_at":        dto.DeliveredAt,
		"updated_at":          dto.UpdatedAt,
	}
}

func paymentResultDTO(r *order.PaymentResult) PaymentResultDTO {
	if r == nil {
		return PaymentResultDTO{}
	}
	externalID, status, updateTime, payerEmail := r.ExternalID(), r.Status(), r.UpdateTime(), r.PayerEmail()
	return PaymentResultDTO{
		ExternalID: &externalID,
		Status:     &status,
		UpdateTime: &updateTime,
		PayerEmail: &payerEmail,
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPrice)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(itemDTO.ProductRef, itemDTO.Name, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address, err := order.NewShippingAddress(
		dto.ShippingAddress.Address,
		dto.ShippingAddress.City,
		dto.ShippingAddress.PostalCode,
		dto.ShippingAddress.Country,
	)
	if err != nil {
		return nil, err
	}

	totals, err := totalsFromDTO(dto)
	if err != nil {
		return nil, err
	}

	var result *order.PaymentResult
	if p := dto.PaymentResult; p.ExternalID != nil {
		r, resultErr := order.NewPaymentResult(*p.ExternalID, deref(p.Status), deref(p.UpdateTime), deref(p.PayerEmail))
		if resultErr != nil {
			return nil, resultErr
		}
		result = &r
	}

	return order.RestoreOrder(order.Snapshot{
		ID:              id,
		OwnerID:         ownerID,
		Items:           items,
		ShippingAddress: address,
		PaymentMethod:   dto.PaymentMethod,
		Totals:          totals,
		Status:          order.Status(dto.Status),
		PaymentResult:   result,
		PaidAt:          utc(dto.PaidAt),
		DeliveredAt:     utc(dto.DeliveredAt),
		CreatedAt:       dto.CreatedAt.UTC(),
		UpdatedAt:       dto.UpdatedAt.UTC(),
	})
}

func totalsFromDTO(dto OrderDTO) (order.Totals, error) {
	var t order.Totals
	for _, f := range []struct {
		target *kernel.Money
		amount decimal.Decimal
	}{
		{&t.ItemsPrice, dto.ItemsPrice},
		{&t.TaxPrice, dto.TaxPrice},
		{&t.ShippingPrice, dto.ShippingPrice},
		{&t.TotalPrice, dto.TotalPrice},
	} {
		m, err := kernel.NewMoney(f.amount)
		if err != nil {
			return order.Totals{}, err
		}
		*f.target = m
	}
	return t, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
