package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"orders/internal/core/application/usecases/commands"
	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"
	"orders/internal/core/ports"

	"github.com/shopspring/decimal"
)

type errorResponse struct {
	Message string `json:"message"`
}

type shippingAddressBody struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

type newOrderItemRequest struct {
	Product string          `json:"product"`
	Name    string          `json:"name"`
	Qty     int             `json:"qty"`
	Price   decimal.Decimal `json:"price"`
}

type newOrderRequest struct {
	OrderItems      []newOrderItemRequest `json:"orderItems"`
	ShippingAddress shippingAddressBody   `json:"shippingAddress"`
	PaymentMethod   string                `json:"paymentMethod"`
	ItemsPrice      decimal.Decimal       `json:"itemsPrice"`
	TaxPrice        decimal.Decimal       `json:"taxPrice"`
	ShippingPrice   decimal.Decimal       `json:"shippingPrice"`
	TotalPrice      decimal.Decimal       `json:"totalPrice"`
}

// toCommand builds the create command for ownerID. All field errors are reported
// together.
func (r newOrderRequest) toCommand(orderID, ownerID kernel.UUID) (commands.CreateOrderCommand, error) {
	var problems []error

	items := make([]order.Item, 0, len(r.OrderItems))
	for i, in := range r.OrderItems {
		price, err := money(fmt.Sprintf("orderItems[%d].price", i), in.Price)
		if err != nil {
			problems = append(problems, err)
			continue
		}
		item, err := order.NewItem(in.Product, in.Name, in.Qty, price)
		if err != nil {
			problems = append(problems, fmt.Errorf("orderItems[%d]: %w", i, err))
			continue
		}
		items = append(items, item)
	}

	address, err := order.NewShippingAddress(
		r.ShippingAddress.Address, r.ShippingAddress.City, r.ShippingAddress.PostalCode, r.ShippingAddress.Country,
	)
	problems = append(problems, err)

	var totals order.Totals
	totals.ItemsPrice, err = money("itemsPrice", r.ItemsPrice)
	problems = append(problems, err)
	totals.TaxPrice, err = money("taxPrice", r.TaxPrice)
	problems = append(problems, err)
	totals.ShippingPrice, err = money("shippingPrice", r.ShippingPrice)
	problems = append(problems, err)
	totals.TotalPrice, err = money("totalPrice", r.TotalPrice)
	problems = append(problems, err)

	if err = errors.Join(problems...); err != nil {
		return commands.CreateOrderCommand{}, err
	}
	return commands.NewCreateOrderCommand(orderID, ownerID, items, address, r.PaymentMethod, totals)
}

func money(param string, amount decimal.Decimal) (kernel.Money, error) {
	m, err := kernel.NewMoney(amount)
	if err != nil {
		return kernel.Money{}, fmt.Errorf("%s: %w", param, err)
	}
	return m, nil
}

type paymentNotificationRequest struct {
	ID         string `json:"id"`
	Status     string `json:"status"`
	UpdateTime string `json:"update_time"`
	Payer      struct {
		EmailAddress string `json:"email_address"`
	} `json:"payer"`
}

func (r paymentNotificationRequest) toPaymentResult() (order.PaymentResult, error) {
	return order.NewPaymentResult(r.ID, r.Status, r.UpdateTime, r.Payer.EmailAddress)
}

type ownerResponse struct {
	ID    string `json:"_id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

type orderItemResponse struct {
	Product string      `json:"product"`
	Name    string      `json:"name,omitempty"`
	Qty     int         `json:"qty"`
	Price   json.Number `json:"price"`
}

type paymentResultResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	UpdateTime   string `json:"update_time,omitempty"`
	EmailAddress string `json:"email_address,omitempty"`
}

type orderResponse struct {
	ID              string                 `json:"_id"`
	User            ownerResponse          `json:"user"`
	OrderItems      []orderItemResponse    `json:"orderItems"`
	ShippingAddress shippingAddressBody    `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
	PaymentResult   *paymentResultResponse `json:"paymentResult,omitempty"`
	ItemsPrice      json.Number            `json:"itemsPrice"`
	TaxPrice        json.Number            `json:"taxPrice"`
	ShippingPrice   json.Number            `json:"shippingPrice"`
	TotalPrice      json.Number            `json:"totalPrice"`
	Status          string                 `json:"status"`
	IsPaid          bool                   `json:"isPaid"`
	PaidAt          *time.Time             `json:"paidAt,omitempty"`
	IsDelivered     bool                   `json:"isDelivered"`
	DeliveredAt     *time.Time             `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// ownerView selects which profile fields are rendered for the order's owner.
type ownerView int

const (
	ownerIDOnly ownerView = iota
	ownerWithName
	ownerWithNameAndEmail
)

func newOwnerResponse(id kernel.UUID, profile *ports.UserProfile, view ownerView) ownerResponse {
	resp := ownerResponse{ID: id.String()}
	if profile == nil {
		return resp
	}
	if view >= ownerWithName {
		resp.Name = profile.Name
	}
	if view >= ownerWithNameAndEmail {
		resp.Email = profile.Email
	}
	return resp
}

func newOrderResponse(o *order.Order, owner ownerResponse) orderResponse {
	items := o.Items()
	itemResponses := make([]orderItemResponse, len(items))
	for i, item := range items {
		itemResponses[i] = orderItemResponse{
			Product: item.ProductRef(),
			Name:    item.Name(),
			Qty:     item.Quantity(),
			Price:   amount(item.UnitPrice()),
		}
	}

	address := o.ShippingAddress()
	totals := o.Totals()
	resp := orderResponse{
		ID:         o.ID().String(),
		User:       owner,
		OrderItems: itemResponses,
		ShippingAddress: shippingAddressBody{
			Address:    address.Address(),
			City:       address.City(),
			PostalCode: address.PostalCode(),
			Country:    address.Country(),
		},
		PaymentMethod: o.PaymentMethod(),
		ItemsPrice:    amount(totals.ItemsPrice),
		TaxPrice:      amount(totals.TaxPrice),
		ShippingPrice: amount(totals.ShippingPrice),
		TotalPrice:    amount(totals.TotalPrice),
		Status:        strings.ToLower(o.Status().String()),
		IsPaid:        o.IsPaid(),
		PaidAt:        o.PaidAt(),
		IsDelivered:   o.IsDelivered(),
		DeliveredAt:   o.DeliveredAt(),
		CreatedAt:     o.CreatedAt(),
		UpdatedAt:     o.UpdatedAt(),
	}
	if result := o.PaymentResult(); result != nil {
		resp.PaymentResult = &paymentResultResponse{
			ID:           result.ExternalID(),
			Status:       result.Status(),
			UpdateTime:   result.UpdateTime(),
			EmailAddress: result.PayerEmail(),
		}
	}
	return resp
}

// amount renders money as a JSON number with two fractional digits.
func amount(m kernel.Money) json.Number {
	return json.Number(m.String())
}
