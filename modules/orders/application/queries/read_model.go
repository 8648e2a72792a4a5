// Package queries contains read use cases for the orders module.
package queries

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/edinson0810/pruebaCasa/modules/orders/domain"
	"github.com/edinson0810/pruebaCasa/modules/shared/types"
)

// OrderView is an order joined with the display data of the server, the
// table and each menu item.
type OrderView struct {
	ID          string
	ServerID    int64
	ServerName  string
	TableID     int64
	TableNumber int
	Status      domain.Status
	Total       types.Money
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []ItemView
}

type ItemView struct {
	LineNo      int
	MenuItemID  int64
	ProductName string
	Quantity    int
	UnitPrice   types.Money
}

// ListFilter narrows ListOrders. Zero Limit means no limit.
type ListFilter struct {
	Statuses []domain.Status
	Limit    int
	Offset   int
}

// OrderReader serves the read side. Results are ordered by creation time,
// newest first, and every order carries its items.
type OrderReader interface {
	ListOrders(ctx context.Context, filter ListFilter) ([]OrderView, error)
	// GetOrder fails with domain.ErrOrderNotFound for unknown ids.
	GetOrder(ctx context.Context, id domain.OrderID) (*OrderView, error)
	// ListHistory fails with domain.ErrOrderNotFound for unknown ids.
	ListHistory(ctx context.Context, id domain.OrderID) ([]domain.HistoryEntry, error)
}

// OrderDTO is a read model for order data.
type OrderDTO struct {
	ID          string         `json:"id"`
	ServerID    int64          `json:"server_id"`
	ServerName  string         `json:"server_name"`
	TableID     int64          `json:"table_id"`
	TableNumber int            `json:"table_number"`
	Status      string         `json:"status"`
	Total       MoneyDTO       `json:"total"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Items       []OrderItemDTO `json:"items"`
}

type OrderItemDTO struct {
	MenuItemID  int64    `json:"menu_item_id"`
	ProductName string   `json:"product_name"`
	Quantity    int      `json:"quantity"`
	UnitPrice   MoneyDTO `json:"unit_price"`
	Subtotal    MoneyDTO `json:"subtotal"`
}

// MoneyDTO renders amounts as fixed two-decimal strings ("19.00").
type MoneyDTO struct {
	Amount   string `json:"amount"`
	Currency string `json:"currency"`
}

func NewMoneyDTO(m types.Money) MoneyDTO {
	return MoneyDTO{
		Amount:   m.Decimal().StringFixed(types.MinorUnitDigits),
		Currency: m.Currency(),
	}
}

// subtotalDTO multiplies in decimal so display never wraps, whatever the row holds.
func subtotalDTO(unit types.Money, quantity int) MoneyDTO {
	return MoneyDTO{
		Amount:   unit.Decimal().Mul(decimal.NewFromInt(int64(quantity))).StringFixed(types.MinorUnitDigits),
		Currency: unit.Currency(),
	}
}

func toOrderDTO(view OrderView) OrderDTO {
	items := make([]OrderItemDTO, len(view.Items))
	for i, item := range view.Items {
		items[i] = OrderItemDTO{
			MenuItemID:  item.MenuItemID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   NewMoneyDTO(item.UnitPrice),
			Subtotal:    subtotalDTO(item.UnitPrice, item.Quantity),
		}
	}

	return OrderDTO{
		ID:          view.ID,
		ServerID:    view.ServerID,
		ServerName:  view.ServerName,
		TableID:     view.TableID,
		TableNumber: view.TableNumber,
		Status:      view.Status.String(),
		Total:       NewMoneyDTO(view.Total),
		CreatedAt:   view.CreatedAt,
		UpdatedAt:   view.UpdatedAt,
		Items:       items,
	}
}

func toOrderDTOs(views []OrderView) []OrderDTO {
	dtos := make([]OrderDTO, len(views))
	for i, view := range views {
		dtos[i] = toOrderDTO(view)
	}
	return dtos
}
