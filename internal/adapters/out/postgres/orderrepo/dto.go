// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"campusdelivery/internal/core/domain/model/kernel"
	"campusdelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The status ledger and the line items live in child tables; the version
// column drives the optimistic compare-and-set in Update.
type OrderDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number     string     `gorm:"uniqueIndex"`
	UserID     uuid.UUID  `gorm:"type:uuid;index"`
	ShopID     uuid.UUID  `gorm:"type:uuid;index"`
	Street     string
	Zone       string
	Status     int        `gorm:"index"`
	Total      decimal.Decimal `gorm:"type:numeric"`
	AgentID    *uuid.UUID `gorm:"type:uuid;index"`
	AgentName  *string
	AgentPhone *string
	CreatedAt  time.Time
	Version    int

	Items  []ItemDTO        `gorm:"foreignKey:OrderID;references:ID"`
	Events []StatusEventDTO `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// ItemDTO represents one purchased line item snapshot.
type ItemDTO struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	UnitPrice decimal.Decimal `gorm:"type:numeric"`
	Quantity  int
	ShopID    uuid.UUID `gorm:"type:uuid"`
}

// TableName specifies the database table name for line items.
func (ItemDTO) TableName() string {
	return "order_items"
}

// StatusEventDTO represents one ledger entry. Rows are append-only: Update
// inserts new entries and never touches existing ones. The serial id
// preserves append order.
type StatusEventDTO struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"`
	OrderID    uuid.UUID `gorm:"type:uuid;index"`
	Status     int
	OccurredAt time.Time
	Note       string
}

// TableName specifies the database table name for ledger entries.
func (StatusEventDTO) TableName() string {
	return "order_status_events"
}

// fromDomain converts an order domain aggregate to its database representation,
// including line items and the full ledger.
func fromDomain(aggregate *order.Order) OrderDTO {
	id := aggregate.ID().Bytes()

	dto := OrderDTO{
		ID:        id,
		Number:    aggregate.Number(),
		UserID:    aggregate.UserID().Bytes(),
		ShopID:    aggregate.ShopID().Bytes(),
		Street:    aggregate.Address().Street(),
		Zone:      aggregate.Address().Zone(),
		Status:    int(aggregate.Status()),
		Total:     aggregate.Total().Decimal(),
		CreatedAt: aggregate.CreatedAt(),
		Version:   aggregate.Version(),
	}

	if info := aggregate.Agent(); info != nil {
		agentID := info.ID().Bytes()
		name := info.Name()
		phone := info.Phone()
		dto.AgentID = &agentID
		dto.AgentName = &name
		dto.AgentPhone = &phone
	}

	for _, item := range aggregate.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			OrderID:   id,
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			UnitPrice: item.UnitPrice().Decimal(),
			Quantity:  item.Quantity(),
			ShopID:    item.ShopID().Bytes(),
		})
	}

	for _, event := range aggregate.History().Events() {
		dto.Events = append(dto.Events, eventFromDomain(id, event))
	}

	return dto
}

func eventFromDomain(orderID uuid.UUID, event order.StatusEvent) StatusEventDTO {
	return StatusEventDTO{
		OrderID:    orderID,
		Status:     int(event.Status()),
		OccurredAt: event.OccurredAt(),
		Note:       event.Note(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including items, ledger, agent binding
// and version using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(dto.Street, dto.Zone)
	if err != nil {
		return nil, err
	}

	total, err := kernel.NewMoney(dto.Total)
	if err != nil {
		return nil, err
	}

	var agentInfo *order.AgentInfo
	if dto.AgentID != nil {
		agentID, agentErr := kernel.UUIDFromBytes((*dto.AgentID)[:])
		if agentErr != nil {
			return nil, agentErr
		}

		var name, phone string
		if dto.AgentName != nil {
			name = *dto.AgentName
		}
		if dto.AgentPhone != nil {
			phone = *dto.AgentPhone
		}

		info, agentErr := order.NewAgentInfo(agentID, name, phone)
		if agentErr != nil {
			return nil, agentErr
		}
		agentInfo = &info
	}

	events := make([]order.StatusEvent, 0, len(dto.Events))
	for _, eventDTO := range dto.Events {
		event, eventErr := order.NewStatusEvent(
			order.Status(eventDTO.Status),
			eventDTO.OccurredAt,
			eventDTO.Note,
		)
		if eventErr != nil {
			return nil, eventErr
		}
		events = append(events, event)
	}

	return order.RestoreOrder(
		id,
		dto.Number,
		userID,
		items,
		address,
		total,
		order.Status(dto.Status),
		agentInfo,
		dto.CreatedAt,
		order.RestoreHistory(events),
		dto.Version,
	)
}

func itemToDomain(dto ItemDTO) (order.Item, error) {
	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return order.Item{}, err
	}

	shopID, err := kernel.UUIDFromBytes(dto.ShopID[:])
	if err != nil {
		return order.Item{}, err
	}

	unitPrice, err := kernel.NewMoney(dto.UnitPrice)
	if err != nil {
		return order.Item{}, err
	}

	return order.NewItem(productID, dto.Name, unitPrice, dto.Quantity, shopID)
}
