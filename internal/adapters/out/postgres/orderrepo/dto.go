// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"time"

	"orders/internal/core/domain/model/kernel"
	"orders/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// The item list maps to a child table loaded eagerly with the order; the
// version column backs optimistic concurrency control.
type OrderDTO struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey"`
	CustomerID  uuid.UUID          `gorm:"type:uuid;index"`
	Status      int                `gorm:"index"`
	Address     DeliveryAddressDTO `gorm:"embedded;embeddedPrefix:address_"`
	Notes       string
	TotalAmount decimal.Decimal `gorm:"type:numeric(12,2)"`
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Items       []ItemDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// DeliveryAddressDTO represents the embedded delivery address within the order table.
// Latitude/Longitude are nullable; both are set or neither.
type DeliveryAddressDTO struct {
	Street       string
	City         string
	PostalCode   string
	Apartment    string
	Instructions string
	Latitude     *float64
	Longitude    *float64
}

// ItemDTO represents one order line in the database.
// Position preserves the aggregate's insertion order; ids are random UUIDs and
// carry no ordering.
type ItemDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;index"`
	ProductID uuid.UUID `gorm:"type:uuid"`
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	Position  int
}

// TableName specifies the database table name for order lines.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	deliveryAddress := aggregate.DeliveryAddress()
	addressDTO := DeliveryAddressDTO{
		Street:       deliveryAddress.Street(),
		City:         deliveryAddress.City(),
		PostalCode:   deliveryAddress.PostalCode(),
		Apartment:    deliveryAddress.Apartment(),
		Instructions: deliveryAddress.Instructions(),
	}
	if geo := deliveryAddress.Geo(); geo != nil {
		lat := geo.Latitude()
		lon := geo.Longitude()
		addressDTO.Latitude = &lat
		addressDTO.Longitude = &lon
	}

	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, 0, len(items))
	for i, item := range items {
		itemDTOs = append(itemDTOs, ItemDTO{
			ID:        item.ID().Bytes(),
			OrderID:   aggregate.ID().Bytes(),
			ProductID: item.ProductID().Bytes(),
			Name:      item.Name(),
			Quantity:  item.Quantity(),
			UnitPrice: item.UnitPrice(),
			Position:  i,
		})
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		CustomerID:  aggregate.CustomerID().Bytes(),
		Status:      int(aggregate.Status()),
		Address:     addressDTO,
		Notes:       aggregate.Notes(),
		TotalAmount: aggregate.Total().Amount(),
		Version:     aggregate.Version(),
		CreatedAt:   aggregate.CreatedAt(),
		UpdatedAt:   aggregate.UpdatedAt(),
		Items:       itemDTOs,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including its items using RestoreOrder,
// which recomputes the total instead of trusting the stored amount.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var geo *kernel.GeoPoint
	if dto.Address.Latitude != nil && dto.Address.Longitude != nil {
		point, geoErr := kernel.NewGeoPoint(*dto.Address.Latitude, *dto.Address.Longitude)
		if geoErr != nil {
			return nil, geoErr
		}
		geo = &point
	}

	deliveryAddress, err := order.NewDeliveryAddress(
		dto.Address.Street, dto.Address.City, dto.Address.PostalCode,
		dto.Address.Apartment, dto.Address.Instructions, geo)
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		item, itemErr := itemToDomain(itemDTO)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return order.RestoreOrder(
		id, customerID, deliveryAddress, items,
		order.Status(dto.Status), dto.Notes,
		dto.CreatedAt, dto.UpdatedAt, dto.Version)
}

func itemToDomain(dto ItemDTO) (*order.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	productID, err := kernel.UUIDFromBytes(dto.ProductID[:])
	if err != nil {
		return nil, err
	}

	return order.RestoreItem(id, productID, dto.Name, dto.Quantity, dto.UnitPrice)
}
