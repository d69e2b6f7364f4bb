package repositories

import (
	"github.com/rohanwest/pancake/app/models"
	"github.com/rohanwest/pancake/pkg/database"
)

// OrderRepository handles database operations for Order.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// Create persists a new order record.
func (r *OrderRepository) Create(order *models.Order) error {
	return database.DB.Create(order).Error
}

// FindByID looks up an order by primary key.
func (r *OrderRepository) FindByID(id string) (models.Order, error) {
	var order models.Order
	err := database.DB.Where("id = ?", id).First(&order).Error
	return order, err
}

// Update persists changes to an existing order.
func (r *OrderRepository) Update(order *models.Order) error {
	return database.DB.Save(order).Error
}

// All returns every order in creation order.
func (r *OrderRepository) All() ([]models.Order, error) {
	var orders []models.Order
	err := database.DB.Order("created_at").Find(&orders).Error
	return orders, err
}
