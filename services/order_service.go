package services

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"gorm.io/gorm"
)

// LineItemInput is one requested (book, quantity) pair
type LineItemInput struct {
	BookID   uint
	Quantity int
}

// StatusNotifier is told about status changes after they are stored
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, owner *models.User, order *models.Order, previous string) error
}

// OrderService prices, stores and moves orders through their statuses.
// There is no stock: concurrent orders for the same book are never limited.
type OrderService struct {
	db       *gorm.DB
	books    *BookService
	notifier StatusNotifier
}

func NewOrderService(db *gorm.DB, books *BookService, notifier StatusNotifier) *OrderService {
	return &OrderService{db: db, books: books, notifier: notifier}
}

// CreateOrder prices every line item from the current catalog and stores a
// Pending order. Nothing is written unless every book resolves.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, items []LineItemInput) (*models.Order, error) {
	if len(items) == 0 {
		return nil, utils.ValidationError("An order needs at least one book")
	}
	ids := make([]uint, 0, len(items))
	for i, item := range items {
		if item.BookID == 0 {
			return nil, utils.ValidationError(fmt.Sprintf("books[%d].book is required", i))
		}
		if item.Quantity < 1 {
			return nil, utils.ValidationError(fmt.Sprintf("books[%d].quantity must be at least 1", i))
		}
		ids = append(ids, item.BookID)
	}

	var owner models.User
	if err := s.db.WithContext(ctx).First(&owner, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("User not found")
		}
		return nil, utils.InternalError("Failed to load user", err)
	}

	books, err := s.books.GetBooksByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		UserID: userID,
		Status: models.OrderStatusPending,
		Items:  make([]models.OrderItem, 0, len(items)),
	}
	var total float64
	for _, item := range items {
		book, ok := books[item.BookID]
		if !ok {
			utils.LogInfo("Order rejected for user %d, book %d not found", userID, item.BookID)
			return nil, utils.NotFoundError(fmt.Sprintf("Book not found: %d", item.BookID))
		}
		total += book.Price * float64(item.Quantity)
		order.Items = append(order.Items, models.OrderItem{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: book.Price,
		})
	}
	order.TotalPrice = roundCents(total)

	if err := s.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, utils.InternalError("Failed to create order", err)
	}
	for i := range order.Items {
		order.Items[i].Book = books[order.Items[i].BookID]
	}
	utils.LogInfo("Order %d created for user %d, total %.2f", order.ID, userID, order.TotalPrice)
	return order, nil
}

// ListOrdersForUser returns the user's orders newest first with books resolved
func (s *OrderService) ListOrdersForUser(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, utils.InternalError("Failed to list orders", err)
	}
	if err := s.resolveBooks(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// ListAllOrders returns every order newest first with owners and books resolved
func (s *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, utils.InternalError("Failed to list orders", err)
	}
	if err := s.resolveBooks(ctx, orders); err != nil {
		return nil, err
	}
	if err := s.resolveOwners(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder loads one order with owner and books resolved
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Order not found")
		}
		return nil, utils.InternalError("Failed to load order", err)
	}
	orders := []models.Order{order}
	if err := s.resolveBooks(ctx, orders); err != nil {
		return nil, err
	}
	if err := s.resolveOwners(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// GetOrderForUser loads an order only if userID owns it. Orders of other
// users are reported as not found.
func (s *OrderService) GetOrderForUser(ctx context.Context, id, userID uint) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, utils.NotFoundError("Order not found")
	}
	return order, nil
}

// UpdateStatus sets any of the known statuses; there is no transition graph
// and no terminal state.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	if !models.IsValidOrderStatus(status) {
		return nil, utils.InvalidStatusError(status)
	}

	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundError("Order not found")
		}
		return nil, utils.InternalError("Failed to load order", err)
	}
	previous := order.Status

	if err := s.db.WithContext(ctx).Model(&order).Update("status", status).Error; err != nil {
		return nil, utils.InternalError("Failed to update order status", err)
	}
	utils.LogInfo("Order %d status %s -> %s", order.ID, previous, status)

	updated, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if previous != status {
		s.notify(ctx, updated, previous)
	}
	return updated, nil
}

func (s *OrderService) notify(ctx context.Context, order *models.Order, previous string) {
	if s.notifier == nil {
		return
	}
	var owner models.User
	if err := s.db.WithContext(ctx).First(&owner, order.UserID).Error; err != nil {
		utils.LogWarn("Skipping status notification for order %d: %v", order.ID, err)
		return
	}
	if err := s.notifier.NotifyStatusChange(ctx, &owner, order, previous); err != nil {
		utils.LogError("Failed to send status notification for order %d: %v", order.ID, err)
	}
}

// DeleteOrder removes an order and its line items
func (s *OrderService) DeleteOrder(ctx context.Context, id uint) error {
	var affected int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Order{}, id)
		affected = res.RowsAffected
		return res.Error
	})
	if err != nil {
		return utils.InternalError("Failed to delete order", err)
	}
	if affected == 0 {
		return utils.NotFoundError("Order not found")
	}
	utils.LogInfo("Order %d deleted", id)
	return nil
}

// resolveBooks joins line items with the current books. Items whose book was
// deleted keep a nil Book.
func (s *OrderService) resolveBooks(ctx context.Context, orders []models.Order) error {
	seen := make(map[uint]bool)
	var ids []uint
	for _, o := range orders {
		for _, item := range o.Items {
			if !seen[item.BookID] {
				seen[item.BookID] = true
				ids = append(ids, item.BookID)
			}
		}
	}
	books, err := s.books.GetBooksByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for i := range orders {
		for j := range orders[i].Items {
			orders[i].Items[j].Book = books[orders[i].Items[j].BookID]
		}
	}
	return nil
}

func (s *OrderService) resolveOwners(ctx context.Context, orders []models.Order) error {
	seen := make(map[uint]bool)
	var ids []uint
	for _, o := range orders {
		if !seen[o.UserID] {
			seen[o.UserID] = true
			ids = append(ids, o.UserID)
		}
	}
	if len(ids) == 0 {
		return nil
	}
	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return utils.InternalError("Failed to load order owners", err)
	}
	owners := make(map[uint]models.PublicUser, len(users))
	for i := range users {
		owners[users[i].ID] = users[i].Public()
	}
	for i := range orders {
		if owner, ok := owners[orders[i].UserID]; ok {
			orders[i].Owner = &owner
		}
	}
	return nil
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
