package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
)

var ErrInvalidOrder = errors.New("invalid order")

type orderDoc struct {
	ID              primitive.ObjectID `bson:"_id,omitempty"`
	NumericID       int64              `bson:"numeric_id"`
	CustomerName    string             `bson:"customer_name"`
	CustomerEmail   string             `bson:"customer_email"`
	CustomerPhone   string             `bson:"customer_phone"`
	ShippingAddress string             `bson:"shipping_address"`
	Items           []orderItemDoc     `bson:"items"`
	TotalAmount     string             `bson:"total_amount"`
	Status          string             `bson:"status"`
	CreatedAt       time.Time          `bson:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at"`
}

type orderItemDoc struct {
	ProductID int64  `bson:"product_id"`
	Name      string `bson:"name"`
	Price     string `bson:"price"`
	Quantity  int    `bson:"quantity"`
	SizeLabel string `bson:"size_label"`
}

type mongoOrderRepository struct {
	collection *mongo.Collection
}

func NewMongoOrderRepository(db *mongo.Database) OrderRepository {
	return &mongoOrderRepository{
		collection: db.Collection("orders"),
	}
}

// CreateOrder persists the draft and returns the stored order with its
// assigned id and timestamps. Item snapshots are validated here, at
// the store boundary.
func (m *mongoOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := validateOrder(order); err != nil {
		return nil, err
	}

	now := time.Now()
	oid := primitive.NewObjectID()

	doc := orderDoc{
		ID:              oid,
		NumericID:       NumericID(oid),
		CustomerName:    order.CustomerName,
		CustomerEmail:   order.CustomerEmail,
		CustomerPhone:   order.CustomerPhone,
		ShippingAddress: order.ShippingAddress,
		Items:           make([]orderItemDoc, 0, len(order.Items)),
		TotalAmount:     order.TotalAmount.String(),
		Status:          string(domain.OrderStatusProcessing),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range order.Items {
		doc.Items = append(doc.Items, orderItemDoc{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     item.Price.String(),
			Quantity:  item.Quantity,
			SizeLabel: item.SizeLabel,
		})
	}

	if _, err := m.collection.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	return orderFromDoc(&doc)
}

func (m *mongoOrderRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var doc orderDoc

	err := m.collection.FindOne(ctx, bson.M{"numeric_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	return orderFromDoc(&doc)
}

func (m *mongoOrderRepository) ListOrders(ctx context.Context) ([]domain.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer cursor.Close(ctx)

	var orders []domain.Order
	for cursor.Next(ctx) {
		var doc orderDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode order: %w", err)
		}
		order, err := orderFromDoc(&doc)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return orders, nil
}

// UpdateOrderStatus is the only mutation allowed on a placed order.
func (m *mongoOrderRepository) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	if !status.IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidOrder, status)
	}

	update := bson.M{
		"$set": bson.M{
			"status":     string(status),
			"updated_at": time.Now(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"numeric_id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (m *mongoOrderRepository) CreateIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "numeric_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "created_at", Value: -1}},
		},
	}

	_, err := m.collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

func validateOrder(order *domain.Order) error {
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: no items", ErrInvalidOrder)
	}
	for i, item := range order.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("%w: item %d has no product id", ErrInvalidOrder, i)
		}
		if item.Name == "" {
			return fmt.Errorf("%w: item %d has no name", ErrInvalidOrder, i)
		}
		if item.Quantity < 1 {
			return fmt.Errorf("%w: item %d has quantity %d", ErrInvalidOrder, i, item.Quantity)
		}
		if item.Price.IsNegative() {
			return fmt.Errorf("%w: item %d has negative price", ErrInvalidOrder, i)
		}
	}
	if order.TotalAmount.IsNegative() {
		return fmt.Errorf("%w: negative total", ErrInvalidOrder)
	}
	return nil
}

func orderFromDoc(doc *orderDoc) (*domain.Order, error) {
	total, err := decimal.NewFromString(doc.TotalAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total amount %q: %w", doc.TotalAmount, err)
	}

	order := &domain.Order{
		ID:              doc.NumericID,
		CustomerName:    doc.CustomerName,
		CustomerEmail:   doc.CustomerEmail,
		CustomerPhone:   doc.CustomerPhone,
		ShippingAddress: doc.ShippingAddress,
		Items:           make([]domain.OrderItem, 0, len(doc.Items)),
		TotalAmount:     total,
		Status:          domain.OrderStatus(doc.Status),
		CreatedAt:       doc.CreatedAt,
		UpdatedAt:       doc.UpdatedAt,
	}
	for _, item := range doc.Items {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to parse item price %q: %w", item.Price, err)
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			Price:     price,
			Quantity:  item.Quantity,
			SizeLabel: item.SizeLabel,
		})
	}
	return order, nil
}
