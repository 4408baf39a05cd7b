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

type productDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	NumericID   int64              `bson:"numeric_id"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       string             `bson:"price"`
	Sizes       []string           `bson:"sizes,omitempty"`
	ImageURL    string             `bson:"image_url"`
	CategoryID  int64              `bson:"category_id"`
	Subcategory string             `bson:"subcategory,omitempty"`
	InStock     bool               `bson:"in_stock"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type categoryDoc struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	NumericID     int64              `bson:"numeric_id"`
	Name          string             `bson:"name"`
	Subcategories []string           `bson:"subcategories,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at"`
}

type bannerDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	NumericID int64              `bson:"numeric_id"`
	Title     string             `bson:"title"`
	ImageURL  string             `bson:"image_url"`
	Link      string             `bson:"link,omitempty"`
	Active    bool               `bson:"active"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type mongoCatalogRepository struct {
	products   *mongo.Collection
	categories *mongo.Collection
	banners    *mongo.Collection
}

func NewMongoCatalogRepository(db *mongo.Database) CatalogRepository {
	return &mongoCatalogRepository{
		products:   db.Collection("products"),
		categories: db.Collection("categories"),
		banners:    db.Collection("banners"),
	}
}

func (m *mongoCatalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.products.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer cursor.Close(ctx)

	var products []domain.Product
	for cursor.Next(ctx) {
		var doc productDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode product: %w", err)
		}
		p, err := productFromDoc(&doc)
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return products, nil
}

func (m *mongoCatalogRepository) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	var doc productDoc
	err := m.products.FindOne(ctx, bson.M{"numeric_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return productFromDoc(&doc)
}

func (m *mongoCatalogRepository) CreateProduct(ctx context.Context, p *domain.Product) (*domain.Product, error) {
	now := time.Now()
	oid := primitive.NewObjectID()

	doc := productDoc{
		ID:          oid,
		NumericID:   NumericID(oid),
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price.String(),
		Sizes:       p.Sizes,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		Subcategory: p.Subcategory,
		InStock:     p.InStock,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := m.products.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}
	return productFromDoc(&doc)
}

func (m *mongoCatalogRepository) UpdateProduct(ctx context.Context, p *domain.Product) error {
	update := bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price.String(),
		"sizes":       p.Sizes,
		"image_url":   p.ImageURL,
		"category_id": p.CategoryID,
		"subcategory": p.Subcategory,
		"in_stock":    p.InStock,
		"updated_at":  time.Now(),
	}}
	result, err := m.products.UpdateOne(ctx, bson.M{"numeric_id": p.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) DeleteProduct(ctx context.Context, id int64) error {
	result, err := m.products.DeleteOne(ctx, bson.M{"numeric_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrProductNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cursor, err := m.categories.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer cursor.Close(ctx)

	var categories []domain.Category
	for cursor.Next(ctx) {
		var doc categoryDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode category: %w", err)
		}
		categories = append(categories, domain.Category{
			ID:            doc.NumericID,
			Name:          doc.Name,
			Subcategories: doc.Subcategories,
			CreatedAt:     doc.CreatedAt,
			UpdatedAt:     doc.UpdatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return categories, nil
}

func (m *mongoCatalogRepository) CreateCategory(ctx context.Context, c *domain.Category) (*domain.Category, error) {
	now := time.Now()
	oid := primitive.NewObjectID()

	doc := categoryDoc{
		ID:            oid,
		NumericID:     NumericID(oid),
		Name:          c.Name,
		Subcategories: c.Subcategories,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if _, err := m.categories.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert category: %w", err)
	}
	return &domain.Category{
		ID:            doc.NumericID,
		Name:          doc.Name,
		Subcategories: doc.Subcategories,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func (m *mongoCatalogRepository) UpdateCategory(ctx context.Context, c *domain.Category) error {
	update := bson.M{"$set": bson.M{
		"name":          c.Name,
		"subcategories": c.Subcategories,
		"updated_at":    time.Now(),
	}}
	result, err := m.categories.UpdateOne(ctx, bson.M{"numeric_id": c.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update category: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) DeleteCategory(ctx context.Context, id int64) error {
	result, err := m.categories.DeleteOne(ctx, bson.M{"numeric_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) ListBanners(ctx context.Context, activeOnly bool) ([]domain.Banner, error) {
	filter := bson.M{}
	if activeOnly {
		filter["active"] = true
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := m.banners.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	defer cursor.Close(ctx)

	var banners []domain.Banner
	for cursor.Next(ctx) {
		var doc bannerDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode banner: %w", err)
		}
		banners = append(banners, domain.Banner{
			ID:        doc.NumericID,
			Title:     doc.Title,
			ImageURL:  doc.ImageURL,
			Link:      doc.Link,
			Active:    doc.Active,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}
	return banners, nil
}

func (m *mongoCatalogRepository) CreateBanner(ctx context.Context, b *domain.Banner) (*domain.Banner, error) {
	now := time.Now()
	oid := primitive.NewObjectID()

	doc := bannerDoc{
		ID:        oid,
		NumericID: NumericID(oid),
		Title:     b.Title,
		ImageURL:  b.ImageURL,
		Link:      b.Link,
		Active:    b.Active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := m.banners.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert banner: %w", err)
	}
	return &domain.Banner{
		ID:        doc.NumericID,
		Title:     doc.Title,
		ImageURL:  doc.ImageURL,
		Link:      doc.Link,
		Active:    doc.Active,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}, nil
}

func (m *mongoCatalogRepository) UpdateBanner(ctx context.Context, b *domain.Banner) error {
	update := bson.M{"$set": bson.M{
		"title":      b.Title,
		"image_url":  b.ImageURL,
		"link":       b.Link,
		"active":     b.Active,
		"updated_at": time.Now(),
	}}
	result, err := m.banners.UpdateOne(ctx, bson.M{"numeric_id": b.ID}, update)
	if err != nil {
		return fmt.Errorf("failed to update banner: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrBannerNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) DeleteBanner(ctx context.Context, id int64) error {
	result, err := m.banners.DeleteOne(ctx, bson.M{"numeric_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrBannerNotFound
	}
	return nil
}

func (m *mongoCatalogRepository) CreateIndexes(ctx context.Context) error {
	for _, c := range []*mongo.Collection{m.products, m.categories, m.banners} {
		_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "numeric_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		})
		if err != nil {
			return fmt.Errorf("failed to create index on %s: %w", c.Name(), err)
		}
	}
	return nil
}

func productFromDoc(doc *productDoc) (*domain.Product, error) {
	price, err := decimal.NewFromString(doc.Price)
	if err != nil {
		return nil, fmt.Errorf("failed to parse product price %q: %w", doc.Price, err)
	}
	return &domain.Product{
		ID:          doc.NumericID,
		Name:        doc.Name,
		Description: doc.Description,
		Price:       price,
		Sizes:       doc.Sizes,
		ImageURL:    doc.ImageURL,
		CategoryID:  doc.CategoryID,
		Subcategory: doc.Subcategory,
		InStock:     doc.InStock,
		CreatedAt:   doc.CreatedAt,
		UpdatedAt:   doc.UpdatedAt,
	}, nil
}
