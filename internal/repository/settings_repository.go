package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BhautikKhunt0/resin-store/internal/domain"
)

// Settings live in a single well-known document.
const settingsKey = "store"

type settingsDoc struct {
	Key            string    `bson:"key"`
	WhatsAppNumber string    `bson:"whatsapp_number"`
	StoreName      string    `bson:"store_name"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

type mongoSettingsRepository struct {
	collection *mongo.Collection
}

func NewMongoSettingsRepository(db *mongo.Database) SettingsRepository {
	return &mongoSettingsRepository{
		collection: db.Collection("settings"),
	}
}

func (m *mongoSettingsRepository) GetSettings(ctx context.Context) (*domain.Settings, error) {
	var doc settingsDoc

	err := m.collection.FindOne(ctx, bson.M{"key": settingsKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNoSettings
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &domain.Settings{
		WhatsAppNumber: doc.WhatsAppNumber,
		StoreName:      doc.StoreName,
		UpdatedAt:      doc.UpdatedAt,
	}, nil
}

func (m *mongoSettingsRepository) UpdateSettings(ctx context.Context, s *domain.Settings) error {
	update := bson.M{"$set": bson.M{
		"whatsapp_number": s.WhatsAppNumber,
		"store_name":      s.StoreName,
		"updated_at":      time.Now(),
	}}
	opts := options.Update().SetUpsert(true)

	_, err := m.collection.UpdateOne(ctx, bson.M{"key": settingsKey}, update, opts)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}
