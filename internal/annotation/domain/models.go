package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

// Annotation is one key-value flag attached to a business record, e.g.
// "whatsapp_sent" on a delivery.
type Annotation struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	EntityType string       `gorm:"not null;uniqueIndex:idx_annotations_entity_key" json:"entity_type"`
	EntityID   snowflake.ID `gorm:"not null;uniqueIndex:idx_annotations_entity_key" json:"entity_id"`
	Key        string       `gorm:"not null;uniqueIndex:idx_annotations_entity_key" json:"key"`
	Value      string       `json:"value"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName sets the database table name.
func (Annotation) TableName() string { return "annotations" }

type SetAnnotationRequest struct {
	EntityType string
	EntityID   string
	Key        string
	Value      string
}

type Service interface {
	// Set upserts the value for (entity_type, entity_id, key).
	Set(context.Context, SetAnnotationRequest) (Annotation, error)
	Get(ctx context.Context, entityType, entityID, key string) (Annotation, error)
	// ListForEntity returns every annotation on one record.
	ListForEntity(ctx context.Context, entityType, entityID string) ([]Annotation, error)
	Delete(ctx context.Context, entityType, entityID, key string) error
}

var (
	ErrInvalidEntity = errors.New("invalid_entity")
	ErrInvalidKey    = errors.New("invalid_key")
	ErrNotFound      = errors.New("not_found")
)
