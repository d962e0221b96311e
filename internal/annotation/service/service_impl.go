package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/yemtakip/yemtakip/internal/annotation/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

func NewService(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("annotation.service"),
		genID: p.GenID,
	}
}

func (s *Service) Set(ctx context.Context, req domain.SetAnnotationRequest) (domain.Annotation, error) {
	entityType := strings.TrimSpace(req.EntityType)
	if entityType == "" {
		return domain.Annotation{}, domain.ErrInvalidEntity
	}
	entityID, err := parseID(req.EntityID)
	if err != nil {
		return domain.Annotation{}, domain.ErrInvalidEntity
	}
	key := strings.TrimSpace(req.Key)
	if key == "" {
		return domain.Annotation{}, domain.ErrInvalidKey
	}

	now := time.Now().UTC()
	annotation := domain.Annotation{
		ID:         s.genID.Generate(),
		EntityType: entityType,
		EntityID:   entityID,
		Key:        key,
		Value:      req.Value,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entity_type"}, {Name: "entity_id"}, {Name: "key"}},
			DoUpdates: clause.Assignments(map[string]any{"value": req.Value, "updated_at": now}),
		}).
		Create(&annotation).Error
	if err != nil {
		return domain.Annotation{}, err
	}
	return annotation, nil
}

func (s *Service) Get(ctx context.Context, entityType, rawEntityID, key string) (domain.Annotation, error) {
	entityID, err := parseID(rawEntityID)
	if err != nil {
		return domain.Annotation{}, domain.ErrInvalidEntity
	}

	var annotation domain.Annotation
	err = s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND key = ?", strings.TrimSpace(entityType), entityID, strings.TrimSpace(key)).
		Limit(1).
		Find(&annotation).Error
	if err != nil {
		return domain.Annotation{}, err
	}
	if annotation.ID == 0 {
		return domain.Annotation{}, domain.ErrNotFound
	}
	return annotation, nil
}

func (s *Service) ListForEntity(ctx context.Context, entityType, rawEntityID string) ([]domain.Annotation, error) {
	entityID, err := parseID(rawEntityID)
	if err != nil {
		return nil, domain.ErrInvalidEntity
	}

	var annotations []domain.Annotation
	err = s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", strings.TrimSpace(entityType), entityID).
		Order("key asc").
		Find(&annotations).Error
	if err != nil {
		return nil, err
	}
	return annotations, nil
}

func (s *Service) Delete(ctx context.Context, entityType, rawEntityID, key string) error {
	entityID, err := parseID(rawEntityID)
	if err != nil {
		return domain.ErrInvalidEntity
	}

	result := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ? AND key = ?", strings.TrimSpace(entityType), entityID, strings.TrimSpace(key)).
		Delete(&domain.Annotation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidEntity
	}
	return id, nil
}
