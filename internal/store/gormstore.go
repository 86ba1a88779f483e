package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Document is a single JSON document keyed by path.
type Document struct {
	Path string         `gorm:"primaryKey;column:path"`
	Data datatypes.JSON `gorm:"column:data;type:jsonb"`
}

func (Document) TableName() string {
	return "documents"
}

// GormStore implements DocumentStore on a Postgres documents table.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&Document{}); err != nil {
		return nil, fmt.Errorf("failed to migrate documents table: %w", err)
	}
	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(ctx context.Context, path string) (json.RawMessage, error) {
	var doc Document
	err := s.db.WithContext(ctx).Where("path = ?", path).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get document %s: %w", path, err)
	}
	return json.RawMessage(doc.Data), nil
}

func (s *GormStore) Set(ctx context.Context, path string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode document %s: %w", path, err)
	}
	doc := Document{Path: path, Data: datatypes.JSON(data)}
	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "path"}},
		DoUpdates: clause.AssignmentColumns([]string{"data"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to set document %s: %w", path, err)
	}
	return nil
}

func (s *GormStore) Delete(ctx context.Context, path string) error {
	err := s.db.WithContext(ctx).Where("path = ?", path).Delete(&Document{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", path, err)
	}
	return nil
}

func (s *GormStore) List(ctx context.Context, prefix string) (map[string]json.RawMessage, error) {
	var docs []Document
	err := s.db.WithContext(ctx).
		Where("path LIKE ?", likePrefix(prefix)).
		Find(&docs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list documents under %s: %w", prefix, err)
	}
	out := make(map[string]json.RawMessage, len(docs))
	for _, doc := range docs {
		out[strings.TrimPrefix(doc.Path, prefix)] = json.RawMessage(doc.Data)
	}
	return out, nil
}

func (s *GormStore) DeletePrefix(ctx context.Context, prefix string) error {
	err := s.db.WithContext(ctx).
		Where("path LIKE ?", likePrefix(prefix)).
		Delete(&Document{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete documents under %s: %w", prefix, err)
	}
	return nil
}

func likePrefix(prefix string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(prefix)
	return escaped + "%"
}
