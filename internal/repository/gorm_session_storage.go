package repository

import (
	"context"
	"errors"
	"fmt"

	"retail-mis-console/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type gormSessionStorage struct {
	db *gorm.DB
}

// NewGormSessionStorage keeps one console_sessions row per scope
func NewGormSessionStorage(db *gorm.DB) SessionStorage {
	return &gormSessionStorage{db: db}
}

func (s *gormSessionStorage) Load(ctx context.Context, scope string) (*model.SessionRecord, error) {
	if scope == "" {
		return nil, ErrEmptyScope
	}

	var rec model.SessionRecord
	err := s.db.WithContext(ctx).Where("scope = ?", scope).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return &rec, nil
}

func (s *gormSessionStorage) Save(ctx context.Context, record *model.SessionRecord) error {
	if record == nil || record.Scope == "" {
		return ErrEmptyScope
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}},
			UpdateAll: true,
		}).
		Create(record).Error
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *gormSessionStorage) Delete(ctx context.Context, scope string) error {
	if scope == "" {
		return ErrEmptyScope
	}
	if err := s.db.WithContext(ctx).Where("scope = ?", scope).Delete(&model.SessionRecord{}).Error; err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *gormSessionStorage) DeleteIf(ctx context.Context, scope, token string) (bool, error) {
	if scope == "" {
		return false, ErrEmptyScope
	}
	res := s.db.WithContext(ctx).Where("scope = ? AND token = ?", scope, token).Delete(&model.SessionRecord{})
	if res.Error != nil {
		return false, fmt.Errorf("delete session: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
