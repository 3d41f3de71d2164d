package repository

import (
	"context"

	"github.com/knitware/stitch-erp/internal/sample/entity"
	"gorm.io/gorm"
)

// MaterialRepository 打样用料仓库
type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// FindBySampleID 查找打样单的用料清单
func (r *MaterialRepository) FindBySampleID(ctx context.Context, sampleID string) ([]entity.SampleMaterial, error) {
	var items []entity.SampleMaterial
	err := r.db.WithContext(ctx).
		Where("sample_request_id = ?", sampleID).
		Order("kind ASC, created_at ASC").
		Find(&items).Error
	return items, err
}

// ReplaceForSample 整单替换用料清单（先删后建，同一事务）
func (r *MaterialRepository) ReplaceForSample(ctx context.Context, sampleID string, items []entity.SampleMaterial) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sample_request_id = ?", sampleID).Delete(&entity.SampleMaterial{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 100).Error
	})
}

// ColorwayRepository 打样配色仓库
type ColorwayRepository struct {
	db *gorm.DB
}

func NewColorwayRepository(db *gorm.DB) *ColorwayRepository {
	return &ColorwayRepository{db: db}
}

// FindBySampleID 查找打样单的配色清单
func (r *ColorwayRepository) FindBySampleID(ctx context.Context, sampleID string) ([]entity.SampleColorway, error) {
	var items []entity.SampleColorway
	err := r.db.WithContext(ctx).
		Where("sample_request_id = ?", sampleID).
		Order("color_name ASC, size_name ASC").
		Find(&items).Error
	return items, err
}

// ReplaceForSample 整单替换配色清单（先删后建，同一事务）
func (r *ColorwayRepository) ReplaceForSample(ctx context.Context, sampleID string, items []entity.SampleColorway) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sample_request_id = ?", sampleID).Delete(&entity.SampleColorway{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.CreateInBatches(items, 100).Error
	})
}
