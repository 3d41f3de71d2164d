package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/mdm/entity"
	"gorm.io/gorm"
)

// ColorRepository 颜色仓库
type ColorRepository struct {
	db *gorm.DB
}

func NewColorRepository(db *gorm.DB) *ColorRepository {
	return &ColorRepository{db: db}
}

// FindAll 查询颜色列表
func (r *ColorRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Color, int64, error) {
	var items []entity.Color
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Color{})

	if search := filters["search"]; search != "" {
		query = query.Where("code LIKE ? OR name LIKE ? OR pantone LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if family := filters["family"]; family != "" {
		query = query.Where("family = ?", family)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindActive 查询全部启用颜色，供下拉引用
func (r *ColorRepository) FindActive(ctx context.Context) ([]entity.Color, error) {
	var items []entity.Color
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusActive).
		Order("name ASC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找颜色
func (r *ColorRepository) FindByID(ctx context.Context, id string) (*entity.Color, error) {
	var color entity.Color
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &color, nil
}

// FindByCode 根据编码查找颜色
func (r *ColorRepository) FindByCode(ctx context.Context, code string) (*entity.Color, error) {
	var color entity.Color
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&color).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &color, nil
}

// Create 创建颜色
func (r *ColorRepository) Create(ctx context.Context, color *entity.Color) error {
	return r.db.WithContext(ctx).Create(color).Error
}

// Update 更新颜色
func (r *ColorRepository) Update(ctx context.Context, color *entity.Color) error {
	return r.db.WithContext(ctx).Save(color).Error
}

// Delete 删除颜色
func (r *ColorRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Color{}).Error
}
