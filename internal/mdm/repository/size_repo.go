package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/mdm/entity"
	"gorm.io/gorm"
)

// SizeRepository 尺码仓库
type SizeRepository struct {
	db *gorm.DB
}

func NewSizeRepository(db *gorm.DB) *SizeRepository {
	return &SizeRepository{db: db}
}

// FindAll 查询尺码列表，按SortOrder排序
func (r *SizeRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Size, int64, error) {
	var items []entity.Size
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Size{})

	if search := filters["search"]; search != "" {
		query = query.Where("code LIKE ? OR name LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if group := filters["size_group"]; group != "" {
		query = query.Where("size_group = ?", group)
	}
	if status := filters["status"]; status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("sort_order ASC, created_at ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&items).Error

	return items, total, err
}

// FindActive 查询全部启用尺码，按SortOrder排序
func (r *SizeRepository) FindActive(ctx context.Context) ([]entity.Size, error) {
	var items []entity.Size
	err := r.db.WithContext(ctx).
		Where("status = ?", entity.StatusActive).
		Order("sort_order ASC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找尺码
func (r *SizeRepository) FindByID(ctx context.Context, id string) (*entity.Size, error) {
	var size entity.Size
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&size).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &size, nil
}

// Create 创建尺码
func (r *SizeRepository) Create(ctx context.Context, size *entity.Size) error {
	return r.db.WithContext(ctx).Create(size).Error
}

// Update 更新尺码
func (r *SizeRepository) Update(ctx context.Context, size *entity.Size) error {
	return r.db.WithContext(ctx).Save(size).Error
}

// Delete 删除尺码
func (r *SizeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Size{}).Error
}
