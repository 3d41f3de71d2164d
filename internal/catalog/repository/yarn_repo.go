package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/catalog/entity"
	"gorm.io/gorm"
)

// YarnRepository 纱线仓库
type YarnRepository struct {
	db *gorm.DB
}

func NewYarnRepository(db *gorm.DB) *YarnRepository {
	return &YarnRepository{db: db}
}

// FindAll 查询纱线列表
func (r *YarnRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.Yarn, int64, error) {
	var items []entity.Yarn
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Yarn{})

	if search := filters["search"]; search != "" {
		query = query.Where("code LIKE ? OR name LIKE ? OR composition LIKE ?",
			"%"+search+"%", "%"+search+"%", "%"+search+"%")
	}
	if supplier := filters["supplier"]; supplier != "" {
		query = query.Where("supplier = ?", supplier)
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

// FindByID 根据ID查找纱线
func (r *YarnRepository) FindByID(ctx context.Context, id string) (*entity.Yarn, error) {
	var yarn entity.Yarn
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&yarn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &yarn, nil
}

// Create 创建纱线
func (r *YarnRepository) Create(ctx context.Context, yarn *entity.Yarn) error {
	return r.db.WithContext(ctx).Create(yarn).Error
}

// Update 更新纱线
func (r *YarnRepository) Update(ctx context.Context, yarn *entity.Yarn) error {
	return r.db.WithContext(ctx).Save(yarn).Error
}

// Delete 删除纱线
func (r *YarnRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Yarn{}).Error
}
