package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/knitware/stitch-erp/internal/sample/entity"
	"gorm.io/gorm"
)

// SampleRepository 打样单仓库
type SampleRepository struct {
	db *gorm.DB
}

func NewSampleRepository(db *gorm.DB) *SampleRepository {
	return &SampleRepository{db: db}
}

// FindAll 查询打样单列表
func (r *SampleRepository) FindAll(ctx context.Context, page, pageSize int, filters map[string]string) ([]entity.SampleRequest, int64, error) {
	var items []entity.SampleRequest
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.SampleRequest{})

	if search := filters["search"]; search != "" {
		query = query.Where("request_no LIKE ? OR style_no LIKE ?", "%"+search+"%", "%"+search+"%")
	}
	if buyer := filters["buyer"]; buyer != "" {
		query = query.Where("buyer = ?", buyer)
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

// FindByID 根据ID查找打样单
func (r *SampleRepository) FindByID(ctx context.Context, id string) (*entity.SampleRequest, error) {
	var sample entity.SampleRequest
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&sample).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &sample, nil
}

// CreateWithRequestNo 在同一事务内按当日已有单号分配下一个流水号。
// request_no上的唯一索引兜底并发分配：撞车时Create报唯一冲突，由调用方重试。
func (r *SampleRepository) CreateWithRequestNo(ctx context.Context, sample *entity.SampleRequest) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prefix := fmt.Sprintf("SR-%s-", time.Now().Format("20060102"))

		var nos []string
		if err := tx.Model(&entity.SampleRequest{}).
			Where("request_no LIKE ?", prefix+"%").
			Pluck("request_no", &nos).Error; err != nil {
			return err
		}

		max := 0
		for _, no := range nos {
			suffix := strings.TrimPrefix(no, prefix)
			if n, err := strconv.Atoi(suffix); err == nil && n > max {
				max = n
			}
		}

		sample.RequestNo = fmt.Sprintf("%s%04d", prefix, max+1)
		return tx.Create(sample).Error
	})
}

// Update 更新打样单
func (r *SampleRepository) Update(ctx context.Context, sample *entity.SampleRequest) error {
	return r.db.WithContext(ctx).Save(sample).Error
}
