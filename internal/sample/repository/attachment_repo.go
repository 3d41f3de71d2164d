package repository

import (
	"context"
	"errors"

	"github.com/knitware/stitch-erp/internal/sample/entity"
	"gorm.io/gorm"
)

// AttachmentRepository 打样附件仓库
type AttachmentRepository struct {
	db *gorm.DB
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{db: db}
}

// FindBySampleID 查找打样单的附件列表
func (r *AttachmentRepository) FindBySampleID(ctx context.Context, sampleID string) ([]entity.SampleAttachment, error) {
	var items []entity.SampleAttachment
	err := r.db.WithContext(ctx).
		Where("sample_request_id = ?", sampleID).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

// FindByID 根据ID查找附件
func (r *AttachmentRepository) FindByID(ctx context.Context, id string) (*entity.SampleAttachment, error) {
	var attachment entity.SampleAttachment
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&attachment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &attachment, nil
}

// Create 创建附件记录
func (r *AttachmentRepository) Create(ctx context.Context, attachment *entity.SampleAttachment) error {
	return r.db.WithContext(ctx).Create(attachment).Error
}

// Delete 删除附件记录
func (r *AttachmentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.SampleAttachment{}).Error
}
