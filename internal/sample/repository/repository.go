package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在
var ErrNotFound = errors.New("record not found")

// Repositories 打样域仓库集合
type Repositories struct {
	Sample     *SampleRepository
	Material   *MaterialRepository
	Colorway   *ColorwayRepository
	Attachment *AttachmentRepository
	Activity   *ActivityLogRepository
}

// NewRepositories 创建打样域仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Sample:     NewSampleRepository(db),
		Material:   NewMaterialRepository(db),
		Colorway:   NewColorwayRepository(db),
		Attachment: NewAttachmentRepository(db),
		Activity:   NewActivityLogRepository(db),
	}
}
