package service

import (
	"github.com/knitware/stitch-erp/internal/sample/repository"
	"github.com/minio/minio-go/v7"
)

// Services 打样域服务集合
type Services struct {
	Sample     *SampleService
	Attachment *AttachmentService
}

// NewServices 创建打样域服务集合，minioClient可为nil（本地开发无对象存储）
func NewServices(repos *repository.Repositories, minioClient *minio.Client, bucketName string) *Services {
	return &Services{
		Sample:     NewSampleService(repos),
		Attachment: NewAttachmentService(repos, minioClient, bucketName),
	}
}
