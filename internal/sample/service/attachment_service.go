package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/sample/entity"
	"github.com/knitware/stitch-erp/internal/sample/repository"
	"github.com/minio/minio-go/v7"
)

// AttachmentService 打样附件服务，文件存MinIO，元数据入库
type AttachmentService struct {
	attachments *repository.AttachmentRepository
	samples     *repository.SampleRepository
	activities  *repository.ActivityLogRepository
	minioClient *minio.Client
	bucketName  string
}

func NewAttachmentService(repos *repository.Repositories, minioClient *minio.Client, bucketName string) *AttachmentService {
	return &AttachmentService{
		attachments: repos.Attachment,
		samples:     repos.Sample,
		activities:  repos.Activity,
		minioClient: minioClient,
		bucketName:  bucketName,
	}
}

// List 获取打样单附件列表
func (s *AttachmentService) List(ctx context.Context, sampleID string) ([]entity.SampleAttachment, error) {
	if _, err := s.samples.FindByID(ctx, sampleID); err != nil {
		return nil, err
	}

	items, err := s.attachments.FindBySampleID(ctx, sampleID)
	if err != nil {
		return nil, fmt.Errorf("查询附件失败: %w", err)
	}
	return items, nil
}

// Upload 上传附件
func (s *AttachmentService) Upload(ctx context.Context, sampleID, userID string, reader io.Reader, fileName string, fileSize int64, contentType string) (*entity.SampleAttachment, error) {
	sample, err := s.samples.FindByID(ctx, sampleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("打样单不存在")
		}
		return nil, fmt.Errorf("查询打样单失败: %w", err)
	}

	objectKey := fmt.Sprintf("samples/%s/%s%s", time.Now().Format("2006/01/02"), uuid.New().String()[:8], filepath.Ext(fileName))

	if s.minioClient != nil {
		_, err = s.minioClient.PutObject(ctx, s.bucketName, objectKey, reader, fileSize, minio.PutObjectOptions{
			ContentType: contentType,
		})
		if err != nil {
			return nil, fmt.Errorf("上传文件失败: %w", err)
		}
	}

	attachment := &entity.SampleAttachment{
		ID:              uuid.New().String()[:32],
		SampleRequestID: sampleID,
		FileName:        fileName,
		ObjectKey:       objectKey,
		ContentType:     contentType,
		SizeBytes:       fileSize,
		UploadedBy:      userID,
	}

	if err := s.attachments.Create(ctx, attachment); err != nil {
		return nil, fmt.Errorf("保存附件记录失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, sampleID, sample.RequestNo,
		"attachment_upload", "", "", fmt.Sprintf("上传附件: %s", fileName), userID)
	return attachment, nil
}

// Download 下载附件，返回对象流
func (s *AttachmentService) Download(ctx context.Context, attachmentID string) (io.ReadCloser, *entity.SampleAttachment, error) {
	attachment, err := s.attachments.FindByID(ctx, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	if s.minioClient == nil {
		return nil, attachment, fmt.Errorf("对象存储未配置")
	}

	object, err := s.minioClient.GetObject(ctx, s.bucketName, attachment.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("读取文件失败: %w", err)
	}

	return object, attachment, nil
}

// Delete 删除附件，对象删除失败不阻塞元数据清理
func (s *AttachmentService) Delete(ctx context.Context, attachmentID, userID string) error {
	attachment, err := s.attachments.FindByID(ctx, attachmentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("附件不存在")
		}
		return fmt.Errorf("查询附件失败: %w", err)
	}

	if s.minioClient != nil {
		s.minioClient.RemoveObject(ctx, s.bucketName, attachment.ObjectKey, minio.RemoveObjectOptions{})
	}

	if err := s.attachments.Delete(ctx, attachmentID); err != nil {
		return fmt.Errorf("删除附件失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, attachment.SampleRequestID, "",
		"attachment_delete", "", "", fmt.Sprintf("删除附件: %s", attachment.FileName), userID)
	return nil
}
