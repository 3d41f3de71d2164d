package entity

import "time"

// SampleAttachment 打样单附件元数据，文件本体在对象存储
type SampleAttachment struct {
	ID              string    `json:"id" gorm:"primaryKey;size:32"`
	SampleRequestID string    `json:"sample_request_id" gorm:"size:32;not null;index"`
	FileName        string    `json:"file_name" gorm:"size:255;not null"`
	ObjectKey       string    `json:"object_key" gorm:"size:500;not null"`
	ContentType     string    `json:"content_type" gorm:"size:100"`
	SizeBytes       int64     `json:"size_bytes"`
	UploadedBy      string    `json:"uploaded_by" gorm:"size:32"`
	CreatedAt       time.Time `json:"created_at"`
}

func (SampleAttachment) TableName() string {
	return "smp_sample_attachments"
}
