package handler

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/knitware/stitch-erp/internal/sample/repository"
	"github.com/knitware/stitch-erp/internal/sample/service"
)

// AttachmentHandler 打样附件处理器
type AttachmentHandler struct {
	svc *service.AttachmentService
}

func NewAttachmentHandler(svc *service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{svc: svc}
}

// List 附件列表
// GET /samples/:id/attachments
func (h *AttachmentHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "打样单不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}

	Success(c, items)
}

// Upload 上传附件
// POST /samples/:id/attachments
func (h *AttachmentHandler) Upload(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		BadRequest(c, "请上传文件: "+err.Error())
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	attachment, err := h.svc.Upload(c.Request.Context(), c.Param("id"), GetUserID(c), file, header.Filename, header.Size, contentType)
	if err != nil {
		BadRequest(c, err.Error())
		return
	}

	Created(c, attachment)
}

// Download 下载附件
// GET /samples/:id/attachments/:attachmentId/download
func (h *AttachmentHandler) Download(c *gin.Context) {
	reader, attachment, err := h.svc.Download(c.Request.Context(), c.Param("attachmentId"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "附件不存在")
			return
		}
		InternalError(c, err.Error())
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", "attachment; filename=\""+attachment.FileName+"\"")
	c.Header("Content-Type", attachment.ContentType)
	c.Header("Content-Length", strconv.FormatInt(attachment.SizeBytes, 10))

	io.Copy(c.Writer, reader)
}

// Delete 删除附件
// DELETE /samples/:id/attachments/:attachmentId
func (h *AttachmentHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("attachmentId"), GetUserID(c)); err != nil {
		BadRequest(c, err.Error())
		return
	}

	Success(c, nil)
}
