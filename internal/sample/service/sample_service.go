package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/sample/entity"
	"github.com/knitware/stitch-erp/internal/sample/repository"
	"gorm.io/gorm"
)

const activityEntityType = "sample_request"

// SampleService 打样单服务，管理四步向导与状态流转
type SampleService struct {
	samples    *repository.SampleRepository
	materials  *repository.MaterialRepository
	colorways  *repository.ColorwayRepository
	attachRepo *repository.AttachmentRepository
	activities *repository.ActivityLogRepository
}

func NewSampleService(repos *repository.Repositories) *SampleService {
	return &SampleService{
		samples:    repos.Sample,
		materials:  repos.Material,
		colorways:  repos.Colorway,
		attachRepo: repos.Attachment,
		activities: repos.Activity,
	}
}

// CreateSampleRequest 创建打样单请求，基础信息可留空到向导第一步再填
type CreateSampleRequest struct {
	Buyer         string `json:"buyer"`
	GarmentTypeID string `json:"garment_type_id"`
	StyleNo       string `json:"style_no"`
	Priority      string `json:"priority"`
	Notes         string `json:"notes"`
}

// UpdateBasicsRequest 向导第一步：基础信息
type UpdateBasicsRequest struct {
	Buyer         string `json:"buyer" binding:"required"`
	StyleNo       string `json:"style_no" binding:"required"`
	GarmentTypeID string `json:"garment_type_id"`
	DueDate       string `json:"due_date"` // 格式 2006-01-02
	Priority      string `json:"priority"`
	Notes         string `json:"notes"`
}

// MaterialLine 用料行
type MaterialLine struct {
	Kind     string  `json:"kind" binding:"required"`
	RefID    string  `json:"ref_id"`
	Name     string  `json:"name" binding:"required"`
	Usage    string  `json:"usage"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Notes    string  `json:"notes"`
}

// UpdateMaterialsRequest 向导第二步：用料清单（整单替换）
type UpdateMaterialsRequest struct {
	Lines []MaterialLine `json:"lines" binding:"required"`
}

// ColorwayLine 配色行
type ColorwayLine struct {
	ColorID   string `json:"color_id"`
	ColorName string `json:"color_name" binding:"required"`
	SizeID    string `json:"size_id"`
	SizeName  string `json:"size_name" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

// UpdateColorwaysRequest 向导第三步：配色与件数（整单替换）
type UpdateColorwaysRequest struct {
	Lines []ColorwayLine `json:"lines" binding:"required"`
}

// UpdateWorkmanshipRequest 向导第四步：工艺要求
type UpdateWorkmanshipRequest struct {
	Workmanship        string `json:"workmanship" binding:"required"`
	WashingInstruction string `json:"washing_instruction"`
}

// UpdateSampleStatusRequest 状态流转请求
type UpdateSampleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SampleListResult 打样单列表结果
type SampleListResult struct {
	Items      []entity.SampleRequest `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
}

// SampleDetail 打样单完整载荷
type SampleDetail struct {
	entity.SampleRequest
	Materials   []entity.SampleMaterial   `json:"materials"`
	Colorways   []entity.SampleColorway   `json:"colorways"`
	Attachments []entity.SampleAttachment `json:"attachments"`
}

// ActivityListResult 操作日志列表结果
type ActivityListResult struct {
	Items      []entity.ActivityLog `json:"items"`
	Total      int64                `json:"total"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"page_size"`
	TotalPages int                  `json:"total_pages"`
}

// List 获取打样单列表
func (s *SampleService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*SampleListResult, error) {
	items, total, err := s.samples.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询打样单列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &SampleListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取打样单完整载荷（用料、配色、附件）
func (s *SampleService) Get(ctx context.Context, id string) (*SampleDetail, error) {
	sample, err := s.samples.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	materials, err := s.materials.FindBySampleID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询用料清单失败: %w", err)
	}
	colorways, err := s.colorways.FindBySampleID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询配色清单失败: %w", err)
	}
	attachments, err := s.attachRepo.FindBySampleID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询附件失败: %w", err)
	}

	return &SampleDetail{
		SampleRequest: *sample,
		Materials:     materials,
		Colorways:     colorways,
		Attachments:   attachments,
	}, nil
}

// Create 创建打样单草稿，单号由服务端按日分配
func (s *SampleService) Create(ctx context.Context, req *CreateSampleRequest, userID string) (*entity.SampleRequest, error) {
	sample := &entity.SampleRequest{
		ID:            uuid.New().String()[:32],
		Buyer:         req.Buyer,
		GarmentTypeID: req.GarmentTypeID,
		StyleNo:       req.StyleNo,
		Round:         1,
		Status:        entity.SampleStatusDraft,
		CurrentStep:   0,
		Priority:      req.Priority,
		Notes:         req.Notes,
		RequestedBy:   userID,
	}

	if err := s.samples.CreateWithRequestNo(ctx, sample); err != nil {
		if !isDuplicateKeyErr(err) {
			return nil, fmt.Errorf("创建打样单失败: %w", err)
		}
		// 单号撞车重试一次
		sample.ID = uuid.New().String()[:32]
		if err := s.samples.CreateWithRequestNo(ctx, sample); err != nil {
			return nil, fmt.Errorf("创建打样单失败: %w", err)
		}
	}

	s.activities.LogActivity(ctx, activityEntityType, sample.ID, sample.RequestNo,
		"create", "", entity.SampleStatusDraft, fmt.Sprintf("创建打样单 %s", sample.RequestNo), userID)
	return sample, nil
}

// UpdateBasics 向导第一步：基础信息
func (s *SampleService) UpdateBasics(ctx context.Context, id string, req *UpdateBasicsRequest, userID string) (*entity.SampleRequest, error) {
	sample, err := s.editableSample(ctx, id)
	if err != nil {
		return nil, err
	}

	sample.Buyer = req.Buyer
	sample.StyleNo = req.StyleNo
	sample.GarmentTypeID = req.GarmentTypeID
	sample.Priority = req.Priority
	sample.Notes = req.Notes
	if req.DueDate != "" {
		due, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			return nil, fmt.Errorf("交样日期格式错误，应为 2006-01-02")
		}
		sample.DueDate = &due
	}
	sample.BasicsDone = true
	advanceCurrentStep(sample)

	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("保存基础信息失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, sample.ID, sample.RequestNo,
		"step_update", "", "", "完善基础信息", userID)
	return sample, nil
}

// UpdateMaterials 向导第二步：用料清单整单替换
func (s *SampleService) UpdateMaterials(ctx context.Context, id string, req *UpdateMaterialsRequest, userID string) (*entity.SampleRequest, error) {
	sample, err := s.editableSample(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("用料清单不能为空")
	}

	items := make([]entity.SampleMaterial, 0, len(req.Lines))
	for i, line := range req.Lines {
		if !entity.ValidMaterialKinds[line.Kind] {
			return nil, fmt.Errorf("第%d行: 无效的用料类型 %s", i+1, line.Kind)
		}
		items = append(items, entity.SampleMaterial{
			ID:              uuid.New().String()[:32],
			SampleRequestID: id,
			Kind:            line.Kind,
			RefID:           line.RefID,
			Name:            line.Name,
			Usage:           line.Usage,
			Quantity:        line.Quantity,
			Unit:            line.Unit,
			Notes:           line.Notes,
		})
	}

	if err := s.materials.ReplaceForSample(ctx, id, items); err != nil {
		return nil, fmt.Errorf("保存用料清单失败: %w", err)
	}

	sample.MaterialsDone = true
	advanceCurrentStep(sample)
	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("更新打样单失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, sample.ID, sample.RequestNo,
		"step_update", "", "", fmt.Sprintf("完善用料清单，共%d项", len(items)), userID)
	return sample, nil
}

// UpdateColorways 向导第三步：配色与件数整单替换
func (s *SampleService) UpdateColorways(ctx context.Context, id string, req *UpdateColorwaysRequest, userID string) (*entity.SampleRequest, error) {
	sample, err := s.editableSample(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(req.Lines) == 0 {
		return nil, fmt.Errorf("配色清单不能为空")
	}

	seen := make(map[string]bool, len(req.Lines))
	items := make([]entity.SampleColorway, 0, len(req.Lines))
	for i, line := range req.Lines {
		key := line.ColorName + "/" + line.SizeName
		if seen[key] {
			return nil, fmt.Errorf("第%d行: 颜色 %s 尺码 %s 重复", i+1, line.ColorName, line.SizeName)
		}
		seen[key] = true
		items = append(items, entity.SampleColorway{
			ID:              uuid.New().String()[:32],
			SampleRequestID: id,
			ColorID:         line.ColorID,
			ColorName:       line.ColorName,
			SizeID:          line.SizeID,
			SizeName:        line.SizeName,
			Quantity:        line.Quantity,
		})
	}

	if err := s.colorways.ReplaceForSample(ctx, id, items); err != nil {
		return nil, fmt.Errorf("保存配色清单失败: %w", err)
	}

	sample.ColorwaysDone = true
	advanceCurrentStep(sample)
	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("更新打样单失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, sample.ID, sample.RequestNo,
		"step_update", "", "", fmt.Sprintf("完善配色清单，共%d项", len(items)), userID)
	return sample, nil
}

// UpdateWorkmanship 向导第四步：工艺要求
func (s *SampleService) UpdateWorkmanship(ctx context.Context, id string, req *UpdateWorkmanshipRequest, userID string) (*entity.SampleRequest, error) {
	sample, err := s.editableSample(ctx, id)
	if err != nil {
		return nil, err
	}

	sample.Workmanship = req.Workmanship
	sample.WashingInstruction = req.WashingInstruction
	sample.WorkmanshipDone = true
	advanceCurrentStep(sample)

	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("保存工艺要求失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, sample.ID, sample.RequestNo,
		"step_update", "", "", "完善工艺要求", userID)
	return sample, nil
}

// Submit 提交打样单，四个向导步骤必须全部完成
func (s *SampleService) Submit(ctx context.Context, id, userID string) (*entity.SampleRequest, error) {
	sample, err := s.samples.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("打样单不存在")
		}
		return nil, fmt.Errorf("查询打样单失败: %w", err)
	}

	if sample.Status != entity.SampleStatusDraft {
		return nil, fmt.Errorf("当前状态 %s 不允许提交", sample.Status)
	}

	var missing []string
	if !sample.BasicsDone {
		missing = append(missing, "基础信息")
	}
	if !sample.MaterialsDone {
		missing = append(missing, "用料清单")
	}
	if !sample.ColorwaysDone {
		missing = append(missing, "配色清单")
	}
	if !sample.WorkmanshipDone {
		missing = append(missing, "工艺要求")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("请先完成: %s", strings.Join(missing, "、"))
	}

	now := time.Now()
	sample.Status = entity.SampleStatusSubmitted
	sample.SubmittedAt = &now

	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("提交打样单失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, sample.ID, sample.RequestNo,
		"submit", entity.SampleStatusDraft, entity.SampleStatusSubmitted, "提交打样单", userID)
	return sample, nil
}

// UpdateStatus 打样单状态流转。驳回后重新开发时轮次递增。
func (s *SampleService) UpdateStatus(ctx context.Context, id, newStatus, userID string) (*entity.SampleRequest, error) {
	sample, err := s.samples.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("打样单不存在")
		}
		return nil, fmt.Errorf("查询打样单失败: %w", err)
	}

	allowed := false
	for _, next := range entity.ValidSampleTransitions[sample.Status] {
		if next == newStatus {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("打样单状态不能从 %s 流转到 %s", sample.Status, newStatus)
	}

	fromStatus := sample.Status
	now := time.Now()
	content := fmt.Sprintf("状态变更: %s → %s", fromStatus, newStatus)

	switch newStatus {
	case entity.SampleStatusInDevelopment:
		if fromStatus == entity.SampleStatusRejected {
			sample.Round++
			content = fmt.Sprintf("驳回后重新开发，进入第%d轮", sample.Round)
		}
	case entity.SampleStatusSampleSent:
		sample.SentAt = &now
	case entity.SampleStatusApproved, entity.SampleStatusRejected:
		sample.DecidedAt = &now
	}

	sample.Status = newStatus
	if err := s.samples.Update(ctx, sample); err != nil {
		return nil, fmt.Errorf("更新打样单状态失败: %w", err)
	}

	s.activities.LogActivity(ctx, activityEntityType, sample.ID, sample.RequestNo,
		"status_change", fromStatus, newStatus, content, userID)
	return sample, nil
}

// ListActivities 获取打样单操作日志
func (s *SampleService) ListActivities(ctx context.Context, id string, page, pageSize int) (*ActivityListResult, error) {
	if _, err := s.samples.FindByID(ctx, id); err != nil {
		return nil, err
	}

	items, total, err := s.activities.FindByEntity(ctx, activityEntityType, id, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("查询操作日志失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ActivityListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// editableSample 向导步骤仅草稿状态可编辑
func (s *SampleService) editableSample(ctx context.Context, id string) (*entity.SampleRequest, error) {
	sample, err := s.samples.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("打样单不存在")
		}
		return nil, fmt.Errorf("查询打样单失败: %w", err)
	}
	if sample.Status != entity.SampleStatusDraft {
		return nil, fmt.Errorf("仅草稿状态可编辑向导步骤，当前: %s", sample.Status)
	}
	return sample, nil
}

// advanceCurrentStep 当前步骤推进到已连续完成的最高步骤
func advanceCurrentStep(sample *entity.SampleRequest) {
	step := 0
	done := []bool{sample.BasicsDone, sample.MaterialsDone, sample.ColorwaysDone, sample.WorkmanshipDone}
	for _, d := range done {
		if !d {
			break
		}
		step++
	}
	sample.CurrentStep = step
}

// isDuplicateKeyErr 识别唯一索引冲突
func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
