package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/oms/entity"
	"github.com/knitware/stitch-erp/internal/oms/repository"
)

// ContractService 销售合同服务
type ContractService struct {
	contracts *repository.ContractRepository
	orders    *repository.OrderRepository
}

func NewContractService(contracts *repository.ContractRepository, orders *repository.OrderRepository) *ContractService {
	return &ContractService{contracts: contracts, orders: orders}
}

// CreateContractRequest 创建合同请求
type CreateContractRequest struct {
	ContractNo   string `json:"contract_no" binding:"required"`
	Buyer        string `json:"buyer" binding:"required"`
	Season       string `json:"season"`
	Currency     string `json:"currency"`
	PaymentTerms string `json:"payment_terms"`
	SignedDate   string `json:"signed_date"` // 格式 2006-01-02
	Notes        string `json:"notes"`
}

// UpdateContractRequest 更新合同请求
type UpdateContractRequest struct {
	Buyer        string `json:"buyer"`
	Season       string `json:"season"`
	Currency     string `json:"currency"`
	PaymentTerms string `json:"payment_terms"`
	SignedDate   string `json:"signed_date"`
	Notes        string `json:"notes"`
}

// UpdateContractStatusRequest 合同状态流转请求
type UpdateContractStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ContractListResult 合同列表结果
type ContractListResult struct {
	Items      []entity.SalesContract `json:"items"`
	Total      int64                  `json:"total"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"page_size"`
	TotalPages int                    `json:"total_pages"`
}

// ContractDetail 合同详情（含订单）
type ContractDetail struct {
	entity.SalesContract
	Orders []entity.Order `json:"orders"`
}

// List 获取合同列表
func (s *ContractService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*ContractListResult, error) {
	items, total, err := s.contracts.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询合同列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ContractListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取合同详情（含订单列表）
func (s *ContractService) Get(ctx context.Context, id string) (*ContractDetail, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	orders, err := s.orders.FindByContractID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("查询合同订单失败: %w", err)
	}

	return &ContractDetail{SalesContract: *contract, Orders: orders}, nil
}

// Create 创建合同，初始状态draft
func (s *ContractService) Create(ctx context.Context, req *CreateContractRequest, userID string) (*entity.SalesContract, error) {
	contractNo := strings.TrimSpace(req.ContractNo)
	if existing, err := s.contracts.FindByContractNo(ctx, contractNo); err == nil && existing != nil {
		return nil, fmt.Errorf("合同号 %s 已存在", contractNo)
	}

	contract := &entity.SalesContract{
		ID:           uuid.New().String()[:32],
		ContractNo:   contractNo,
		Buyer:        req.Buyer,
		Season:       req.Season,
		Currency:     req.Currency,
		PaymentTerms: req.PaymentTerms,
		Status:       entity.ContractStatusDraft,
		Notes:        req.Notes,
		CreatedBy:    userID,
	}

	if req.SignedDate != "" {
		signed, err := time.Parse("2006-01-02", req.SignedDate)
		if err != nil {
			return nil, fmt.Errorf("签约日期格式错误，应为 2006-01-02")
		}
		contract.SignedDate = &signed
	}

	if err := s.contracts.Create(ctx, contract); err != nil {
		return nil, fmt.Errorf("创建合同失败: %w", err)
	}
	return contract, nil
}

// Update 更新合同基础信息，合同号不可变更
func (s *ContractService) Update(ctx context.Context, id string, req *UpdateContractRequest) (*entity.SalesContract, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("合同不存在")
		}
		return nil, fmt.Errorf("查询合同失败: %w", err)
	}

	if req.Buyer != "" {
		contract.Buyer = req.Buyer
	}
	if req.Season != "" {
		contract.Season = req.Season
	}
	if req.Currency != "" {
		contract.Currency = req.Currency
	}
	if req.PaymentTerms != "" {
		contract.PaymentTerms = req.PaymentTerms
	}
	if req.SignedDate != "" {
		signed, err := time.Parse("2006-01-02", req.SignedDate)
		if err != nil {
			return nil, fmt.Errorf("签约日期格式错误，应为 2006-01-02")
		}
		contract.SignedDate = &signed
	}
	if req.Notes != "" {
		contract.Notes = req.Notes
	}

	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("更新合同失败: %w", err)
	}
	return contract, nil
}

// UpdateStatus 合同状态流转，仅允许预定义的流转路径
func (s *ContractService) UpdateStatus(ctx context.Context, id, newStatus string) (*entity.SalesContract, error) {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("合同不存在")
		}
		return nil, fmt.Errorf("查询合同失败: %w", err)
	}

	if !isValidTransition(entity.ValidContractTransitions, contract.Status, newStatus) {
		return nil, fmt.Errorf("合同状态不能从 %s 流转到 %s", contract.Status, newStatus)
	}

	contract.Status = newStatus
	if err := s.contracts.Update(ctx, contract); err != nil {
		return nil, fmt.Errorf("更新合同状态失败: %w", err)
	}
	return contract, nil
}

// Delete 删除合同，仅草稿且无订单时允许
func (s *ContractService) Delete(ctx context.Context, id string) error {
	contract, err := s.contracts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("合同不存在")
		}
		return fmt.Errorf("查询合同失败: %w", err)
	}

	if contract.Status != entity.ContractStatusDraft {
		return fmt.Errorf("仅草稿状态的合同可删除")
	}

	count, err := s.orders.CountByContractID(ctx, id)
	if err != nil {
		return fmt.Errorf("统计合同订单失败: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("合同下存在 %d 个订单，不能删除", count)
	}

	if err := s.contracts.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除合同失败: %w", err)
	}
	return nil
}

// isValidTransition 检查状态机是否允许该流转
func isValidTransition(transitions map[string][]string, from, to string) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
