package service

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/knitware/stitch-erp/internal/mdm/entity"
	"github.com/knitware/stitch-erp/internal/mdm/repository"
	"github.com/knitware/stitch-erp/internal/shared/colorutil"
	"github.com/redis/go-redis/v9"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/transform"
)

const colorCacheKey = "mdm:colors:all"

// ColorService 颜色服务
type ColorService struct {
	repo *repository.ColorRepository
	rdb  *redis.Client
}

func NewColorService(repo *repository.ColorRepository, rdb *redis.Client) *ColorService {
	return &ColorService{repo: repo, rdb: rdb}
}

// CreateColorRequest 创建颜色请求
type CreateColorRequest struct {
	Code    string `json:"code" binding:"required"`
	Name    string `json:"name" binding:"required"`
	HexCode string `json:"hex_code"`
	Family  string `json:"family"`
	Value   string `json:"value"`
	Pantone string `json:"pantone"`
}

// UpdateColorRequest 更新颜色请求
type UpdateColorRequest struct {
	Name    string `json:"name"`
	HexCode string `json:"hex_code"`
	Family  string `json:"family"`
	Value   string `json:"value"`
	Pantone string `json:"pantone"`
	Status  string `json:"status"`
}

// ColorListResult 颜色列表结果
type ColorListResult struct {
	Items      []entity.Color `json:"items"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PageSize   int            `json:"page_size"`
	TotalPages int            `json:"total_pages"`
}

// List 获取颜色列表
func (s *ColorService) List(ctx context.Context, page, pageSize int, filters map[string]string) (*ColorListResult, error) {
	items, total, err := s.repo.FindAll(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("查询颜色列表失败: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &ColorListResult{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// ListAll 获取全部启用颜色（下拉引用，Redis缓存5分钟）
func (s *ColorService) ListAll(ctx context.Context) ([]entity.Color, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, colorCacheKey).Result(); err == nil {
			var items []entity.Color
			if json.Unmarshal([]byte(cached), &items) == nil {
				return items, nil
			}
		}
	}

	items, err := s.repo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("查询颜色列表失败: %w", err)
	}

	if s.rdb != nil {
		if data, err := json.Marshal(items); err == nil {
			s.rdb.Set(ctx, colorCacheKey, data, 5*time.Minute)
		}
	}

	return items, nil
}

// Get 获取颜色详情
func (s *ColorService) Get(ctx context.Context, id string) (*entity.Color, error) {
	color, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return color, nil
}

// Create 创建颜色
func (s *ColorService) Create(ctx context.Context, userID string, req *CreateColorRequest) (*entity.Color, error) {
	if _, err := s.repo.FindByCode(ctx, req.Code); err == nil {
		return nil, fmt.Errorf("颜色编码 %s 已存在", req.Code)
	}

	now := time.Now()
	color := &entity.Color{
		ID:        uuid.New().String()[:32],
		Code:      req.Code,
		Name:      req.Name,
		HexCode:   req.HexCode,
		Family:    req.Family,
		Value:     req.Value,
		Pantone:   req.Pantone,
		Status:    entity.StatusActive,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	classifyColor(color)

	if err := s.repo.Create(ctx, color); err != nil {
		return nil, fmt.Errorf("创建颜色失败: %w", err)
	}

	s.clearCache(ctx)

	return color, nil
}

// Update 更新颜色
func (s *ColorService) Update(ctx context.Context, id string, req *UpdateColorRequest) (*entity.Color, error) {
	color, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("颜色不存在")
	}

	if req.Name != "" {
		color.Name = req.Name
	}
	if req.HexCode != "" {
		color.HexCode = req.HexCode
	}
	if req.Pantone != "" {
		color.Pantone = req.Pantone
	}
	if req.Status != "" {
		color.Status = req.Status
	}

	// 请求显式给出的归类优先，留空则按hex重新归类
	color.Family = req.Family
	color.Value = req.Value
	classifyColor(color)

	color.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, color); err != nil {
		return nil, fmt.Errorf("更新颜色失败: %w", err)
	}

	s.clearCache(ctx)

	return color, nil
}

// Delete 删除颜色
func (s *ColorService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("颜色不存在")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("删除颜色失败: %w", err)
	}

	s.clearCache(ctx)

	return nil
}

// classifyColor 按hex自动归类。hex非法时原样保留，不做任何归类。
// Family/Value已有值时不覆盖，只补空。
func classifyColor(color *entity.Color) {
	cls, ok := colorutil.Classify(color.HexCode)
	if !ok {
		return
	}

	color.R, color.G, color.B = cls.RGB.R, cls.RGB.G, cls.RGB.B
	color.H, color.S, color.L = cls.HSL.H, cls.HSL.S, cls.HSL.L

	if color.Family == "" {
		color.Family = cls.Family
	}
	if color.Value == "" {
		color.Value = cls.Value
	}
}

// ImportResult 颜色CSV导入结果
type ImportResult struct {
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors"`
}

// Import 导入颜色CSV（列：code,name,hex,pantone），兼容GBK与UTF-8编码
func (s *ColorService) Import(ctx context.Context, userID string, reader io.Reader) (*ImportResult, error) {
	raw, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("读取导入文件失败: %w", err)
	}

	// 旧版ERP导出为GBK编码
	content := raw
	if !utf8.Valid(raw) {
		decoded, _, decErr := transform.Bytes(simplifiedchinese.GBK.NewDecoder(), raw)
		if decErr != nil {
			return nil, fmt.Errorf("文件编码无法识别: %w", decErr)
		}
		content = decoded
	}

	result := &ImportResult{}

	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		// 第一行是表头，跳过
		if lineNo == 1 {
			continue
		}

		fields := strings.Split(line, ",")
		for i := range fields {
			fields[i] = strings.Trim(strings.TrimSpace(fields[i]), "\"")
		}

		if len(fields) < 2 || fields[0] == "" || fields[1] == "" {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("第%d行: 缺少编码或名称", lineNo))
			continue
		}

		req := &CreateColorRequest{
			Code: fields[0],
			Name: fields[1],
		}
		if len(fields) > 2 {
			req.HexCode = fields[2]
		}
		if len(fields) > 3 {
			req.Pantone = fields[3]
		}

		if _, createErr := s.Create(ctx, userID, req); createErr != nil {
			result.Failed++
			result.Errors = append(result.Errors, fmt.Sprintf("第%d行: %v", lineNo, createErr))
			continue
		}
		result.Imported++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("解析导入文件失败: %w", err)
	}

	return result, nil
}

// clearCache 清除颜色缓存
func (s *ColorService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, colorCacheKey)
	}
}
