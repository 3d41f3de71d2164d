package service

import (
	"context"
	"fmt"

	"github.com/knitware/stitch-erp/internal/oms/repository"
	"github.com/knitware/stitch-erp/internal/shared/carton"
	"github.com/xuri/excelize/v2"
)

// ExportService 订单报表导出服务
type ExportService struct {
	orders     *repository.OrderRepository
	breakdowns *repository.BreakdownRepository
	packings   *repository.PackingRepository
}

func NewExportService(orders *repository.OrderRepository, breakdowns *repository.BreakdownRepository, packings *repository.PackingRepository) *ExportService {
	return &ExportService{orders: orders, breakdowns: breakdowns, packings: packings}
}

var packingExportHeaders = []string{
	"箱号", "长(cm)", "宽(cm)", "高(cm)", "单箱CBM", "毛重(kg)", "净重(kg)", "每箱数量", "箱数", "总数量", "总CBM", "备注",
}

// ExportBreakdown 导出订单颜色尺码矩阵：颜色为行，尺码为列，含行列合计
func (s *ExportService) ExportBreakdown(ctx context.Context, orderID string) (*excelize.File, string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	items, err := s.breakdowns.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("查询订单明细失败: %w", err)
	}

	// 按首次出现顺序收集尺码列与颜色行
	var sizeNames []string
	sizeIdx := make(map[string]int)
	var colorNames []string
	colorIdx := make(map[string]int)
	for _, item := range items {
		if _, ok := sizeIdx[item.SizeName]; !ok {
			sizeIdx[item.SizeName] = len(sizeNames)
			sizeNames = append(sizeNames, item.SizeName)
		}
		if _, ok := colorIdx[item.ColorName]; !ok {
			colorIdx[item.ColorName] = len(colorNames)
			colorNames = append(colorNames, item.ColorName)
		}
	}

	matrix := make([][]int, len(colorNames))
	for i := range matrix {
		matrix[i] = make([]int, len(sizeNames))
	}
	for _, item := range items {
		matrix[colorIdx[item.ColorName]][sizeIdx[item.SizeName]] += item.Quantity
	}

	f := excelize.NewFile()
	sheet := "颜色尺码"
	f.SetSheetName("Sheet1", sheet)

	// 表头样式: 加粗
	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	headers := append([]string{"颜色"}, sizeNames...)
	headers = append(headers, "合计")
	for i, h := range headers {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	colTotals := make([]int, len(sizeNames))
	grandTotal := 0
	for rowIdx, colorName := range colorNames {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), colorName)
		rowTotal := 0
		for colIdx, qty := range matrix[rowIdx] {
			if qty > 0 {
				col, _ := excelize.ColumnNumberToName(colIdx + 2)
				f.SetCellValue(sheet, col+fmt.Sprint(row), qty)
			}
			rowTotal += qty
			colTotals[colIdx] += qty
		}
		totalCol, _ := excelize.ColumnNumberToName(len(sizeNames) + 2)
		f.SetCellValue(sheet, totalCol+fmt.Sprint(row), rowTotal)
		grandTotal += rowTotal
	}

	// 底部汇总行
	summaryRow := len(colorNames) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "合计")
	for colIdx, total := range colTotals {
		col, _ := excelize.ColumnNumberToName(colIdx + 2)
		f.SetCellValue(sheet, col+fmt.Sprint(summaryRow), total)
	}
	totalCol, _ := excelize.ColumnNumberToName(len(sizeNames) + 2)
	f.SetCellValue(sheet, totalCol+fmt.Sprint(summaryRow), grandTotal)
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), totalCol+fmt.Sprint(summaryRow), summaryStyle)

	f.SetColWidth(sheet, "A", "A", 18)
	lastCol, _ := excelize.ColumnNumberToName(len(sizeNames) + 2)
	f.SetColWidth(sheet, "B", lastCol, 10)

	filename := fmt.Sprintf("Breakdown_%s.xlsx", order.OrderNo)
	return f, filename, nil
}

// ExportPackingList 导出订单装箱单，含汇总行
func (s *ExportService) ExportPackingList(ctx context.Context, orderID string) (*excelize.File, string, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, "", err
	}

	items, err := s.packings.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, "", fmt.Errorf("查询装箱明细失败: %w", err)
	}

	f := excelize.NewFile()
	sheet := "装箱单"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range packingExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	var totalCartons, totalQty int
	var totalCBM, totalGross, totalNet float64
	for rowIdx, item := range items {
		row := rowIdx + 2
		lineCBM := item.CBM * float64(item.CartonCount)
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.CartonNo)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.LengthCm)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), item.WidthCm)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), item.HeightCm)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), carton.FormatCBM(item.LengthCm, item.WidthCm, item.HeightCm))
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), item.GrossWeightKg)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), item.NetWeightKg)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), item.QtyPerCarton)
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), item.CartonCount)
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), item.QtyPerCarton*item.CartonCount)
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), fmt.Sprintf("%.4f", lineCBM))
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), item.Notes)

		totalCartons += item.CartonCount
		totalQty += item.QtyPerCarton * item.CartonCount
		totalCBM += lineCBM
		totalGross += item.GrossWeightKg * float64(item.CartonCount)
		totalNet += item.NetWeightKg * float64(item.CartonCount)
	}

	summaryRow := len(items) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
	})
	f.SetCellValue(sheet, fmt.Sprintf("A%d", summaryRow), "汇总")
	f.SetCellValue(sheet, fmt.Sprintf("F%d", summaryRow), totalGross)
	f.SetCellValue(sheet, fmt.Sprintf("G%d", summaryRow), totalNet)
	f.SetCellValue(sheet, fmt.Sprintf("I%d", summaryRow), totalCartons)
	f.SetCellValue(sheet, fmt.Sprintf("J%d", summaryRow), totalQty)
	f.SetCellValue(sheet, fmt.Sprintf("K%d", summaryRow), fmt.Sprintf("%.4f", totalCBM))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", summaryRow), fmt.Sprintf("L%d", summaryRow), summaryStyle)

	colWidths := []float64{12, 8, 8, 8, 10, 10, 10, 10, 8, 10, 10, 20}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("PackingList_%s.xlsx", order.OrderNo)
	return f, filename, nil
}
