package excel

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/m04kA/SMC-LeasingGateway/internal/domain"
)

// Generator формирует XLSX-выгрузку страницы ресурса консоли администратора
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate пишет элементы на один лист: первая строка заголовки полей формы, далее по строке на элемент
func (g *Generator) Generate(resource domain.AdminResource, items []domain.AdminItem) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := resource.Label()
	if sheet == "" {
		sheet = string(resource)
	}
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	fields := resource.Schema(true)
	for i, field := range fields {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		_ = file.SetCellValue(sheet, cell, field.Label)
	}

	for r, item := range items {
		row := r + 2
		for c, field := range fields {
			cell, err := excelize.CoordinatesToCellName(c+1, row)
			if err != nil {
				return nil, err
			}
			_ = file.SetCellValue(sheet, cell, cellValue(field, item[field.Key]))
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(fields))
	if err != nil {
		return nil, err
	}
	_ = file.SetColWidth(sheet, "A", "A", 8)
	if len(fields) > 1 {
		_ = file.SetColWidth(sheet, "B", lastCol, 24)
	}
	_ = file.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// cellValue приводит значение поля к значению ячейки
// Даты выводятся как дд.мм.гггг, числа остаются числами
func cellValue(field domain.Field, v any) any {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		if field.Type == domain.FieldDate {
			return formatDate(val)
		}
		return val
	case float64:
		if field.Type == domain.FieldText {
			return strconv.FormatFloat(val, 'f', -1, 64)
		}
		return val
	case bool:
		if val {
			return "Да"
		}
		return "Нет"
	default:
		return fmt.Sprint(val)
	}
}

func formatDate(raw string) string {
	t, ok := domain.ParseBackendTime(raw)
	if !ok {
		return raw
	}
	return t.Format(domain.DisplayDateFormat)
}
