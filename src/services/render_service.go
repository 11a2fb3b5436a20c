package services

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"fleetwatch/src/models"
	"fleetwatch/src/schemas"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const maxSheetNameLen = 31

type RenderServiceI interface {
	Render(data *schemas.ReportData, format models.ReportFormat) ([]byte, error)
}

// RenderService serializes a ReportData document into PDF, Excel or CSV
// bytes. Output structure is deterministic for identical input: same sheets,
// tables and rows in the same order.
type RenderService struct{}

func NewRenderService() *RenderService {
	return &RenderService{}
}

func (rs *RenderService) Render(data *schemas.ReportData, format models.ReportFormat) ([]byte, error) {
	switch format {
	case models.FormatPDF:
		return rs.renderPDF(data)
	case models.FormatExcel:
		return rs.renderExcel(data)
	case models.FormatCSV:
		return rs.renderCSV(data)
	default:
		return nil, &UnsupportedFormatError{Format: string(format)}
	}
}

// renderCSV writes the summary block, a blank line, then one header block and
// row set per dataset. encoding/csv applies RFC4180 quoting (fields holding a
// comma, quote or newline are quoted with doubled internal quotes).
func (rs *RenderService) renderCSV(data *schemas.ReportData) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Report", data.Metadata.ReportName}); err != nil {
		return nil, err
	}
	if err := w.Write([]string{"Generated At", data.Metadata.GeneratedAt.Format(time.RFC3339)}); err != nil {
		return nil, err
	}
	for _, metric := range data.Summary {
		if err := w.Write([]string{metric.Name, metric.Value}); err != nil {
			return nil, err
		}
	}
	w.Flush()

	for _, ds := range data.Datasets {
		buf.WriteString("\n")
		if err := w.Write([]string{ds.Name}); err != nil {
			return nil, err
		}
		if err := w.Write(ds.Columns); err != nil {
			return nil, err
		}
		for _, row := range ds.Rows {
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
		w.Flush()
	}

	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderExcel builds one workbook: first sheet Summary, one sheet per dataset.
func (rs *RenderService) renderExcel(data *schemas.ReportData) ([]byte, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", "Summary"); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return nil, err
	}

	if err := rs.writeSummarySheet(f, data, headerStyle); err != nil {
		return nil, err
	}

	used := map[string]int{"Summary": 1}
	for _, ds := range data.Datasets {
		sheetName := uniqueSheetName(SanitizeSheetName(ds.Name), used)
		if _, err := f.NewSheet(sheetName); err != nil {
			return nil, err
		}

		for col, header := range ds.Columns {
			cell, err := excelize.CoordinatesToCellName(col+1, 1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, header); err != nil {
				return nil, err
			}
			if err := f.SetCellStyle(sheetName, cell, cell, headerStyle); err != nil {
				return nil, err
			}
		}

		for rowIdx, row := range ds.Rows {
			for colIdx, value := range row {
				cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(sheetName, cell, value); err != nil {
					return nil, err
				}
			}
		}

		for col := 1; col <= len(ds.Columns); col++ {
			colName, err := excelize.ColumnNumberToName(col)
			if err != nil {
				return nil, err
			}
			if err := f.SetColWidth(sheetName, colName, colName, 18); err != nil {
				return nil, err
			}
		}
	}

	f.SetActiveSheet(0)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (rs *RenderService) writeSummarySheet(f *excelize.File, data *schemas.ReportData, headerStyle int) error {
	if err := f.SetCellValue("Summary", "A1", "Report"); err != nil {
		return err
	}
	if err := f.SetCellValue("Summary", "B1", data.Metadata.ReportName); err != nil {
		return err
	}
	if err := f.SetCellValue("Summary", "A2", "Generated At"); err != nil {
		return err
	}
	if err := f.SetCellValue("Summary", "B2", data.Metadata.GeneratedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	if err := f.SetCellStyle("Summary", "A1", "A2", headerStyle); err != nil {
		return err
	}

	row := 4
	for _, metric := range data.Summary {
		nameCell := fmt.Sprintf("A%d", row)
		valueCell := fmt.Sprintf("B%d", row)
		if err := f.SetCellValue("Summary", nameCell, metric.Name); err != nil {
			return err
		}
		if err := f.SetCellValue("Summary", valueCell, metric.Value); err != nil {
			return err
		}
		row++
	}
	return nil
}

// renderPDF produces a paginated document: title, summary section, then one
// table per dataset.
func (rs *RenderService) renderPDF(data *schemas.ReportData) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	title := data.Metadata.ReportName
	if title == "" {
		title = data.Metadata.ReportTypeID
	}
	pdf.CellFormat(0, 10, title, "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(0, 6, "Generated at "+data.Metadata.GeneratedAt.Format(time.RFC3339), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if len(data.Summary) > 0 {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, "Summary", "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		for _, metric := range data.Summary {
			pdf.CellFormat(70, 6, metric.Name, "1", 0, "L", false, 0, "")
			pdf.CellFormat(50, 6, metric.Value, "1", 1, "L", false, 0, "")
		}
		pdf.Ln(4)
	}

	for _, ds := range data.Datasets {
		pdf.SetFont("Arial", "B", 12)
		pdf.CellFormat(0, 8, ds.Name, "", 1, "L", false, 0, "")

		colWidth := 190.0
		if len(ds.Columns) > 0 {
			colWidth = 190.0 / float64(len(ds.Columns))
		}

		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for _, header := range ds.Columns {
			pdf.CellFormat(colWidth, 7, header, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range ds.Rows {
			for _, value := range row {
				pdf.CellFormat(colWidth, 6, value, "1", 0, "L", false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SanitizeSheetName maps a dataset name onto a valid Excel sheet name: at
// most 31 characters, non-alphanumeric characters replaced by underscores.
func SanitizeSheetName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	sanitized := b.String()
	if sanitized == "" {
		sanitized = "Sheet"
	}
	if len(sanitized) > maxSheetNameLen {
		sanitized = sanitized[:maxSheetNameLen]
	}
	return sanitized
}

func uniqueSheetName(base string, used map[string]int) string {
	if _, taken := used[base]; !taken {
		used[base] = 1
		return base
	}
	for i := 2; ; i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate := base
		if len(candidate)+len(suffix) > maxSheetNameLen {
			candidate = candidate[:maxSheetNameLen-len(suffix)]
		}
		candidate += suffix
		if _, taken := used[candidate]; !taken {
			used[candidate] = 1
			return candidate
		}
	}
}
