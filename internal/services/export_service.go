package services

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"github.com/sjperalta/fintera-ledger/internal/lending"
	"github.com/xuri/excelize/v2"
)

var bucketLabels = map[string]string{
	lending.BucketCurrent: "0 - 30 días",
	lending.Bucket31To60:  "31 - 60 días",
	lending.Bucket61To90:  "61 - 90 días",
	lending.Bucket90Plus:  "Más de 90 días",
}

type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

func ageingFilename(report *AgeingReport, ext string) string {
	return fmt.Sprintf("ageing_report_%d_%s.%s", report.TenantID, report.AsOf.Format("2006-01-02"), ext)
}

func (s *ExportService) AgeingCSV(report *AgeingReport) ([]byte, string, error) {
	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Antigüedad de Cartera", report.AsOf.Format("2006-01-02")})
	_ = writer.Write([]string{"Rango", "Préstamos", "Monto"})
	for _, bucket := range lending.Buckets {
		entry := report.AgeingBreakdown[bucket]
		_ = writer.Write([]string{bucketLabels[bucket], fmt.Sprintf("%d", entry.Count), fmt.Sprintf("%.2f", entry.Amount)})
	}
	_ = writer.Write([]string{"Total", "", fmt.Sprintf("%.2f", report.TotalAgeingAmount)})

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ageingFilename(report, "csv"), nil
}

func (s *ExportService) AgeingXLSX(report *AgeingReport) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Antiguedad"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 14},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	amountStyle, _ := f.NewStyle(&excelize.Style{NumFmt: 4})

	_ = f.SetCellValue(sheet, "A1", "Antigüedad de Cartera")
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)
	_ = f.SetCellValue(sheet, "A2", report.AsOf.Format("2006-01-02"))

	_ = f.SetCellValue(sheet, "A4", "Rango")
	_ = f.SetCellValue(sheet, "B4", "Préstamos")
	_ = f.SetCellValue(sheet, "C4", "Monto")

	row := 5
	for _, bucket := range lending.Buckets {
		entry := report.AgeingBreakdown[bucket]
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), bucketLabels[bucket])
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.Count)
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.Amount)
		row++
	}
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total")
	_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), report.TotalAgeingAmount)
	_ = f.SetCellStyle(sheet, "C5", fmt.Sprintf("C%d", row), amountStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ageingFilename(report, "xlsx"), nil
}

func (s *ExportService) AgeingPDF(report *AgeingReport) ([]byte, string, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, tr("Antigüedad de Cartera"))
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	pdf.Cell(40, 10, report.AsOf.Format("2006-01-02"))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Rango", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, tr("Préstamos"), "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, "Monto", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, bucket := range lending.Buckets {
		entry := report.AgeingBreakdown[bucket]
		pdf.CellFormat(60, 8, tr(bucketLabels[bucket]), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", entry.Count), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%.2f HNL", entry.Amount), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 8, "Total", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, fmt.Sprintf("%.2f HNL", report.TotalAgeingAmount), "1", 1, "R", false, 0, "")

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), ageingFilename(report, "pdf"), nil
}
