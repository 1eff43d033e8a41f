package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf/v2"
)

type ReportLine struct {
	WorkDay     string
	EmployeeID  string
	FullName    string
	TimeIn      string
	TimeOut     string
	Status      string
	HoursWorked string
}

// MonthlyReportPDF renders the attendance report for one month and
// returns the path of the generated file.
func MonthlyReportPDF(schoolName, month string, lines []ReportLine) (string, error) {
	targetPath := filepath.Join(baseDir, "reports")
	if _, err := os.Stat(targetPath); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(targetPath, os.ModePerm); err != nil {
			return "", err
		}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, schoolName)
	pdf.Ln(8)
	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 8, fmt.Sprintf("Attendance report: %s", month))
	pdf.Ln(12)

	headers := []string{"Date", "Employee ID", "Full Name", "Time In", "Time Out", "Status", "Hours"}
	widths := []float64{28, 32, 70, 25, 25, 30, 20}

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(230, 230, 230)
	for i, header := range headers {
		pdf.CellFormat(widths[i], 8, header, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, line := range lines {
		values := []string{line.WorkDay, line.EmployeeID, line.FullName, line.TimeIn, line.TimeOut, line.Status, line.HoursWorked}
		for i, value := range values {
			pdf.CellFormat(widths[i], 7, value, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	path := filepath.Join(targetPath, fmt.Sprintf("attendance-%s.pdf", month))
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("error saving report: %w", err)
	}

	return path, nil
}
