package service

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

const employeeSheet = "Employees"

type EmployeeRow struct {
	EmployeeID     string
	FullName       string
	DepartmentName string
	PositionName   string
	WorkType       string
	Phone          string
	Email          string
	RfidUID        string
}

func AddDataToExcel(employees []EmployeeRow, fileName string) error {
	var f *excelize.File
	sheet := employeeSheet
	// Check if file exists
	if _, err := os.Stat(fileName); os.IsNotExist(err) {
		// File does not exist, create a new one
		f = excelize.NewFile()
		f.SetSheetName("Sheet1", sheet)

		// Set headers in the first row
		headers := []string{"Employee ID", "Full Name", "Department Name", "Position Name", "Work Type", "Phone Number", "Email", "RFID Badge"}
		for i, header := range headers {
			cell := fmt.Sprintf("%c1", 'A'+i)
			f.SetCellValue(sheet, cell, header)
		}
	} else {
		// File exists, open it
		f, err = excelize.OpenFile(fileName)
		if err != nil {
			return fmt.Errorf("error opening file: %w", err)
		}
	}

	// Find the next empty row
	rowNum := 2
	for {
		cell, _ := f.GetCellValue(sheet, fmt.Sprintf("A%d", rowNum))
		if cell == "" {
			break
		}
		rowNum++
	}

	// Populate rows with data starting from the next empty row
	for _, entry := range employees {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), entry.EmployeeID)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", rowNum), entry.FullName)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", rowNum), entry.DepartmentName)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", rowNum), entry.PositionName)
		f.SetCellValue(sheet, fmt.Sprintf("E%d", rowNum), entry.WorkType)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", rowNum), entry.Phone)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", rowNum), entry.Email)
		f.SetCellValue(sheet, fmt.Sprintf("H%d", rowNum), entry.RfidUID)
		rowNum++
	}

	// Save the file
	if err := f.SaveAs(fileName); err != nil {
		return fmt.Errorf("error saving file: %w", err)
	}
	return nil
}

type ImportRow struct {
	EmployeeID   string
	FullName     string
	Password     string
	DepartmentID int
	PositionID   int
	Phone        string
	Email        string
}

// ReadEmployeeRows parses a bulk-import spreadsheet. Department and
// position columns carry names which are resolved through the given maps;
// rows that fail validation are reported by their 1-based row number.
func ReadEmployeeRows(filePath string, departmentMap, positionMap map[string]int, existingIDs map[string]struct{}) ([]ImportRow, []int, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()

	rows, err := f.GetRows(employeeSheet)
	if err != nil {
		return nil, nil, err
	}

	emailRegex := regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneRegex := regexp.MustCompile(`^\+?\d+$`)

	var imported []ImportRow
	var incompleteRows []int
	localEmployeeIDs := make(map[string]int) // Track IDs in current file

	for i, row := range rows {
		if i == 0 {
			continue // Skip header
		}
		rowNumber := i + 1

		if len(row) < 5 {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		employeeID := strings.TrimSpace(row[0])
		fullName := strings.TrimSpace(row[1])
		password := strings.TrimSpace(row[2])
		department := strings.TrimSpace(row[3])
		position := strings.TrimSpace(row[4])
		phone := ""
		if len(row) > 5 {
			phone = strings.TrimSpace(row[5])
		}
		email := ""
		if len(row) > 6 {
			email = strings.TrimSpace(row[6])
		}

		// Mandatory fields check
		if employeeID == "" || fullName == "" || password == "" || department == "" || position == "" {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		// Employee ID uniqueness checks
		if _, exists := existingIDs[employeeID]; exists {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if prevRow, exists := localEmployeeIDs[employeeID]; exists {
			incompleteRows = append(incompleteRows, prevRow, rowNumber)
			continue
		}

		// Department/Position validation
		departmentID, deptOK := departmentMap[department]
		positionID, posOK := positionMap[position]
		if !deptOK || !posOK {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		if email != "" && !emailRegex.MatchString(email) {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}
		if phone != "" && !phoneRegex.MatchString(phone) {
			incompleteRows = append(incompleteRows, rowNumber)
			continue
		}

		localEmployeeIDs[employeeID] = rowNumber

		imported = append(imported, ImportRow{
			EmployeeID:   employeeID,
			FullName:     fullName,
			Password:     password,
			DepartmentID: departmentID,
			PositionID:   positionID,
			Phone:        phone,
			Email:        email,
		})
	}

	return imported, incompleteRows, nil
}
