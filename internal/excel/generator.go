package excel

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/nurpe/employeehub/internal/model"
)

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Contracts writes a summary sheet plus one sheet per contract listing its subcontracts.
func (g *Generator) Contracts(register model.ContractRegister) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	summarySheet := "Contracts"
	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	g.writeRegister(file, summarySheet, register)

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, contract := range register.Contracts {
		if len(contract.SubContracts) == 0 {
			continue
		}
		sheetName := buildSheetName(contract.Name, contract.ID, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		g.writeSubContracts(file, sheetName, contract)
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (g *Generator) writeRegister(file *excelize.File, sheet string, register model.ContractRegister) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Generated")
	set("B1", formatDateTime(register.GeneratedAt))
	set("A2", "Filter")
	set("B2", register.Query)
	set("A3", "Contracts")
	set("B3", len(register.Contracts))

	tableRow := 5
	headers := []string{"ID", "Name", "Customer", "Owner", "Status", "Created", "Deadline", "Days left", "Subcontracts"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, contract := range register.Contracts {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), contract.ID)
		set(fmt.Sprintf("B%d", row), contract.Name)
		set(fmt.Sprintf("C%d", row), customerName(contract.Customer))
		set(fmt.Sprintf("D%d", row), userName(contract.User))
		set(fmt.Sprintf("E%d", row), string(contract.Status))
		set(fmt.Sprintf("F%d", row), formatDate(contract.CreatedAt))
		set(fmt.Sprintf("G%d", row), formatDate(contract.Deadline))
		set(fmt.Sprintf("H%d", row), contract.DaysLeft())
		set(fmt.Sprintf("I%d", row), len(contract.SubContracts))
	}

	_ = file.SetColWidth(sheet, "A", "A", 8)
	_ = file.SetColWidth(sheet, "B", "D", 32)
	_ = file.SetColWidth(sheet, "E", "I", 14)
}

func (g *Generator) writeSubContracts(file *excelize.File, sheet string, contract model.Contract) {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Contract")
	set("B1", contract.Name)
	set("A2", "Customer")
	set("B2", customerName(contract.Customer))
	set("A3", "Deadline")
	set("B3", formatDate(contract.Deadline))

	tableRow := 5
	headers := []string{"Code", "Name", "Status", "Created", "Days left"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}

	for i, sub := range contract.SubContracts {
		row := tableRow + 1 + i
		parent := contract
		sub.Contract = &parent
		set(fmt.Sprintf("A%d", row), sub.Code())
		set(fmt.Sprintf("B%d", row), sub.Name)
		set(fmt.Sprintf("C%d", row), string(sub.Status))
		set(fmt.Sprintf("D%d", row), formatDate(sub.CreatedAt))
		set(fmt.Sprintf("E%d", row), sub.DaysLeft())
	}

	_ = file.SetColWidth(sheet, "A", "A", 10)
	_ = file.SetColWidth(sheet, "B", "B", 40)
	_ = file.SetColWidth(sheet, "C", "E", 14)
}

func (g *Generator) Employees(users []model.User) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := "Employees"
	if err := file.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	headers := []string{"ID", "Username", "First name", "Last name", "Email", "Active", "Joined"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = file.SetCellValue(sheet, cell, header)
	}
	for i, user := range users {
		row := i + 2
		values := []interface{}{
			user.ID,
			user.Username,
			user.FirstName,
			user.LastName,
			user.Email,
			yesNo(user.IsActive),
			formatDate(user.CreatedAt),
		}
		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			_ = file.SetCellValue(sheet, cell, value)
		}
	}
	_ = file.SetColWidth(sheet, "A", "A", 8)
	_ = file.SetColWidth(sheet, "B", "E", 24)

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildSheetName(name string, id uint, used map[string]struct{}) string {
	base := strings.TrimSpace(name)
	if base == "" {
		base = fmt.Sprintf("Contract %d", id)
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	value = strings.TrimSpace(value)
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

func customerName(c *model.Customer) string {
	if c == nil {
		return ""
	}
	return c.FullName()
}

func userName(u *model.User) string {
	if u == nil {
		return ""
	}
	if name := u.FullName(); name != "" {
		return name
	}
	return u.Username
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}
