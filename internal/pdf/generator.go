package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/nurpe/employeehub/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Contract renders a one-page contract sheet followed by its subcontracts table.
func (g *Generator) Contract(sheet model.ContractSheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle(fmt.Sprintf("Contract %d", sheet.Contract.ID), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	contract := sheet.Contract

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Contract #%d: %s", contract.ID, contract.Name)), "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", formatDateTime(sheet.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Details", "", 1, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	lines := []string{
		fmt.Sprintf("Customer: %s", safeValue(customerName(contract.Customer))),
		fmt.Sprintf("Owner: %s", safeValue(userName(contract.User))),
		fmt.Sprintf("Status: %s", safeValue(string(contract.Status))),
		fmt.Sprintf("Created: %s", formatDate(contract.CreatedAt)),
		fmt.Sprintf("Deadline: %s (%d days)", formatDate(contract.Deadline), contract.DaysLeft()),
	}
	for _, line := range lines {
		pdf.MultiCell(0, 5, tr(line), "", "L", false)
	}
	pdf.Ln(4)

	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, "Subcontracts", "", 1, "L", false, 0, "")

	if len(contract.SubContracts) == 0 {
		pdf.SetFont(fontName, "", 10)
		pdf.CellFormat(0, 6, "No subcontracts.", "", 1, "L", false, 0, "")
	} else {
		widths := []float64{20, 85, 30, 25, 20}
		drawTableRow(pdf, []string{"Code", "Name", "Status", "Created", "Days"}, widths, true)
		for _, sub := range contract.SubContracts {
			parent := contract
			sub.Contract = &parent
			drawTableRow(pdf, []string{
				sub.Code(),
				tr(sub.Name),
				string(sub.Status),
				formatDate(sub.CreatedAt),
				fmt.Sprintf("%d", sub.DaysLeft()),
			}, widths, false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTableRow(pdf *gofpdf.Fpdf, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	for i, col := range cols {
		align := "L"
		if i == len(cols)-1 {
			align = "R"
		}
		pdf.CellFormat(widths[i], 8, col, "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
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

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02.01.2006 15:04")
}
