package dossier

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"credit-conveyor/internal/usecase/deal"
)

// RenderAgreement builds the credit agreement workbook: one sheet with the
// final loan terms, one with the full payment schedule.
func RenderAgreement(data *deal.DocumentData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const terms = "Agreement"
	f.SetSheetName(f.GetSheetName(0), terms)
	_ = f.SetDocProps(&excelize.DocProperties{Creator: "credit-conveyor"})

	cr := data.Credit
	borrower := strings.TrimSpace(data.LastName + " " + data.FirstName + " " + data.MiddleName)
	rows := [][]any{
		{"Borrower", borrower},
		{"Birth date", data.BirthDate.Format("2006-01-02")},
		{"Credit ID", cr.ID},
		{"Amount", cr.Amount.StringFixed(2)},
		{"Term, months", cr.Term},
		{"Monthly payment", cr.MonthlyPayment.StringFixed(2)},
		{"Yearly rate", cr.Rate.String()},
		{"Total cost", cr.PSK.StringFixed(2)},
		{"Insurance enabled", cr.InsuranceEnabled},
		{"Salary client", cr.SalaryClient},
	}
	for i, row := range rows {
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+1)
			_ = f.SetCellValue(terms, cell, v)
		}
	}

	const schedule = "Schedule"
	if _, err := f.NewSheet(schedule); err != nil {
		return nil, fmt.Errorf("new sheet: %w", err)
	}
	headers := []string{"#", "Date", "Total payment", "Interest", "Principal", "Remaining debt"}
	for j, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(j+1, 1)
		_ = f.SetCellValue(schedule, cell, h)
	}
	for i, e := range cr.Schedule {
		row := []any{
			e.Number,
			e.Date.Format("2006-01-02"),
			e.TotalPayment.StringFixed(2),
			e.InterestPayment.StringFixed(2),
			e.DebtPayment.StringFixed(2),
			e.RemainingDebt.StringFixed(2),
		}
		for j, v := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			_ = f.SetCellValue(schedule, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
