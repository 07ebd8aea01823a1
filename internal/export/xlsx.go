package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Freeeeeet/sampark_kvk/internal/model"
)

// ContentType MIME-тип xlsx
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportCard табель ученика: предметы, баллы, оценки и итог
func ReportCard(student model.Student, marks []model.ExamMark) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Report Card"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	header := [][]any{
		{"Student", student.Name},
		{"Class", student.Class},
		{"Roll No", student.RollNo},
		{"Attendance", fmt.Sprintf("%d%%", student.AttendancePercent())},
	}
	for i, row := range header {
		if err := setRow(f, sheet, i+1, row); err != nil {
			return nil, err
		}
	}

	const tableStart = 6
	if err := setRow(f, sheet, tableStart, []any{"Subject", "Exam", "Marks Obtained", "Total", "Grade"}); err != nil {
		return nil, err
	}
	for i, m := range marks {
		row := []any{m.Subject, string(m.ExamType), m.Marks, m.Total, m.Grade()}
		if err := setRow(f, sheet, tableStart+1+i, row); err != nil {
			return nil, err
		}
	}

	scored, total := model.Totals(marks)
	if err := setRow(f, sheet, tableStart+1+len(marks), []any{"Total", "", scored, total, ""}); err != nil {
		return nil, err
	}

	if err := styleHeader(f, sheet, tableStart, 5); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "A", "A", 20); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}
	if err := f.SetColWidth(sheet, "B", "E", 16); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return write(f)
}

// AttendanceRegister отметка посещаемости класса за день
func AttendanceRegister(reg model.AttendanceRegister, students []model.Student) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Attendance"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := setRow(f, sheet, 1, []any{"Class", reg.Class, "Date", reg.Date}); err != nil {
		return nil, err
	}

	const tableStart = 3
	if err := setRow(f, sheet, tableStart, []any{"Roll No", "Student", "Status"}); err != nil {
		return nil, err
	}
	for i, s := range students {
		status := "Absent"
		if present, ok := reg.Present[s.ID]; !ok || present {
			status = "Present"
		}
		if err := setRow(f, sheet, tableStart+1+i, []any{s.RollNo, s.Name, status}); err != nil {
			return nil, err
		}
	}

	present, absent := reg.Counts()
	if err := setRow(f, sheet, tableStart+2+len(students), []any{"Present", present, "Absent", absent}); err != nil {
		return nil, err
	}

	if err := styleHeader(f, sheet, tableStart, 3); err != nil {
		return nil, err
	}
	if err := f.SetColWidth(sheet, "B", "B", 24); err != nil {
		return nil, fmt.Errorf("set column width: %w", err)
	}

	return write(f)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("cell name: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("set cell %s: %w", cell, err)
		}
	}
	return nil
}

func styleHeader(f *excelize.File, sheet string, row, cols int) error {
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}

	first, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}

	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return fmt.Errorf("set header style: %w", err)
	}
	return nil
}

func write(f *excelize.File) ([]byte, error) {
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
