package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/xuri/excelize/v2"
)

// XLSXLedger stores rows in the active worksheet of a local XLSX workbook,
// columns A:C, mirroring the Sheets layout for offline use.
type XLSXLedger struct {
	path string
}

// NewXLSX returns a ledger backed by the workbook at path. A missing file
// reads as an empty ledger and a fresh workbook is created on first write.
func NewXLSX(path string) *XLSXLedger {
	return &XLSXLedger{path: path}
}

func (l *XLSXLedger) open() (*excelize.File, string, error) {
	f, err := excelize.OpenFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		f = excelize.NewFile()
		return f, f.GetSheetName(f.GetActiveSheetIndex()), nil
	}
	if err != nil {
		return nil, "", err
	}
	return f, f.GetSheetName(f.GetActiveSheetIndex()), nil
}

func setRowCells(f *excelize.File, sheet string, position int, row Row) error {
	cells := []struct {
		column string
		value  interface{}
	}{
		{"A", row.Date},
		{"B", row.AmountA},
		{"C", row.AmountB},
	}
	for _, cell := range cells {
		ref := fmt.Sprintf("%s%d", cell.column, position)
		if err := f.SetCellValue(sheet, ref, cell.value); err != nil {
			return err
		}
	}
	return nil
}

// Rows returns every worksheet row with cells rendered as strings.
func (l *XLSXLedger) Rows(ctx context.Context) ([][]string, error) {
	f, sheet, err := l.open()
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &ReadError{Err: err}
	}
	return rows, nil
}

// Append adds the row below the last occupied worksheet row.
func (l *XLSXLedger) Append(ctx context.Context, row Row) error {
	f, sheet, err := l.open()
	if err != nil {
		return &WriteError{Op: "append", Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return &WriteError{Op: "append", Err: err}
	}
	if err := setRowCells(f, sheet, len(rows)+1, row); err != nil {
		return &WriteError{Op: "append", Err: err}
	}
	if err := f.SaveAs(l.path); err != nil {
		return &WriteError{Op: "append", Err: err}
	}
	return nil
}

// OverwriteAt replaces cells A:C of the worksheet row at position.
func (l *XLSXLedger) OverwriteAt(ctx context.Context, position int, row Row) error {
	f, sheet, err := l.open()
	if err != nil {
		return &WriteError{Op: "overwrite", Position: position, Err: err}
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return &WriteError{Op: "overwrite", Position: position, Err: err}
	}
	if position < 1 || position > len(rows) {
		return &WriteError{
			Op:       "overwrite",
			Position: position,
			Err:      fmt.Errorf("position out of range, sheet has %d rows", len(rows)),
		}
	}

	if err := setRowCells(f, sheet, position, row); err != nil {
		return &WriteError{Op: "overwrite", Position: position, Err: err}
	}
	if err := f.SaveAs(l.path); err != nil {
		return &WriteError{Op: "overwrite", Position: position, Err: err}
	}
	return nil
}
