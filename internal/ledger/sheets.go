package ledger

import (
	"context"
	"fmt"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/dvloznov/ledger-sync/internal/config"
)

// SheetsLedger stores rows in one Google Sheets worksheet, columns A:C.
type SheetsLedger struct {
	svc           *sheets.Service
	spreadsheetID string
	sheetName     string
}

// NewSheets connects to the spreadsheet named by cfg using a service-account
// credentials file. When cfg.SheetName is empty the spreadsheet's first
// worksheet is used.
func NewSheets(ctx context.Context, cfg config.LedgerConfig) (*SheetsLedger, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(cfg.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope, sheets.DriveScope),
	)
	if err != nil {
		return nil, fmt.Errorf("NewSheets: creating service: %w", err)
	}

	name := cfg.SheetName
	if name == "" {
		meta, err := svc.Spreadsheets.Get(cfg.SheetID).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("NewSheets: reading spreadsheet metadata: %w", err)
		}
		if len(meta.Sheets) == 0 || meta.Sheets[0].Properties == nil {
			return nil, fmt.Errorf("NewSheets: spreadsheet %s has no worksheets", cfg.SheetID)
		}
		name = meta.Sheets[0].Properties.Title
	}

	return &SheetsLedger{
		svc:           svc,
		spreadsheetID: cfg.SheetID,
		sheetName:     name,
	}, nil
}

// Rows returns every worksheet row with each cell rendered as a string.
func (l *SheetsLedger) Rows(ctx context.Context) ([][]string, error) {
	resp, err := l.svc.Spreadsheets.Values.Get(l.spreadsheetID, l.sheetName).Context(ctx).Do()
	if err != nil {
		return nil, &ReadError{Err: err}
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Append adds the row below the worksheet's current data region.
func (l *SheetsLedger) Append(ctx context.Context, row Row) error {
	values := &sheets.ValueRange{
		Values: [][]interface{}{{row.Date, row.AmountA, row.AmountB}},
	}

	_, err := l.svc.Spreadsheets.Values.
		Append(l.spreadsheetID, l.sheetName, values).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return &WriteError{Op: "append", Err: err}
	}
	return nil
}

// OverwriteAt replaces cells A:C of the worksheet row at position.
func (l *SheetsLedger) OverwriteAt(ctx context.Context, position int, row Row) error {
	rangeRef := fmt.Sprintf("'%s'!A%d:C%d", l.sheetName, position, position)
	values := &sheets.ValueRange{
		Values: [][]interface{}{{row.Date, row.AmountA, row.AmountB}},
	}

	_, err := l.svc.Spreadsheets.Values.
		Update(l.spreadsheetID, rangeRef, values).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return &WriteError{Op: "overwrite", Position: position, Err: err}
	}
	return nil
}
