// Package sheets adapts the Google Sheets API to the two operations the
// portal needs: read a whole tab, and append exactly one row.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// ErrStoreUnavailable is returned once the retry budget for a spreadsheet
// call is exhausted. The interaction is abandoned, not silently swallowed;
// callers surface a refresh-and-retry message.
var ErrStoreUnavailable = errors.New("spreadsheet store unavailable")

// ErrRowCountChanged is returned when an append finds more rows than the
// caller last read, meaning someone else appended in between.
var ErrRowCountChanged = errors.New("spreadsheet row count changed since last read")

const (
	maxAttempts    = 3
	retryBackoff   = 1 * time.Second
	requestTimeout = 7 * time.Second
)

type Client struct {
	svc *sheetsapi.Service
	log *zap.Logger
}

// NewClient builds a Sheets client from service-account credentials JSON.
func NewClient(ctx context.Context, credentialsJSON []byte, log *zap.Logger) (*Client, error) {
	svc, err := sheetsapi.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheetsapi.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &Client{svc: svc, log: log}, nil
}

// ReadTable reads a whole tab as a header row plus data rows. Ragged rows
// are padded to the header's width.
func (c *Client) ReadTable(ctx context.Context, spreadsheetID, sheetName string) (*Table, error) {
	var resp *sheetsapi.ValueRange
	err := c.withRetry(ctx, "read "+sheetName, func(ctx context.Context) error {
		var err error
		resp, err = c.svc.Spreadsheets.Values.
			Get(spreadsheetID, fmt.Sprintf("'%s'", sheetName)).
			Context(ctx).
			Do()
		return err
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Values) == 0 {
		return &Table{}, nil
	}

	header := stringifyRow(resp.Values[0], len(resp.Values[0]))
	table := &Table{Header: header, Rows: make([][]string, 0, len(resp.Values)-1)}
	for _, raw := range resp.Values[1:] {
		table.Rows = append(table.Rows, stringifyRow(raw, len(header)))
	}
	return table, nil
}

// AppendRow writes one row at the first free 1-indexed position without
// rewriting the rest of the table. expectedRows is the data-row count the
// caller last observed; a mismatch aborts with ErrRowCountChanged so the
// caller can re-read instead of overwriting a concurrent append. Pass a
// negative expectedRows to skip the check.
func (c *Client) AppendRow(ctx context.Context, spreadsheetID, sheetName string, expectedRows int, row []string) error {
	table, err := c.ReadTable(ctx, spreadsheetID, sheetName)
	if err != nil {
		return err
	}

	if expectedRows >= 0 && table.RowCount() != expectedRows {
		return fmt.Errorf("%w: expected %d rows, found %d",
			ErrRowCountChanged, expectedRows, table.RowCount())
	}

	// header occupies sheet row 1, so data row N lives at sheet row N+1
	targetRow := table.RowCount() + 2

	values := make([]interface{}, len(row))
	for i, cell := range row {
		values[i] = cell
	}
	valueRange := &sheetsapi.ValueRange{Values: [][]interface{}{values}}

	return c.withRetry(ctx, "append "+sheetName, func(ctx context.Context) error {
		_, err := c.svc.Spreadsheets.Values.
			Update(spreadsheetID, fmt.Sprintf("'%s'!A%d", sheetName, targetRow), valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		return err
	})
}

// withRetry runs fn up to maxAttempts times with a fixed backoff, each
// attempt under its own request timeout.
func (c *Client) withRetry(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, requestTimeout)
		err := fn(attemptCtx)
		cancel()
		if err == nil {
			return nil
		}
		lastErr = err

		c.log.Warn("spreadsheet call failed",
			zap.String("op", op),
			zap.Int("attempt", attempt),
			zap.Error(err),
		)

		if attempt < maxAttempts {
			select {
			case <-time.After(retryBackoff):
			case <-ctx.Done():
				return fmt.Errorf("%w: %v", ErrStoreUnavailable, ctx.Err())
			}
		}
	}
	return fmt.Errorf("%w: failed after %d attempts: %v", ErrStoreUnavailable, maxAttempts, lastErr)
}

func stringifyRow(raw []interface{}, width int) []string {
	row := make([]string, width)
	for i := 0; i < width && i < len(raw); i++ {
		if raw[i] != nil {
			row[i] = fmt.Sprint(raw[i])
		}
	}
	return row
}
