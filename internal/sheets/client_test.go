package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

func TestWithRetryExhaustsAttempts(t *testing.T) {
	c := &Client{log: zap.NewNop()}

	calls := 0
	err := c.withRetry(context.Background(), "read test", func(ctx context.Context) error {
		calls++
		// Each attempt runs under its own deadline.
		_, hasDeadline := ctx.Deadline()
		assert.True(t, hasDeadline)
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Equal(t, maxAttempts, calls)
	assert.Contains(t, err.Error(), "failed after 3 attempts")
}

func TestWithRetryRecoversWithinBudget(t *testing.T) {
	c := &Client{log: zap.NewNop()}

	calls := 0
	err := c.withRetry(context.Background(), "read test", func(ctx context.Context) error {
		calls++
		if calls == 1 {
			return errors.New("transient")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestWithRetryStopsWhenContextCanceled(t *testing.T) {
	c := &Client{log: zap.NewNop()}
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	err := c.withRetry(ctx, "read test", func(context.Context) error {
		calls++
		cancel()
		return errors.New("boom")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	// The backoff wait is abandoned instead of burning the remaining attempts.
	assert.Equal(t, 1, calls)
}

// sheetServer fakes the Values API: reads answer with the given rows,
// updates are recorded.
type sheetServer struct {
	values  [][]interface{}
	updates []string
}

func (s *sheetServer) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_ = json.NewEncoder(w).Encode(&sheetsapi.ValueRange{Values: s.values})
		case http.MethodPut:
			s.updates = append(s.updates, r.URL.String())
			_ = json.NewEncoder(w).Encode(&sheetsapi.UpdateValuesResponse{})
		default:
			http.Error(w, "unexpected method", http.StatusMethodNotAllowed)
		}
	})
}

func newTestClient(t *testing.T, server *sheetServer) *Client {
	t.Helper()
	ts := httptest.NewServer(server.handler())
	t.Cleanup(ts.Close)

	svc, err := sheetsapi.NewService(context.Background(),
		option.WithoutAuthentication(),
		option.WithEndpoint(ts.URL+"/"),
	)
	require.NoError(t, err)
	return &Client{svc: svc, log: zap.NewNop()}
}

func TestAppendRowGuardsAgainstConcurrentAppend(t *testing.T) {
	server := &sheetServer{values: [][]interface{}{
		{"Asset Name", "Status"},
		{"Spring Launch", "Uploaded"},
		{"Holiday Spot", "Complete"},
	}}
	client := newTestClient(t, server)

	// The caller last saw one data row; the sheet now has two.
	err := client.AppendRow(context.Background(), "sheet-id", "Sheet1", 1, []string{"New Asset", "Uploaded"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRowCountChanged)
	assert.Empty(t, server.updates)
}

func TestAppendRowWritesFirstFreeRow(t *testing.T) {
	server := &sheetServer{values: [][]interface{}{
		{"Asset Name", "Status"},
		{"Spring Launch", "Uploaded"},
		{"Holiday Spot", "Complete"},
	}}
	client := newTestClient(t, server)

	err := client.AppendRow(context.Background(), "sheet-id", "Sheet1", 2, []string{"New Asset", "Uploaded"})
	require.NoError(t, err)

	// Two data rows plus the header put the new row at sheet row 4.
	require.Len(t, server.updates, 1)
	assert.Contains(t, server.updates[0], "A4")
	assert.Contains(t, server.updates[0], "valueInputOption=USER_ENTERED")
}

func TestAppendRowSkipsGuardWhenUnset(t *testing.T) {
	server := &sheetServer{values: [][]interface{}{
		{"Asset Name", "Status"},
		{"Spring Launch", "Uploaded"},
	}}
	client := newTestClient(t, server)

	err := client.AppendRow(context.Background(), "sheet-id", "Sheet1", -1, []string{"New Asset", "Uploaded"})
	require.NoError(t, err)
	assert.Len(t, server.updates, 1)
}

func TestReadTablePadsRaggedRows(t *testing.T) {
	server := &sheetServer{values: [][]interface{}{
		{"Asset Name", "Status", "Brand"},
		{"Spring Launch", "Uploaded"},
	}}
	client := newTestClient(t, server)

	table, err := client.ReadTable(context.Background(), "sheet-id", "Sheet1")
	require.NoError(t, err)
	require.Equal(t, 1, table.RowCount())
	assert.Equal(t, []string{"Spring Launch", "Uploaded", ""}, table.Rows[0])
}
