package maintenance

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"farm-manager/core/ledger"
	"farm-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, ledger.Ledger) {
	svc, l := setupTestService(t, reconcile.Options{})
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, l
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestHandleCreateAndUpdate(t *testing.T) {
	app, l := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/maintenance",
		`{"machine_id": 4, "type": "supply", "description": "oil change", "performed_at": "2024-05-01", "motorOilUsed": true, "motorOilQuantity": 6}`)
	require.Equal(t, 201, status)

	event := body["event"].(map[string]any)
	assert.Equal(t, float64(4), event["machine_id"])
	assert.Equal(t, "oil change", event["description"])
	stockReport := body["stock"].(map[string]any)
	assert.Len(t, stockReport["applied"], 1)
	assert.Empty(t, stockReport["failed"])

	p, err := l.Get(context.Background(), ledger.MotorOil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(4).Equal(p.Quantity))

	id := int(event["id"].(float64))
	status, body = doJSON(t, app, "PATCH", "/maintenance/"+strconv.Itoa(id), `{"motorOilQuantity": "2"}`)
	require.Equal(t, 200, status)
	applied := body["stock"].(map[string]any)["applied"].([]any)
	require.Len(t, applied, 1)
	assert.Equal(t, "4", applied[0].(map[string]any)["quantity"])

	p, err = l.Get(context.Background(), ledger.MotorOil)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(8).Equal(p.Quantity))
}

func TestHandleCreate_ReportsFailures(t *testing.T) {
	app, _ := setupTestApp(t)

	status, body := doJSON(t, app, "POST", "/maintenance",
		`{"type": "supply", "motorOilUsed": true, "motorOilQuantity": 60}`)
	require.Equal(t, 201, status)

	failed := body["stock"].(map[string]any)["failed"].([]any)
	require.Len(t, failed, 1)
	f := failed[0].(map[string]any)
	assert.Equal(t, ledger.MotorOil, f["product"])
	assert.Equal(t, "10", f["current"])
	assert.Contains(t, f["error"], "insufficient stock")
}

func TestHandleCreate_BadRequests(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: `motorOil=6`},
		{name: "missing type", body: `{"motorOilUsed": true}`},
		{name: "bad date", body: `{"type": "supply", "performed_at": "yesterday"}`},
		{name: "bad machine", body: `{"type": "supply", "machine_id": "tractor"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := doJSON(t, app, "POST", "/maintenance", tt.body)
			assert.Equal(t, 400, status)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleGetListDelete(t *testing.T) {
	app, _ := setupTestApp(t)

	_, body := doJSON(t, app, "POST", "/maintenance", `{"type": "repair", "machine_id": 2}`)
	id := strconv.Itoa(int(body["event"].(map[string]any)["id"].(float64)))

	status, body := doJSON(t, app, "GET", "/maintenance/"+id, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, "repair", body["type"])

	req := httptest.NewRequest("GET", "/maintenance?type=repair", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)

	status, body = doJSON(t, app, "DELETE", "/maintenance/"+id, "")
	assert.Equal(t, 200, status)
	assert.Equal(t, true, body["stock"].(map[string]any)["skipped"])

	status, _ = doJSON(t, app, "GET", "/maintenance/"+id, "")
	assert.Equal(t, 404, status)

	status, _ = doJSON(t, app, "GET", "/maintenance/abc", "")
	assert.Equal(t, 400, status)
}

func TestParseInput(t *testing.T) {
	in, err := ParseInput([]byte(`{"type": "supply", "machine_id": "7", "supplies": {"greaseUsed": "yes", "greaseQuantity": 1.25}, "oilFilter": true}`))
	require.NoError(t, err)
	require.NotNil(t, in.Type)
	assert.Equal(t, "supply", *in.Type)
	require.NotNil(t, in.MachineID)
	assert.Equal(t, uint(7), *in.MachineID)
	assert.Nil(t, in.Description)
	assert.Equal(t, "yes", in.Supplies["greaseUsed"])
	assert.Equal(t, json.Number("1.25"), in.Supplies["greaseQuantity"])
	assert.Equal(t, true, in.Supplies["oilFilter"])

	_, err = ParseInput([]byte(`{"type": 3}`))
	assert.ErrorIs(t, err, ErrInvalidEvent)

	_, err = ParseInput([]byte(`{"supplies": [1]}`))
	assert.ErrorIs(t, err, ErrInvalidEvent)
}
