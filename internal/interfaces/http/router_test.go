package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Granja-api/internal/application/auth"
	"github.com/jhoicas/Granja-api/internal/bootstrap"
	"github.com/jhoicas/Granja-api/internal/infrastructure/memory"
	"github.com/jhoicas/Granja-api/internal/infrastructure/metrics"
	apphttp "github.com/jhoicas/Granja-api/internal/interfaces/http"
)

const (
	adminEmail    = "admin@granja.test"
	adminPassword = "clave-segura-123"
)

type apiClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiClient {
	t.Helper()
	deps := bootstrap.Build(bootstrap.MemoryStore(memory.New()), bootstrap.Options{
		JWT:      auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		FarmName: "Granja de prueba",
		Log:      zerolog.Nop(),
		Metrics:  metrics.New(),
	})
	require.NoError(t, deps.AuthUC.EnsureAdmin(context.Background(), adminEmail, adminPassword))

	app := fiber.New()
	apphttp.Router(app, deps)
	c := &apiClient{t: t, app: app}
	c.token = c.login(adminEmail, adminPassword)
	return c
}

func (c *apiClient) login(email, password string) string {
	c.t.Helper()
	var out struct {
		Token string `json:"token"`
	}
	status := c.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password}, &out)
	require.Equal(c.t, http.StatusOK, status)
	require.NotEmpty(c.t, out.Token)
	return out.Token
}

// do envía body como JSON con el token actual y decodifica la respuesta en out (si no es nil).
func (c *apiClient) do(method, path string, body, out any) int {
	c.t.Helper()
	resp := c.raw(method, path, body)
	defer resp.Body.Close()
	if out != nil {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *apiClient) raw(method, path string, body any) *http.Response {
	c.t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(c.t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	return resp
}

type errorBody struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details"`
}

type idBody struct {
	ID string `json:"id"`
}

func dec(t *testing.T, v any) decimal.Decimal {
	t.Helper()
	s, ok := v.(string)
	require.True(t, ok, "se esperaba un decimal serializado como string, llegó %T", v)
	return decimal.RequireFromString(s)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	api := newAPI(t)
	api.token = ""

	var out errorBody
	status := api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": "incorrecta"}, &out)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", out.Code)

	status = api.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "nadie@granja.test", "password": "incorrecta"}, &out)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	api := newAPI(t)
	api.token = ""

	var out errorBody
	assert.Equal(t, http.StatusUnauthorized, api.do(http.MethodGet, "/api/suppliers", nil, &out))
	assert.Equal(t, "MISSING_TOKEN", out.Code)
}

func TestMe(t *testing.T) {
	api := newAPI(t)

	var out map[string]string
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/auth/me", nil, &out))
	assert.Equal(t, adminEmail, out["email"])
	assert.Equal(t, "admin", out["role"])
}

func TestFeedStockFlow(t *testing.T) {
	api := newAPI(t)

	var supplier idBody
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/suppliers", map[string]any{"name": "Agroinsumos del Valle"}, &supplier))

	var dup errorBody
	assert.Equal(t, http.StatusConflict, api.do(http.MethodPost, "/api/suppliers", map[string]any{"name": "agroinsumos del valle"}, &dup))

	var flock idBody
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/flocks", map[string]any{
		"name": "Galpón 1", "type": "layer", "initial_count": 500,
	}, &flock))

	var item idBody
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/feed/inventory", map[string]any{
		"feed_type": "Levante", "brand": "Italcol", "reorder_level": 5, "unit_cost": 0,
	}, &item))

	// Compra: +10 bultos.
	var purchase idBody
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/feed/purchases", map[string]any{
		"inventory_id": item.ID, "supplier_id": supplier.ID, "quantity": 10, "price_per_bag": 95000,
	}, &purchase))

	stock := func() decimal.Decimal {
		var out map[string]any
		require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/feed/inventory/"+item.ID, nil, &out))
		return dec(t, out["current_stock"])
	}
	assert.True(t, stock().Equal(decimal.NewFromInt(10)))

	// Consumo mayor al stock: rechazo sin cambios.
	var rejected errorBody
	status := api.do(http.MethodPost, "/api/feed/consumption", map[string]any{
		"inventory_id": item.ID, "flock_id": flock.ID, "quantity_bags": 25,
	}, &rejected)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", rejected.Code)
	assert.True(t, stock().Equal(decimal.NewFromInt(10)))

	// Consumo válido: -4.
	var consumption idBody
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/feed/consumption", map[string]any{
		"inventory_id": item.ID, "flock_id": flock.ID, "quantity_bags": "4",
	}, &consumption))
	assert.True(t, stock().Equal(decimal.NewFromInt(6)))

	// Editar la compra a 12: +2.
	require.Equal(t, http.StatusOK, api.do(http.MethodPut, "/api/feed/purchases", map[string]any{
		"id": purchase.ID, "quantity": 12,
	}, nil))
	assert.True(t, stock().Equal(decimal.NewFromInt(8)))

	// Borrar el consumo devuelve los 4 bultos.
	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/feed/consumption?id="+consumption.ID, nil, nil))
	assert.True(t, stock().Equal(decimal.NewFromInt(12)))

	// Borrar la compra deja el stock en 0.
	require.Equal(t, http.StatusOK, api.do(http.MethodDelete, "/api/feed/purchases?id="+purchase.ID, nil, nil))
	assert.True(t, stock().IsZero())

	var missing errorBody
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodDelete, "/api/feed/purchases", nil, &missing))
	assert.Equal(t, "VALIDATION", missing.Code)
}

func TestPurchaseValidation(t *testing.T) {
	api := newAPI(t)

	var out errorBody
	status := api.do(http.MethodPost, "/api/feed/purchases", map[string]any{"quantity": 3}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code)
	assert.Contains(t, out.Error, "inventory_id")

	out = errorBody{}
	status = api.do(http.MethodPost, "/api/feed/purchases", map[string]any{
		"inventory_id": "it-1", "supplier_id": "sup-1", "quantity": "0.0004", "price_per_bag": "95000",
	}, &out)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", out.Code, "una cantidad fuera de escala no es stock insuficiente")
	assert.Contains(t, out.Error, "quantity")

	resp := api.raw(http.MethodPost, "/api/feed/purchases", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestViewerNoPuedeEscribir(t *testing.T) {
	api := newAPI(t)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/auth/register", map[string]any{
		"email": "lector@granja.test", "password": "lector-123456", "role": "viewer",
	}, nil))

	api.token = api.login("lector@granja.test", "lector-123456")

	var out errorBody
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodPost, "/api/suppliers", map[string]any{"name": "X"}, &out))
	assert.Equal(t, "FORBIDDEN", out.Code)

	var list map[string]any
	assert.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/suppliers", nil, &list))
	assert.Equal(t, http.StatusForbidden, api.do(http.MethodGet, "/api/users", nil, nil))
}

func TestFCR_RequiereLote(t *testing.T) {
	api := newAPI(t)

	var out errorBody
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/fcr", nil, &out))
	assert.Equal(t, "VALIDATION", out.Code)

	assert.Equal(t, http.StatusNotFound, api.do(http.MethodGet, "/api/fcr?batchId=no-existe", nil, &out))
	assert.Equal(t, "NOT_FOUND", out.Code)
}

func TestFCR_SinDatos(t *testing.T) {
	api := newAPI(t)

	var batch idBody
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/batches",
		map[string]any{"batch_number": "L-100", "type": "broiler", "start_date": "2026-09-01", "initial_count": 1000}, &batch))

	var out map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/fcr?batch_id="+batch.ID, nil, &out))
	assert.True(t, dec(t, out["fcr"]).IsZero())
	assert.Equal(t, "Not enough data", out["performance"])
}

func TestFinanceReports(t *testing.T) {
	api := newAPI(t)
	today := time.Now().UTC().Format("2006-01-02")

	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/finance/income", map[string]any{
		"date": today, "category": "egg_sales", "amount": 1500000,
	}, nil))
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/finance/expense", map[string]any{
		"date": today, "category": "feed", "amount": "400000.50",
	}, nil))

	var report struct {
		Type    string         `json:"type"`
		Summary map[string]any `json:"summary"`
	}
	path := "/api/finance/reports?startDate=" + today + "&endDate=" + today
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, path, nil, &report))
	assert.Equal(t, "summary", report.Type)
	assert.True(t, dec(t, report.Summary["total_income"]).Equal(decimal.NewFromInt(1500000)))
	assert.True(t, dec(t, report.Summary["total_expense"]).Equal(decimal.RequireFromString("400000.50")))

	var out errorBody
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/finance/reports?type=cost_analysis", nil, &out))
	assert.Equal(t, http.StatusBadRequest, api.do(http.MethodGet, "/api/finance/reports?type=balance", nil, &out))

	resp := api.raw(http.MethodGet, "/api/finance/reports/pdf?type=profit_loss&start_date="+today+"&end_date="+today, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_profit_loss_")
	pdf, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestDashboardSummary(t *testing.T) {
	api := newAPI(t)
	require.Equal(t, http.StatusCreated, api.do(http.MethodPost, "/api/flocks", map[string]any{
		"name": "Galpón 2", "initial_count": 300,
	}, nil))

	var out map[string]any
	require.Equal(t, http.StatusOK, api.do(http.MethodGet, "/api/dashboard/summary", nil, &out))
	assert.EqualValues(t, 1, out["active_flocks"])
	assert.EqualValues(t, 300, out["total_birds"])
}

func TestMetricsEndpoint(t *testing.T) {
	api := newAPI(t)
	api.do(http.MethodGet, "/api/fcr", nil, nil)

	resp := api.raw(http.MethodGet, "/metrics", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	text := string(body)
	assert.True(t, strings.Contains(text, "granja_http_requests_total"))
	assert.Contains(t, text, `route="/api/fcr"`)
}

func TestRateLimit(t *testing.T) {
	app := fiber.New()
	app.Use(apphttp.RateLimit(apphttp.RateLimitConfig{RPS: 0.001, Burst: 1}))
	app.All("/x", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	send := func(method string) int {
		resp, err := app.Test(httptest.NewRequest(method, "/x", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusNoContent, send(http.MethodPost))
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost))
	// Las lecturas no consumen cupo.
	assert.Equal(t, http.StatusNoContent, send(http.MethodGet))
}
