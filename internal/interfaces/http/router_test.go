package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/sweetshop-api/internal/application/auth"
	"github.com/jhoicas/sweetshop-api/internal/application/dto"
	"github.com/jhoicas/sweetshop-api/internal/application/inventory"
	"github.com/jhoicas/sweetshop-api/internal/application/usecase"
	"github.com/jhoicas/sweetshop-api/internal/infrastructure/memory"
	"github.com/jhoicas/sweetshop-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/sweetshop-api/internal/interfaces/http"
	"github.com/jhoicas/sweetshop-api/pkg/logger"
)

const (
	adminEmail    = "admin@sweets.test"
	adminPassword = "admin123"
	unknownID     = "00000000-0000-0000-0000-0000000000ff"
)

// newShopApp levanta la API completa sobre repositorios en memoria, con un admin ya creado.
func newShopApp(t *testing.T, catalogWritesAdminOnly bool) *fiber.App {
	t.Helper()
	log := logger.Nop()
	users := memory.NewUserRepository()
	sweets := memory.NewSweetRepository()
	txRunner := memory.NewTxRunner(sweets)

	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}, log)
	require.NoError(t, authUC.EnsureAdmin(context.Background(), "Admin", adminEmail, adminPassword))

	app := fiber.New()
	app.Use(apphttp.RequestLogger(log))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:                 authUC,
		UserUC:                 usecase.NewUserUseCase(users),
		SweetUC:                usecase.NewSweetUseCase(sweets, txRunner),
		InventoryUC:            inventory.NewInventoryUseCase(txRunner, log),
		ReportUC:               inventory.NewReportUseCase(sweets, pdf.NewMarotoPDFGenerator()),
		JWTSecret:              testJWTSecret,
		CatalogWritesAdminOnly: catalogWritesAdminOnly,
		Logger:                 log,
	})
	return app
}

// call ejecuta la petición y devuelve status y cuerpo.
func call(t *testing.T, app *fiber.App, method, path, token string, body any) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

func registerUser(t *testing.T, app *fiber.App, email string) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Name: "Cliente", Email: email, Password: "secreto1"})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[dto.TokenResponse](t, body).Token
}

func loginAdmin(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.Equal(t, http.StatusOK, status, string(body))
	return decode[dto.TokenResponse](t, body).Token
}

func createChocolate(t *testing.T, app *fiber.App, token string, quantity int) dto.SweetResponse {
	t.Helper()
	status, body := call(t, app, http.MethodPost, "/api/sweets", token, map[string]any{
		"name": "Chocolate Bar", "category": "Chocolate", "price": 2.5, "quantity": quantity,
	})
	require.Equal(t, http.StatusCreated, status, string(body))
	return decode[dto.SweetResponse](t, body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujo completo
// ──────────────────────────────────────────────────────────────────────────────

func TestFlujoCompleto_CrearComprarReponerEliminar(t *testing.T) {
	app := newShopApp(t, false)
	userToken := registerUser(t, app, "cliente@sweets.test")
	adminToken := loginAdmin(t, app)

	sweet := createChocolate(t, app, userToken, 50)
	assert.Equal(t, 50, sweet.Quantity)

	status, body := call(t, app, http.MethodPost, "/api/sweets/"+sweet.ID+"/purchase", userToken, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 49, decode[dto.SweetResponse](t, body).Quantity)

	status, _ = call(t, app, http.MethodPost, "/api/sweets/"+sweet.ID+"/restock", userToken, map[string]int{"amount": 10})
	assert.Equal(t, http.StatusForbidden, status, "USER no puede reponer")

	status, body = call(t, app, http.MethodPost, "/api/sweets/"+sweet.ID+"/restock", adminToken, map[string]int{"amount": 10})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 59, decode[dto.SweetResponse](t, body).Quantity)

	status, _ = call(t, app, http.MethodDelete, "/api/sweets/"+sweet.ID, userToken, nil)
	assert.Equal(t, http.StatusForbidden, status, "USER no puede eliminar")

	status, _ = call(t, app, http.MethodDelete, "/api/sweets/"+sweet.ID, adminToken, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, body = call(t, app, http.MethodGet, "/api/sweets/"+sweet.ID, userToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, dto.CodeNotFound, decode[dto.ErrorResponse](t, body).Code)
}

func TestSweets_SinToken_Retorna401(t *testing.T) {
	app := newShopApp(t, false)

	status, _ := call(t, app, http.MethodGet, "/api/sweets", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = call(t, app, http.MethodPost, "/api/sweets", "", map[string]any{"name": "x"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_Duplicado_Retorna400UserExists(t *testing.T) {
	app := newShopApp(t, false)
	registerUser(t, app, "cliente@sweets.test")

	status, body := call(t, app, http.MethodPost, "/api/auth/register", "",
		dto.RegisterRequest{Name: "Otro", Email: "cliente@sweets.test", Password: "secreto2"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeUserExists, decode[dto.ErrorResponse](t, body).Code)
}

func TestRegister_Validaciones(t *testing.T) {
	app := newShopApp(t, false)
	cases := map[string]dto.RegisterRequest{
		"sin nombre":       {Email: "a@b.test", Password: "secreto1"},
		"sin email":        {Name: "A", Password: "secreto1"},
		"email inválido":   {Name: "A", Email: "sin-arroba", Password: "secreto1"},
		"password corta":   {Name: "A", Email: "a@b.test", Password: "123"},
		"password ausente": {Name: "A", Email: "a@b.test"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			status, body := call(t, app, http.MethodPost, "/api/auth/register", "", in)
			assert.Equal(t, http.StatusBadRequest, status)
			assert.Equal(t, dto.CodeValidation, decode[dto.ErrorResponse](t, body).Code)
		})
	}
}

func TestLogin_FalloGenerico(t *testing.T) {
	app := newShopApp(t, false)
	registerUser(t, app, "cliente@sweets.test")

	statusPass, bodyPass := call(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "cliente@sweets.test", Password: "incorrecta"})
	statusEmail, bodyEmail := call(t, app, http.MethodPost, "/api/auth/login", "",
		dto.LoginRequest{Email: "nadie@sweets.test", Password: "secreto1"})

	assert.Equal(t, http.StatusBadRequest, statusPass)
	assert.Equal(t, statusPass, statusEmail)
	assert.JSONEq(t, string(bodyPass), string(bodyEmail), "no se revela si el email existe")
	assert.Equal(t, dto.CodeInvalidCredentials, decode[dto.ErrorResponse](t, bodyPass).Code)
}

func TestMe_DevuelvePerfilSinPassword(t *testing.T) {
	app := newShopApp(t, false)
	token := loginAdmin(t, app)

	status, body := call(t, app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	me := decode[dto.UserResponse](t, body)
	assert.Equal(t, adminEmail, me.Email)
	assert.Equal(t, "ADMIN", me.Role)
	assert.NotContains(t, string(body), "password")
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestSearch_PorNombre(t *testing.T) {
	app := newShopApp(t, false)
	token := registerUser(t, app, "cliente@sweets.test")
	createChocolate(t, app, token, 5)
	status, _ := call(t, app, http.MethodPost, "/api/sweets", token, map[string]any{
		"name": "Gummy Bears", "category": "Gummies", "price": 1.2, "quantity": 10,
	})
	require.Equal(t, http.StatusCreated, status)

	status, body := call(t, app, http.MethodGet, "/api/sweets/search?name=chocolate", token, nil)
	require.Equal(t, http.StatusOK, status, string(body))
	found := decode[[]dto.SweetResponse](t, body)
	require.Len(t, found, 1)
	assert.Equal(t, "Chocolate Bar", found[0].Name)

	status, body = call(t, app, http.MethodGet, "/api/sweets/search?minPrice=abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, decode[dto.ErrorResponse](t, body).Code)

	status, body = call(t, app, http.MethodGet, "/api/sweets", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.SweetResponse](t, body), 2)
}

func TestCreate_PrecioCero_Retorna400Validation(t *testing.T) {
	app := newShopApp(t, false)
	token := registerUser(t, app, "cliente@sweets.test")

	status, body := call(t, app, http.MethodPost, "/api/sweets", token, map[string]any{
		"name": "Gratis", "category": "Candy", "price": 0, "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, decode[dto.ErrorResponse](t, body).Code)
}

func TestUpdate_Parcial(t *testing.T) {
	app := newShopApp(t, false)
	token := registerUser(t, app, "cliente@sweets.test")
	sweet := createChocolate(t, app, token, 5)

	status, body := call(t, app, http.MethodPut, "/api/sweets/"+sweet.ID, token, map[string]any{"price": 3})
	require.Equal(t, http.StatusOK, status, string(body))
	updated := decode[dto.SweetResponse](t, body)
	assert.Equal(t, "Chocolate Bar", updated.Name)
	assert.Equal(t, "3", updated.Price.String())

	status, body = call(t, app, http.MethodPut, "/api/sweets/"+unknownID, token, map[string]any{"price": 3})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeNotFound, decode[dto.ErrorResponse](t, body).Code)
}

func TestCatalogWritesAdminOnly_UserNoPuedeCrear(t *testing.T) {
	app := newShopApp(t, true)
	userToken := registerUser(t, app, "cliente@sweets.test")

	status, _ := call(t, app, http.MethodPost, "/api/sweets", userToken, map[string]any{
		"name": "Chocolate Bar", "category": "Chocolate", "price": 2.5, "quantity": 1,
	})
	assert.Equal(t, http.StatusForbidden, status)

	createChocolate(t, app, loginAdmin(t, app), 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchase_SinStock_Retorna400OutOfStock(t *testing.T) {
	app := newShopApp(t, false)
	token := registerUser(t, app, "cliente@sweets.test")
	sweet := createChocolate(t, app, token, 0)

	// quantity del body se ignora
	status, body := call(t, app, http.MethodPost, "/api/sweets/"+sweet.ID+"/purchase", token, map[string]int{"quantity": 5})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeOutOfStock, decode[dto.ErrorResponse](t, body).Code)

	status, body = call(t, app, http.MethodGet, "/api/sweets/"+sweet.ID, token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0, decode[dto.SweetResponse](t, body).Quantity)
}

func TestPurchase_IgnoraQuantityDelBody(t *testing.T) {
	app := newShopApp(t, false)
	token := registerUser(t, app, "cliente@sweets.test")
	sweet := createChocolate(t, app, token, 10)

	status, body := call(t, app, http.MethodPost, "/api/sweets/"+sweet.ID+"/purchase", token, map[string]int{"quantity": 5})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 9, decode[dto.SweetResponse](t, body).Quantity)
}

func TestPurchase_Inexistente_Retorna400NotFound(t *testing.T) {
	app := newShopApp(t, false)
	token := registerUser(t, app, "cliente@sweets.test")

	for _, id := range []string{unknownID, "no-es-uuid"} {
		status, body := call(t, app, http.MethodPost, "/api/sweets/"+id+"/purchase", token, nil)
		assert.Equal(t, http.StatusBadRequest, status)
		assert.Equal(t, dto.CodeNotFound, decode[dto.ErrorResponse](t, body).Code)
	}
}

func TestRestock_Validaciones(t *testing.T) {
	app := newShopApp(t, false)
	adminToken := loginAdmin(t, app)
	sweet := createChocolate(t, app, adminToken, 3)

	status, body := call(t, app, http.MethodPost, "/api/sweets/"+sweet.ID+"/restock", adminToken, map[string]int{"amount": 0})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, dto.CodeValidation, decode[dto.ErrorResponse](t, body).Code)

	// el panel de administración envía quantity
	status, body = call(t, app, http.MethodPost, "/api/sweets/"+sweet.ID+"/restock", adminToken, map[string]int{"quantity": 4})
	require.Equal(t, http.StatusOK, status, string(body))
	assert.Equal(t, 7, decode[dto.SweetResponse](t, body).Quantity)
}

func TestStockReport_SoloAdmin(t *testing.T) {
	app := newShopApp(t, false)
	adminToken := loginAdmin(t, app)
	userToken := registerUser(t, app, "cliente@sweets.test")
	createChocolate(t, app, adminToken, 3)

	status, _ := call(t, app, http.MethodGet, "/api/sweets/report.pdf", userToken, nil)
	assert.Equal(t, http.StatusForbidden, status)

	req := httptest.NewRequest(http.MethodGet, "/api/sweets/report.pdf", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+adminToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "inventario-")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}
