package router_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"kennel-manager/internal/router"
)

func TestHTTP_EndToEnd_CustomerScoping(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// 1) Cuentas: un admin y dos clientes
	registerUser(t, ts.URL, "admin@example.com", "admin")
	registerUser(t, ts.URL, "ana@example.com", "customer")
	registerUser(t, ts.URL, "bob@example.com", "customer")

	adminTok := loginUser(t, ts.URL, "admin@example.com")
	anaTok := loginUser(t, ts.URL, "ana@example.com")
	bobTok := loginUser(t, ts.URL, "bob@example.com")

	// 2) Admin crea un kennel reservable
	kennelID := createEntity(t, ts.URL, adminTok, "/kennels", map[string]any{
		"name":          "Box A",
		"size":          "medium",
		"available":     true,
		"price_per_day": 25.0,
	})

	// 3) Cada cliente registra sus perros (el server fuerza el dueño)
	anaDog1 := createEntity(t, ts.URL, anaTok, "/dogs", map[string]any{"name": "Milo", "breed": "mixed", "age": 3})
	anaDog2 := createEntity(t, ts.URL, anaTok, "/dogs", map[string]any{"name": "Luna", "breed": "beagle", "age": 5})
	bobDog := createEntity(t, ts.URL, bobTok, "/dogs", map[string]any{"name": "Rex", "breed": "boxer", "age": 2})

	// 4) El listado de Ana es exactamente el conjunto de sus perros
	{
		st, body := doReq(t, ts.URL, "GET", "/dogs", anaTok, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list dogs, got %d body=%s", st, string(body))
		}
		ids := idSet(t, body)
		if len(ids) != 2 || !ids[anaDog1] || !ids[anaDog2] {
			t.Fatalf("expected exactly {%s,%s}, got %v", anaDog1, anaDog2, ids)
		}
		if ids[bobDog] {
			t.Fatalf("bob's dog leaked into ana's list")
		}
	}

	// 5) El perro de Bob no es visible para Ana (scoped => 404, no 403)
	{
		st, _ := doReq(t, ts.URL, "GET", "/dogs/"+bobDog, anaTok, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for out-of-scope dog, got %d", st)
		}
	}

	// 6) Create con customer_id ajeno => error de validación, no forbidden
	{
		bobCustomerID := customerIDByEmail(t, ts.URL, adminTok, "bob@example.com")
		st, body := doReq(t, ts.URL, "POST", "/dogs", anaTok, map[string]any{
			"name":        "Impostor",
			"customer_id": bobCustomerID,
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for cross-customer create, got %d body=%s", st, string(body))
		}
	}

	// 7) Update de un perro ajeno => forbidden (asimetría intencional)
	{
		st, _ := doReq(t, ts.URL, "PUT", "/dogs/"+bobDog, anaTok, map[string]any{
			"id":   bobDog,
			"name": "Hijacked",
			"age":  2,
		})
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 for cross-customer update, got %d", st)
		}
	}

	// 8) Ana no puede borrar ni siquiera su propio perro
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/dogs/"+anaDog1, anaTok, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete dog as customer, got %d", st)
		}
	}

	// 9) Kennels son invisibles para clientes
	{
		st, _ := doReq(t, ts.URL, "GET", "/kennels", anaTok, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 list kennels as customer, got %d", st)
		}
	}

	// 10) Booking sobre perro propio: costo calculado (3 noches x 25)
	var anaBooking string
	{
		st, body := doReq(t, ts.URL, "POST", "/bookings", anaTok, map[string]any{
			"dog_id":    anaDog1,
			"kennel_id": kennelID,
			"check_in":  "2026-03-01",
			"check_out": "2026-03-04",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create booking, got %d body=%s", st, string(body))
		}
		var resp struct {
			ID        string  `json:"id"`
			TotalCost float64 `json:"total_cost"`
			Status    string  `json:"status"`
		}
		_ = json.Unmarshal(body, &resp)
		if resp.TotalCost != 75 {
			t.Fatalf("expected computed cost 75, got %v", resp.TotalCost)
		}
		if resp.Status != "Pending" {
			t.Fatalf("expected default status Pending, got %q", resp.Status)
		}
		anaBooking = resp.ID
	}

	// 11) Booking sobre el perro de Bob => validación
	{
		st, _ := doReq(t, ts.URL, "POST", "/bookings", anaTok, map[string]any{
			"dog_id":    bobDog,
			"kennel_id": kennelID,
			"check_in":  "2026-03-01",
			"check_out": "2026-03-02",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for cross-customer booking, got %d", st)
		}
	}

	// 12) El listado de bookings de Ana solo trae los suyos
	{
		st, body := doReq(t, ts.URL, "GET", "/bookings", anaTok, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list bookings, got %d body=%s", st, string(body))
		}
		ids := idSet(t, body)
		if len(ids) != 1 || !ids[anaBooking] {
			t.Fatalf("expected exactly {%s}, got %v", anaBooking, ids)
		}
	}

	// 13) Admin ve todo
	{
		st, body := doReq(t, ts.URL, "GET", "/dogs", adminTok, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 admin list dogs, got %d", st)
		}
		if ids := idSet(t, body); len(ids) != 3 {
			t.Fatalf("expected 3 dogs for admin, got %v", ids)
		}
	}
}

func TestHTTP_StaffPermissions(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	registerUser(t, ts.URL, "admin@example.com", "admin")
	registerUser(t, ts.URL, "staff@example.com", "staff")
	adminTok := loginUser(t, ts.URL, "admin@example.com")
	staffTok := loginUser(t, ts.URL, "staff@example.com")

	// Staff administra kennels y perros, incluyendo delete
	kennelID := createEntity(t, ts.URL, staffTok, "/kennels", map[string]any{
		"name":          "Box B",
		"size":          "large",
		"available":     true,
		"price_per_day": 40.0,
	})
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/kennels/"+kennelID, staffTok, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete kennel as staff, got %d", st)
		}
	}

	// Staff crea customers pero no los borra
	custID := createEntity(t, ts.URL, staffTok, "/customers", map[string]any{
		"name":  "Walk-in",
		"email": "walkin@example.com",
	})
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/customers/"+custID, staffTok, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 delete customer as staff, got %d", st)
		}
	}

	// Gestión de usuarios es solo de admin
	{
		st, _ := doReq(t, ts.URL, "GET", "/users", staffTok, nil)
		if st != http.StatusForbidden {
			t.Fatalf("expected 403 list users as staff, got %d", st)
		}
	}
	{
		st, _ := doReq(t, ts.URL, "GET", "/users", adminTok, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list users as admin, got %d", st)
		}
	}
}

func TestHTTP_UpdateIDMismatch(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	registerUser(t, ts.URL, "admin@example.com", "admin")
	adminTok := loginUser(t, ts.URL, "admin@example.com")

	custID := createEntity(t, ts.URL, adminTok, "/customers", map[string]any{
		"name":  "Ana",
		"email": "ana@example.com",
	})

	st, body := doReq(t, ts.URL, "PUT", "/customers/"+custID, adminTok, map[string]any{
		"id":    "someone-else",
		"name":  "Ana",
		"email": "ana@example.com",
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for id mismatch, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "id mismatch") {
		t.Fatalf("expected id mismatch message, got %s", string(body))
	}
}

func TestHTTP_DeleteCustomerWithDogs_Conflict(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	registerUser(t, ts.URL, "admin@example.com", "admin")
	registerUser(t, ts.URL, "ana@example.com", "customer")
	adminTok := loginUser(t, ts.URL, "admin@example.com")
	anaTok := loginUser(t, ts.URL, "ana@example.com")

	createEntity(t, ts.URL, anaTok, "/dogs", map[string]any{"name": "Milo"})
	createEntity(t, ts.URL, anaTok, "/dogs", map[string]any{"name": "Luna"})

	anaCustID := customerIDByEmail(t, ts.URL, adminTok, "ana@example.com")

	// Con perros ligados => conflicto que nombra la cantidad
	{
		st, body := doReq(t, ts.URL, "DELETE", "/customers/"+anaCustID, adminTok, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 delete customer with dogs, got %d body=%s", st, string(body))
		}
		if !strings.Contains(string(body), "2 linked dogs") {
			t.Fatalf("conflict must name the dog count, got %s", string(body))
		}
	}

	// Sin perros => borra sin drama
	emptyCustID := createEntity(t, ts.URL, adminTok, "/customers", map[string]any{
		"name":  "Sin Perros",
		"email": "empty@example.com",
	})
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/customers/"+emptyCustID, adminTok, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete empty customer, got %d", st)
		}
	}

	// Delete de un id inexistente => 404, nunca 500
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/customers/nonexistent", adminTok, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 delete missing customer, got %d", st)
		}
	}
}

func TestHTTP_AdminSelfDelete_Blocked(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	registerUser(t, ts.URL, "admin@example.com", "admin")
	adminTok := loginUser(t, ts.URL, "admin@example.com")

	// El propio id sale de /users (el admin es el único usuario)
	st, body := doReq(t, ts.URL, "GET", "/users", adminTok, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list users, got %d", st)
	}
	var list []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &list)
	if len(list) != 1 {
		t.Fatalf("expected one user, got %d", len(list))
	}

	st, body = doReq(t, ts.URL, "DELETE", "/users/"+list[0].ID, adminTok, nil)
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 self-delete, got %d body=%s", st, string(body))
	}
	if !strings.Contains(string(body), "own user account") {
		t.Fatalf("expected self-delete message, got %s", string(body))
	}
}

func TestHTTP_AuthFlow(t *testing.T) {
	ts := httptest.NewServer(router.NewRouter(router.Options{}))
	defer ts.Close()

	// Registro duplicado => validación
	registerUser(t, ts.URL, "ana@example.com", "customer")
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/register", "", map[string]any{
			"email":      "ana@example.com",
			"password":   "Secret1",
			"first_name": "Ana",
			"role":       "customer",
		})
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 duplicate register, got %d", st)
		}
	}

	// Password incorrecto => 401
	{
		st, _ := doReq(t, ts.URL, "POST", "/auth/login", "", map[string]any{
			"email":    "ana@example.com",
			"password": "Wrong1x",
		})
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 wrong password, got %d", st)
		}
	}

	// Sin token => 401 en endpoints protegidos
	{
		st, _ := doReq(t, ts.URL, "GET", "/dogs", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without token, got %d", st)
		}
	}

	// Token basura => también 401
	{
		st, _ := doReq(t, ts.URL, "GET", "/dogs", "not-a-jwt", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 with garbage token, got %d", st)
		}
	}
}

// -------------------------
// Helpers
// -------------------------

func registerUser(t *testing.T, baseURL, email, role string) {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/register", "", map[string]any{
		"email":      email,
		"password":   "Secret1",
		"first_name": strings.Split(email, "@")[0],
		"last_name":  "Test",
		"role":       role,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 register %s, got %d body=%s", email, st, string(body))
	}
}

func loginUser(t *testing.T, baseURL, email string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/auth/login", "", map[string]any{
		"email":    email,
		"password": "Secret1",
	})
	if st != http.StatusOK {
		t.Fatalf("expected 200 login %s, got %d body=%s", email, st, string(body))
	}

	var resp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.Token == "" {
		t.Fatalf("login %s: missing token body=%s", email, string(body))
	}
	return resp.Token
}

func createEntity(t *testing.T, baseURL, token, path string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", path, token, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create %s, got %d body=%s", path, st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create %s: missing id body=%s", path, string(body))
	}
	return resp.ID
}

func customerIDByEmail(t *testing.T, baseURL, adminToken, email string) string {
	t.Helper()

	st, body := doReq(t, baseURL, "GET", "/customers", adminToken, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 list customers, got %d body=%s", st, string(body))
	}

	var list []struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	_ = json.Unmarshal(body, &list)
	for _, c := range list {
		if c.Email == email {
			return c.ID
		}
	}
	t.Fatalf("no customer with email %s in %s", email, string(body))
	return ""
}

func idSet(t *testing.T, body []byte) map[string]bool {
	t.Helper()

	var list []struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(body, &list); err != nil {
		t.Fatalf("decode list: %v body=%s", err, string(body))
	}
	out := map[string]bool{}
	for _, it := range list {
		out[it.ID] = true
	}
	return out
}

func doReq(t *testing.T, baseURL, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp.StatusCode, raw
}
