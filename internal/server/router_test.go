package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/diewo77/invoicing/internal/db"
	"github.com/diewo77/invoicing/internal/models"
)

func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Client{}, &models.Product{}, &models.Invoice{}, &models.InvoiceItem{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	db.Seed(conn, zap.NewNop().Sugar())
	return New(conn, zap.NewNop().Sugar(), decimal.NewFromFloat(0.10)), conn
}

func TestHealthEndpoints(t *testing.T) {
	router, _ := setupRouter(t)
	for _, path := range []string{"/health", "/healthz"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, w.Code)
		}
		if !strings.Contains(w.Body.String(), `"ok"`) {
			t.Fatalf("%s: unexpected body %s", path, w.Body.String())
		}
	}
}

// Full lifecycle against seeded reference data: list empty, create, get, list,
// delete, verify gone.
func TestInvoiceLifecycle(t *testing.T) {
	router, _ := setupRouter(t)

	get := func(path string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		return w
	}

	// 1. list is empty initially
	w := get("/invoices")
	if w.Code != http.StatusOK || strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %d %s", w.Code, w.Body.String())
	}

	// 2. create: 2 x Widget A (10.0) + 1 x Gadget X (50.0) => 70 + 10% tax = 77
	// seed order in a fresh db: client 1 = Acme Corp, products 1 = Widget A, 3 = Gadget X
	body := `{"client_id":1,"invoice_no":"INV-001","issue_date":"2023-10-27","due_date":"2023-11-27",` +
		`"items":[{"product_id":1,"quantity":2},{"product_id":3,"quantity":1}]}`
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	cw := httptest.NewRecorder()
	router.ServeHTTP(cw, req)
	if cw.Code != http.StatusCreated {
		t.Fatalf("create: expected 201 got %d body=%s", cw.Code, cw.Body.String())
	}
	var created map[string]any
	if err := json.Unmarshal(cw.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if created["total_amount"] != 77.0 {
		t.Fatalf("expected total 77 got %v", created["total_amount"])
	}
	id := strconv.Itoa(int(created["id"].(float64)))

	// 3. get detail
	if g := get("/invoices/" + id); g.Code != http.StatusOK {
		t.Fatalf("get: expected 200 got %d", g.Code)
	}

	// 4. list has one entry
	var list []map[string]any
	lw := get("/invoices")
	if err := json.Unmarshal(lw.Body.Bytes(), &list); err != nil || len(list) != 1 {
		t.Fatalf("expected 1 invoice, got %v err=%v", list, err)
	}

	// 5. delete
	dw := httptest.NewRecorder()
	router.ServeHTTP(dw, httptest.NewRequest(http.MethodDelete, "/invoices/"+id, nil))
	if dw.Code != http.StatusNoContent {
		t.Fatalf("delete: expected 204 got %d", dw.Code)
	}

	// 6. verify deletion
	if g := get("/invoices/" + id); g.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete got %d", g.Code)
	}
}
