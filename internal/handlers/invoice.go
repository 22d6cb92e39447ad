package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/diewo77/invoicing/internal/billing"
	"github.com/diewo77/invoicing/internal/httpx"
	"github.com/diewo77/invoicing/internal/models"
	"github.com/diewo77/invoicing/internal/services"
)

const dateLayout = "2006-01-02"

func init() {
	// Amounts go out as JSON numbers, matching the public API.
	decimal.MarshalJSONWithoutQuotes = true
}

type InvoiceHandler struct {
	Svc *services.InvoiceService
}

func NewInvoiceHandler(svc *services.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{Svc: svc}
}

type itemReq struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type createReq struct {
	ClientID  uint      `json:"client_id"`
	InvoiceNo string    `json:"invoice_no"`
	IssueDate string    `json:"issue_date"`
	DueDate   string    `json:"due_date"`
	Items     []itemReq `json:"items"`
}

type itemResp struct {
	ID          uint            `json:"id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

type invoiceResp struct {
	ID          uint            `json:"id"`
	InvoiceNo   string          `json:"invoice_no"`
	IssueDate   string          `json:"issue_date"`
	DueDate     string          `json:"due_date"`
	ClientName  string          `json:"client_name"`
	TaxAmount   decimal.Decimal `json:"tax_amount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []itemResp      `json:"items"`
}

type invoiceSummary struct {
	ID          uint            `json:"id"`
	InvoiceNo   string          `json:"invoice_no"`
	IssueDate   string          `json:"issue_date"`
	DueDate     string          `json:"due_date"`
	ClientName  string          `json:"client_name"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func toInvoiceResp(inv *models.Invoice) invoiceResp {
	items := make([]itemResp, 0, len(inv.Items))
	for _, it := range inv.Items {
		items = append(items, itemResp{
			ID:          it.ID,
			ProductName: it.Product.Name,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return invoiceResp{
		ID:          inv.ID,
		InvoiceNo:   inv.InvoiceNo,
		IssueDate:   inv.IssueDate.Format(dateLayout),
		DueDate:     inv.DueDate.Format(dateLayout),
		ClientName:  inv.Client.Name,
		TaxAmount:   inv.TaxAmount,
		TotalAmount: inv.TotalAmount,
		Items:       items,
	}
}

// Create: POST /invoices
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_json", nil)
		return
	}
	fields := map[string]string{}
	if req.ClientID == 0 {
		fields["client_id"] = "required"
	}
	if req.InvoiceNo == "" {
		fields["invoice_no"] = "required"
	}
	issue, err := time.Parse(dateLayout, req.IssueDate)
	if err != nil {
		fields["issue_date"] = "expected YYYY-MM-DD"
	}
	due, err := time.Parse(dateLayout, req.DueDate)
	if err != nil {
		fields["due_date"] = "expected YYYY-MM-DD"
	}
	if len(fields) > 0 {
		httpx.JSONError(w, http.StatusBadRequest, "validation_failed", fields)
		return
	}
	lines := make([]billing.LineRequest, 0, len(req.Items))
	for _, it := range req.Items {
		lines = append(lines, billing.LineRequest{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	inv, err := h.Svc.Create(services.CreateInvoiceInput{
		ClientID:  req.ClientID,
		InvoiceNo: req.InvoiceNo,
		IssueDate: issue,
		DueDate:   due,
		Items:     lines,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, toInvoiceResp(inv))
}

// List: GET /invoices – summaries only, never line items
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	invs, err := h.Svc.List()
	if err != nil {
		writeServiceError(w, err)
		return
	}
	out := make([]invoiceSummary, 0, len(invs))
	for _, inv := range invs {
		out = append(out, invoiceSummary{
			ID:          inv.ID,
			InvoiceNo:   inv.InvoiceNo,
			IssueDate:   inv.IssueDate.Format(dateLayout),
			DueDate:     inv.DueDate.Format(dateLayout),
			ClientName:  inv.Client.Name,
			TotalAmount: inv.TotalAmount,
		})
	}
	httpx.JSON(w, http.StatusOK, out)
}

// Get: GET /invoices/{id}
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	inv, err := h.Svc.Get(id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, toInvoiceResp(inv))
}

// Delete: DELETE /invoices/{id}
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.Svc.Delete(id); err != nil {
		writeServiceError(w, err)
		return
	}
	httpx.NoContent(w)
}

func idParam(w http.ResponseWriter, r *http.Request) (uint, bool) {
	n, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || n <= 0 {
		httpx.JSONError(w, http.StatusBadRequest, "invalid_id", nil)
		return 0, false
	}
	return uint(n), true
}

func writeServiceError(w http.ResponseWriter, err error) {
	var pnf *billing.ProductNotFoundError
	switch {
	case errors.As(err, &pnf):
		httpx.JSONError(w, http.StatusNotFound, "product_not_found", map[string]any{"product_id": pnf.ProductID})
	case errors.Is(err, billing.ErrClientNotFound):
		httpx.JSONError(w, http.StatusNotFound, "client_not_found", nil)
	case errors.Is(err, billing.ErrInvoiceNotFound):
		httpx.JSONError(w, http.StatusNotFound, "invoice_not_found", nil)
	case errors.Is(err, billing.ErrDuplicateInvoiceNo):
		httpx.JSONError(w, http.StatusBadRequest, "invoice_no_already_exists", nil)
	case errors.Is(err, billing.ErrEmptyItems):
		httpx.JSONError(w, http.StatusBadRequest, "invoice_requires_items", nil)
	case errors.Is(err, billing.ErrInvalidQuantity):
		httpx.JSONError(w, http.StatusBadRequest, "quantity_must_be_positive", nil)
	default:
		httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
	}
}
