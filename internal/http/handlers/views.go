package handlers

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"backoffice/internal/domain"
	"backoffice/internal/export"
	"backoffice/internal/query"
	"backoffice/internal/table"
	"backoffice/internal/upstream"
	"backoffice/internal/utils"
)

// ViewRegistry holds the live table views keyed by an opaque id handed to the
// caller on creation. Views are in-memory session state, same as wizards.
type ViewRegistry struct {
	mu    sync.RWMutex
	views map[string]*registeredView
}

type registeredView struct {
	name string
	view *table.View
	cols []table.Column
}

func NewViewRegistry() *ViewRegistry {
	return &ViewRegistry{views: make(map[string]*registeredView)}
}

func (r *ViewRegistry) add(name string, v *table.View, cols []table.Column) string {
	id := uuid.NewString()
	r.mu.Lock()
	r.views[id] = &registeredView{name: name, view: v, cols: cols}
	r.mu.Unlock()
	return id
}

func (r *ViewRegistry) get(id string) (*registeredView, error) {
	r.mu.RLock()
	rv, ok := r.views[id]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.NotFoundError{Resource: "table view"}
	}
	return rv, nil
}

func (r *ViewRegistry) remove(id string) {
	r.mu.Lock()
	delete(r.views, id)
	r.mu.Unlock()
}

func rupeeCell(v any, _ table.Row) any {
	if f, ok := v.(float64); ok {
		return utils.FormatRupee(f)
	}
	return v
}

func orderColumns() []table.Column {
	return []table.Column{
		{Key: "_id", Label: "Order ID", Sortable: true},
		{Key: "order_date", Label: "Date", Sortable: true},
		{Key: "customer_name", Label: "Customer", Sortable: true},
		{Key: "status", Label: "Status", Sortable: true},
		{Key: "payment_method", Label: "Payment"},
		{Key: "total_amount", Label: "Total", Sortable: true, Render: rupeeCell},
	}
}

func productColumns() []table.Column {
	return []table.Column{
		{Key: "name", Label: "Product", Sortable: true},
		{Key: "category", Label: "Category", Sortable: true},
		{Key: "price", Label: "Price", Sortable: true, Render: rupeeCell},
		{Key: "discount", Label: "Discount %", Sortable: true},
	}
}

func productRows(products []upstream.Product) []table.Row {
	rows := make([]table.Row, len(products))
	for i, p := range products {
		rows[i] = table.Row{
			"_id":      p.ID,
			"name":     p.Name,
			"category": p.Category,
			"price":    p.Price,
			"discount": p.Discount,
		}
	}
	return rows
}

type createViewRequest struct {
	Source   string `json:"source" binding:"required"`
	PageSize int    `json:"page_size"`
}

// POST /api/views
//
// "orders" builds a server-mode view backed by the upstream list endpoint;
// "products" builds a client-mode view over the loaded catalog.
func CreateView(c *gin.Context) {
	var req createViewRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if req.PageSize < 1 {
		req.PageSize = 10
	}

	d := getDeps()
	var (
		v    *table.View
		cols []table.Column
	)
	switch req.Source {
	case "orders":
		fetch := func(s query.State) ([]table.Row, query.Meta, error) {
			return d.Upstream.ListOrders(context.Background(), s)
		}
		v = table.NewServerView(req.PageSize, fetch)
		cols = orderColumns()
		if err := v.Refresh(); err != nil {
			RespondDomainError(c, err)
			return
		}
	case "products":
		if err := ensureCatalog(c); err != nil {
			RespondDomainError(c, err)
			return
		}
		proc := table.Processor{Searchable: []string{"name", "category"}}
		v = table.NewClientView(proc, req.PageSize, productRows(d.Catalog.Products()))
		cols = productColumns()
	default:
		RespondError(c, http.StatusBadRequest, "unknown view source", nil)
		return
	}

	id := d.Views.add(req.Source, v, cols)
	c.JSON(http.StatusCreated, viewPayload(id, &registeredView{name: req.Source, view: v, cols: cols}))
}

// GET /api/views/:id
func GetView(c *gin.Context) {
	rv, err := getDeps().Views.get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewPayload(c.Param("id"), rv))
}

// DELETE /api/views/:id
func DeleteView(c *gin.Context) {
	getDeps().Views.remove(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "view closed"})
}

type sortRequest struct {
	Key string `json:"key" binding:"required"`
}

// POST /api/views/:id/sort
func SortView(c *gin.Context) {
	rv, err := getDeps().Views.get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req sortRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if !sortableKey(rv.cols, req.Key) {
		RespondDomainError(c, domain.ValidationError{Field: "key", Msg: "column is not sortable"})
		return
	}
	applyInteraction(c, rv, func() error { return rv.view.Sort(req.Key) })
}

type filterRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

// POST /api/views/:id/filter
func FilterView(c *gin.Context) {
	rv, err := getDeps().Views.get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req filterRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	applyInteraction(c, rv, func() error { return rv.view.Filter(req.Field, req.Value) })
}

type searchRequest struct {
	Text string `json:"text"`
}

// POST /api/views/:id/search
func SearchView(c *gin.Context) {
	rv, err := getDeps().Views.get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req searchRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	applyInteraction(c, rv, func() error { return rv.view.Search(req.Text) })
}

type pageRequest struct {
	Page int `json:"page" binding:"required"`
}

// POST /api/views/:id/page
func PageView(c *gin.Context) {
	rv, err := getDeps().Views.get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req pageRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	applyInteraction(c, rv, func() error { return rv.view.Page(req.Page) })
}

// POST /api/views/:id/clear
func ClearView(c *gin.Context) {
	rv, err := getDeps().Views.get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	applyInteraction(c, rv, rv.view.Clear)
}

// GET /api/views/:id/export?format=excel|pdf
func ExportView(c *gin.Context) {
	rv, err := getDeps().Views.get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	base := fmt.Sprintf("%s_%s", rv.name, time.Now().Format("2006-01-02"))
	rows := rv.view.Rows()

	var (
		data        []byte
		filename    string
		contentType string
	)
	switch c.DefaultQuery("format", "excel") {
	case "excel":
		data, filename, err = export.Spreadsheet(rows, rv.cols, base)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "pdf":
		data, filename, err = export.Document(rows, rv.cols, base)
		contentType = "application/pdf"
	default:
		RespondError(c, http.StatusBadRequest, "unknown export format", nil)
		return
	}
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, contentType, data)
}

func sortableKey(cols []table.Column, key string) bool {
	for _, col := range cols {
		if col.Key == key {
			return col.Sortable
		}
	}
	return false
}

func applyInteraction(c *gin.Context, rv *registeredView, f func() error) {
	if err := f(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, viewPayload(c.Param("id"), rv))
}

func viewPayload(id string, rv *registeredView) gin.H {
	payload := gin.H{
		"view_id": id,
		"name":    rv.name,
		"state":   statePayload(rv.view.State()),
		"data":    renderRows(rv.view.Rows(), rv.cols),
	}
	if rv.view.Mode() == table.ModeServer {
		payload["pagination"] = rv.view.Meta()
	}
	return payload
}

func statePayload(s query.State) gin.H {
	return gin.H{
		"page":      s.Page,
		"page_size": s.PageSize,
		"sort_key":  s.SortKey,
		"sort_dir":  string(s.SortDir),
		"search":    s.Search,
		"filters":   s.Filters,
	}
}

// renderRows applies each column's render transform so exported and displayed
// cells agree.
func renderRows(rows []table.Row, cols []table.Column) []table.Row {
	out := make([]table.Row, len(rows))
	for i, r := range rows {
		rr := make(table.Row, len(cols))
		for _, col := range cols {
			rr[col.Key] = col.Cell(r)
		}
		out[i] = rr
	}
	return out
}
