package handlers

import (
	"net/http"
	"strconv"

	"backoffice/internal/http/middleware"
	"backoffice/internal/query"
	"backoffice/internal/utils"

	"github.com/gin-gonic/gin"
)

// orderFilterFields are the upstream parameters treated as table filters.
var orderFilterFields = []string{"status", "payment_method"}

// GET /api/orders
//
// Server-mode relay: the incoming query is parsed into table state, the
// upstream API does the filtering/sorting/pagination, and its rows plus
// pagination envelope pass through untouched.
func ListOrders(c *gin.Context) {
	d := getDeps()
	s := query.FromValues(c.Request.URL.Query(), 10, orderFilterFields)

	rows, meta, err := d.Upstream.ListOrders(c.Request.Context(), s)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "orders", "list",
		"page="+strconv.Itoa(s.Page))
	c.JSON(http.StatusOK, gin.H{"data": rows, "pagination": meta})
}

// GET /api/orders/:id
func GetOrder(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		RespondError(c, http.StatusBadRequest, "invalid order id", nil)
		return
	}

	detail, err := getDeps().Upstream.Order(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}
