package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain"
	"backoffice/internal/http/middleware"
	"backoffice/internal/order"
	"backoffice/internal/utils"
)

// POST /api/wizard
func CreateWizard(c *gin.Context) {
	w := getDeps().Wizards.Create()
	utils.LogEvent(middleware.GetRequestID(c), "wizard", "create", "id="+w.ID())
	c.JSON(http.StatusCreated, w.Snapshot())
}

// GET /api/wizard/:id
func GetWizard(c *gin.Context) {
	w, err := getDeps().Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// DELETE /api/wizard/:id
func DeleteWizard(c *gin.Context) {
	getDeps().Wizards.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": "wizard discarded"})
}

type addItemRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	Portion   string `json:"portion"`
}

// POST /api/wizard/:id/items
func AddWizardItem(c *gin.Context) {
	d := getDeps()
	w, err := d.Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req addItemRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := ensureCatalog(c); err != nil {
		RespondDomainError(c, err)
		return
	}

	p, found := d.Catalog.CartProduct(req.ProductID)
	if !found {
		RespondDomainError(c, domain.NotFoundError{Resource: "product"})
		return
	}
	w.AddItem(p, req.Portion)
	c.JSON(http.StatusOK, w.Snapshot())
}

type quantityRequest struct {
	Quantity int `json:"quantity"`
}

// PUT /api/wizard/:id/items/:index
func SetWizardQuantity(c *gin.Context) {
	w, err := getDeps().Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid item index", err)
		return
	}
	var req quantityRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	w.SetQuantity(index, req.Quantity)
	c.JSON(http.StatusOK, w.Snapshot())
}

// DELETE /api/wizard/:id/items/:index
func RemoveWizardItem(c *gin.Context) {
	w, err := getDeps().Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid item index", err)
		return
	}
	w.RemoveItem(index)
	c.JSON(http.StatusOK, w.Snapshot())
}

type detailsRequest struct {
	Customer      *order.Customer `json:"customer"`
	PaymentMethod string          `json:"payment_method"`
	Delivery      *order.Delivery `json:"delivery"`
	Notes         *string         `json:"notes"`
	RedeemPoints  *int64          `json:"redeem_points"`
	GSTRate       *int            `json:"gst_rate"`
}

// PUT /api/wizard/:id/details
//
// Partial update: only the fields present in the body are applied. Customer
// field errors come back in the snapshot rather than failing the request, so
// the caller can keep editing.
func UpdateWizardDetails(c *gin.Context) {
	w, err := getDeps().Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	var req detailsRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if req.Customer != nil {
		w.SetCustomer(*req.Customer)
	}
	if req.PaymentMethod != "" {
		if err := w.SetPayment(order.PaymentMethod(req.PaymentMethod)); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.Delivery != nil {
		w.SetDelivery(*req.Delivery)
	}
	if req.Notes != nil {
		w.SetNotes(*req.Notes)
	}
	if req.RedeemPoints != nil {
		if err := w.SetRedeemPoints(*req.RedeemPoints); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	if req.GSTRate != nil {
		if err := w.SetGSTRate(*req.GSTRate); err != nil {
			RespondDomainError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// POST /api/wizard/:id/next
func AdvanceWizard(c *gin.Context) {
	w, err := getDeps().Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := w.Next(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// POST /api/wizard/:id/prev
func RewindWizard(c *gin.Context) {
	w, err := getDeps().Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := w.Prev(); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, w.Snapshot())
}

// POST /api/wizard/:id/submit
func SubmitWizard(c *gin.Context) {
	d := getDeps()
	w, err := d.Wizards.Get(c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	orderID, err := w.Submit(func(draft order.Draft) (string, error) {
		return d.Upstream.CreateOrder(c.Request.Context(), draft)
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent(middleware.GetRequestID(c), "wizard", "submit",
		"wizard="+w.ID()+" order="+orderID)
	c.JSON(http.StatusCreated, gin.H{
		"order_id": orderID,
		"wizard":   w.Snapshot(),
	})
}
