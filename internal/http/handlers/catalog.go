package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GET /api/catalog/products?category=&search=
func BrowseProducts(c *gin.Context) {
	d := getDeps()
	if err := ensureCatalog(c); err != nil {
		RespondDomainError(c, err)
		return
	}

	products := d.Catalog.Browse(c.Query("category"), c.Query("search"))
	c.JSON(http.StatusOK, gin.H{
		"products":   products,
		"categories": d.Catalog.Categories(),
	})
}

// GET /api/catalog/customers
func ListCustomers(c *gin.Context) {
	d := getDeps()
	if err := ensureCatalog(c); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": d.Catalog.Customers()})
}

// POST /api/catalog/refresh
func RefreshCatalog(c *gin.Context) {
	if err := getDeps().Catalog.Refresh(c.Request.Context()); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "catalog refreshed"})
}

// ensureCatalog loads the catalog on first use so read endpoints work
// without an explicit refresh call.
func ensureCatalog(c *gin.Context) error {
	d := getDeps()
	if len(d.Catalog.Products()) > 0 {
		return nil
	}
	return d.Catalog.Refresh(c.Request.Context())
}
