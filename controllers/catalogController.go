package controllers

import (
	"net/http"

	"civicreport-be/catalog"
	"civicreport-be/fleet"
	"civicreport-be/middlewares"
	"civicreport-be/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogController struct {
	catalog    *catalog.Catalog
	dispatcher *fleet.Dispatcher
	logger     *zap.Logger
}

func NewCatalogController(cat *catalog.Catalog, dispatcher *fleet.Dispatcher, logger *zap.Logger) *CatalogController {
	return &CatalogController{catalog: cat, dispatcher: dispatcher, logger: logger}
}

// Municipalities lists the supported municipalities with wards and
// departments. Fleet details are staff-only.
func (cc *CatalogController) Municipalities(c *gin.Context) {
	out := make([]models.Municipality, 0, len(cc.catalog.Municipalities))
	for _, m := range cc.catalog.Municipalities {
		m.Fleet = nil
		out = append(out, m)
	}
	c.JSON(http.StatusOK, gin.H{"municipalities": out})
}

func (cc *CatalogController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": cc.catalog.Categories})
}

// Fleet reports vehicle availability for the signed-in user's municipality
func (cc *CatalogController) Fleet(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	sess, _ := middlewares.CurrentSession(c)
	vehicles, err := cc.dispatcher.Availability(ctx, sess.Municipality.ID)
	if err != nil {
		respondError(c, cc.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"fleet": vehicles})
}
