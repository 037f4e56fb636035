package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/coolbreeze/coolbreeze-api/config"
	"github.com/coolbreeze/coolbreeze-api/models"
)

// respondError writes the standard error body {message} and, only when
// DEBUG_ERRORS is on, the raw error detail under "error".
func respondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{"message": message}
	cfg := config.GetConfig()
	if err != nil && cfg != nil && cfg.DebugErrors {
		body["error"] = err.Error()
	}
	c.JSON(status, body)
}

// isDuplicateKeyError detects a unique-constraint violation. Works with
// both PostgreSQL and SQLite driver error strings.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique")
}

// populateOrderProducts fills in the Product field of every order item.
// Items live in a JSON column, so this is a batch fetch rather than a
// relational preload.
func populateOrderProducts(db *gorm.DB, orders []models.Order) error {
	idSet := make(map[uint]struct{})
	for _, order := range orders {
		for _, item := range order.Items {
			idSet[item.ProductID] = struct{}{}
		}
	}
	if len(idSet) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(idSet))
	for id := range idSet {
		ids = append(ids, id)
	}

	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return err
	}

	byID := make(map[uint]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for oi := range orders {
		for ii := range orders[oi].Items {
			orders[oi].Items[ii].Product = byID[orders[oi].Items[ii].ProductID]
		}
	}
	return nil
}
