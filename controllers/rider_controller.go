package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/coolbreeze/coolbreeze-api/config"
	"github.com/coolbreeze/coolbreeze-api/middleware"
	"github.com/coolbreeze/coolbreeze-api/models"
)

// UpdateDeliveryStatusRequest represents the request body for a rider
// marking a delivery outcome
type UpdateDeliveryStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// GetRiderProfile handles GET /api/v1/rider/profile
func GetRiderProfile(c *gin.Context) {
	riderID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information", err)
		return
	}

	db := config.GetDB()

	var rider models.Rider
	if err := db.First(&rider, riderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Rider not found", nil)
			return
		}
		logrus.WithError(err).Error("rider profile: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rider profile fetched successfully",
		"profile": gin.H{
			"id":          rider.ID,
			"name":        rider.Name,
			"email":       rider.Email,
			"order_count": rider.OrderCount,
		},
	})
}

// ListAssignedOrders handles GET /api/v1/rider/orders - only orders
// assigned to the calling rider, with delivery details populated.
func ListAssignedOrders(c *gin.Context) {
	riderID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information", err)
		return
	}

	db := config.GetDB()

	var orders []models.Order
	if err := db.Preload("User").Where("rider_id = ?", riderID).Find(&orders).Error; err != nil {
		logrus.WithError(err).Error("list assigned orders: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	if err := populateOrderProducts(db, orders); err != nil {
		logrus.WithError(err).Error("list assigned orders: product population failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Assigned orders fetched successfully",
		"orders":  orders,
	})
}

// GetAssignedOrder handles GET /api/v1/rider/orders/:id - an order not
// assigned to the caller reads as missing.
func GetAssignedOrder(c *gin.Context) {
	riderID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information", err)
		return
	}

	orderID, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id.", err)
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Preload("User").Where("id = ? AND rider_id = ?", orderID, riderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found or not assigned to you", nil)
			return
		}
		logrus.WithError(err).Error("get assigned order: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	orders := []models.Order{order}
	if err := populateOrderProducts(db, orders); err != nil {
		logrus.WithError(err).Error("get assigned order: product population failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully fetched order details!",
		"order":   orders[0],
	})
}

// UpdateDeliveryStatus handles PUT /api/v1/rider/orders/:id/status -
// a rider may only mark Delivered or Undelivered, and only on orders
// assigned to them.
func UpdateDeliveryStatus(c *gin.Context) {
	riderID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information", err)
		return
	}

	orderID, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id.", err)
		return
	}

	var req UpdateDeliveryStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Status is required", err)
		return
	}
	if req.Status != models.StatusDelivered && req.Status != models.StatusUndelivered {
		respondError(c, http.StatusBadRequest, "Invalid status", nil)
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Where("id = ? AND rider_id = ?", orderID, riderID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found or not assigned to you", nil)
			return
		}
		logrus.WithError(err).Error("update delivery status: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	order.Status = req.Status
	if err := db.Save(&order).Error; err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"order_id": orderID,
			"rider_id": riderID,
		}).Error("update delivery status: save failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("Order status updated to %s", order.Status),
		"order":   order,
	})
}
