package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/coolbreeze/coolbreeze-api/config"
	"github.com/coolbreeze/coolbreeze-api/models"
)

// ApproveEmailRequest represents the request body for approving an email
type ApproveEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin customer"`
}

// CreateProductRequest represents the request body for creating a product
type CreateProductRequest struct {
	Name          string              `json:"name" binding:"required"`
	Category      string              `json:"category" binding:"required,oneof=Fan AC"`
	Description   string              `json:"description"`
	ImagesByColor []models.ColorImage `json:"imagesByColor"`
	Sizes         []string            `json:"sizes"`
	Colors        []string            `json:"colors"`
	Variants      []models.Variant    `json:"variants"`
}

// CreateRiderRequest represents the request body for registering a rider
type CreateRiderRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// UpdateOrderStatusRequest represents the request body for an admin status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// AssignRiderRequest represents the request body for assigning a rider to an order
type AssignRiderRequest struct {
	RiderID uint `json:"rider_id" binding:"required"`
}

// idParam parses the :id path parameter.
func idParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", c.Param("id"))
	}
	return uint(id), nil
}

// ApproveEmail handles POST /api/v1/admin/approved-emails - adds an
// email to the sign-in allow-list. Approvals are write-once; a second
// approval for the same email conflicts, and later registry changes do
// not retouch users created from earlier approvals.
func ApproveEmail(c *gin.Context) {
	var req ApproveEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Email and role are required.", err)
		return
	}

	db := config.GetDB()

	var existing models.ApprovedEmail
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "Email already approved.", nil)
		return
	}

	approved := models.ApprovedEmail{Email: req.Email, Role: req.Role}
	if err := db.Create(&approved).Error; err != nil {
		if isDuplicateKeyError(err) {
			respondError(c, http.StatusConflict, "Email already approved.", nil)
			return
		}
		logrus.WithError(err).Error("approve email: insert failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Email approved successfully!",
		"approved": approved,
	})
}

// CreateProduct handles POST /api/v1/admin/products - adds a catalog
// item. Variant size/color consistency against the declared lists is
// not checked here.
func CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product data.", err)
		return
	}

	product := models.Product{
		Name:          req.Name,
		Category:      req.Category,
		Description:   req.Description,
		ImagesByColor: req.ImagesByColor,
		Sizes:         req.Sizes,
		Colors:        req.Colors,
		Variants:      req.Variants,
	}

	db := config.GetDB()
	if err := db.Create(&product).Error; err != nil {
		logrus.WithError(err).Error("create product: insert failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Product created successfully!",
		"product": product,
	})
}

// CreateRider handles POST /api/v1/admin/riders - registers a delivery
// rider. Riders are only ever created here; sign-in never creates one.
func CreateRider(c *gin.Context) {
	var req CreateRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Name and email are required.", err)
		return
	}

	db := config.GetDB()

	var existing models.Rider
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "Rider already exists.", nil)
		return
	}

	rider := models.Rider{Name: req.Name, Email: req.Email, OrderCount: 0}
	if err := db.Create(&rider).Error; err != nil {
		if isDuplicateKeyError(err) {
			respondError(c, http.StatusConflict, "Rider already exists.", nil)
			return
		}
		logrus.WithError(err).Error("create rider: insert failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Rider added successfully!",
		"rider":   rider,
	})
}

// ListRiders handles GET /api/v1/admin/riders - all riders with their
// current orderCount, used to drive the assignment UI.
func ListRiders(c *gin.Context) {
	db := config.GetDB()

	var riders []models.Rider
	if err := db.Find(&riders).Error; err != nil {
		logrus.WithError(err).Error("list riders: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Riders fetched successfully!",
		"riders":  riders,
	})
}

// ListAllOrders handles GET /api/v1/admin/orders - every order with
// customer, product, and rider references populated.
func ListAllOrders(c *gin.Context) {
	db := config.GetDB()

	var orders []models.Order
	if err := db.Preload("User").Preload("Rider").Find(&orders).Error; err != nil {
		logrus.WithError(err).Error("list orders: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	if err := populateOrderProducts(db, orders); err != nil {
		logrus.WithError(err).Error("list orders: product population failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "All orders fetched successfully!",
		"orders":  orders,
	})
}

// GetOrderDetail handles GET /api/v1/admin/orders/:id
func GetOrderDetail(c *gin.Context) {
	orderID, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id.", err)
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.Preload("User").Preload("Rider").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		logrus.WithError(err).Error("get order: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	orders := []models.Order{order}
	if err := populateOrderProducts(db, orders); err != nil {
		logrus.WithError(err).Error("get order: product population failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order fetched successfully!",
		"order":   orders[0],
	})
}

// UpdateOrderStatus handles PUT /api/v1/admin/orders/:id/status - an
// administrative override: any valid status may be set on any order,
// with no transition-legality check (Delivered back to Paid included).
func UpdateOrderStatus(c *gin.Context) {
	orderID, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id.", err)
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Status is required", err)
		return
	}
	if !models.IsValidOrderStatus(req.Status) {
		respondError(c, http.StatusBadRequest, "Invalid status", nil)
		return
	}

	db := config.GetDB()

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		logrus.WithError(err).Error("update order status: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	order.Status = req.Status
	if err := db.Save(&order).Error; err != nil {
		logrus.WithError(err).WithField("order_id", orderID).Error("update order status: save failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"order":   order,
	})
}

// AssignRider handles PUT /api/v1/admin/orders/:id/rider - assigns a
// rider to an order and bumps the rider's orderCount. The count is
// incremented once per assignment call, reassignment included, and
// never decremented for the rider being replaced: it measures times
// assigned, not current load. Both writes happen in one transaction.
func AssignRider(c *gin.Context) {
	orderID, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid order id.", err)
		return
	}

	var req AssignRiderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Rider ID is required", err)
		return
	}

	db := config.GetDB()

	var rider models.Rider
	if err := db.First(&rider, req.RiderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Rider not found", nil)
			return
		}
		logrus.WithError(err).Error("assign rider: rider lookup failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	var order models.Order
	txErr := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			return err
		}

		order.RiderID = &rider.ID
		if err := tx.Save(&order).Error; err != nil {
			return err
		}

		return tx.Model(&rider).
			Update("order_count", gorm.Expr("order_count + ?", 1)).Error
	})
	if txErr != nil {
		if errors.Is(txErr, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		logrus.WithError(txErr).WithFields(logrus.Fields{
			"order_id": orderID,
			"rider_id": req.RiderID,
		}).Error("assign rider: transaction failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", txErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rider assigned to order successfully",
		"order":   order,
	})
}
