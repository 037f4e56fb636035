package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/coolbreeze/coolbreeze-api/config"
	"github.com/coolbreeze/coolbreeze-api/middleware"
	"github.com/coolbreeze/coolbreeze-api/models"
)

// UpdateProfileRequest represents the request body for updating the
// customer's delivery details before checkout
type UpdateProfileRequest struct {
	Address models.Address `json:"address"`
	Phone   string         `json:"phone"`
}

// CreateOrderRequest represents the request body for checkout
type CreateOrderRequest struct {
	Items []models.OrderItem `json:"items" binding:"required"`
}

// ListProducts handles GET /api/v1/customer/products
func ListProducts(c *gin.Context) {
	db := config.GetDB()

	var products []models.Product
	if err := db.Find(&products).Error; err != nil {
		logrus.WithError(err).Error("list products: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "Successfully fetched all products!",
		"products": products,
	})
}

// GetProduct handles GET /api/v1/customer/products/:id
func GetProduct(c *gin.Context) {
	productID, err := idParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid product id.", err)
		return
	}

	db := config.GetDB()

	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Product not found", nil)
			return
		}
		logrus.WithError(err).Error("get product: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully fetched product details!",
		"product": product,
	})
}

// UpdateProfile handles PUT /api/v1/customer/profile - sets the
// customer's address and phone ahead of their first order.
func UpdateProfile(c *gin.Context) {
	customerID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information", err)
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid profile data.", err)
		return
	}

	db := config.GetDB()

	var user models.User
	if err := db.First(&user, customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "User not found", nil)
			return
		}
		logrus.WithError(err).Error("update profile: user lookup failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	user.Address = req.Address
	user.Phone = req.Phone
	if err := db.Save(&user).Error; err != nil {
		logrus.WithError(err).WithField("user_id", customerID).Error("update profile: save failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated",
		"user":    user,
	})
}

// CreateOrder handles POST /api/v1/customer/orders - checkout. The
// order starts Paid with no rider. The total is the sum of the items'
// unit prices; quantity is deliberately not factored in, matching how
// the storefront computes the cart total.
func CreateOrder(c *gin.Context) {
	customerID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information", err)
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		respondError(c, http.StatusBadRequest, "No items in order", err)
		return
	}

	var totalPrice float64
	for _, item := range req.Items {
		totalPrice += item.Price
	}

	order := models.Order{
		UserID:     customerID,
		Items:      req.Items,
		TotalPrice: totalPrice,
		Status:     models.StatusPaid,
	}

	db := config.GetDB()
	if err := db.Create(&order).Error; err != nil {
		logrus.WithError(err).WithField("user_id", customerID).Error("create order: insert failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// ListMyOrders handles GET /api/v1/customer/orders - the caller's past
// orders only; the query is scoped by the session's user id.
func ListMyOrders(c *gin.Context) {
	customerID, err := middleware.GetUserID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Could not extract user information", err)
		return
	}

	db := config.GetDB()

	var orders []models.Order
	if err := db.Where("user_id = ?", customerID).Find(&orders).Error; err != nil {
		logrus.WithError(err).Error("list customer orders: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	if err := populateOrderProducts(db, orders); err != nil {
		logrus.WithError(err).Error("list customer orders: product population failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully fetched all orders of customer!",
		"orders":  orders,
	})
}

// GetMyOrder handles GET /api/v1/customer/orders/:id - an order that
// belongs to someone else is indistinguishable from a missing one.
func GetMyOrder(c *gin.Context) {
	customerID, err := middleware.GetUserID(c)
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
	if err := db.Where("id = ? AND user_id = ?", orderID, customerID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusNotFound, "Order not found", nil)
			return
		}
		logrus.WithError(err).Error("get customer order: query failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	orders := []models.Order{order}
	if err := populateOrderProducts(db, orders); err != nil {
		logrus.WithError(err).Error("get customer order: product population failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Successfully fetched order details!",
		"order":   orders[0],
	})
}
