package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/coolbreeze/coolbreeze-api/config"
	"github.com/coolbreeze/coolbreeze-api/models"
	"github.com/coolbreeze/coolbreeze-api/services"
	"github.com/coolbreeze/coolbreeze-api/utils"
)

// bearerToken extracts the bearer token from the Authorization header.
func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(authHeader, "Bearer ")
}

// UserSignIn handles POST /api/v1/auth/user/signin - exchanges an
// identity token for a session token. The email must be pre-approved;
// a User is created lazily on first sign-in with the approved role.
func UserSignIn(c *gin.Context) {
	idToken := bearerToken(c)
	if idToken == "" {
		respondError(c, http.StatusUnauthorized, "No token provided", nil)
		return
	}

	identity, err := services.GetIdentityVerifier().Verify(c.Request.Context(), idToken)
	if err != nil {
		logrus.WithError(err).Warn("user sign-in: identity verification failed")
		respondError(c, http.StatusUnauthorized, "Identity verification failed", err)
		return
	}

	db := config.GetDB()

	var approved models.ApprovedEmail
	if err := db.Where("email = ?", identity.Email).First(&approved).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusForbidden, "Email not approved", nil)
			return
		}
		logrus.WithError(err).Error("user sign-in: approved email lookup failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	// Lookup-or-create keeps repeated sign-ins idempotent. The role is
	// fixed from the approval record at creation and never re-read.
	var user models.User
	err = db.Where("email = ?", identity.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Name:  identity.Name,
			Email: identity.Email,
			Role:  approved.Role,
		}
		err = db.Create(&user).Error
	}
	if err != nil {
		logrus.WithError(err).Error("user sign-in: user lookup/create failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	cfg := config.GetConfig()
	token, err := utils.NewSessionToken(user.ID, user.Role, cfg.JWTSecret)
	if err != nil {
		logrus.WithError(err).Error("user sign-in: session token signing failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User login successful",
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
		"token": token,
	})
}

// RiderSignIn handles POST /api/v1/auth/rider/signin - same identity
// verification, but riders must be pre-registered by an admin; there is
// no lazy creation and the session role is always "rider".
func RiderSignIn(c *gin.Context) {
	idToken := bearerToken(c)
	if idToken == "" {
		respondError(c, http.StatusUnauthorized, "No token provided", nil)
		return
	}

	identity, err := services.GetIdentityVerifier().Verify(c.Request.Context(), idToken)
	if err != nil {
		logrus.WithError(err).Warn("rider sign-in: identity verification failed")
		respondError(c, http.StatusUnauthorized, "Identity verification failed", err)
		return
	}

	db := config.GetDB()

	var rider models.Rider
	if err := db.Where("email = ?", identity.Email).First(&rider).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondError(c, http.StatusForbidden, "Not a registered rider", nil)
			return
		}
		logrus.WithError(err).Error("rider sign-in: rider lookup failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	cfg := config.GetConfig()
	token, err := utils.NewSessionToken(rider.ID, models.RoleRider, cfg.JWTSecret)
	if err != nil {
		logrus.WithError(err).Error("rider sign-in: session token signing failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rider login successful",
		"rider": gin.H{
			"id":    rider.ID,
			"name":  rider.Name,
			"email": rider.Email,
		},
		"role":  models.RoleRider,
		"token": token,
	})
}
