package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/coolbreeze/coolbreeze-api/services"
	"github.com/coolbreeze/coolbreeze-api/utils"
)

// UploadProductImage handles POST /api/v1/admin/products/images - puts
// a PNG on S3 and returns the public URL to paste into a product's
// imagesByColor entry.
func UploadProductImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Image file is required.", err)
		return
	}

	if err := utils.ValidateImageFile(fileHeader); err != nil {
		respondError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	s3Service := services.GetS3Service()
	s3Key, err := s3Service.UploadImage(fileHeader)
	if err != nil {
		logrus.WithError(err).Error("upload product image: S3 upload failed")
		respondError(c, http.StatusInternalServerError, "Internal server error!", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Image uploaded successfully!",
		"imageUrl": s3Service.ObjectURL(s3Key),
	})
}
