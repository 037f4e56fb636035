package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/coolbreeze/coolbreeze-api/models"
	"github.com/coolbreeze/coolbreeze-api/services"
)

func multipartImageRequest(t *testing.T, fieldName, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}
	return body, writer.FormDataContentType()
}

func TestUploadProductImage(t *testing.T) {
	setupControllerTest(t)

	mockS3 := services.NewMockS3Service()
	mockS3.SetAsMockForTesting()

	router := gin.New()
	router.POST("/api/v1/admin/products/images", authAs(1, models.RoleAdmin), UploadProductImage)

	t.Run("Successful PNG upload returns public URL", func(t *testing.T) {
		body, contentType := multipartImageRequest(t, "image", "fan-white.png", []byte("fake png bytes"))

		req := httptest.NewRequest("POST", "/api/v1/admin/products/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response map[string]interface{}
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		imageURL := response["imageUrl"].(string)
		assert.True(t, strings.HasPrefix(imageURL, "https://"))
		assert.Contains(t, imageURL, "fan-white.png")
		assert.Equal(t, 1, mockS3.FileCount())
	})

	t.Run("Non-PNG upload is rejected", func(t *testing.T) {
		body, contentType := multipartImageRequest(t, "image", "fan.jpg", []byte("fake jpg bytes"))

		req := httptest.NewRequest("POST", "/api/v1/admin/products/images", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, 1, mockS3.FileCount())
	})

	t.Run("Missing file field is rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/v1/admin/products/images", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
