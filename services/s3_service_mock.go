package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"sync"
)

// MockS3Service is a mock implementation of S3Interface for testing
type MockS3Service struct {
	uploadedFiles map[string][]byte // map of S3 key to file content
	mu            sync.RWMutex
}

// NewMockS3Service creates a new mock S3 service
func NewMockS3Service() *MockS3Service {
	return &MockS3Service{
		uploadedFiles: make(map[string][]byte),
	}
}

// SetAsMockForTesting sets this mock as the global S3 service instance for testing
func (m *MockS3Service) SetAsMockForTesting() {
	SetS3Service(m)
}

// UploadImage simulates uploading a product image to S3
func (m *MockS3Service) UploadImage(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	s3Key := fmt.Sprintf("products/mock_%s", fileHeader.Filename)

	m.mu.Lock()
	m.uploadedFiles[s3Key] = content
	m.mu.Unlock()

	return s3Key, nil
}

// ObjectURL returns a deterministic fake URL for the key
func (m *MockS3Service) ObjectURL(s3Key string) string {
	if s3Key == "" {
		return ""
	}
	return fmt.Sprintf("https://mock-bucket.s3.us-east-1.amazonaws.com/%s", s3Key)
}

// DeleteImage simulates deleting a product image from S3
func (m *MockS3Service) DeleteImage(s3Key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.uploadedFiles[s3Key]; !ok {
		return fmt.Errorf("file not found: %s", s3Key)
	}
	delete(m.uploadedFiles, s3Key)
	return nil
}

// FileCount returns the number of uploaded files in mock storage
func (m *MockS3Service) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.uploadedFiles)
}

// HasFile reports whether the key exists in mock storage
func (m *MockS3Service) HasFile(s3Key string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.uploadedFiles[s3Key]
	return ok
}
