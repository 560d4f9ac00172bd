// internal/services/storage_service.go
package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/panjabighar/panjabi-backend/internal/config"
)

// StorageService hands out presigned S3 PUT URLs for product images. The
// catalog only stores the resulting object URL; the upload itself goes
// straight from the seller's browser to S3.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

type UploadURLRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

type UploadURLResult struct {
	UploadURL string `json:"upload_url"`
	ObjectURL string `json:"object_url"`
	Key       string `json:"key"`
}

var allowedImageExtensions = []string{".jpg", ".jpeg", ".png", ".webp"}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Return service without S3 for local development
		return &StorageService{config: config}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(config.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			config.AWS.AccessKeyID,
			config.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   config,
	}, nil
}

// PresignUpload returns a short-lived URL the seller can PUT an image to.
func (s *StorageService) PresignUpload(sellerEmail string, req *UploadURLRequest) (*UploadURLResult, error) {
	ext := strings.ToLower(filepath.Ext(req.FileName))
	allowed := false
	for _, allowedExt := range allowedImageExtensions {
		if ext == allowedExt {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, fmt.Errorf("file type %s is not allowed", ext)
	}

	if s.s3Client == nil {
		return nil, fmt.Errorf("storage is not configured")
	}

	key := fmt.Sprintf("products/%s/%s%s", sellerEmail, uuid.New(), ext)

	putReq, _ := s.s3Client.PutObjectRequest(&s3.PutObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	uploadURL, err := putReq.Presign(15 * time.Minute)
	if err != nil {
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &UploadURLResult{
		UploadURL: uploadURL,
		ObjectURL: fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.config.AWS.S3Bucket, s.config.AWS.Region, key),
		Key:       key,
	}, nil
}
