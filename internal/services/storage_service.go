// internal/services/storage_service.go
package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/expiryeaze/expiryeaze-backend/internal/config"
	"github.com/expiryeaze/expiryeaze-backend/internal/i18n"
	"github.com/expiryeaze/expiryeaze-backend/internal/metrics"
	"github.com/expiryeaze/expiryeaze-backend/internal/utils"
)

// UploadKind selects the folder and limits of an upload.
type UploadKind string

const (
	UploadKindProduct  UploadKind = "product"
	UploadKindReview   UploadKind = "review"
	UploadKindDocument UploadKind = "document"
	UploadKindAvatar   UploadKind = "avatar"
)

// documentURLExpiry is how long a presigned link to a private document stays valid.
const documentURLExpiry = 15 * time.Minute

type StorageService struct {
	s3Client s3iface.S3API
	config   *config.Config
}

type UploadInput struct {
	Kind        UploadKind
	OwnerID     string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type UploadResult struct {
	URL      string `json:"url"`
	Key      string `json:"key"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	Checksum string `json:"checksum"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
	ImageOnly    bool
	IsPublic     bool
}

func NewStorageService(config *config.Config) (*StorageService, error) {
	if config.AWS.AccessKeyID == "" {
		// Without credentials uploads get local URLs
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

	return NewStorageServiceWithClient(config, s3.New(sess)), nil
}

// NewStorageServiceWithClient uses an existing S3 client.
func NewStorageServiceWithClient(config *config.Config, client s3iface.S3API) *StorageService {
	return &StorageService{
		s3Client: client,
		config:   config,
	}
}

func ParseUploadKind(raw string) (UploadKind, error) {
	switch kind := UploadKind(strings.ToLower(strings.TrimSpace(raw))); kind {
	case UploadKindProduct, UploadKindReview, UploadKindDocument, UploadKindAvatar:
		return kind, nil
	}
	return "", newError(ErrValidation, i18n.KeyUploadInvalidKind)
}

func (s *StorageService) Upload(ctx context.Context, in UploadInput) (*UploadResult, error) {
	options := UploadOptionsFor(in.Kind)

	// Validate file size
	if options.MaxSize > 0 && in.Size > options.MaxSize {
		return nil, newError(ErrValidation, i18n.KeyUploadTooLarge, options.MaxSize/(1024*1024))
	}

	// Validate file type
	fileExt := strings.ToLower(filepath.Ext(in.Filename))
	if !contains(options.AllowedTypes, fileExt) {
		return nil, newError(ErrValidation, i18n.KeyUploadInvalidType, fileExt)
	}

	// Read at most one byte past the limit so a lying Size header is still caught
	fileBytes, err := io.ReadAll(io.LimitReader(in.Body, options.MaxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	if int64(len(fileBytes)) > options.MaxSize {
		return nil, newError(ErrValidation, i18n.KeyUploadTooLarge, options.MaxSize/(1024*1024))
	}
	if options.ImageOnly && !isValidImageType(fileBytes) {
		return nil, newError(ErrValidation, i18n.KeyUploadInvalidImage)
	}

	contentType := in.ContentType
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(fileBytes)
	}

	key := generateFileName(in.Filename, options.Folder, in.OwnerID)

	var result *UploadResult
	if s.s3Client != nil {
		result, err = s.uploadToS3(ctx, fileBytes, key, contentType, options.IsPublic)
	} else {
		result = s.uploadToLocal(fileBytes, key, contentType)
	}
	if err != nil {
		return nil, err
	}
	result.Checksum = utils.ContentHash(fileBytes)

	metrics.UploadsTotal.WithLabelValues(string(in.Kind)).Inc()
	logrus.WithFields(logrus.Fields{
		"kind":  in.Kind,
		"key":   result.Key,
		"size":  result.Size,
		"owner": in.OwnerID,
	}).Info("File uploaded")
	return result, nil
}

func (s *StorageService) uploadToS3(ctx context.Context, fileBytes []byte, key, contentType string, isPublic bool) (*UploadResult, error) {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}
	if isPublic {
		params.ACL = aws.String("public-read")
	}

	if _, err := s.s3Client.PutObjectWithContext(ctx, params); err != nil {
		return nil, fmt.Errorf("failed to upload to S3: %w", err)
	}

	url := s.getS3URL(key)
	if !isPublic {
		signed, err := s.GeneratePresignedURL(key, documentURLExpiry)
		if err != nil {
			return nil, err
		}
		url = signed
	}

	return &UploadResult{
		URL:      url,
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}, nil
}

func (s *StorageService) uploadToLocal(fileBytes []byte, key, contentType string) *UploadResult {
	return &UploadResult{
		URL:      fmt.Sprintf("%s/uploads/%s", strings.TrimRight(s.config.Server.PublicURL, "/"), key),
		Key:      key,
		Size:     int64(len(fileBytes)),
		MimeType: contentType,
	}
}

func (s *StorageService) GeneratePresignedURL(key string, expiration time.Duration) (string, error) {
	if s.s3Client == nil {
		return "", fmt.Errorf("S3 client not configured")
	}

	req, _ := s.s3Client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.config.AWS.S3Bucket),
		Key:    aws.String(key),
	})

	url, err := req.Presign(expiration)
	if err != nil {
		return "", fmt.Errorf("failed to generate presigned URL: %w", err)
	}
	return url, nil
}

// UploadOptionsFor returns the limits of an upload kind.
func UploadOptionsFor(kind UploadKind) UploadOptions {
	switch kind {
	case UploadKindProduct:
		return UploadOptions{
			Folder:       "products",
			MaxSize:      5 * 1024 * 1024, // 5MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif", ".webp"},
			ImageOnly:    true,
			IsPublic:     true,
		}
	case UploadKindReview:
		return UploadOptions{
			Folder:       "reviews",
			MaxSize:      5 * 1024 * 1024, // 5MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".webp"},
			ImageOnly:    true,
			IsPublic:     true,
		}
	case UploadKindAvatar:
		return UploadOptions{
			Folder:       "avatars",
			MaxSize:      2 * 1024 * 1024, // 2MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png"},
			ImageOnly:    true,
			IsPublic:     true,
		}
	default:
		// Identity and pharmacy documents stay private
		return UploadOptions{
			Folder:       "documents",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".pdf"},
			IsPublic:     false,
		}
	}
}

func generateFileName(originalName, folder, ownerID string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	timestamp := time.Now().Format("20060102")
	filename := fmt.Sprintf("%s_%s%s", timestamp, uuid.NewString()[:8], ext)

	if ownerID != "" {
		filename = ownerID + "/" + filename
	}
	if folder != "" {
		return folder + "/" + filename
	}
	return filename
}

func (s *StorageService) getS3URL(key string) string {
	if s.config.AWS.CloudFrontURL != "" {
		return fmt.Sprintf("%s/%s", s.config.AWS.CloudFrontURL, key)
	}

	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s",
		s.config.AWS.S3Bucket, s.config.AWS.Region, key)
}

// isValidImageType checks the leading bytes for a JPEG, PNG, GIF or WebP signature.
func isValidImageType(buffer []byte) bool {
	switch {
	case len(buffer) >= 3 && buffer[0] == 0xFF && buffer[1] == 0xD8 && buffer[2] == 0xFF:
		return true
	case len(buffer) >= 8 && bytes.Equal(buffer[:8], []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}):
		return true
	case len(buffer) >= 6 && (string(buffer[:6]) == "GIF87a" || string(buffer[:6]) == "GIF89a"):
		return true
	case len(buffer) >= 12 && string(buffer[:4]) == "RIFF" && string(buffer[8:12]) == "WEBP":
		return true
	}
	return false
}

func contains(list []string, value string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}
