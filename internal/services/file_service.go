// file: internal/services/file_service.go
package services

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"
)

// fileService implements FileService on Cloudinary storage
type fileService struct {
	cloudinary *cloudinary.Cloudinary
	logger     *zap.Logger
	config     *FileServiceConfig
}

// FileServiceConfig holds file service configuration
type FileServiceConfig struct {
	MaxProofSize  int64         `json:"max_proof_size"`
	AllowedTypes  []string      `json:"allowed_types"`
	UploadTimeout time.Duration `json:"upload_timeout"`
	Folder        string        `json:"folder"`
}

// DefaultFileConfig returns default file service configuration
func DefaultFileConfig() *FileServiceConfig {
	return &FileServiceConfig{
		MaxProofSize:  5 * 1024 * 1024, // 5MB
		AllowedTypes:  []string{".jpg", ".jpeg", ".png", ".webp", ".pdf"},
		UploadTimeout: 2 * time.Minute,
		Folder:        "ecotrack/proofs",
	}
}

// NewFileService creates a new file service
func NewFileService(cld *cloudinary.Cloudinary, logger *zap.Logger, config *FileServiceConfig) FileService {
	if config == nil {
		config = DefaultFileConfig()
	}
	return &fileService{
		cloudinary: cld,
		logger:     logger,
		config:     config,
	}
}

// UploadProof validates and stores one proof file, returning its public URL
// so the client can attach it when logging the action.
func (s *fileService) UploadProof(ctx context.Context, userID int64, filename string, size int64, file io.Reader) (*ProofUploadResult, error) {
	if err := s.validateProof(filename, size); err != nil {
		return nil, NewValidationError("proof validation failed", err)
	}

	uploadCtx, cancel := context.WithTimeout(ctx, s.config.UploadTimeout)
	defer cancel()

	result, err := s.cloudinary.Upload.Upload(uploadCtx, file, uploader.UploadParams{
		Folder:         s.config.Folder,
		PublicID:       fmt.Sprintf("user_%d_%d", userID, time.Now().UnixNano()),
		UseFilename:    boolPtr(false),
		UniqueFilename: boolPtr(true),
		Tags:           []string{"ecotrack", "proof"},
	})
	if err != nil {
		s.logger.Error("Proof upload failed",
			zap.Int64("user_id", userID),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, NewServiceUnavailableError("proof storage unavailable")
	}

	s.logger.Info("Proof uploaded",
		zap.Int64("user_id", userID),
		zap.String("public_id", result.PublicID),
		zap.Int64("size", size),
	)

	return &ProofUploadResult{
		URL:       result.SecureURL,
		PublicID:  result.PublicID,
		ProofType: "photo",
		Size:      size,
	}, nil
}

func boolPtr(b bool) *bool { return &b }

// disabledFileService rejects uploads when no storage provider is
// configured.
type disabledFileService struct{}

func (disabledFileService) UploadProof(ctx context.Context, userID int64, filename string, size int64, file io.Reader) (*ProofUploadResult, error) {
	return nil, NewServiceUnavailableError("proof uploads are not configured")
}

func (s *fileService) validateProof(filename string, size int64) error {
	if size <= 0 {
		return fmt.Errorf("empty file")
	}
	if size > s.config.MaxProofSize {
		return fmt.Errorf("file exceeds %d byte limit", s.config.MaxProofSize)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range s.config.AllowedTypes {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("file type %q is not allowed", ext)
}
