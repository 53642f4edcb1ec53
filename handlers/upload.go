package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"buskpod/utils"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 10 << 20 // 10MB

var allowedUploadExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".pdf":  true,
}

var errBadUpload = errors.New("file must be jpg, jpeg, png or pdf and at most 10MB")

// UploadHandler pushes user files to Cloudinary.
type UploadHandler struct{}

func respondUploadError(c *gin.Context, err error) {
	if errors.Is(err, errBadUpload) {
		utils.JSONError(c, http.StatusBadRequest, "invalid file", err.Error())
		return
	}
	utils.JSONError(c, http.StatusInternalServerError, "upload failed", err.Error())
}

// storeFormFile validates the multipart file and uploads it, returning the
// hosted URL.
func (h *UploadHandler) storeFormFile(c *gin.Context, field, folder string) (string, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return "", fmt.Errorf("%w: missing file field %q", errBadUpload, field)
	}
	if header.Size > maxUploadBytes {
		return "", errBadUpload
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedUploadExts[ext] {
		return "", errBadUpload
	}

	file, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("error opening upload: %w", err)
	}
	defer file.Close()

	cld, err := utils.Cloudinary()
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
	defer cancel()
	result, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:   folder,
		PublicID: uuid.New().String(),
	})
	if err != nil {
		return "", fmt.Errorf("error uploading file: %w", err)
	}
	return result.SecureURL, nil
}

// PaymentProof uploads a payment screenshot and returns its URL. The client
// then attaches the URL to a booking.
func (h *UploadHandler) PaymentProof(c *gin.Context) {
	url, err := h.storeFormFile(c, "file", "payment-proofs")
	if err != nil {
		respondUploadError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}
