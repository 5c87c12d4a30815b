package handlers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"

	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/envelope"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/logger"
	"github.com/malkiemm04/cloud-dunkin-pos-pro/core/record"
)

// uploadURLExpiry bounds how long a presigned upload URL stays valid.
const uploadURLExpiry = 5 * time.Minute

// imageKeyPrefix namespaces uploaded menu images in the bucket.
const imageKeyPrefix = "menu-items/"

// allowedImageTypes is the content-type allow-list for uploads.
var allowedImageTypes = []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"}

type uploadURLRequest struct {
	FileName string `json:"fileName"`
	FileType string `json:"fileType"`
}

// GetUploadURL issues a time-limited signed upload URL for a menu image,
// together with the public read URL the image will be served from. The
// declared content type must be on the image allow-list.
func (a *API) GetUploadURL(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if envelope.IsPreflight(req) {
		return envelope.Preflight(), nil
	}

	var upload uploadURLRequest
	if req.Body != "" {
		if err := json.Unmarshal([]byte(req.Body), &upload); err != nil {
			return envelope.Error(http.StatusBadRequest, "invalid JSON body: "+err.Error()), nil
		}
	}
	if upload.FileName == "" || upload.FileType == "" {
		return envelope.Error(http.StatusBadRequest, "fileName and fileType are required"), nil
	}
	if !isAllowedImageType(upload.FileType) {
		return envelope.Error(http.StatusBadRequest, "Invalid file type. Only images are allowed."), nil
	}

	// millisecond timestamp plus file name; two uploads can collide only
	// within the same millisecond under the same name
	key := fmt.Sprintf("%s%d-%s", imageKeyPrefix, time.Now().UnixMilli(), upload.FileName)

	uploadURL, err := a.objects.PresignPut(ctx, key, upload.FileType, uploadURLExpiry)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("presign upload URL")
		return envelope.ErrorWithDetails(http.StatusInternalServerError, "Failed to generate upload URL", err), nil
	}
	imageURL := "https://" + a.config.ImagesCDNDomain + "/" + key

	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"key":       key,
		"fileType":  upload.FileType,
		"timestamp": record.Timestamp(time.Now()),
	}).Info("Presigned URL generated")

	return envelope.OK(map[string]interface{}{
		"uploadUrl": uploadURL,
		"imageUrl":  imageURL,
		"key":       key,
	}), nil
}

func isAllowedImageType(fileType string) bool {
	for _, allowed := range allowedImageTypes {
		if fileType == allowed {
			return true
		}
	}
	return false
}
