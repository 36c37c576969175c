package storage

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"syntra/internal/config"

	"github.com/google/uuid"
)

// Uploader uploads an image blob and returns a durable HTTPS URL
type Uploader interface {
	UploadImage(ctx context.Context, data []byte, folder string) (string, error)
}

// CloudinaryUploader implements Uploader against the Cloudinary
// signed-upload API
type CloudinaryUploader struct {
	cfg    config.CloudinaryConfig
	client *http.Client
}

// NewCloudinaryUploader creates a new Cloudinary uploader
func NewCloudinaryUploader(cfg config.CloudinaryConfig) *CloudinaryUploader {
	return &CloudinaryUploader{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// uploadResponse is the subset of the Cloudinary response we consume
type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadImage uploads an image and returns its secure URL
func (u *CloudinaryUploader) UploadImage(ctx context.Context, data []byte, folder string) (string, error) {
	if u.cfg.CloudName == "" || u.cfg.APIKey == "" || u.cfg.APISecret == "" {
		return "", fmt.Errorf("cloudinary credentials not configured")
	}

	publicID := uuid.New().String()
	if folder != "" {
		publicID = folder + "/" + publicID
	}

	// Signed upload: signature is SHA1 over the sorted params + secret
	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	signatureString := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, u.cfg.APISecret)
	signature := fmt.Sprintf("%x", sha1.Sum([]byte(signatureString)))

	form := url.Values{}
	form.Add("file", "data:image/jpeg;base64,"+base64.StdEncoding.EncodeToString(data))
	form.Add("api_key", u.cfg.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", signature)

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", u.cfg.CloudName)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := u.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("cloudinary upload failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result uploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", err
	}

	if result.Error.Message != "" {
		return "", fmt.Errorf("cloudinary error: %s", result.Error.Message)
	}

	secureURL := result.SecureURL
	if secureURL == "" {
		secureURL = result.URL
	}
	if secureURL == "" {
		return "", fmt.Errorf("cloudinary returned no URL")
	}

	return secureURL, nil
}
