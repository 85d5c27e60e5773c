// Package blob stores binary image assets in Cloudinary via its upload REST
// API. There is no maintained Go SDK, so requests are signed and sent
// directly: parameters are sorted, concatenated, and HMAC'd per Cloudinary's
// SHA-1 signing scheme.
package blob

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/NovaAI-innovation/backend12/internal/config"
)

// Store uploads and deletes binary image assets, returning stable public
// URLs.
type Store interface {
	Upload(ctx context.Context, data []byte, filename string) (string, error)
	Delete(ctx context.Context, assetURL string) error
}

const (
	uploadFolder = "gallery"
	maxAttempts  = 3
)

// ErrNotConfigured is returned when blob credentials are absent.
var ErrNotConfigured = errors.New("blob storage not configured")

// CloudinaryStore implements Store against the Cloudinary upload API.
type CloudinaryStore struct {
	cfg    config.CloudinaryConfig
	client *http.Client
	logger *zap.Logger
	now    func() time.Time
	// sleep is swapped in tests to skip real backoff waits.
	sleep func(time.Duration)
}

var _ Store = (*CloudinaryStore)(nil)

// NewCloudinaryStore creates a store from configured credentials.
func NewCloudinaryStore(cfg config.CloudinaryConfig, logger *zap.Logger) *CloudinaryStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CloudinaryStore{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: logger,
		now:    time.Now,
		sleep:  time.Sleep,
	}
}

// Configured reports whether credentials are present.
func (s *CloudinaryStore) Configured() bool { return s.cfg.Configured() }

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	PublicID  string `json:"public_id"`
}

type destroyResponse struct {
	Result string `json:"result"`
}

// Upload sends the image bytes to the gallery folder and returns the secure
// URL. Transient failures are retried with exponential backoff.
func (s *CloudinaryStore) Upload(ctx context.Context, data []byte, filename string) (string, error) {
	if !s.Configured() {
		return "", ErrNotConfigured
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/upload", s.cfg.CloudName)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}

		params := map[string]string{
			"folder":    uploadFolder,
			"timestamp": strconv.FormatInt(s.now().Unix(), 10),
		}
		body, contentType, err := s.multipartBody(params, data, filename)
		if err != nil {
			return "", err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
		if err != nil {
			return "", fmt.Errorf("build upload request: %w", err)
		}
		req.Header.Set("Content-Type", contentType)

		var result uploadResponse
		if lastErr = s.do(req, &result); lastErr != nil {
			s.logger.Warn("cloudinary upload failed",
				zap.Int("attempt", attempt+1),
				zap.String("filename", filename),
				zap.Error(lastErr),
			)
			continue
		}
		return result.SecureURL, nil
	}
	return "", fmt.Errorf("upload %s after %d attempts: %w", filename, maxAttempts, lastErr)
}

// Delete removes the asset addressed by a previously returned URL. A missing
// asset counts as success; the database row is the source of truth.
func (s *CloudinaryStore) Delete(ctx context.Context, assetURL string) error {
	if !s.Configured() {
		return ErrNotConfigured
	}

	publicID, err := PublicIDFromURL(assetURL)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("https://api.cloudinary.com/v1_1/%s/image/destroy", s.cfg.CloudName)

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if attempt > 0 {
			s.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}

		params := map[string]string{
			"public_id":  publicID,
			"invalidate": "true",
			"timestamp":  strconv.FormatInt(s.now().Unix(), 10),
		}
		form := s.signedForm(params)

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
			strings.NewReader(form.Encode()))
		if err != nil {
			return fmt.Errorf("build destroy request: %w", err)
		}
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

		var result destroyResponse
		if lastErr = s.do(req, &result); lastErr != nil {
			s.logger.Warn("cloudinary delete failed",
				zap.Int("attempt", attempt+1),
				zap.String("public_id", publicID),
				zap.Error(lastErr),
			)
			continue
		}
		if result.Result != "ok" && result.Result != "not found" {
			lastErr = fmt.Errorf("destroy %s: unexpected result %q", publicID, result.Result)
			continue
		}
		return nil
	}
	return fmt.Errorf("delete %s after %d attempts: %w", publicID, maxAttempts, lastErr)
}

func (s *CloudinaryStore) do(req *http.Request, out any) error {
	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("cloudinary status %d: %s", resp.StatusCode, payload)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode cloudinary response: %w", err)
	}
	return nil
}

// sign produces Cloudinary's request signature: the sorted key=value pairs
// joined with &, concatenated with the API secret, SHA-1 hashed.
func (s *CloudinaryStore) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + s.cfg.APISecret))
	return hex.EncodeToString(sum[:])
}

func (s *CloudinaryStore) signedForm(params map[string]string) url.Values {
	form := url.Values{}
	for k, v := range params {
		form.Set(k, v)
	}
	form.Set("api_key", s.cfg.APIKey)
	form.Set("signature", s.sign(params))
	return form
}

func (s *CloudinaryStore) multipartBody(params map[string]string, data []byte, filename string) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for k, v := range params {
		if err := writer.WriteField(k, v); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := writer.WriteField("api_key", s.cfg.APIKey); err != nil {
		return nil, "", fmt.Errorf("write api key: %w", err)
	}
	if err := writer.WriteField("signature", s.sign(params)); err != nil {
		return nil, "", fmt.Errorf("write signature: %w", err)
	}

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, "", fmt.Errorf("create file part: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, "", fmt.Errorf("write file part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart body: %w", err)
	}

	return &buf, writer.FormDataContentType(), nil
}

var publicIDPattern = regexp.MustCompile(`/image/upload(?:/v\d+)?/(.+)$`)

// PublicIDFromURL extracts the Cloudinary public ID from a delivery URL,
// dropping any version segment and the file extension.
func PublicIDFromURL(assetURL string) (string, error) {
	match := publicIDPattern.FindStringSubmatch(assetURL)
	if match == nil {
		return "", fmt.Errorf("not a cloudinary delivery url: %s", assetURL)
	}

	publicID := match[1]
	slash := strings.LastIndex(publicID, "/")
	if dot := strings.LastIndex(publicID[slash+1:], "."); dot >= 0 {
		publicID = publicID[:slash+1+dot]
	}
	return publicID, nil
}
