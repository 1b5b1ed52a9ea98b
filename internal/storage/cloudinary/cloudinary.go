package cloudinary

import (
	"context"
	"crypto/sha1"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"careers-api/internal/storage"

	"github.com/google/uuid"
)

// Config holds the Cloudinary credentials and target folder.
type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Store implements storage.FileStore against the Cloudinary upload API
// using signed form posts.
type Store struct {
	cfg    Config
	client *http.Client
}

// NewStore creates a Cloudinary-backed file store.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

var _ storage.FileStore = (*Store)(nil)

type uploadResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload sends the blob as a signed upload under the configured folder and
// returns the durable secure URL. The category becomes part of the public ID
// so documents stay grouped by kind.
func (s *Store) Upload(ctx context.Context, data []byte, category string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("cloudinary: refusing to upload empty blob")
	}

	publicID := category + "-" + uuid.New().String()
	if s.cfg.Folder != "" {
		publicID = s.cfg.Folder + "/" + publicID
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form := url.Values{}
	form.Add("file", "data:application/octet-stream;base64,"+base64.StdEncoding.EncodeToString(data))
	form.Add("api_key", s.cfg.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp)))

	endpoint := "https://api.cloudinary.com/v1_1/" + s.cfg.CloudName + "/auto/upload"
	result, err := s.post(ctx, endpoint, form)
	if err != nil {
		return "", err
	}

	locator := result.SecureURL
	if locator == "" {
		locator = result.URL
	}
	if locator == "" {
		return "", fmt.Errorf("cloudinary: upload failed: %s", result.Error.Message)
	}

	return locator, nil
}

// Delete destroys the asset the locator points at. The public ID is derived
// back from the delivery URL.
func (s *Store) Delete(ctx context.Context, locator string) error {
	publicID, err := publicIDFromURL(locator)
	if err != nil {
		return err
	}

	timestamp := fmt.Sprintf("%d", time.Now().Unix())
	form := url.Values{}
	form.Add("api_key", s.cfg.APIKey)
	form.Add("public_id", publicID)
	form.Add("timestamp", timestamp)
	form.Add("signature", s.sign(fmt.Sprintf("public_id=%s&timestamp=%s", publicID, timestamp)))

	endpoint := "https://api.cloudinary.com/v1_1/" + s.cfg.CloudName + "/image/destroy"
	result, err := s.post(ctx, endpoint, form)
	if err != nil {
		return err
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary: destroy failed: %s", result.Error.Message)
	}

	log.Printf("Cloudinary asset deleted: %s", publicID)
	return nil
}

func (s *Store) sign(toSign string) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(toSign+s.cfg.APISecret)))
}

func (s *Store) post(ctx context.Context, endpoint string, form url.Values) (*uploadResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("cloudinary: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: request failed: %w", err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: failed to read response: %w", err)
	}

	var result uploadResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("cloudinary: failed to decode response: %w", err)
	}

	return &result, nil
}

// publicIDFromURL recovers the public ID from a delivery URL such as
// https://res.cloudinary.com/<cloud>/image/upload/v123/<folder>/<id>.pdf
func publicIDFromURL(locator string) (string, error) {
	parsed, err := url.Parse(locator)
	if err != nil {
		return "", fmt.Errorf("cloudinary: invalid locator %q: %w", locator, err)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	uploadIdx := -1
	for i, seg := range segments {
		if seg == "upload" {
			uploadIdx = i
			break
		}
	}
	if uploadIdx == -1 || uploadIdx+1 >= len(segments) {
		return "", fmt.Errorf("cloudinary: locator %q is not a delivery URL", locator)
	}

	rest := segments[uploadIdx+1:]
	// Skip the version segment (v<digits>) when present.
	if len(rest) > 1 && strings.HasPrefix(rest[0], "v") {
		rest = rest[1:]
	}

	publicID := strings.Join(rest, "/")
	publicID = strings.TrimSuffix(publicID, path.Ext(publicID))
	if publicID == "" {
		return "", fmt.Errorf("cloudinary: could not derive public ID from %q", locator)
	}

	return publicID, nil
}
