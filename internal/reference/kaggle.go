package reference

import (
	"archive/zip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// KaggleClient implements Provider against the Kaggle public API.
type KaggleClient struct {
	baseURL    string
	username   string
	key        string
	maxResults int
	maxBytes   int64
	httpClient *http.Client
	logger     *zap.Logger
}

// KaggleConfig configures the Kaggle client.
type KaggleConfig struct {
	BaseURL         string
	Username        string
	Key             string
	MaxResults      int
	MaxDownloadMB   int64
	RequestTimeout  time.Duration
}

// NewKaggleClient creates a Provider backed by the Kaggle API.
func NewKaggleClient(cfg KaggleConfig, logger *zap.Logger) *KaggleClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.kaggle.com/api/v1"
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 3
	}
	if cfg.MaxDownloadMB <= 0 {
		cfg.MaxDownloadMB = 50
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 60 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KaggleClient{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		username:   cfg.Username,
		key:        cfg.Key,
		maxResults: cfg.MaxResults,
		maxBytes:   cfg.MaxDownloadMB * 1024 * 1024,
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		logger:     logger,
	}
}

type kaggleDataset struct {
	Ref        string `json:"ref"`
	Title      string `json:"title"`
	TotalBytes int64  `json:"totalBytes"`
}

// Search queries the dataset list endpoint and filters hits by size,
// returning at most MaxResults entries ordered as the API returned
// them. An empty result is not an error; the caller substitutes a
// template.
func (c *KaggleClient) Search(ctx context.Context, keyword string) ([]DatasetMeta, error) {
	url := fmt.Sprintf("%s/datasets/list?search=%s&filetype=csv", c.baseURL, keyword)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %v", ErrReferenceAcquisition, err)
	}
	req.SetBasicAuth(c.username, c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", ErrReferenceAcquisition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: search status %d", ErrReferenceAcquisition, resp.StatusCode)
	}

	var datasets []kaggleDataset
	if err := json.NewDecoder(resp.Body).Decode(&datasets); err != nil {
		return nil, fmt.Errorf("%w: decode search response: %v", ErrReferenceAcquisition, err)
	}

	var out []DatasetMeta
	for _, ds := range datasets {
		if ds.TotalBytes > 0 && ds.TotalBytes > c.maxBytes {
			continue
		}
		out = append(out, DatasetMeta{Ref: ds.Ref, Title: ds.Title, SizeBytes: ds.TotalBytes})
		if len(out) >= c.maxResults {
			break
		}
	}

	c.logger.Info("kaggle search",
		zap.String("keyword", keyword),
		zap.Int("hits", len(out)))
	return out, nil
}

// Download fetches the dataset archive, unpacks it under destDir, and
// returns the path of the largest extracted CSV file.
func (c *KaggleClient) Download(ctx context.Context, meta DatasetMeta, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: create dest dir: %v", ErrReferenceAcquisition, err)
	}

	url := fmt.Sprintf("%s/datasets/download/%s", c.baseURL, meta.Ref)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %v", ErrReferenceAcquisition, err)
	}
	req.SetBasicAuth(c.username, c.key)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: download: %v", ErrReferenceAcquisition, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: download status %d", ErrReferenceAcquisition, resp.StatusCode)
	}

	archivePath := filepath.Join(destDir, sanitizeRef(meta.Ref)+".zip")
	if err := writeBounded(archivePath, resp.Body, c.maxBytes); err != nil {
		return "", fmt.Errorf("%w: %v", ErrReferenceAcquisition, err)
	}
	defer os.Remove(archivePath)

	csvPath, err := extractLargestCSV(archivePath, destDir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrReferenceAcquisition, err)
	}

	c.logger.Info("kaggle download complete",
		zap.String("ref", meta.Ref),
		zap.String("file", csvPath))
	return csvPath, nil
}

func sanitizeRef(ref string) string {
	return strings.ReplaceAll(ref, "/", "_")
}

func writeBounded(path string, r io.Reader, limit int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	n, err := io.Copy(f, io.LimitReader(r, limit+1))
	if err != nil {
		return err
	}
	if n > limit {
		return fmt.Errorf("archive exceeds %d byte limit", limit)
	}
	return nil
}

// extractLargestCSV unpacks every .csv entry and returns the path of
// the biggest one.
func extractLargestCSV(archivePath, destDir string) (string, error) {
	zr, err := zip.OpenReader(archivePath)
	if err != nil {
		return "", fmt.Errorf("open archive: %v", err)
	}
	defer zr.Close()

	var best string
	var bestSize uint64
	for _, entry := range zr.File {
		if entry.FileInfo().IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name), ".csv") {
			continue
		}
		outPath := filepath.Join(destDir, filepath.Base(entry.Name))
		if err := extractEntry(entry, outPath); err != nil {
			return "", err
		}
		if entry.UncompressedSize64 >= bestSize {
			best, bestSize = outPath, entry.UncompressedSize64
		}
	}
	if best == "" {
		return "", fmt.Errorf("archive contains no CSV files")
	}
	return best, nil
}

func extractEntry(entry *zip.File, outPath string) error {
	rc, err := entry.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %v", entry.Name, err)
	}
	defer rc.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create %s: %v", outPath, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extract %s: %v", entry.Name, err)
	}
	return nil
}
