package reference

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Vasishta03/DataForge/internal/fallback"
	"github.com/Vasishta03/DataForge/internal/schema"
)

// templateRows is the size of the substituted reference table. It only
// needs to be large enough for schema extraction to sample from.
const templateRows = 100

// WriteTemplateCSV materializes the built-in template table for the
// keyword's domain bucket as a reference file under destDir. Used when
// search returns nothing or the download fails.
func WriteTemplateCSV(keyword, destDir string, logger *zap.Logger) (string, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create reference dir: %w", err)
	}

	s := schema.TemplateSchema(keyword)
	bucket := schema.ResolveBucket(keyword)
	// Variation 0 keeps the template table itself reproducible.
	content := fallback.NewSynthesizer(logger).CSV(s, bucket, 0, templateRows)

	path := filepath.Join(destDir, "template_"+string(bucket)+".csv")
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		return "", fmt.Errorf("write template reference: %w", err)
	}

	logger.Info("substituted template reference",
		zap.String("keyword", keyword),
		zap.String("bucket", string(bucket)),
		zap.String("file", path))
	return path, nil
}
