// Package reportio loads gold/prediction documents and validation files,
// and persists and prints evaluation reports. It wraps the evaluation
// engine; it never alters scoring semantics.
package reportio

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okian/veritas/internal/domain/evaluate"
	"github.com/okian/veritas/internal/domain/record"
	"github.com/okian/veritas/pkg/logger"
)

// File permission constants.
const (
	reportFilePermission = 0o644
	outputDirPermission  = 0o755
)

// LoadRecord reads and decodes a gold or prediction JSON document. Failures
// here are fatal for the evaluation and wrap ErrReadInput.
func LoadRecord(path string) (record.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	var r record.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrReadInput, path, err)
	}
	return r, nil
}

// validationFile mirrors the reviewer export: a top-level validated_errors
// array. Unknown extra keys are ignored.
type validationFile struct {
	ValidatedErrors []evaluate.Validation `json:"validated_errors"`
}

// LoadValidations reads a validation-override file. A missing or malformed
// file degrades gracefully to an empty override set: the evaluation still
// runs, the condition is only logged.
func LoadValidations(ctx context.Context, path string, log logger.Logger) []evaluate.Validation {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn(ctx, "validation file unreadable; proceeding without overrides",
			logger.String("path", path), logger.Error(err))
		return nil
	}
	var vf validationFile
	if err := json.Unmarshal(data, &vf); err != nil {
		log.Warn(ctx, "validation file malformed; proceeding without overrides",
			logger.String("path", path), logger.Error(err))
		return nil
	}
	return vf.ValidatedErrors
}

// ReportPath derives the export location for a prediction file:
// <outputDir>/<prediction-stem>_evaluation_results.json.
func ReportPath(outputDir, predPath string) string {
	stem := strings.TrimSuffix(filepath.Base(predPath), filepath.Ext(predPath))
	return filepath.Join(outputDir, stem+"_evaluation_results.json")
}

// WriteReport exports the report as indented JSON, creating the parent
// directory when needed.
func WriteReport(path string, r *evaluate.Report) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, outputDirPermission); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
		}
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
	}
	if err := os.WriteFile(path, data, reportFilePermission); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrWriteReport, path, err)
	}
	return nil
}
