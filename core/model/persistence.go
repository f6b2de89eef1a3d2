package model

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// SaveWeights writes a gzip-compressed JSON snapshot to filename.
//
// Example:
//
//	weights, _ := reg.ExportWeights()
//	err := model.SaveWeights(weights, "model.json.gz")
func SaveWeights(weights *ModelWeights, filename string) error {
	if err := weights.Validate(); err != nil {
		return fmt.Errorf("invalid weights: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	return WriteWeights(weights, file)
}

// WriteWeights writes a gzip-compressed JSON snapshot to w.
func WriteWeights(weights *ModelWeights, w io.Writer) error {
	zw := gzip.NewWriter(w)
	if err := json.NewEncoder(zw).Encode(weights); err != nil {
		zw.Close()
		return fmt.Errorf("failed to encode weights: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish compression: %w", err)
	}
	return nil
}

// LoadWeights reads a snapshot written by SaveWeights.
func LoadWeights(filename string) (*ModelWeights, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadWeights(file)
}

// ReadWeights reads a gzip-compressed JSON snapshot from r.
func ReadWeights(r io.Reader) (*ModelWeights, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open compressed stream: %w", err)
	}
	defer zr.Close()

	var weights ModelWeights
	if err := json.NewDecoder(zr).Decode(&weights); err != nil {
		return nil, fmt.Errorf("failed to decode weights: %w", err)
	}
	if err := weights.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weights: %w", err)
	}
	return &weights, nil
}
