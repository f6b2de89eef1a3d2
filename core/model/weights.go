package model

import (
	"encoding/json"
	"fmt"
)

// ModelWeights is the serializable snapshot of a fitted linear model.
type ModelWeights struct {
	// ModelType names the model that produced the snapshot
	// (e.g. "SGDRegressor", "SGDClassifier").
	ModelType string `json:"model_type"`

	// Version is the snapshot format version, used for compatibility checks.
	Version string `json:"version"`

	// Coefficients are the learned feature weights, bias excluded.
	Coefficients []float64 `json:"coefficients"`

	// Intercept is the learned bias term.
	Intercept float64 `json:"intercept"`

	// Hyperparameters records the configuration the model was trained with.
	Hyperparameters map[string]interface{} `json:"hyperparameters,omitempty"`

	// IsFitted reports whether the snapshot comes from a fitted model.
	IsFitted bool `json:"is_fitted"`
}

// ToJSON serializes the snapshot with indentation.
func (mw *ModelWeights) ToJSON() ([]byte, error) {
	return json.MarshalIndent(mw, "", "  ")
}

// FromJSON deserializes a snapshot.
func (mw *ModelWeights) FromJSON(data []byte) error {
	return json.Unmarshal(data, mw)
}

// Validate checks the structural consistency of the snapshot.
func (mw *ModelWeights) Validate() error {
	if mw.ModelType == "" {
		return fmt.Errorf("model_type is required")
	}
	if mw.Version == "" {
		return fmt.Errorf("version is required")
	}
	if mw.IsFitted && len(mw.Coefficients) == 0 {
		return fmt.Errorf("fitted model must have coefficients")
	}
	if !mw.IsFitted && len(mw.Coefficients) > 0 {
		return fmt.Errorf("unfitted model should not have coefficients")
	}
	return nil
}
