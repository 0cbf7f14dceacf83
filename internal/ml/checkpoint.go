// Olive - Mobile Marketing Intelligence and Analytics
// Copyright 2026 Olive Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/olivehq/olive

package ml

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Checkpoint filenames searched in the models directory.
const (
	ltvCheckpointFile      = "ltv_predictor.json"
	churnCheckpointFile    = "churn_predictor.json"
	campaignCheckpointFile = "campaign_forecaster.json"
)

// Checkpoint is an exported linear model: a weight vector plus bias over
// a named feature order. Training happens offline; the server only needs
// the dot product.
type Checkpoint struct {
	Model        string    `json:"model"`
	FeatureNames []string  `json:"feature_names"`
	Weights      []float64 `json:"weights"`
	Bias         float64   `json:"bias"`
}

// score computes the linear combination over the feature vector.
func (c *Checkpoint) score(features []float64) (float64, error) {
	if len(features) != len(c.Weights) {
		return 0, fmt.Errorf("feature count %d does not match checkpoint weights %d", len(features), len(c.Weights))
	}
	sum := c.Bias
	for i, w := range c.Weights {
		sum += w * features[i]
	}
	return sum, nil
}

// loadCheckpoint reads and validates one checkpoint file. A missing file
// is not an error; it just means the heuristic fallback serves.
func loadCheckpoint(dir, name string) (*Checkpoint, error) {
	path := filepath.Join(dir, name)
	data, err := os.ReadFile(path) // #nosec G304 -- path is config-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read checkpoint %s: %w", name, err)
	}

	var cp Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to parse checkpoint %s: %w", name, err)
	}
	if len(cp.Weights) == 0 {
		return nil, fmt.Errorf("checkpoint %s has no weights", name)
	}
	if len(cp.FeatureNames) != 0 && len(cp.FeatureNames) != len(cp.Weights) {
		return nil, fmt.Errorf("checkpoint %s feature names do not match weights", name)
	}
	return &cp, nil
}
