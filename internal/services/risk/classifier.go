package risk

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
)

// modelArtifact is the on-disk form of the pre-trained classifier: a
// logistic model over the 21-feature vector, exported by the training
// pipeline. Calibrated marks whether the probability output is trustworthy;
// uncalibrated models only contribute their binary label.
type modelArtifact struct {
	Version    string    `json:"version"`
	Weights    []float64 `json:"weights"`
	Bias       float64   `json:"bias"`
	Threshold  float64   `json:"threshold"`
	Calibrated bool      `json:"calibrated"`
}

type linearClassifier struct {
	version    string
	weights    [FeatureCount]float64
	bias       float64
	threshold  float64
	calibrated bool
}

// LoadClassifier reads the model artifact from path. It is called once at
// startup; the returned handle is immutable and safe for unsynchronized
// concurrent reads. A missing or malformed artifact is a legitimate state:
// the caller passes a nil Classifier to NewService and the engine runs in
// fallback mode.
func LoadClassifier(path string) (Classifier, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrModelNotFound, err)
	}

	var artifact modelArtifact
	if err := json.Unmarshal(raw, &artifact); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedModel, err)
	}
	if len(artifact.Weights) != FeatureCount {
		return nil, fmt.Errorf("%w: expected %d weights, got %d",
			ErrMalformedModel, FeatureCount, len(artifact.Weights))
	}

	c := &linearClassifier{
		version:    artifact.Version,
		bias:       artifact.Bias,
		threshold:  artifact.Threshold,
		calibrated: artifact.Calibrated,
	}
	copy(c.weights[:], artifact.Weights)
	if c.threshold <= 0 || c.threshold >= 1 {
		c.threshold = 0.5
	}
	return c, nil
}

// Predict returns the fraud label and probability for one feature vector.
func (c *linearClassifier) Predict(vector FeatureVector) (Prediction, error) {
	z := c.bias
	for i, w := range c.weights {
		z += w * vector[i]
	}

	p := sigmoid(z)
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return Prediction{}, fmt.Errorf("non-finite probability for input vector")
	}

	return Prediction{
		Label:       p >= c.threshold,
		Probability: p,
		Calibrated:  c.calibrated,
	}, nil
}

func sigmoid(z float64) float64 {
	return 1.0 / (1.0 + math.Exp(-z))
}
