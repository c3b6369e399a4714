package predictor

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
	"github.com/cockroachdb/errors"
)

// ArtifactFileName is the file the trainer writes and the service
// loads inside the model directory.
const ArtifactFileName = "match_model.json"

// Artifact is the serialized prediction pipeline: fitted
// preprocessor, forest, and the label codec that decodes class
// indices back to outcomes.
type Artifact struct {
	Preprocessor Preprocessor `json:"preprocessor"`
	Forest       Forest       `json:"forest"`
	Labels       LabelCodec   `json:"labels"`
	Metrics      Metrics      `json:"metrics"`
	TrainedAt    time.Time    `json:"trained_at"`
}

// SaveArtifact writes the artifact under dir, creating the directory
// when needed.
func SaveArtifact(dir string, artifact *Artifact) error {
	if artifact.TrainedAt.IsZero() {
		artifact.TrainedAt = time.Now().UTC()
	}
	payload, err := sonic.Marshal(artifact)
	if err != nil {
		return errors.Wrap(err, "encode model artifact")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "create model directory")
	}
	path := filepath.Join(dir, ArtifactFileName)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return errors.Wrapf(err, "write model artifact %s", path)
	}
	return nil
}

// LoadArtifact reads the artifact from dir. A missing or unreadable
// artifact is an error; predictions must never run against a silent
// untrained default.
func LoadArtifact(dir string) (*Artifact, error) {
	path := filepath.Join(dir, ArtifactFileName)
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read model artifact %s", path)
	}
	var artifact Artifact
	if err := sonic.Unmarshal(payload, &artifact); err != nil {
		return nil, errors.Wrapf(err, "decode model artifact %s", path)
	}
	return &artifact, nil
}
