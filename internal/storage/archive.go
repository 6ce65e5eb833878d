package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/nodegen/backend/pkg/graph"
)

const failurePrefix = "failures"

// FailureArchive keeps rejected model replies for operators.
type FailureArchive interface {
	Store(ctx context.Context, record FailureRecord) (string, error)
}

// FailureRecord is the archived form of a NormalizationFailure.
type FailureRecord struct {
	RequestID  string            `json:"request_id"`
	Model      string            `json:"model"`
	Raw        string            `json:"raw"`
	Violations []graph.Violation `json:"violations,omitempty"`
	CreatedAt  time.Time         `json:"created_at"`
}

func NewFailureRecord(requestID string, model string, failure *graph.NormalizationFailure) FailureRecord {
	return FailureRecord{
		RequestID:  requestID,
		Model:      model,
		Raw:        failure.Raw,
		Violations: failure.Violations,
		CreatedAt:  time.Now().UTC(),
	}
}

// S3Archive writes one JSON object per failure to
// failures/<yyyy-mm-dd>/<request id>.json.
type S3Archive struct {
	client ObjectPutter
	bucket string
}

func NewS3Archive(client ObjectPutter, bucket string) *S3Archive {
	return &S3Archive{client: client, bucket: bucket}
}

func (a *S3Archive) Store(ctx context.Context, record FailureRecord) (string, error) {
	body, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("failed to encode failure record: %w", err)
	}
	return PutFile(ctx, a.client, a.bucket, FailureKey(record), "application/json", bytes.NewReader(body))
}

// FailureKey returns the object key a record is archived under.
func FailureKey(record FailureRecord) string {
	return path.Join(failurePrefix, record.CreatedAt.UTC().Format(time.DateOnly), record.RequestID+".json")
}

// NopArchive drops every record. It is used when no bucket is configured.
type NopArchive struct{}

func (NopArchive) Store(context.Context, FailureRecord) (string, error) {
	return "", nil
}
