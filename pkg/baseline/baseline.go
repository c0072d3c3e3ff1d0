package baseline

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/stadump/pkg/dump"
	"github.com/matzehuels/stadump/pkg/errors"
)

// Record is a stored baseline.
type Record struct {
	Name      string    `json:"name" bson:"_id"`
	Revision  string    `json:"revision" bson:"revision"` // Unique per save
	Hash      string    `json:"hash" bson:"hash"`         // SHA-256 of Text
	Text      string    `json:"text" bson:"text"`
	Legacy    bool      `json:"legacy,omitempty" bson:"legacy"` // Written in legacy dump format
	Sorted    bool      `json:"sorted,omitempty" bson:"sorted"` // Constraint groups sorted by key
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// NewRecord creates a record for text, written with opts, under name with a
// fresh revision.
func NewRecord(name string, text []byte, opts dump.Options) (*Record, error) {
	if err := errors.ValidateBaselineName(name); err != nil {
		return nil, err
	}
	return &Record{
		Name:      name,
		Revision:  uuid.NewString(),
		Hash:      Hash(text),
		Text:      string(text),
		Legacy:    opts.Legacy,
		Sorted:    opts.SortConstraints,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// DumpOptions returns the options the record's text was written with.
func (r *Record) DumpOptions() dump.Options {
	return dump.Options{Legacy: r.Legacy, SortConstraints: r.Sorted}
}

// Store is the interface for baseline storage backends.
type Store interface {
	// Get retrieves a baseline by name.
	// Returns a BASELINE_NOT_FOUND error if it does not exist.
	Get(ctx context.Context, name string) (*Record, error)

	// Put stores a baseline, replacing any previous record with the same name.
	Put(ctx context.Context, rec *Record) error

	// Delete removes a baseline. Deleting a missing baseline is not an error.
	Delete(ctx context.Context, name string) error

	// List returns all baseline names in ascending order.
	List(ctx context.Context) ([]string, error)

	// Close releases resources held by the store.
	Close() error
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeBaselineNotFound, "baseline %q not found", name)
}

// IsNotFound reports whether err means the baseline does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeBaselineNotFound)
}
