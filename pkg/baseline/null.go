package baseline

import "context"

// NullStore is a no-op store that never keeps anything.
// Useful for dry runs or when no baseline backend is configured.
type NullStore struct{}

// NewNullStore creates a null store.
func NewNullStore() Store {
	return &NullStore{}
}

// Get always reports the baseline as missing.
func (s *NullStore) Get(ctx context.Context, name string) (*Record, error) {
	return nil, notFound(name)
}

// Put does nothing.
func (s *NullStore) Put(ctx context.Context, rec *Record) error {
	return nil
}

// Delete does nothing.
func (s *NullStore) Delete(ctx context.Context, name string) error {
	return nil
}

// List always returns no names.
func (s *NullStore) List(ctx context.Context) ([]string, error) {
	return nil, nil
}

// Close does nothing.
func (s *NullStore) Close() error {
	return nil
}

// Ensure NullStore implements Store.
var _ Store = (*NullStore)(nil)
