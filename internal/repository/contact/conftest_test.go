package contact

import (
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	scanFn         func(ctx context.Context, pattern string) ([]string, error)
	jsonGetMultiFn func(ctx context.Context, keys []string, path string) ([][]byte, error)
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func (m *mockStore) JSONGetMulti(ctx context.Context, keys []string, path string) ([][]byte, error) {
	if m.jsonGetMultiFn != nil {
		return m.jsonGetMultiFn(ctx, keys, path)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	repo := New(ms, zap.NewNop())
	return repo, ms
}

// storeWithDocs wires scan+fetch over a fixed key→document map, preserving
// insertion order via the keys slice.
func storeWithDocs(t *testing.T, keys []string, docs map[string]recordDoc) *mockStore {
	t.Helper()
	return &mockStore{
		scanFn: func(_ context.Context, _ string) ([]string, error) {
			return keys, nil
		},
		jsonGetMultiFn: func(_ context.Context, got []string, _ string) ([][]byte, error) {
			out := make([][]byte, len(got))
			for i, k := range got {
				doc, ok := docs[k]
				if !ok {
					continue
				}
				raw, err := json.Marshal([]recordDoc{doc})
				if err != nil {
					t.Fatalf("marshal fixture: %v", err)
				}
				out[i] = raw
			}
			return out, nil
		},
	}
}

func testDoc(id string, active bool) recordDoc {
	return recordDoc{
		ContactID: id,
		UserID:    "u1",
		Payload: map[string]any{
			"name":     "Dana " + id,
			"company":  "Acme",
			"position": "Engineer",
		},
		Texts: map[string][]string{
			"skills":     {"React", "TypeScript"},
			"experience": {"Senior Frontend Engineer"},
		},
		Active: active,
	}
}
