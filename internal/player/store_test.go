package player

import "github.com/vindeiatrix/mutantsgo/internal/persist"

type memDocStore struct {
	docs map[string][]byte
}

func newMemDocStore() *memDocStore { return &memDocStore{docs: map[string][]byte{}} }

func (m *memDocStore) Read(kind string) ([]byte, bool, error) {
	data, ok := m.docs[kind]
	return data, ok, nil
}

func (m *memDocStore) Write(kind string, data []byte) error {
	m.docs[kind] = data
	return nil
}

var _ persist.DocStore = (*memDocStore)(nil)
