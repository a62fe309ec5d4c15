package file

import (
	"encoding/json"
	"errors"
	"os"

	domainfavorites "github.com/CristhianAlv-ing/HotelFind/internal/domain/favorites"
)

// SnapshotStore serializes the user-favorites portion of the in-memory state
// to a local JSON file, rehydrated at startup.
type SnapshotStore struct {
	path string
}

func NewSnapshotStore(path string) (*SnapshotStore, error) {
	if path == "" {
		return nil, errors.New("snapshot: path is required")
	}
	return &SnapshotStore{path: path}, nil
}

func (s *SnapshotStore) SaveFavorites(snapshot map[string]domainfavorites.List) error {
	return writeJSONFile(s.path, snapshot)
}

// LoadFavorites returns the persisted snapshot; a missing file yields an
// empty snapshot, a corrupt one an error the caller may log and ignore.
func (s *SnapshotStore) LoadFavorites() (map[string]domainfavorites.List, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]domainfavorites.List{}, nil
		}
		return nil, err
	}
	var snapshot map[string]domainfavorites.List
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, err
	}
	if snapshot == nil {
		snapshot = map[string]domainfavorites.List{}
	}
	return snapshot, nil
}
