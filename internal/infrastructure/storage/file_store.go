package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tomas-vilte/MateReview/internal/domain/ports"
)

var _ ports.KeyValueStore = (*FileStore)(nil)

// entry es el contenido de cada archivo del almacenamiento. Guarda la clave
// original para poder enumerar por prefijo.
type entry struct {
	Key       string          `json:"key"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// FileStore es el almacenamiento local durable: un archivo JSON por clave,
// con el nombre derivado de un hash de la clave. Sobrevive reinicios y no
// depende del estado de sincronización.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("error creando el directorio de datos: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	hash := sha256.Sum256([]byte(key))
	return filepath.Join(s.dir, hex.EncodeToString(hash[:])+".json")
}

func (s *FileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("error leyendo la clave '%s': %w", key, err)
	}

	var e entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("error deserializando la clave '%s': %w", key, err)
	}
	return e.Value, nil
}

func (s *FileStore) Set(key string, value []byte) error {
	e := entry{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	data, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return fmt.Errorf("error serializando la clave '%s': %w", key, err)
	}

	// Escritura atómica: primero a un archivo temporal, después rename.
	target := s.path(key)
	tmp := target + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("error escribiendo la clave '%s': %w", key, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		return fmt.Errorf("error confirmando la clave '%s': %w", key, err)
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("error borrando la clave '%s': %w", key, err)
	}
	return nil
}

func (s *FileStore) Keys(prefix string) ([]string, error) {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("error listando el directorio de datos: %w", err)
	}

	var keys []string
	for _, f := range files {
		if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, f.Name()))
		if err != nil {
			continue
		}
		var e entry
		if err := json.Unmarshal(data, &e); err != nil {
			continue
		}
		if strings.HasPrefix(e.Key, prefix) {
			keys = append(keys, e.Key)
		}
	}
	return keys, nil
}
