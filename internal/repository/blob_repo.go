package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrObjectExists indica que la clave ya fue escrita. Las claves son de una sola escritura.
var ErrObjectExists = errors.New("object already exists")

// BlobRepository guarda objetos binarios por bucket y clave.
// Las implementaciones deben ser seguras para uso concurrente.
type BlobRepository interface {
	Put(ctx context.Context, body []byte, bucket, key string) error
}

// MemoryBlobRepository mantiene los objetos en memoria. Util para desarrollo local y tests.
type MemoryBlobRepository struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryBlobRepository() *MemoryBlobRepository {
	return &MemoryBlobRepository{
		objects: make(map[string][]byte),
	}
}

func (r *MemoryBlobRepository) Put(_ context.Context, body []byte, bucket, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := objectID(bucket, key)
	if _, ok := r.objects[id]; ok {
		return ErrObjectExists
	}
	r.objects[id] = append([]byte(nil), body...)
	return nil
}

// Get devuelve una copia del objeto guardado.
func (r *MemoryBlobRepository) Get(bucket, key string) ([]byte, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	body, ok := r.objects[objectID(bucket, key)]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), body...), true
}

// Len devuelve la cantidad de objetos guardados.
func (r *MemoryBlobRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.objects)
}

func objectID(bucket, key string) string {
	return bucket + "/" + key
}
