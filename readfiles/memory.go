package readfiles

import (
	"fmt"
	"sync"

	"github.com/mrivkah3/convective-adjustment/types"
)

// MemDataset serves fields already held in memory
type MemDataset struct {
	fields  map[string]*types.TimeSeriesField
	order   []string
	onClose func()
}

func NewMemDataset(fields ...*types.TimeSeriesField) (md *MemDataset) {
	md = &MemDataset{
		fields: make(map[string]*types.TimeSeriesField, len(fields)),
	}
	for _, f := range fields {
		if _, ok := md.fields[f.Name]; !ok {
			md.order = append(md.order, f.Name)
		}
		md.fields[f.Name] = f
	}
	return
}

func (md *MemDataset) Fields() []string {
	return append([]string(nil), md.order...)
}

func (md *MemDataset) Field(name string) (*types.TimeSeriesField, error) {
	if f, ok := md.fields[name]; ok {
		return f, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrFieldNotFound, name)
}

func (md *MemDataset) Close() error {
	if md.onClose != nil {
		md.onClose()
		md.onClose = nil
	}
	return nil
}

/*
MemStore maps file paths to in-memory datasets and counts open handles, so callers can check that
every dataset they open is closed again.
*/
type MemStore struct {
	mu      sync.Mutex
	files   map[string][]*types.TimeSeriesField
	opens   int
	openNow int
	maxOpen int
	openLog []string
}

func NewMemStore() *MemStore {
	return &MemStore{files: make(map[string][]*types.TimeSeriesField)}
}

func (ms *MemStore) Add(path string, fields ...*types.TimeSeriesField) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.files[path] = append(ms.files[path], fields...)
}

func (ms *MemStore) Open(path string) (Dataset, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	fields, ok := ms.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
	}
	ms.opens++
	ms.openNow++
	if ms.openNow > ms.maxOpen {
		ms.maxOpen = ms.openNow
	}
	ms.openLog = append(ms.openLog, path)
	md := NewMemDataset(fields...)
	md.onClose = func() {
		ms.mu.Lock()
		ms.openNow--
		ms.mu.Unlock()
	}
	return md, nil
}

// Stats returns the number of opens, the handles still open and the peak number open at once
func (ms *MemStore) Stats() (opens, openNow, maxOpen int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.opens, ms.openNow, ms.maxOpen
}

func (ms *MemStore) Opened() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.openLog...)
}
