// Package cache keeps averaged profiles so that replotting a run does not reread its analysis
// file. Entries live in an in-memory LRU and, when a directory is configured, on disk as
// zstd-compressed msgpack.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/mrivkah3/convective-adjustment/types"
)

const DefaultEntries = 256

// Key identifies a profile by its dataset file version and the reduction applied to it
type Key struct {
	Path     string       `msgpack:"path"`
	Size     int64        `msgpack:"size"`
	ModTime  int64        `msgpack:"mtime"`
	Field    string       `msgpack:"field"`
	Window   types.Window `msgpack:"window"`
	Snapshot bool         `msgpack:"snapshot"`
	Mode     int          `msgpack:"mode"`
}

func NewKey(path, field string, w types.Window, snapshot bool, mode int) (k Key, err error) {
	var (
		fi os.FileInfo
	)
	if path, err = filepath.Abs(path); err != nil {
		return
	}
	if fi, err = os.Stat(path); err != nil {
		return
	}
	w.Stride = w.Step()
	k = Key{
		Path:     path,
		Size:     fi.Size(),
		ModTime:  fi.ModTime().UnixNano(),
		Field:    field,
		Window:   w,
		Snapshot: snapshot,
		Mode:     mode,
	}
	return
}

func (k Key) Hash() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%d\x00%s\x00%d:%d:%d\x00%t\x00%d",
		k.Path, k.Size, k.ModTime, k.Field,
		k.Window.Start, k.Window.Stop, k.Window.Stride, k.Snapshot, k.Mode)
	return hex.EncodeToString(h.Sum(nil))
}

type entry struct {
	Key    Key       `msgpack:"key"`
	Values []float64 `msgpack:"values"`
}

type ProfileCache struct {
	dir string
	mem *lru.Cache[string, []float64]
}

// New returns a cache holding up to entries profiles in memory, persisted under dir if dir is set
func New(dir string, entries int) (pc *ProfileCache, err error) {
	if entries <= 0 {
		entries = DefaultEntries
	}
	pc = &ProfileCache{dir: dir}
	if pc.mem, err = lru.New[string, []float64](entries); err != nil {
		return nil, err
	}
	if len(dir) != 0 {
		if err = os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return
}

func (pc *ProfileCache) Get(k Key) (values []float64, ok bool) {
	var (
		h = k.Hash()
		e entry
	)
	if values, ok = pc.mem.Get(h); ok {
		return clone(values), true
	}
	if len(pc.dir) == 0 {
		return nil, false
	}
	if err := readEntry(pc.path(h), &e); err != nil || e.Key != k {
		return nil, false
	}
	pc.mem.Add(h, e.Values)
	return clone(e.Values), true
}

func (pc *ProfileCache) Put(k Key, values []float64) error {
	var (
		h = k.Hash()
	)
	pc.mem.Add(h, clone(values))
	if len(pc.dir) == 0 {
		return nil
	}
	return writeEntry(pc.path(h), &entry{Key: k, Values: values})
}

func (pc *ProfileCache) Len() int {
	return pc.mem.Len()
}

func (pc *ProfileCache) path(h string) string {
	return filepath.Join(pc.dir, h[:2], h+".msgpack.zst")
}

func writeEntry(path string, e *entry) (err error) {
	var (
		f   *os.File
		enc *zstd.Encoder
	)
	if err = os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	if f, err = os.CreateTemp(filepath.Dir(path), ".entry-*"); err != nil {
		return
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(f.Name())
		}
	}()
	if enc, err = zstd.NewWriter(f); err != nil {
		return
	}
	if err = msgpack.NewEncoder(enc).Encode(e); err != nil {
		enc.Close()
		return
	}
	if err = enc.Close(); err != nil {
		return
	}
	if err = f.Close(); err != nil {
		return
	}
	return os.Rename(f.Name(), path)
}

func readEntry(path string, e *entry) (err error) {
	var (
		f   *os.File
		dec *zstd.Decoder
	)
	if f, err = os.Open(path); err != nil {
		return
	}
	defer f.Close()
	if dec, err = zstd.NewReader(f); err != nil {
		return
	}
	defer dec.Close()
	return msgpack.NewDecoder(dec).Decode(e)
}

func clone(v []float64) []float64 {
	return append([]float64(nil), v...)
}
