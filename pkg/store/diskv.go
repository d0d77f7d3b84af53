package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/timescope/pkg/timeline"
)

// Persistence is the persistence contract for timeline objects. Objects are
// stored one JSON document per object, bucketed by layer.
type Persistence interface {
	List(ctx context.Context) []timeline.Object
	Get(ctx context.Context, id string) (*timeline.Object, error)
	Store(obj *timeline.Object) error
	Delete(obj *timeline.Object) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

// Keys are "<layer>/<object-id>"; the layer becomes a directory bucket.
func keyToPathTransform(key string) *diskv.PathKey {
	parts := strings.Split(key, "/")
	if len(parts) == 1 {
		return &diskv.PathKey{Path: []string{encodeSegment("default")}, FileName: encodeSegment(parts[0])}
	}
	last := len(parts) - 1
	path := make([]string, last)
	for i, p := range parts[:last] {
		path[i] = encodeSegment(p)
	}
	return &diskv.PathKey{Path: path, FileName: encodeSegment(parts[last])}
}

func pathToKeyTransform(pk *diskv.PathKey) string {
	segments := make([]string, 0, len(pk.Path)+1)
	for _, p := range pk.Path {
		segments = append(segments, decodeSegment(p))
	}
	segments = append(segments, decodeSegment(pk.FileName))
	return strings.Join(segments, "/")
}

func encodeSegment(s string) string {
	return strings.ReplaceAll(s, " ", "%20")
}

func decodeSegment(s string) string {
	return strings.ReplaceAll(s, "%20", " ")
}

func objectKey(obj *timeline.Object) string {
	layer := obj.Layer
	if layer == "" {
		layer = "default"
	}
	return layer + "/" + obj.ID
}

func (p *persistence) read(key string) (*timeline.Object, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	obj := &timeline.Object{}
	if err := json.Unmarshal(val, obj); err != nil {
		return nil, err
	}
	if obj.ID == "" {
		pk := keyToPathTransform(key)
		obj.ID = decodeSegment(pk.FileName)
	}
	return obj, nil
}

func (p *persistence) List(ctx context.Context) []timeline.Object {
	all := make([]timeline.Object, 0)
	for key := range p.d.Keys(ctx.Done()) {
		obj, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, *obj)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].Layer != all[j].Layer {
			return all[i].Layer < all[j].Layer
		}
		return all[i].ID < all[j].ID
	})
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*timeline.Object, error) {
	for key := range p.d.Keys(ctx.Done()) {
		obj, err := p.read(key)
		if err != nil {
			continue
		}
		if obj.ID == id {
			return obj, nil
		}
	}
	return nil, fmt.Errorf("store: object %q not found", id)
}

func (p *persistence) Store(obj *timeline.Object) error {
	if obj.ID == "" {
		return fmt.Errorf("store: object without id")
	}
	data, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return p.d.Write(objectKey(obj), data)
}

func (p *persistence) Delete(obj *timeline.Object) error {
	return p.d.Erase(objectKey(obj))
}
