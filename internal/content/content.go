// Package content indexes the exercise pack so the distractor generator can
// borrow answers from exercises near the one being re-asked.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/phrazzld/lingo-review/internal/domain"
	"github.com/phrazzld/lingo-review/internal/domain/distractor"
)

//go:embed data/*.json
var packData embed.FS

// Item is one exercise in a content pack.
type Item struct {
	ID     string              `json:"id"`
	Type   domain.ActivityType `json:"type"`
	Level  domain.Level        `json:"level"`
	Answer string              `json:"answer"`
	Order  int                 `json:"order"`
}

// Pack is the JSON document a content pack file holds.
type Pack struct {
	Items []Item `json:"items"`
}

// Index answers similarity lookups over a set of items. It is immutable after
// construction and safe for concurrent use.
type Index struct {
	items  map[string]*Item
	byType map[domain.ActivityType][]*Item
}

var _ distractor.Index = (*Index)(nil)

var (
	defaultIndex     *Index
	defaultIndexOnce sync.Once
)

// DefaultIndex returns the index over the pack embedded in the binary.
func DefaultIndex() *Index {
	defaultIndexOnce.Do(func() {
		idx, err := loadEmbedded()
		if err != nil {
			panic(fmt.Sprintf("failed to load content pack: %v", err))
		}
		defaultIndex = idx
	})
	return defaultIndex
}

func loadEmbedded() (*Index, error) {
	entries, err := packData.ReadDir("data")
	if err != nil {
		return nil, fmt.Errorf("read pack dir: %w", err)
	}

	var items []Item
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f, err := packData.Open(path.Join("data", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", entry.Name(), err)
		}
		pack, err := decodePack(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", entry.Name(), err)
		}
		items = append(items, pack.Items...)
	}

	return NewIndex(items)
}

// LoadPack reads a single pack document and indexes it.
func LoadPack(r io.Reader) (*Index, error) {
	pack, err := decodePack(r)
	if err != nil {
		return nil, err
	}
	return NewIndex(pack.Items)
}

func decodePack(r io.Reader) (*Pack, error) {
	var pack Pack
	if err := json.NewDecoder(r).Decode(&pack); err != nil {
		return nil, fmt.Errorf("decode pack: %w", err)
	}
	return &pack, nil
}

// NewIndex builds an index. Item ids must be unique and every item needs a
// type and an answer.
func NewIndex(items []Item) (*Index, error) {
	idx := &Index{
		items:  make(map[string]*Item, len(items)),
		byType: make(map[domain.ActivityType][]*Item),
	}

	for i := range items {
		item := items[i]
		if strings.TrimSpace(item.ID) == "" {
			return nil, fmt.Errorf("item %d: %w: missing id", i, domain.ErrValidation)
		}
		if item.Type == "" || strings.TrimSpace(item.Answer) == "" {
			return nil, fmt.Errorf("item %q: %w: missing type or answer", item.ID, domain.ErrValidation)
		}
		if _, dup := idx.items[item.ID]; dup {
			return nil, fmt.Errorf("item %q: duplicate id", item.ID)
		}
		idx.items[item.ID] = &item
		idx.byType[item.Type] = append(idx.byType[item.Type], &item)
	}

	for _, list := range idx.byType {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Order < list[j].Order
		})
	}

	return idx, nil
}

// Len returns the number of indexed items.
func (x *Index) Len() int {
	return len(x.items)
}

// Item returns the item with the given id.
func (x *Index) Item(id string) (Item, bool) {
	item, ok := x.items[id]
	if !ok {
		return Item{}, false
	}
	return *item, true
}

// FindSimilarItems returns ids of items with the same activity type as itemID,
// closest in pack order first. With SameLevel set only items of the same level
// qualify. The item itself is never returned. Unknown ids yield nil; a
// non-positive MaxCount means no limit.
func (x *Index) FindSimilarItems(itemID string, q distractor.SimilarQuery) []string {
	target, ok := x.items[itemID]
	if !ok {
		return nil
	}

	var candidates []*Item
	for _, item := range x.byType[target.Type] {
		if item.ID == target.ID {
			continue
		}
		if q.SameLevel && item.Level != target.Level {
			continue
		}
		candidates = append(candidates, item)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return distance(candidates[i], target) < distance(candidates[j], target)
	})

	if q.MaxCount > 0 && len(candidates) > q.MaxCount {
		candidates = candidates[:q.MaxCount]
	}

	ids := make([]string, len(candidates))
	for i, item := range candidates {
		ids[i] = item.ID
	}
	return ids
}

// ResolveAnswer returns the correct answer of an item.
func (x *Index) ResolveAnswer(itemID string) (string, bool) {
	item, ok := x.items[itemID]
	if !ok {
		return "", false
	}
	return item.Answer, true
}

func distance(a, b *Item) int {
	d := a.Order - b.Order
	if d < 0 {
		return -d
	}
	return d
}
