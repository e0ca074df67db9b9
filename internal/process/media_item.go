package process

import (
	"slices"

	"github.com/samber/mo"
)

// SourceData is what one catalog knows about an item.
type SourceData struct {
	Source     string
	ID         mo.Option[int]
	Identifier ItemIdentifier
	Payload    any
}

// MediaItem accumulates one SourceData per catalog for a single item.
// A MediaItem is never modified; AddData returns a new value that shares
// nothing mutable with the old one.
type MediaItem struct {
	descriptor ItemDescriptor
	itemType   ItemType
	order      []string
	data       map[string]SourceData
}

// NewMediaItem starts an aggregate from the data that identified the item.
func NewMediaItem(descriptor ItemDescriptor, itemType ItemType, initial SourceData) *MediaItem {
	return &MediaItem{
		descriptor: descriptor,
		itemType:   itemType,
		order:      []string{initial.Source},
		data:       map[string]SourceData{initial.Source: initial},
	}
}

func (m *MediaItem) Descriptor() ItemDescriptor { return m.descriptor }
func (m *MediaItem) ItemType() ItemType         { return m.itemType }

// AddData returns a new MediaItem with sd added. Adding a second payload for
// a source already present fails and leaves m untouched.
func (m *MediaItem) AddData(sd SourceData) mo.Result[*MediaItem] {
	if _, ok := m.data[sd.Source]; ok {
		return mo.Err[*MediaItem](&Failure{
			Kind:     DuplicateSource,
			Source:   sd.Source,
			ItemName: sd.Identifier.Name,
			ItemType: m.itemType,
			Reason:   "Cannot add data for a source more than once",
		})
	}

	data := make(map[string]SourceData, len(m.data)+1)
	for k, v := range m.data {
		data[k] = v
	}
	data[sd.Source] = sd

	order := make([]string, 0, len(m.order)+1)
	order = append(order, m.order...)
	order = append(order, sd.Source)

	return mo.Ok(&MediaItem{
		descriptor: m.descriptor,
		itemType:   m.itemType,
		order:      order,
		data:       data,
	})
}

// DataFrom returns the data added for source. When there is none and the
// source borrows data for this item type, the first-added data stands in.
func (m *MediaItem) DataFrom(source Source) mo.Option[SourceData] {
	if sd, ok := m.data[source.Name()]; ok {
		return mo.Some(sd)
	}
	if source.ShouldUsePlaceholder(m.itemType) && len(m.order) > 0 {
		return mo.Some(m.data[m.order[0]])
	}
	return mo.None[SourceData]()
}

// DataFromName is a direct lookup with no placeholder fallback.
func (m *MediaItem) DataFromName(source string) mo.Option[SourceData] {
	sd, ok := m.data[source]
	if !ok {
		return mo.None[SourceData]()
	}
	return mo.Some(sd)
}

// AllData returns every payload in the order it was added.
func (m *MediaItem) AllData() []SourceData {
	out := make([]SourceData, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.data[name])
	}
	return out
}

// Sources returns the source names present, in insertion order.
func (m *MediaItem) Sources() []string {
	return slices.Clone(m.order)
}
