// Package process holds the identification domain: item descriptors, the
// per-item aggregate of catalog data, sources, loaders and failures.
package process

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Catalog source names.
const (
	SourceAniDb = "AniDb"
	SourceTvDb  = "TvDb"
)

// ItemType is the level of a media item in the series hierarchy.
type ItemType int

const (
	Series ItemType = iota + 1
	Season
	Episode
)

func (t ItemType) String() string {
	switch t {
	case Series:
		return "Series"
	case Season:
		return "Season"
	case Episode:
		return "Episode"
	default:
		return fmt.Sprintf("ItemType(%d)", int(t))
	}
}

// ParseItemType parses "series", "season" or "episode" (any case).
func ParseItemType(s string) (ItemType, error) {
	for _, t := range []ItemType{Series, Season, Episode} {
		if strings.EqualFold(s, t.String()) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown item type %q", s)
}

// ItemIdentifier is how the caller names an item: its index within the
// parent, the parent's index, and a display name.
type ItemIdentifier struct {
	Index       mo.Option[int]
	ParentIndex mo.Option[int]
	Name        string
}

// NewItemIdentifier builds an identifier from optional index numbers.
func NewItemIdentifier(index, parentIndex *int, name string) ItemIdentifier {
	return ItemIdentifier{
		Index:       mo.PointerToOption(index),
		ParentIndex: mo.PointerToOption(parentIndex),
		Name:        name,
	}
}

func (i ItemIdentifier) String() string {
	s := i.Name
	if idx, ok := i.Index.Get(); ok {
		s = fmt.Sprintf("%s (%d", s, idx)
		if p, ok := i.ParentIndex.Get(); ok {
			s = fmt.Sprintf("%s/%d", s, p)
		}
		s += ")"
	}
	return s
}

// ItemID is an id an item is already known by in one catalog.
type ItemID struct {
	ItemType   ItemType
	SourceName string
	ID         int
}

// ItemDescriptor is the caller's description of the item to identify.
// It is never modified after construction.
type ItemDescriptor struct {
	itemType    ItemType
	identifier  ItemIdentifier
	existingIDs map[string]int
	language    string
	parentIDs   []ItemID
}

// NewItemDescriptor copies existingIDs and parentIDs so later changes by the
// caller cannot leak into the descriptor.
func NewItemDescriptor(itemType ItemType, identifier ItemIdentifier, existingIDs map[string]int,
	language string, parentIDs []ItemID) ItemDescriptor {
	ids := make(map[string]int, len(existingIDs))
	maps.Copy(ids, existingIDs)

	return ItemDescriptor{
		itemType:    itemType,
		identifier:  identifier,
		existingIDs: ids,
		language:    language,
		parentIDs:   slices.Clone(parentIDs),
	}
}

func (d ItemDescriptor) ItemType() ItemType         { return d.itemType }
func (d ItemDescriptor) Identifier() ItemIdentifier { return d.identifier }
func (d ItemDescriptor) Language() string           { return d.language }
func (d ItemDescriptor) ParentIDs() []ItemID        { return slices.Clone(d.parentIDs) }

// ExistingIDs returns a copy of the catalog ids the item is already known by.
func (d ItemDescriptor) ExistingIDs() map[string]int {
	return maps.Clone(d.existingIDs)
}

// IsFileData reports whether the item came from disk rather than from an
// already catalogued library entry.
func (d ItemDescriptor) IsFileData() bool {
	return len(d.existingIDs) == 0
}

// ExistingID returns the id the item already has in the named source.
func (d ItemDescriptor) ExistingID(source string) mo.Option[int] {
	id, ok := d.existingIDs[source]
	if !ok {
		return mo.None[int]()
	}
	return mo.Some(id)
}

// ParentID returns the id of the ancestor of the given type in the named source.
func (d ItemDescriptor) ParentID(itemType ItemType, source string) mo.Option[int] {
	parent, ok := lo.Find(d.parentIDs, func(id ItemID) bool {
		return id.ItemType == itemType && id.SourceName == source
	})
	if !ok {
		return mo.None[int]()
	}
	return mo.Some(parent.ID)
}

func (d ItemDescriptor) String() string {
	return fmt.Sprintf("%s '%s'", d.itemType, d.identifier)
}
