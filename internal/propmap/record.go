// Package propmap projects the catalog data gathered for an item onto a
// flat output Record through declared, per-source field mappings.
package propmap

import (
	"fmt"
	"strings"
	"time"

	"github.com/samber/mo"

	"github.com/vmunix/animeta/internal/process"
)

// Record is the output metadata for one item.
type Record struct {
	ItemType          process.ItemType  `json:"-"`
	Type              string            `json:"type"`
	Name              string            `json:"name"`
	OriginalTitle     string            `json:"originalTitle,omitempty"`
	Overview          string            `json:"overview,omitempty"`
	PremiereDate      time.Time         `json:"premiereDate,omitzero"`
	EndDate           time.Time         `json:"endDate,omitzero"`
	CommunityRating   float64           `json:"communityRating,omitempty"`
	Genres            []string          `json:"genres,omitempty"`
	Tags              []string          `json:"tags,omitempty"`
	Studios           []string          `json:"studios,omitempty"`
	AirDays           []string          `json:"airDays,omitempty"`
	AirTime           string            `json:"airTime,omitempty"`
	IndexNumber       mo.Option[int]    `json:"indexNumber"`
	ParentIndexNumber mo.Option[int]    `json:"parentIndexNumber"`
	ProviderIDs       map[string]string `json:"providerIds,omitempty"`
	ExternalURLs      map[string]string `json:"externalUrls,omitempty"`
}

func newRecord(itemType process.ItemType) *Record {
	return &Record{
		ItemType:    itemType,
		Type:        itemType.String(),
		ProviderIDs: map[string]string{},
	}
}

// SetProviderID records the item's id in a catalog.
func (r *Record) SetProviderID(source string, id int) {
	r.ProviderIDs[source] = fmt.Sprint(id)
}

// Field names a Record field a mapping writes.
type Field int

const (
	FieldName Field = iota + 1
	FieldOriginalTitle
	FieldOverview
	FieldPremiereDate
	FieldEndDate
	FieldCommunityRating
	FieldGenres
	FieldTags
	FieldStudios
	FieldAirDays
	FieldAirTime
	FieldIndexNumber
	FieldParentIndexNumber
	FieldProviderIDs
)

var fieldNames = map[Field]string{
	FieldName:              "Name",
	FieldOriginalTitle:     "OriginalTitle",
	FieldOverview:          "Overview",
	FieldPremiereDate:      "PremiereDate",
	FieldEndDate:           "EndDate",
	FieldCommunityRating:   "CommunityRating",
	FieldGenres:            "Genres",
	FieldTags:              "Tags",
	FieldStudios:           "Studios",
	FieldAirDays:           "AirDays",
	FieldAirTime:           "AirTime",
	FieldIndexNumber:       "IndexNumber",
	FieldParentIndexNumber: "ParentIndexNumber",
	FieldProviderIDs:       "ProviderIds",
}

// merges reports whether several sources may contribute to the field.
// Any other field belongs to the first source that writes it.
func (f Field) merges() bool {
	switch f {
	case FieldGenres, FieldTags, FieldStudios, FieldProviderIDs:
		return true
	}
	return false
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// ParseField parses a field name, ignoring case.
func ParseField(s string) (Field, error) {
	for f, name := range fieldNames {
		if strings.EqualFold(s, name) {
			return f, nil
		}
	}
	return 0, fmt.Errorf("unknown field %q", s)
}
