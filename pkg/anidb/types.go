// Package anidb provides a client for the AniDB HTTP API and its title dump.
package anidb

import (
	"encoding/xml"
	"strconv"
	"strings"
	"time"
)

// Title types as they appear in AniDB data.
const (
	TitleMain     = "main"
	TitleOfficial = "official"
	TitleSynonym  = "synonym"
	TitleShort    = "short"
)

// Title is one of an item's titles in one language.
type Title struct {
	Lang  string `xml:"lang,attr" json:"lang"`
	Type  string `xml:"type,attr" json:"type"`
	Value string `xml:",chardata" json:"value"`
}

// Priority orders titles main, official, synonym, then everything else.
func (t Title) Priority() int {
	switch t.Type {
	case TitleMain:
		return 1
	case TitleOfficial:
		return 2
	case TitleSynonym:
		return 3
	default:
		return 4
	}
}

// Date is a YYYY-MM-DD date that tolerates the partial forms AniDB uses
// ("2004-04" and "2004").
type Date struct {
	time.Time
}

func (d *Date) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	var s string
	if err := dec.DecodeElement(&s, &start); err != nil {
		return err
	}
	d.Time = parseDate(s)
	return nil
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "2006-01", "2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Tag is a descriptive tag with AniDB's 0-600 weight.
type Tag struct {
	ID     int    `xml:"id,attr" json:"id"`
	Weight int    `xml:"weight,attr" json:"weight"`
	Name   string `xml:"name" json:"name"`
}

// Creator is a person or company credited on a series.
type Creator struct {
	ID   int    `xml:"id,attr" json:"id"`
	Type string `xml:"type,attr" json:"type"`
	Name string `xml:",chardata" json:"name"`
}

// Episode types from the epno type attribute.
const (
	EpisodeNormal  = 1
	EpisodeSpecial = 2
	EpisodeCredit  = 3
	EpisodeTrailer = 4
	EpisodeParody  = 5
	EpisodeOther   = 6
)

// EpisodeNumber is an episode's number and type. Specials are numbered
// "S1", credits "C1" and so on; Raw keeps the original text.
type EpisodeNumber struct {
	Type int    `xml:"type,attr" json:"type"`
	Raw  string `xml:",chardata" json:"raw"`
}

// Number returns the numeric part of the episode number.
func (n EpisodeNumber) Number() int {
	s := strings.TrimLeft(strings.TrimSpace(n.Raw), "SCTPO")
	v, _ := strconv.Atoi(s)
	return v
}

// Episode is one episode of a series.
type Episode struct {
	ID      int           `xml:"id,attr" json:"id"`
	Number  EpisodeNumber `xml:"epno" json:"epno"`
	Length  int           `xml:"length" json:"length"`
	AirDate Date          `xml:"airdate" json:"airdate"`
	Rating  float64       `xml:"rating" json:"rating"`
	Titles  []Title       `xml:"title" json:"titles"`
	Summary string        `xml:"summary" json:"summary"`
}

// Series is the anime record returned by the HTTP API.
type Series struct {
	ID           int       `xml:"id,attr" json:"id"`
	Restricted   bool      `xml:"restricted,attr" json:"restricted"`
	Type         string    `xml:"type" json:"type"`
	EpisodeCount int       `xml:"episodecount" json:"episodecount"`
	StartDate    Date      `xml:"startdate" json:"startdate"`
	EndDate      Date      `xml:"enddate" json:"enddate"`
	Titles       []Title   `xml:"titles>title" json:"titles"`
	Description  string    `xml:"description" json:"description"`
	Rating       float64   `xml:"ratings>permanent" json:"rating"`
	Tags         []Tag     `xml:"tags>tag" json:"tags"`
	Creators     []Creator `xml:"creators>name" json:"creators"`
	Episodes     []Episode `xml:"episodes>episode" json:"episodes"`
}

// RegularEpisodes returns the normal episodes ordered as AniDB lists them.
func (s Series) RegularEpisodes() []Episode {
	var out []Episode
	for _, ep := range s.Episodes {
		if ep.Number.Type == EpisodeNormal {
			out = append(out, ep)
		}
	}
	return out
}

// FindEpisode returns the episode of the given type and number.
func (s Series) FindEpisode(epType, number int) (Episode, bool) {
	for _, ep := range s.Episodes {
		if ep.Number.Type == epType && ep.Number.Number() == number {
			return ep, true
		}
	}
	return Episode{}, false
}

// TitleEntry is one anime in the title dump.
type TitleEntry struct {
	ID     int     `xml:"aid,attr" json:"aid"`
	Titles []Title `xml:"title" json:"titles"`
}

type titlesDump struct {
	Entries []TitleEntry `xml:"anime"`
}

type errorResponse struct {
	XMLName xml.Name `xml:"error"`
	Message string   `xml:",chardata"`
}
