// Package tvdb provides a client for the TVDB API v4.
package tvdb

import "time"

// Series is the extended series record.
type Series struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Overview   string    `json:"overview"`
	Status     string    `json:"status"` // "Continuing" or "Ended"
	FirstAired time.Time `json:"firstAired"`
	LastAired  time.Time `json:"lastAired"`
	Genres     []string  `json:"genres"`
	AirsDays   []string  `json:"airsDays"` // "Monday", "Tuesday", ...
	AirsTime   string    `json:"airsTime"` // HH:MM
	Network    string    `json:"network"`
	Score      float64   `json:"score"`
	Language   string    `json:"originalLanguage"`
}

// Year returns the year the series first aired, or zero.
func (s Series) Year() int {
	if s.FirstAired.IsZero() {
		return 0
	}
	return s.FirstAired.Year()
}

// Episode represents a single episode from TVDB.
type Episode struct {
	ID             int       `json:"id"`
	Season         int       `json:"seasonNumber"`
	Episode        int       `json:"number"`
	AbsoluteNumber int       `json:"absoluteNumber"`
	Name           string    `json:"name"`
	Overview       string    `json:"overview"`
	AirDate        time.Time `json:"aired"`
	Runtime        int       `json:"runtime"`
}

// EpisodesPage is one page of a series' episodes. Next is the following
// page number, or -1 on the last page.
type EpisodesPage struct {
	Page     int
	Next     int
	Prev     int
	Episodes []Episode
}

// HasNext reports whether another page follows.
func (p EpisodesPage) HasNext() bool { return p.Next >= 0 }

// envelope wraps every TVDB v4 response. Failures carry a message
// instead of data.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    T      `json:"data"`
	Links   struct {
		Prev *string `json:"prev"`
		Next *string `json:"next"`
	} `json:"links"`
}

type loginData struct {
	Token string `json:"token"`
}

type named struct {
	Name string `json:"name"`
}

// seriesRecord is the data of /series/{id}/extended.
type seriesRecord struct {
	ID               int     `json:"id"`
	Name             string  `json:"name"`
	Status           named   `json:"status"`
	Overview         string  `json:"overview"`
	FirstAired       string  `json:"firstAired"` // YYYY-MM-DD
	LastAired        string  `json:"lastAired"`
	Score            float64 `json:"score"`
	AirsTime         string  `json:"airsTime"`
	OriginalLanguage string  `json:"originalLanguage"`
	AirsDays         airDays `json:"airsDays"`
	Genres           []named `json:"genres"`
	OriginalNetwork  named   `json:"originalNetwork"`
}

type airDays struct {
	Sunday    bool `json:"sunday"`
	Monday    bool `json:"monday"`
	Tuesday   bool `json:"tuesday"`
	Wednesday bool `json:"wednesday"`
	Thursday  bool `json:"thursday"`
	Friday    bool `json:"friday"`
	Saturday  bool `json:"saturday"`
}

// names lists the set days from Sunday on.
func (d airDays) names() []string {
	var out []string
	for _, day := range []struct {
		on   bool
		name string
	}{
		{d.Sunday, "Sunday"}, {d.Monday, "Monday"}, {d.Tuesday, "Tuesday"},
		{d.Wednesday, "Wednesday"}, {d.Thursday, "Thursday"}, {d.Friday, "Friday"},
		{d.Saturday, "Saturday"},
	} {
		if day.on {
			out = append(out, day.name)
		}
	}
	return out
}

func (r seriesRecord) series() *Series {
	s := &Series{
		ID:         r.ID,
		Name:       r.Name,
		Overview:   r.Overview,
		Status:     r.Status.Name,
		FirstAired: parseDate(r.FirstAired),
		LastAired:  parseDate(r.LastAired),
		AirsDays:   r.AirsDays.names(),
		AirsTime:   r.AirsTime,
		Network:    r.OriginalNetwork.Name,
		Score:      r.Score,
		Language:   r.OriginalLanguage,
	}
	for _, g := range r.Genres {
		s.Genres = append(s.Genres, g.Name)
	}
	return s
}

type episodeRecord struct {
	ID             int    `json:"id"`
	SeasonNumber   int    `json:"seasonNumber"`
	Number         int    `json:"number"`
	AbsoluteNumber int    `json:"absoluteNumber"`
	Name           string `json:"name"`
	Overview       string `json:"overview"`
	Aired          string `json:"aired"` // YYYY-MM-DD
	Runtime        int    `json:"runtime"`
}

func (r episodeRecord) episode() Episode {
	return Episode{
		ID:             r.ID,
		Season:         r.SeasonNumber,
		Episode:        r.Number,
		AbsoluteNumber: r.AbsoluteNumber,
		Name:           r.Name,
		Overview:       r.Overview,
		AirDate:        parseDate(r.Aired),
		Runtime:        r.Runtime,
	}
}

type episodesData struct {
	Episodes []episodeRecord `json:"episodes"`
}
