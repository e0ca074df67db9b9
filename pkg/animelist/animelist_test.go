package animelist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listXML = `<?xml version="1.0" encoding="UTF-8"?>
<anime-list>
	<anime anidbid="1" tvdbid="72025" defaulttvdbseason="1" episodeoffset="" tmdbid="" imdbid="">
		<name>Seikai no Monshou</name>
		<mapping-list>
			<mapping anidbseason="0" tvdbseason="0">;1-5;2-0;</mapping>
		</mapping-list>
	</anime>
	<anime anidbid="56" tvdbid="78920" defaulttvdbseason="2" episodeoffset="6">
		<name>Tenchi Muyou! Ryououki (2003)</name>
		<mapping-list>
			<mapping anidbseason="1" tvdbseason="3" start="7" end="13" offset="-6"/>
			<mapping anidbseason="1" tvdbseason="0">;14-1+2;</mapping>
		</mapping-list>
	</anime>
	<anime anidbid="69" tvdbid="81797" defaulttvdbseason="a">
		<name>One Piece</name>
	</anime>
	<anime anidbid="5" tvdbid="movie" defaulttvdbseason="1">
		<name>A Movie</name>
	</anime>
</anime-list>`

func parseTestList(t *testing.T) []SeriesMapping {
	t.Helper()
	mappings, err := Parse(strings.NewReader(listXML))
	require.NoError(t, err)
	return mappings
}

func TestParse(t *testing.T) {
	mappings := parseTestList(t)
	require.Len(t, mappings, 3, "movie entry should be skipped")

	seikai := mappings[0]
	assert.Equal(t, 1, seikai.AniDbID)
	assert.Equal(t, 72025, seikai.TvDbID)
	assert.Equal(t, "Seikai no Monshou", seikai.Name)
	assert.Equal(t, 1, seikai.DefaultSeason)
	assert.Equal(t, 0, seikai.EpisodeOffset)
	require.Len(t, seikai.Groups, 1)
	assert.Equal(t, []EpisodePair{{AniDb: 1, TvDb: 5}, {AniDb: 2, TvDb: 0}}, seikai.Groups[0].Pairs)

	tenchi := mappings[1]
	assert.Equal(t, 2, tenchi.DefaultSeason)
	assert.Equal(t, 6, tenchi.EpisodeOffset)
	require.Len(t, tenchi.Groups, 2)
	assert.Equal(t, EpisodeGroup{AniDbSeason: 1, TvDbSeason: 3, Start: 7, End: 13, Offset: -6}, tenchi.Groups[0])

	onePiece := mappings[2]
	assert.True(t, onePiece.Absolute)
	assert.Equal(t, 0, onePiece.DefaultSeason)
}

func TestParse_InvalidXML(t *testing.T) {
	_, err := Parse(strings.NewReader("<anime-list><anime"))
	assert.Error(t, err)
}

func TestSeriesMapping_TvDbEpisode(t *testing.T) {
	mappings := parseTestList(t)
	seikai, tenchi, onePiece := mappings[0], mappings[1], mappings[2]

	tests := []struct {
		name        string
		mapping     SeriesMapping
		season, ep  int
		want        EpisodeRef
		wantMatched bool
	}{
		{"explicit special pair", seikai, 0, 1, EpisodeRef{Season: 0, Episode: 5}, true},
		{"explicit pair with no equivalent", seikai, 0, 2, EpisodeRef{}, false},
		{"unmapped special", seikai, 0, 3, EpisodeRef{}, false},
		{"default season", seikai, 1, 4, EpisodeRef{Season: 1, Episode: 4}, true},
		{"default season with offset", tenchi, 1, 2, EpisodeRef{Season: 2, Episode: 8}, true},
		{"range", tenchi, 1, 9, EpisodeRef{Season: 3, Episode: 3}, true},
		{"pair wins over default", tenchi, 1, 14, EpisodeRef{Season: 0, Episode: 1}, true},
		{"absolute", onePiece, 1, 400, EpisodeRef{Episode: 400, Absolute: true}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.mapping.TvDbEpisode(tt.season, tt.ep)
			assert.Equal(t, tt.wantMatched, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEpisodeRef_String(t *testing.T) {
	assert.Equal(t, "S02E08", EpisodeRef{Season: 2, Episode: 8}.String())
	assert.Equal(t, "absolute 400", EpisodeRef{Episode: 400, Absolute: true}.String())
}

func TestClient_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/anime-list.xml" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(listXML))
	}))
	defer server.Close()

	client := NewClient(WithURL(server.URL+"/anime-list.xml"), WithLogger(nil))
	mappings, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, mappings, 3)

	_, err = NewClient(WithURL(server.URL + "/missing")).Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}
