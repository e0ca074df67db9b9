package anidb

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seriesXML = `<?xml version="1.0" encoding="UTF-8"?>
<anime id="56" restricted="false">
	<type>OVA</type>
	<episodecount>6</episodecount>
	<startdate>1992-09-25</startdate>
	<enddate>1993-03</enddate>
	<titles>
		<title xml:lang="x-jat" type="main">Tenchi Muyou! Ryououki</title>
		<title xml:lang="en" type="official">Tenchi Muyo! Ryo-Ohki</title>
		<title xml:lang="ja" type="official">天地無用! 魎皇鬼</title>
	</titles>
	<description>Tenchi Masaki releases the demon Ryouko.</description>
	<ratings>
		<permanent count="4000">7.59</permanent>
	</ratings>
	<tags>
		<tag id="2604" weight="600"><name>comedy</name></tag>
		<tag id="2850" weight="0"><name>harem</name></tag>
	</tags>
	<creators>
		<name id="123" type="Animation Work">AIC</name>
	</creators>
	<episodes>
		<episode id="100">
			<epno type="1">1</epno>
			<length>30</length>
			<airdate>1992-09-25</airdate>
			<rating votes="12">4.5</rating>
			<title xml:lang="en">No Need for Discord</title>
		</episode>
		<episode id="101">
			<epno type="2">S1</epno>
			<length>25</length>
			<title xml:lang="en">Special</title>
		</episode>
	</episodes>
</anime>`

func gzipBytes(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func newTestClient(url string) *Client {
	return New("animeta", 1, WithBaseURL(url), WithTitlesURL(url+"/titles"), WithRequestInterval(0), WithLogger(nil))
}

func TestGetSeries_Success(t *testing.T) {
	var query map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Write(gzipBytes(t, seriesXML))
	}))
	defer server.Close()

	series, err := newTestClient(server.URL).GetSeries(context.Background(), 56)
	require.NoError(t, err)

	assert.Equal(t, "anime", query["request"])
	assert.Equal(t, "animeta", query["client"])
	assert.Equal(t, "1", query["clientver"])
	assert.Equal(t, "56", query["aid"])

	assert.Equal(t, 56, series.ID)
	assert.Equal(t, "OVA", series.Type)
	assert.Equal(t, 6, series.EpisodeCount)
	assert.Equal(t, time.Date(1992, 9, 25, 0, 0, 0, 0, time.UTC), series.StartDate.Time)
	assert.Equal(t, time.Date(1993, 3, 1, 0, 0, 0, 0, time.UTC), series.EndDate.Time)
	require.Len(t, series.Titles, 3)
	assert.Equal(t, Title{Lang: "x-jat", Type: TitleMain, Value: "Tenchi Muyou! Ryououki"}, series.Titles[0])
	assert.InDelta(t, 7.59, series.Rating, 0.001)
	require.Len(t, series.Tags, 2)
	assert.Equal(t, 600, series.Tags[0].Weight)
	assert.Equal(t, "AIC", series.Creators[0].Name)
	assert.Equal(t, "Animation Work", series.Creators[0].Type)

	require.Len(t, series.Episodes, 2)
	assert.Len(t, series.RegularEpisodes(), 1)

	ep, ok := series.FindEpisode(EpisodeSpecial, 1)
	require.True(t, ok)
	assert.Equal(t, 101, ep.ID)
	assert.True(t, ep.AirDate.IsZero())

	ep, ok = series.FindEpisode(EpisodeNormal, 1)
	require.True(t, ok)
	assert.InDelta(t, 4.5, ep.Rating, 0.001)
}

func TestGetSeries_ErrorDocuments(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{"banned", `<error code="500">Banned</error>`, ErrBanned},
		{"not found", `<?xml version="1.0"?><error>Anime not found</error>`, ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := newTestClient(server.URL).GetSeries(context.Background(), 1)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestGetSeries_UnknownError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<error>Client version missing or invalid</error>`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetSeries(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client version missing")
}

func TestGetSeries_MissingClient(t *testing.T) {
	_, err := New("", 0).GetSeries(context.Background(), 1)
	assert.ErrorIs(t, err, ErrMissingAuth)
}

func TestGetSeries_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetSeries(context.Background(), 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestGetSeries_Throttled(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(seriesXML))
	}))
	defer server.Close()

	client := New("animeta", 1, WithBaseURL(server.URL), WithRequestInterval(time.Hour))

	_, err := client.GetSeries(context.Background(), 56)
	require.NoError(t, err)

	// The second request must wait an hour, so a short deadline fails it
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = client.GetSeries(ctx, 56)
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestGetTitles(t *testing.T) {
	const dump = `<?xml version="1.0" encoding="UTF-8"?>
<animetitles>
	<anime aid="1">
		<title xml:lang="x-jat" type="main">Seikai no Monshou</title>
		<title xml:lang="en" type="official">Crest of the Stars</title>
	</anime>
	<anime aid="56">
		<title xml:lang="x-jat" type="main">Tenchi Muyou! Ryououki</title>
	</anime>
</animetitles>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/titles" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write(gzipBytes(t, dump))
	}))
	defer server.Close()

	entries, err := newTestClient(server.URL).GetTitles(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].ID)
	assert.Equal(t, "Crest of the Stars", entries[0].Titles[1].Value)
	assert.Equal(t, "en", entries[0].Titles[1].Lang)
	assert.Equal(t, 56, entries[1].ID)
}

func TestTitlePriority(t *testing.T) {
	assert.Less(t, Title{Type: TitleMain}.Priority(), Title{Type: TitleOfficial}.Priority())
	assert.Less(t, Title{Type: TitleOfficial}.Priority(), Title{Type: TitleSynonym}.Priority())
	assert.Equal(t, 4, Title{Type: TitleShort}.Priority())
}

func TestEpisodeNumber(t *testing.T) {
	assert.Equal(t, 12, EpisodeNumber{Type: EpisodeNormal, Raw: "12"}.Number())
	assert.Equal(t, 3, EpisodeNumber{Type: EpisodeSpecial, Raw: "S3"}.Number())
	assert.Equal(t, 0, EpisodeNumber{Raw: ""}.Number())
}
