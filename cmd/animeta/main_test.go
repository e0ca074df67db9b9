package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seriesXML = `<?xml version="1.0" encoding="UTF-8"?>
<anime id="56" restricted="false">
	<type>OVA</type>
	<episodecount>6</episodecount>
	<startdate>1992-09-25</startdate>
	<enddate>1993-03-25</enddate>
	<titles>
		<title xml:lang="x-jat" type="main">Tenchi Muyou! Ryououki</title>
		<title xml:lang="en" type="official">Tenchi Muyo! Ryo-Ohki</title>
	</titles>
	<description>Tenchi Masaki releases the demon Ryouko.</description>
	<ratings><permanent count="4000">7.59</permanent></ratings>
	<tags>
		<tag id="2604" weight="600"><name>comedy</name></tag>
	</tags>
	<creators><name id="123" type="Animation Work">AIC</name></creators>
	<episodes>
		<episode id="100">
			<epno type="1">1</epno>
			<airdate>1992-09-25</airdate>
			<title xml:lang="en">No Need for Discord</title>
		</episode>
		<episode id="101">
			<epno type="1">2</epno>
			<airdate>1992-12-21</airdate>
			<title xml:lang="en">No Need for a Princess</title>
		</episode>
	</episodes>
</anime>`

const titlesXML = `<?xml version="1.0" encoding="UTF-8"?>
<animetitles>
	<anime aid="56">
		<title xml:lang="x-jat" type="main">Tenchi Muyou! Ryououki</title>
		<title xml:lang="en" type="official">Tenchi Muyo! Ryo-Ohki</title>
	</anime>
</animetitles>`

const animeListXML = `<?xml version="1.0" encoding="UTF-8"?>
<anime-list>
	<anime anidbid="56" tvdbid="78920" defaulttvdbseason="1">
		<name>Tenchi Muyou! Ryououki</name>
	</anime>
</anime-list>`

type catalogServer struct {
	*httptest.Server
	anidbCalls atomic.Int32
}

func newCatalogServer(t *testing.T) *catalogServer {
	t.Helper()
	s := &catalogServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/anidb", func(w http.ResponseWriter, r *http.Request) {
		s.anidbCalls.Add(1)
		if r.URL.Query().Get("aid") != "56" {
			fmt.Fprint(w, `<error>Anime not found</error>`)
			return
		}
		fmt.Fprint(w, seriesXML)
	})
	mux.HandleFunc("/titles", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, titlesXML)
	})
	mux.HandleFunc("/anime-list.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, animeListXML)
	})
	mux.HandleFunc("/tvdb/login", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"token":"test-token"}}`)
	})
	mux.HandleFunc("/tvdb/series/78920/extended", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"id":78920,"name":"Tenchi Muyo!",
			"genres":[{"name":"Animation"}],"airsDays":{"friday":true}}}`)
	})
	mux.HandleFunc("/tvdb/series/78920/episodes/default", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"success","data":{"episodes":[
			{"id":9001,"seasonNumber":1,"number":1,"name":"No Need for Discord"},
			{"id":9002,"seasonNumber":1,"number":2,"name":"No Need for a Princess","overview":"Ayeka arrives."}
		]},"links":{"prev":null,"next":null}}`)
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func writeConfig(t *testing.T, serverURL string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := fmt.Sprintf(`
[log]
level = "error"

[cache]
driver = "memory"

[anidb]
client = "animeta"
client_version = 1
request_interval = "1ms"
base_url = "%[1]s/anidb"
titles_url = "%[1]s/titles"

[tvdb]
api_key = "test-key"
base_url = "%[1]s/tvdb"

[mapping]
anime_list_url = "%[1]s/anime-list.xml"
`, serverURL)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestIdentifySeries_JSON(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	out, err := execute(t, "", "--config", cfg, "--json", "identify", "series", "--anidb", "56")
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "Series", record["type"])
	assert.Equal(t, "Tenchi Muyo! Ryo-Ohki", record["name"])
	assert.Equal(t, map[string]any{"AniDb": "56", "TvDb": "78920"}, record["providerIds"])
	assert.Equal(t, []any{"Anime", "Comedy", "Animation"}, record["genres"])
	assert.Equal(t, []any{"Friday"}, record["airDays"])
}

func TestIdentifySeries_ByTitleTable(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	out, err := execute(t, "", "--config", cfg, "identify", "series", "Tenchi Muyo! Ryo-Ohki")
	require.NoError(t, err)
	assert.Contains(t, out, "Tenchi Muyo! Ryo-Ohki")
	assert.Contains(t, out, "TvDb id")
	assert.Contains(t, out, "78920")
	assert.Contains(t, out, "https://anidb.net/anime/56")
	assert.Contains(t, out, "Tenchi Masaki releases the demon Ryouko.")
}

func TestIdentifySeries_NotFound(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	_, err := execute(t, "", "--config", cfg, "identify", "series", "Cowboy Bebop")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No AniDb series found with title 'Cowboy Bebop'")
}

func TestIdentifyEpisode(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	out, err := execute(t, "", "--config", cfg, "--json", "identify", "episode",
		"--index", "2", "--parent-index", "1", "--series-anidb", "56")
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &record))
	assert.Equal(t, "No Need for a Princess", record["name"])
	assert.Equal(t, "Ayeka arrives.", record["overview"])
	assert.EqualValues(t, 2, record["indexNumber"])
	assert.Equal(t, map[string]any{"AniDb": "101", "TvDb": "9002"}, record["providerIds"])
}

func TestIdentifyBatch(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	reqs := `[
		{"type": "series", "name": "Tenchi Muyo! Ryo-Ohki"},
		{"type": "season", "index": 1, "seriesProviderIds": {"anidb": "56"}},
		{"type": "movie", "name": "Tenchi the Movie"}
	]`
	out, err := execute(t, reqs, "--config", cfg, "--json", "identify", "batch", "-", "--parallel", "1")
	require.NoError(t, err)

	var results []struct {
		Index  int            `json:"index"`
		Record map[string]any `json:"record"`
		Error  string         `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &results))
	require.Len(t, results, 3)
	assert.Equal(t, "Tenchi Muyo! Ryo-Ohki", results[0].Record["name"])
	assert.Equal(t, "Season 1", results[1].Record["name"])
	assert.Nil(t, results[2].Record)
	assert.NotEmpty(t, results[2].Error)

	// The season reuses the series response cached by the first request
	assert.Equal(t, int32(1), server.anidbCalls.Load())
}

func TestIdentifyBatch_BadInput(t *testing.T) {
	_, err := execute(t, "not json", "identify", "batch", "-")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode requests")
}

func TestMapping(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	out, err := execute(t, "", "--config", cfg, "mapping", "tvdb", "78920")
	require.NoError(t, err)
	assert.Contains(t, out, "Tenchi Muyou! Ryououki")
	assert.Contains(t, out, "56")

	_, err = execute(t, "", "--config", cfg, "mapping", "anidb", "999")
	require.Error(t, err)

	_, err = execute(t, "", "--config", cfg, "mapping", "tmdb", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown catalog")
}

func TestMappings(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	out, err := execute(t, "", "--config", cfg, "--json", "mappings", "season")
	require.NoError(t, err)

	var defs []map[string]string
	require.NoError(t, json.Unmarshal([]byte(out), &defs))
	require.NotEmpty(t, defs)
	for _, d := range defs {
		assert.Equal(t, "Season", d["itemType"])
	}
	assert.Contains(t, out, "TvDb season name")

	_, err = execute(t, "", "--config", cfg, "mappings", "movie")
	assert.Error(t, err)
}

func TestCache(t *testing.T) {
	server := newCatalogServer(t)
	cfg := writeConfig(t, server.URL)

	out, err := execute(t, "", "--config", cfg, "cache", "prune")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 0 expired entries")

	out, err = execute(t, "", "--config", cfg, "cache", "invalidate", "anidb", "56")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalidated anidb series 56")

	out, err = execute(t, "", "--config", cfg, "cache", "invalidate", "mappings")
	require.NoError(t, err)
	assert.Contains(t, out, "Invalidated mapping list")

	_, err = execute(t, "", "--config", cfg, "cache", "invalidate", "tvdb")
	assert.Error(t, err)
}

func TestConfigInitAndTest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "animeta", "config.toml")
	t.Setenv("TVDB_API_KEY", "from-env")

	out, err := execute(t, "", "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)

	_, err = execute(t, "", "config", "init", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = execute(t, "", "config", "test", path)
	require.NoError(t, err)
	assert.Contains(t, out, "OK")
}

func TestConfigTest_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[cache]\ndriver = \"redis\"\n"), 0644))

	_, err := execute(t, "", "config", "test", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.driver")
}

func TestConfigTest_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[cache]\ndriver = \"memory\"\n[cache.ttls]\n\"imdb:\" = \"1h\"\n[tvdb]\napi_key = \"k\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	out, err := execute(t, "", "--json", "config", "test", path)
	require.Error(t, err)

	var report struct {
		Valid    bool `json:"valid"`
		Problems []struct {
			Key string `json:"key"`
		} `json:"problems"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Valid)
	require.Len(t, report.Problems, 1)
	assert.Equal(t, "cache.ttls.imdb:", report.Problems[0].Key)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel("debug").String())
	assert.Equal(t, "WARN", parseLogLevel("WARN").String())
	assert.Equal(t, "INFO", parseLogLevel("bogus").String())
}
