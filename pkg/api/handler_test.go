package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/hazyhaar/anunturi/pkg/article"
	"github.com/hazyhaar/anunturi/pkg/dict"
	"github.com/hazyhaar/anunturi/pkg/highlight"
)

func testService(t *testing.T) *Service {
	t.Helper()
	store, err := article.OpenStore(filepath.Join(t.TempDir(), "anunturi.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	if _, err := store.Seed(article.MockArticles()); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	reg := dict.NewRegistry("")
	if err := reg.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	return &Service{
		Catalogs: reg,
		Articles: store,
		Options:  article.DefaultOptions(),
		Workers:  2,
	}
}

func testServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := httptest.NewServer(NewRouter(testService(t), logger, nil))
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, wantCode int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != wantCode {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("GET %s: status %d, want %d: %s", url, resp.StatusCode, wantCode, body)
	}
	if v != nil {
		if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
}

func articleIDs(list []*article.Article) []string {
	out := make([]string, len(list))
	for i, a := range list {
		out[i] = a.ID
	}
	return out
}

func TestFilterArticles(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		query string
		want  []string
	}{
		{"", []string{"sed_04_Iun", "sed_03_Iun", "hg_123_2024", "oug_45_2024"}},
		{"?type=hotarare", []string{"sed_04_Iun", "hg_123_2024"}},
		{"?subject=sanatate", []string{"hg_123_2024"}},
		{"?q=urgenta", []string{"sed_04_Iun", "oug_45_2024"}},
		{"?q=URGENȚĂ&type=ordonanta&subject=educatie", []string{"oug_45_2024"}},
		{"?q=inexistent", []string{}},
	}
	for _, tt := range tests {
		var resp filterResponse
		getJSON(t, srv.URL+"/v1/articles"+tt.query, http.StatusOK, &resp)
		if !reflect.DeepEqual(articleIDs(resp.Articles), tt.want) {
			t.Errorf("%s: ids = %v, want %v", tt.query, articleIDs(resp.Articles), tt.want)
		}
		if resp.Total != len(tt.want) {
			t.Errorf("%s: total = %d", tt.query, resp.Total)
		}
	}
}

func TestFilterArticles_Badges(t *testing.T) {
	srv := testServer(t)

	var resp filterResponse
	getJSON(t, srv.URL+"/v1/articles?type=ordin&subject=transport", http.StatusOK, &resp)
	if !resp.Active {
		t.Error("expected active criteria")
	}
	if len(resp.Badges) != 2 || resp.Badges[0].Label != "Tip: Ordine" || resp.Badges[1].Label != "Subiect: Transport" {
		t.Errorf("badges = %+v", resp.Badges)
	}

	getJSON(t, srv.URL+"/v1/articles", http.StatusOK, &resp)
	if resp.Active || resp.Criteria.DocumentType != article.All {
		t.Errorf("no criteria should normalize to all: %+v", resp.Criteria)
	}
}

func TestGetArticle(t *testing.T) {
	srv := testServer(t)

	var resp articleResponse
	getJSON(t, srv.URL+"/v1/articles/hg_123_2024", http.StatusOK, &resp)
	if resp.Article.ID != "hg_123_2024" || resp.Catalog != dict.DefaultCatalogID {
		t.Fatalf("article = %s, catalog = %s", resp.Article.ID, resp.Catalog)
	}
	if len(resp.Title) == 0 || resp.Title[0].Kind != highlight.Tagged || resp.Title[0].Term != "hotărâre de guvern" {
		t.Errorf("title segments = %+v", resp.Title)
	}
	if resp.Title[0].Explanation == "" {
		t.Error("tagged title segment has no explanation")
	}

	var text strings.Builder
	for _, s := range resp.OriginalContent {
		text.WriteString(s.Text)
	}
	if text.String() != resp.Article.OriginalContent {
		t.Errorf("segments do not rebuild the content: %q", text.String())
	}
}

func TestGetArticle_NotFound(t *testing.T) {
	srv := testServer(t)
	getJSON(t, srv.URL+"/v1/articles/missing", http.StatusNotFound, nil)
	getJSON(t, srv.URL+"/v1/articles/hg_123_2024?catalog=nope", http.StatusNotFound, nil)
}

func TestHighlight(t *testing.T) {
	srv := testServer(t)

	body := `{"text":"Guvernul a adoptat o Hotărâre de Guvern."}`
	resp, err := http.Post(srv.URL+"/v1/highlight", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var got highlightResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatal(err)
	}
	if len(got.Segments) != 3 {
		t.Fatalf("segments = %+v", got.Segments)
	}
	if got.Segments[0].Text != "Guvernul a adoptat o " || got.Segments[0].Kind != highlight.Plain {
		t.Errorf("first = %+v", got.Segments[0])
	}
	tag := got.Segments[1]
	if tag.Text != "Hotărâre de Guvern" || tag.Term != "hotărâre de guvern" || tag.Explanation == "" {
		t.Errorf("tagged = %+v", tag)
	}
	if got.Segments[2].Text != "." {
		t.Errorf("last = %+v", got.Segments[2])
	}
}

func TestHighlight_DoesNotFillArticleCache(t *testing.T) {
	svc := testService(t)
	srv := httptest.NewServer(NewRouter(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), nil))
	defer srv.Close()

	for i := 0; i < 20; i++ {
		body := fmt.Sprintf(`{"text":"%d o ordonanță"}`, i)
		resp, err := http.Post(srv.URL+"/v1/highlight", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
	}
	cache := svc.Catalogs.Default().Segmenter()
	if n := cache.Len(); n != 0 {
		t.Errorf("cache entries after highlight requests = %d, want 0", n)
	}

	getJSON(t, srv.URL+"/v1/articles/hg_123_2024", http.StatusOK, nil)
	if n := cache.Len(); n != 3 {
		t.Errorf("cache entries after article view = %d, want 3 (one per field)", n)
	}
}

func TestHighlight_BadRequests(t *testing.T) {
	srv := testServer(t)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid json", "{", http.StatusBadRequest},
		{"unknown catalog", `{"text":"ordin","catalog":"nope"}`, http.StatusNotFound},
		{"empty text", `{"text":""}`, http.StatusOK},
	}
	for _, tt := range tests {
		resp, err := http.Post(srv.URL+"/v1/highlight", "application/json", strings.NewReader(tt.body))
		if err != nil {
			t.Fatal(err)
		}
		resp.Body.Close()
		if resp.StatusCode != tt.want {
			t.Errorf("%s: status = %d, want %d", tt.name, resp.StatusCode, tt.want)
		}
	}

	resp, err := http.Get(srv.URL + "/v1/highlight")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET /v1/highlight status = %d", resp.StatusCode)
	}
	if allow := resp.Header.Get("Allow"); !strings.Contains(allow, http.MethodPost) {
		t.Errorf("Allow = %q, want POST listed", allow)
	}
}

func TestTermsAndExplain(t *testing.T) {
	srv := testServer(t)

	var terms termsResponse
	getJSON(t, srv.URL+"/v1/terms", http.StatusOK, &terms)
	// Catalog order, not matching order.
	if len(terms.Terms) != 8 || terms.Terms[0].Term != "hotărâre de guvern" || terms.Terms[7].Term != "act normativ" {
		t.Errorf("terms = %+v", terms.Terms)
	}

	var ex explainResponse
	getJSON(t, srv.URL+"/v1/terms/Ordin", http.StatusOK, &ex)
	if ex.Term != "ordin" || !strings.HasPrefix(ex.Explanation, "Ordinul este") {
		t.Errorf("explain = %+v", ex)
	}

	getJSON(t, srv.URL+"/v1/terms/lege", http.StatusNotFound, nil)
}

func TestCatalogsFiltersHealth(t *testing.T) {
	srv := testServer(t)

	var cats catalogsResponse
	getJSON(t, srv.URL+"/v1/catalogs", http.StatusOK, &cats)
	if len(cats.Catalogs) != 1 || !cats.Catalogs[0].Default || cats.Catalogs[0].Terms != 8 {
		t.Errorf("catalogs = %+v", cats.Catalogs)
	}

	var opts article.Options
	getJSON(t, srv.URL+"/v1/filters", http.StatusOK, &opts)
	if !reflect.DeepEqual(opts, article.DefaultOptions()) {
		t.Errorf("filters = %+v", opts)
	}

	var health healthResponse
	getJSON(t, srv.URL+"/v1/health", http.StatusOK, &health)
	if health.Status != "ok" || health.Catalogs != 1 || health.Terms != 8 || health.Articles != 4 {
		t.Errorf("health = %+v", health)
	}
}

func TestUpsertAndDelete(t *testing.T) {
	srv := testServer(t)

	body, _ := json.Marshal(map[string]any{
		"title":    "Ordin privind transportul public",
		"category": "transport",
		"as_new":   true,
	})
	resp, err := http.Post(srv.URL+"/v1/articles", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	var created article.Article
	json.NewDecoder(resp.Body).Decode(&created)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || created.ID == "" || !created.IsNew {
		t.Fatalf("create: status %d, %+v", resp.StatusCode, created)
	}

	var list filterResponse
	getJSON(t, srv.URL+"/v1/articles?subject=transport", http.StatusOK, &list)
	if len(list.Articles) != 1 || list.Articles[0].ID != created.ID {
		t.Errorf("created article not listed: %v", articleIDs(list.Articles))
	}

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/v1/articles/"+created.ID, nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete status = %d", resp.StatusCode)
	}

	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", resp.StatusCode)
	}

	resp, err = http.Post(srv.URL+"/v1/articles", "application/json", strings.NewReader(`{"title":"  "}`))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("untitled upsert status = %d, want 400", resp.StatusCode)
	}
}

func TestRequestIDAndCORS(t *testing.T) {
	srv := testServer(t)

	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/health", nil)
	req.Header.Set("X-Request-ID", "abc")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if got := resp.Header.Get("X-Request-ID"); got != "abc" {
		t.Errorf("X-Request-ID = %q, want abc", got)
	}
	if resp.Header.Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing CORS header")
	}

	req, _ = http.NewRequest(http.MethodOptions, srv.URL+"/v1/articles", nil)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
}
