package homegate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"homegate_search/platform/apperr"
	"homegate_search/platform/metrics"
)

type fakeAPI struct {
	t          *testing.T
	calls      atomic.Int32
	geoCalls   atomic.Int32
	geo        map[string]string
	lastSearch map[string]any
	lastURL    string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	f.lastURL = r.URL.String()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/geo/locations":
		f.geoCalls.Add(1)
		body, ok := f.geo[r.URL.Query().Get("name")]
		if !ok {
			body = `{"total":0,"results":[]}`
		}
		_, _ = io.WriteString(w, body)
	case r.URL.Path == "/search/listings" && r.Method == http.MethodPost:
		raw, _ := io.ReadAll(r.Body)
		if err := json.Unmarshal(raw, &f.lastSearch); err != nil {
			f.t.Errorf("decode search body: %v", err)
		}
		_, _ = io.WriteString(w, `{"total":1,"results":[{"listingId":"4001544515"}]}`)
	case r.URL.Path == "/listings/listing/4001544515":
		_, _ = io.WriteString(w, `{"listing":{"id":"4001544515","address":{"locality":"Thalwil"}}}`)
	default:
		http.NotFound(w, r)
	}
}

func newTestClient(t *testing.T, api *fakeAPI, opts Options) *Client {
	t.Helper()
	api.t = t
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	opts.BaseURL = srv.URL
	client, err := New(opts)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client
}

func TestNewValidatesOptions(t *testing.T) {
	client, err := New(Options{})
	if err != nil {
		t.Fatalf("expected defaults to be valid, got %v", err)
	}
	if client.Language() != "en" || client.MaxSearchGeo() != 1 || client.BaseURL() != "https://api.homegate.ch" {
		t.Fatalf("unexpected defaults %s %d %s", client.Language(), client.MaxSearchGeo(), client.BaseURL())
	}

	for _, opts := range []Options{
		{Language: "es"},
		{MaxSearchGeo: -1},
		{GeoResultsCount: -5},
		{RateLimit: -1},
	} {
		if _, err := New(opts); !apperr.Is(err, apperr.KindConfiguration) {
			t.Fatalf("options %+v: expected configuration error, got %v", opts, err)
		}
	}
}

func TestGetGeoTagsEmptyAndLiteralSkipNetwork(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api, Options{})

	tags, err := client.GetGeoTags(context.Background(), "", 100, true)
	if err != nil || !reflect.DeepEqual(tags, []GeoTag{"geo-country-switzerland"}) {
		t.Fatalf("expected country tag, got %v (err %v)", tags, err)
	}

	tags, err = client.GetGeoTags(context.Background(), "geo-zipcode-8800", 100, true)
	if err != nil || !reflect.DeepEqual(tags, []GeoTag{"geo-zipcode-8800"}) {
		t.Fatalf("expected literal tag, got %v (err %v)", tags, err)
	}

	if api.calls.Load() != 0 {
		t.Fatalf("expected no network calls, got %d", api.calls.Load())
	}
}

func TestGetGeoTagsDedupesByCenter(t *testing.T) {
	api := &fakeAPI{geo: map[string]string{
		"distinct": `{"total":2,"results":[
			{"geoLocation":{"id":"geo-a","center":{"lat":47.1,"lon":8.1}}},
			{"geoLocation":{"id":"geo-b","center":{"lat":47.2,"lon":8.2}}}]}`,
		"same": `{"total":2,"results":[
			{"geoLocation":{"id":"geo-a","center":{"lat":47.1,"lon":8.1}}},
			{"geoLocation":{"id":"geo-b","center":{"lat":47.1,"lon":8.1}}}]}`,
	}}
	client := newTestClient(t, api, Options{})

	tags, err := client.GetGeoTags(context.Background(), "distinct", 100, true)
	if err != nil || !reflect.DeepEqual(tags, []GeoTag{"geo-a", "geo-b"}) {
		t.Fatalf("expected both tags, got %v (err %v)", tags, err)
	}

	tags, err = client.GetGeoTags(context.Background(), "same", 100, true)
	if err != nil || !reflect.DeepEqual(tags, []GeoTag{"geo-a"}) {
		t.Fatalf("expected one tag, got %v (err %v)", tags, err)
	}
}

func TestGetGeoTagsZeroTotalIsNotFound(t *testing.T) {
	client := newTestClient(t, &fakeAPI{}, Options{})

	_, err := client.GetGeoTags(context.Background(), "Atlantis", 100, true)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestSearchRentListingsBody(t *testing.T) {
	api := &fakeAPI{geo: map[string]string{
		"Zurich": `{"total":1,"results":[{"geoLocation":{"id":"12345","center":{"lat":47.37,"lon":8.54}}}]}`,
		"Bern":   `{"total":1,"results":[{"geoLocation":{"id":"67890","center":{"lat":46.95,"lon":7.45}}}]}`,
	}}
	client := newTestClient(t, api, Options{})

	result, err := client.SearchRentListings(context.Background(), SearchParams{
		Location: ParseLocations("Zurich", "Bern"),
		Filters:  Filters{"monthly_rent": map[string]any{"to": 3000}},
	})
	if err != nil {
		t.Fatalf("expected search to succeed, got %v", err)
	}
	if result["total"] != json.Number("1") {
		t.Fatalf("expected raw result, got %v", result)
	}

	query := api.lastSearch["query"].(map[string]any)
	if query["offerType"] != "RENT" {
		t.Fatalf("expected RENT, got %v", query["offerType"])
	}
	if !reflect.DeepEqual(query["monthlyRent"], map[string]any{"to": float64(3000)}) {
		t.Fatalf("unexpected monthlyRent %v", query["monthlyRent"])
	}
	geoTags := query["location"].(map[string]any)["geoTags"]
	if !reflect.DeepEqual(geoTags, []any{"12345", "67890"}) {
		t.Fatalf("unexpected geo tags %v", geoTags)
	}
	if _, ok := query["excludeCategories"]; !ok {
		t.Fatal("expected rent body to carry excludeCategories")
	}
	if api.lastSearch["fieldset"] != "srp-list" || api.lastSearch["trackTotalHits"] != true {
		t.Fatalf("unexpected fixed fields %v", api.lastSearch)
	}
}

func TestSearchBuyListingsAmbiguousLocation(t *testing.T) {
	api := &fakeAPI{geo: map[string]string{
		"Zurich": `{"total":2,"results":[
			{"geoLocation":{"id":"geo-canton-zurich","center":{"lat":47.41,"lon":8.65}}},
			{"geoLocation":{"id":"geo-city-zurich","center":{"lat":47.37,"lon":8.54}}}]}`,
	}}
	client := newTestClient(t, api, Options{MaxSearchGeo: 1})

	_, err := client.SearchBuyListings(context.Background(), SearchParams{Location: Name("Zurich")})
	if !apperr.Is(err, apperr.KindAmbiguous) {
		t.Fatalf("expected ambiguous error, got %v", err)
	}
	if api.lastSearch != nil {
		t.Fatal("expected no search request after ambiguity")
	}
}

func TestSearchBuyListingsDefaultsWithoutLocation(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api, Options{})

	if _, err := client.SearchBuyListings(context.Background(), SearchParams{}); err != nil {
		t.Fatalf("expected search to succeed, got %v", err)
	}
	if api.geoCalls.Load() != 0 {
		t.Fatalf("expected no geo lookup, got %d", api.geoCalls.Load())
	}

	query := api.lastSearch["query"].(map[string]any)
	if len(query["categories"].([]any)) != len(DefaultCategories()) {
		t.Fatalf("expected default categories, got %v", query["categories"])
	}
	if !reflect.DeepEqual(query["location"].(map[string]any)["geoTags"], []any{"geo-country-switzerland"}) {
		t.Fatalf("expected country tag, got %v", query["location"])
	}
	if _, ok := query["excludeCategories"]; ok {
		t.Fatal("expected buy body without excludeCategories")
	}
	if api.lastSearch["size"] != float64(20) || api.lastSearch["sortBy"] != "dateCreated" {
		t.Fatalf("unexpected defaults %v", api.lastSearch)
	}
}

func TestSearchBuyListingsLargePageSize(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api, Options{})

	if _, err := client.SearchBuyListings(context.Background(), SearchParams{Size: 200}); err != nil {
		t.Fatalf("expected search to succeed, got %v", err)
	}
	if api.lastSearch["size"] != float64(200) {
		t.Fatalf("expected size 200 in body, got %v", api.lastSearch["size"])
	}
}

func TestSearchBuyListingsRejectsMalformedTag(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api, Options{})

	_, err := client.SearchBuyListings(context.Background(), SearchParams{Location: Tag("xyz")})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if api.calls.Load() != 0 {
		t.Fatalf("expected no upstream calls, got %d", api.calls.Load())
	}
}

func TestGetListing(t *testing.T) {
	api := &fakeAPI{}
	client := newTestClient(t, api, Options{})

	result, err := client.GetListing(context.Background(), "4001544515")
	if err != nil {
		t.Fatalf("expected listing, got %v", err)
	}
	if api.lastURL != "/listings/listing/4001544515?sanitize=true" {
		t.Fatalf("unexpected url %s", api.lastURL)
	}
	listing := result["listing"].(map[string]any)
	if listing["address"].(map[string]any)["locality"] != "Thalwil" {
		t.Fatalf("expected body unchanged, got %v", result)
	}
}

func TestGetListingUpstreamFailure(t *testing.T) {
	client := newTestClient(t, &fakeAPI{}, Options{})

	_, err := client.GetListing(context.Background(), "does-not-exist")
	if !apperr.Is(err, apperr.KindTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestCacheAvoidsRepeatedLookups(t *testing.T) {
	api := &fakeAPI{geo: map[string]string{
		"8800": `{"total":1,"results":[{"geoLocation":{"id":"geo-zipcode-8800","center":{"lat":47.29,"lon":8.56}}}]}`,
	}}
	m := metrics.New()
	client := newTestClient(t, api, Options{Cache: NewMemoryCache(time.Hour), Metrics: m})

	for i := 0; i < 3; i++ {
		if _, err := client.SearchRentListings(context.Background(), SearchParams{Location: Name("8800")}); err != nil {
			t.Fatalf("search %d: %v", i, err)
		}
	}
	if api.geoCalls.Load() != 1 {
		t.Fatalf("expected one geo lookup, got %d", api.geoCalls.Load())
	}
}
