package wildbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

var testAuth = AuthConfig{Token: "tok", CompanyID: "c1", UserID: "u1"}

func fixedClock() time.Time {
	return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
}

func newTestClient(srv *httptest.Server) *Client {
	c := NewClient(srv.URL, testAuth)
	c.now = fixedClock
	return c
}

func TestFetchProduct(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/wb_dynamic/products/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		// credentials travel as plain headers
		if r.Header.Get("Authorization") != "tok" || r.Header.Get("CompanyID") != "c1" || r.Header.Get("UserID") != "u1" {
			t.Error("auth headers missing")
		}
		q := r.URL.Query()
		if q.Get("product_ids") != "430328428" {
			t.Errorf("product_ids = %q", q.Get("product_ids"))
		}
		// 30-day window off the fixed clock
		if q.Get("date_from") != "2026-07-30" || q.Get("date_to") != "2026-08-29" {
			t.Errorf("window = (%q, %q)", q.Get("date_from"), q.Get("date_to"))
		}
		if !strings.Contains(q.Get("extra_fields"), "proceeds") {
			t.Errorf("extra_fields = %q, want proceeds included", q.Get("extra_fields"))
		}

		w.Write([]byte(`{"results": [{
			"price": 1499.0,
			"proceeds": 2000000.0,
			"rating": 4.7,
			"brand": {"id": 7},
			"promos": [{"start_date": "2026-01-01", "end_date": "2026-01-03"}],
			"dynamic": [{"visibility": 1.5}, {"visibility": 0.5}]
		}]}`))
	}))
	defer srv.Close()

	product, err := newTestClient(srv).FetchProduct(context.Background(), 430328428)
	if err != nil {
		t.Fatalf("FetchProduct() error = %v", err)
	}
	if product == nil {
		t.Fatal("FetchProduct() = nil, want payload")
	}
	if product.Price == nil || *product.Price != 1499 {
		t.Errorf("Price = %v, want 1499", product.Price)
	}
	if product.Proceeds == nil || *product.Proceeds != 2_000_000 {
		t.Errorf("Proceeds = %v, want 2000000", product.Proceeds)
	}
	if product.Orders != nil {
		t.Errorf("Orders = %v, want nil (absent field)", product.Orders)
	}
	if product.Brand == nil || product.Brand.ID != 7 {
		t.Errorf("Brand = %+v, want id 7", product.Brand)
	}
	if len(product.Promos) != 1 || len(product.Dynamic) != 2 {
		t.Errorf("promos/dynamic = %d/%d", len(product.Promos), len(product.Dynamic))
	}
}

func TestFetchProduct_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"results": []}`))
	}))
	defer srv.Close()

	product, err := newTestClient(srv).FetchProduct(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchProduct() error = %v", err)
	}
	if product != nil {
		t.Errorf("FetchProduct() = %+v, want nil for empty results", product)
	}
}

func TestFetchBrand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/wb_dynamic/brands/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("brand_ids"); got != "7" {
			t.Errorf("brand_ids = %q", got)
		}
		w.Write([]byte(`{"results": [{"rating": 4.2, "reviews": 10000.0}]}`))
	}))
	defer srv.Close()

	brand, err := newTestClient(srv).FetchBrand(context.Background(), 7)
	if err != nil {
		t.Fatalf("FetchBrand() error = %v", err)
	}
	if brand.Rating == nil || *brand.Rating != 4.2 {
		t.Errorf("Rating = %v, want 4.2", brand.Rating)
	}
}

func TestFetchGeoAvailability(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/parsers/products/42/availability/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("geolocation_ids"); got != geoRegionIDs {
			t.Errorf("geolocation_ids = %q, want %q", got, geoRegionIDs)
		}
		w.Write([]byte(`{"results": [
			{"availability": [{"is_availability": true}, {"is_availability": false}]},
			{"availability": []}
		]}`))
	}))
	defer srv.Close()

	geo, err := newTestClient(srv).FetchGeoAvailability(context.Background(), 42)
	if err != nil {
		t.Fatalf("FetchGeoAvailability() error = %v", err)
	}
	if len(geo.Results) != 2 {
		t.Fatalf("Results = %d entries, want 2", len(geo.Results))
	}
	samples := geo.Results[0].Availability
	if len(samples) != 2 || samples[0].IsAvailable == nil || !*samples[0].IsAvailable {
		t.Errorf("samples = %+v", samples)
	}
}

func TestFetchWarehouses_DedupPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/wb_dynamic/warehouses/" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`[
			{"name": "Казань"},
			{"name": "Коледино"},
			{"name": "Казань"},
			{"name": ""},
			{"name": "Подольск"}
		]`))
	}))
	defer srv.Close()

	names, err := newTestClient(srv).FetchWarehouses(context.Background(), 1)
	if err != nil {
		t.Fatalf("FetchWarehouses() error = %v", err)
	}
	want := []string{"Казань", "Коледино", "Подольск"}
	if len(names) != len(want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestFetchPositions(t *testing.T) {
	t.Run("list payload", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/api/monitoring/positions/" {
				t.Errorf("path = %q", r.URL.Path)
			}
			q := r.URL.Query()
			if q.Get("product_id") != "42" || q.Get("phrase") != "футболка" {
				t.Errorf("query = %v", q)
			}
			w.Write([]byte(`[{"position": 12}, {"expected_position": "7"}]`))
		}))
		defer srv.Close()

		positions, err := newTestClient(srv).FetchPositions(context.Background(), 42, "футболка")
		if err != nil {
			t.Fatalf("FetchPositions() error = %v", err)
		}
		if len(positions) != 2 {
			t.Fatalf("positions = %d entries, want 2", len(positions))
		}
		// raw values keep their wire shape for downstream parsing
		if positions[0].Position != 12.0 {
			t.Errorf("Position = %v (%T), want 12", positions[0].Position, positions[0].Position)
		}
		if positions[1].ExpectedPosition != "7" {
			t.Errorf("ExpectedPosition = %v, want \"7\"", positions[1].ExpectedPosition)
		}
	})

	t.Run("detail object is empty result", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"detail": "monitoring is not configured"}`))
		}))
		defer srv.Close()

		positions, err := newTestClient(srv).FetchPositions(context.Background(), 42, "q")
		if err != nil {
			t.Fatalf("FetchPositions() error = %v", err)
		}
		if positions != nil {
			t.Errorf("positions = %v, want nil", positions)
		}
	})

	t.Run("unexpected payload is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`"what"`))
		}))
		defer srv.Close()

		if _, err := newTestClient(srv).FetchPositions(context.Background(), 42, "q"); err == nil {
			t.Fatal("FetchPositions() expected error for unexpected payload")
		}
	})
}

func TestGet_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchProduct(context.Background(), 1)
	if err == nil {
		t.Fatal("expected error for non-200 status")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error = %v, want status code included", err)
	}
}
