package universe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const sampleCSV = `Company Name,Industry,Symbol,Series,ISIN Code
Reliance Industries Ltd.,Oil Gas & Consumable Fuels,RELIANCE,EQ,INE002A01018
HDFC Bank Ltd.,Financial Services,HDFCBANK,EQ,INE040A01034
Infosys Ltd.,Information Technology,INFY,EQ,INE009A01021
`

func TestParseSymbols(t *testing.T) {
	symbols, err := parseSymbols(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatalf("parseSymbols() error: %v", err)
	}
	want := []string{"RELIANCE", "HDFCBANK", "INFY"}
	if len(symbols) != len(want) {
		t.Fatalf("got %d symbols, want %d", len(symbols), len(want))
	}
	for i, w := range want {
		if symbols[i] != w {
			t.Errorf("symbols[%d] = %q, want %q", i, symbols[i], w)
		}
	}
}

func TestParseSymbolsSkipsBlank(t *testing.T) {
	csv := "Symbol\nRELIANCE\n\nINFY\n,\n"
	symbols, err := parseSymbols(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parseSymbols() error: %v", err)
	}
	if len(symbols) != 2 {
		t.Errorf("got %d symbols, want 2: %v", len(symbols), symbols)
	}
}

func TestParseSymbolsNoColumn(t *testing.T) {
	csv := "Company Name,Industry\nFoo,Bar\n"
	if _, err := parseSymbols(strings.NewReader(csv)); err == nil {
		t.Error("parseSymbols() without Symbol column: err = nil, want error")
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleCSV))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 5*time.Second, 10)
	symbols, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() error: %v", err)
	}
	if len(symbols) != 3 || symbols[0] != "RELIANCE" {
		t.Errorf("Fetch() = %v, want 3 symbols starting with RELIANCE", symbols)
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, 2*time.Second, 10)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := c.Fetch(ctx); err == nil {
		t.Error("Fetch() from failing server: err = nil, want error")
	}
}
