package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func chartBody(timestamps []int64, closes []interface{}) string {
	opens := make([]string, len(closes))
	vols := make([]string, len(closes))
	cls := make([]string, len(closes))
	tss := make([]string, len(timestamps))
	for i, c := range closes {
		if c == nil {
			opens[i], cls[i], vols[i] = "null", "null", "null"
		} else {
			opens[i] = fmt.Sprintf("%v", c)
			cls[i] = fmt.Sprintf("%v", c)
			vols[i] = "1000"
		}
		tss[i] = fmt.Sprintf("%d", timestamps[i])
	}
	quote := fmt.Sprintf(`{"open":[%s],"high":[%s],"low":[%s],"close":[%s],"volume":[%s]}`,
		strings.Join(opens, ","), strings.Join(cls, ","), strings.Join(cls, ","),
		strings.Join(cls, ","), strings.Join(vols, ","))
	return fmt.Sprintf(`{"chart":{"result":[{"timestamp":[%s],"indicators":{"quote":[%s]}}],"error":null}}`,
		strings.Join(tss, ","), quote)
}

func newTestClient(srv *httptest.Server) *Client {
	return NewClient(srv.URL, ".NS", 5*time.Second, 50)
}

func TestFetchDailyBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "RELIANCE.NS") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(chartBody(
			[]int64{1700000000, 1700086400, 1700172800},
			[]interface{}{100.5, 101.0, 102.25},
		)))
	}))
	defer srv.Close()

	candles, err := newTestClient(srv).FetchDailyBars(context.Background(), "RELIANCE", "6mo", "1d")
	if err != nil {
		t.Fatalf("FetchDailyBars() error: %v", err)
	}
	if len(candles) != 3 {
		t.Fatalf("got %d candles, want 3", len(candles))
	}
	if candles[0].Close != 100.5 || candles[2].Close != 102.25 {
		t.Errorf("candles out of order or wrong: %+v", candles)
	}
	if !candles[0].Date.Before(candles[1].Date) {
		t.Error("candles not sorted oldest first")
	}
}

func TestFetchDailyBarsSkipsNullBars(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartBody(
			[]int64{1700000000, 1700086400, 1700172800},
			[]interface{}{100.5, nil, 102.25},
		)))
	}))
	defer srv.Close()

	candles, err := newTestClient(srv).FetchDailyBars(context.Background(), "INFY", "6mo", "1d")
	if err != nil {
		t.Fatalf("FetchDailyBars() error: %v", err)
	}
	if len(candles) != 2 {
		t.Errorf("got %d candles, want 2 after dropping the null bar", len(candles))
	}
}

func TestFetchDailyBarsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchDailyBars(context.Background(), "NOPE", "6mo", "1d")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestFetchDailyBarsEmptyChart(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchDailyBars(context.Background(), "EMPTY", "6mo", "1d")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}

func TestFetchDailyBarsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).FetchDailyBars(context.Background(), "DELISTED", "6mo", "1d")
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData", err)
	}
}
