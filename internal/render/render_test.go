package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rpatel-labs/niftyscan/internal/model"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	err := Table(&buf, []model.Candidate{
		{Symbol: "RELIANCE", Price: 2850.55, Score: 8, RiskReward: 0.5, Target: 2950.10, Stop: 2800.25, RSI: 58.2, ADX: 27.4, VolSurge: true},
		{Symbol: "INFY", Price: 1450.00, Score: 7, RiskReward: 0.5, Target: 1500.00, Stop: 1425.00, RSI: 52.0, ADX: 22.1},
	})
	if err != nil {
		t.Fatalf("Table() error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"TICKER", "RELIANCE", "INFY", "2850.55", "0.50", "58.2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Errorf("got %d lines, want header + 2 rows", len(lines))
	}
}

func TestTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := Table(&buf, nil); err != nil {
		t.Fatalf("Table() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No stocks met all criteria") {
		t.Errorf("empty shortlist output = %q, want no-results message", buf.String())
	}
}
