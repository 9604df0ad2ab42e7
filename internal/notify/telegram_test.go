package notify

import (
	"strings"
	"testing"
	"time"

	"github.com/rpatel-labs/niftyscan/internal/model"
)

func TestFormatShortlist(t *testing.T) {
	at := time.Date(2026, 8, 31, 9, 30, 0, 0, time.UTC)
	msg := FormatShortlist([]model.Candidate{
		{Symbol: "TCS", Price: 4100.25, Score: 8, RiskReward: 0.5, Target: 4250.00, Stop: 4025.50, RSI: 56.3, ADX: 24.8},
	}, at)

	for _, want := range []string{"31 Aug 2026", "TCS", "4100.25", "score 8/10", "RR 0.50", "RSI 56.3"} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q:\n%s", want, msg)
		}
	}
}

func TestFormatShortlistEmpty(t *testing.T) {
	msg := FormatShortlist(nil, time.Now())
	if !strings.Contains(msg, "No stocks met all criteria") {
		t.Errorf("empty message = %q, want no-results text", msg)
	}
}
