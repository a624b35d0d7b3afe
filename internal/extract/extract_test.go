package extract

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/pfrederiksen/playoff-picture/internal/page"
)

func context(t *testing.T, markup string) *page.Element {
	t.Helper()
	doc, err := page.FromHTML(strings.NewReader(markup), "")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	return doc.Elements()[0]
}

func TestParseProbability(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"<1%", 0.5},
		{">99%", 99.5},
		{"55%", 55},
		{"100%", 100},
		{"", UnknownProbability},
		{"n/a", UnknownProbability},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseProbability(tt.in); got != tt.want {
				t.Errorf("ParseProbability(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseRecord(t *testing.T) {
	tests := []struct {
		in     string
		want   Record
		wantOK bool
		str    string
	}{
		{"9-4", Record{Wins: 9, Losses: 4, Valid: true}, true, "9-4"},
		{"Record 8-5-1 (3rd)", Record{Wins: 8, Losses: 5, Ties: 1, Valid: true}, true, "8-5-1"},
		{"10-3-0", Record{Wins: 10, Losses: 3, Valid: true}, true, "10-3"},
		{"no record", Record{}, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseRecord(tt.in)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("ParseRecord(%q) = (%+v, %v), want (%+v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
			}
			if got.String() != tt.str {
				t.Errorf("String() = %q, want %q", got.String(), tt.str)
			}
		})
	}
}

func TestWinFraction(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want float64
	}{
		{"no games", Record{Valid: true}, 0},
		{"undefeated", Record{Wins: 5, Valid: true}, 1},
		{"winless", Record{Losses: 5, Valid: true}, 0},
		{"with tie", Record{Wins: 8, Losses: 5, Ties: 1, Valid: true}, 8.5 / 14},
		{"unknown", Record{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.r.WinFraction()
			if got != tt.want {
				t.Errorf("WinFraction() = %v, want %v", got, tt.want)
			}
			if got < 0 || got > 1 {
				t.Errorf("WinFraction() = %v out of [0,1]", got)
			}
		})
	}
}

func TestRecord_JSON(t *testing.T) {
	var v struct {
		Record Record `json:"record"`
	}
	if err := json.Unmarshal([]byte(`{"record":"11-2-0"}`), &v); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	out, _ := json.Marshal(v)
	if string(out) != `{"record":"11-2"}` {
		t.Errorf("Marshal() = %s", out)
	}
	if err := json.Unmarshal([]byte(`{"record":"bogus"}`), &v); err == nil {
		t.Error("expected error for bogus record")
	}
}

func TestRules(t *testing.T) {
	tests := []struct {
		name   string
		rule   Rule
		markup string
		check  func(*testing.T, Fields)
	}{
		{
			name:   "probability takes first token",
			rule:   ProbabilityRule,
			markup: `<div>Colts 8-6 PLAYOFF PROBABILITY &gt;99% (was 80%)</div>`,
			check: func(t *testing.T, f Fields) {
				if f.Probability != ">99%" {
					t.Errorf("Probability = %q, want >99%%", f.Probability)
				}
			},
		},
		{
			name:   "clinched without a percentage",
			rule:   ClinchedRule,
			markup: `<div>Broncos CLINCHED playoff berth</div>`,
			check: func(t *testing.T, f Fields) {
				if f.Probability != "100%" {
					t.Errorf("Probability = %q, want 100%%", f.Probability)
				}
			},
		},
		{
			name:   "division counts as clinched",
			rule:   ClinchedRule,
			markup: `<div>Won the Division</div>`,
			check: func(t *testing.T, f Fields) {
				if f.Probability != "100%" {
					t.Errorf("Probability = %q, want 100%%", f.Probability)
				}
			},
		},
		{
			name:   "record",
			rule:   RecordRule,
			markup: `<div>Texans 9-5 in the hunt</div>`,
			check: func(t *testing.T, f Fields) {
				if f.Record.String() != "9-5" {
					t.Errorf("Record = %q, want 9-5", f.Record)
				}
			},
		},
		{
			name:   "trend up from class",
			rule:   TrendRule,
			markup: `<div><div><span class="nfl-o-Changearrow--Up"></span><span>2</span></div></div>`,
			check: func(t *testing.T, f Fields) {
				if f.Direction != Up || f.Trend != 2 {
					t.Errorf("trend = %v %d, want up 2", f.Direction, f.Trend)
				}
			},
		},
		{
			name:   "trend down from markup",
			rule:   TrendRule,
			markup: `<div><p><i data-testid="change-arrow"><svg title="Down"></svg></i> 4</p></div>`,
			check: func(t *testing.T, f Fields) {
				if f.Direction != Down || f.Trend != 4 {
					t.Errorf("trend = %v %d, want down 4", f.Direction, f.Trend)
				}
			},
		},
		{
			name:   "dashes mean no change",
			rule:   TrendRule,
			markup: `<div>Jets -- 3-11</div>`,
			check: func(t *testing.T, f Fields) {
				if f.Direction != Same || f.Trend != 0 {
					t.Errorf("trend = %v %d, want same 0", f.Direction, f.Trend)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context(t, tt.markup)
			var f Fields
			tt.rule.Apply(ctx, ctx.Text, &f)
			tt.check(t, f)
		})
	}
}

func TestClinchedRule_KeepsExistingProbability(t *testing.T) {
	f := Fields{Probability: "45%"}
	ClinchedRule.Apply(nil, "clinched division", &f)
	if f.Probability != "45%" {
		t.Errorf("Probability = %q, want 45%%", f.Probability)
	}
}

func TestExtractor_Extract(t *testing.T) {
	x := New()

	ctx := context(t, `<div class="card">
		<span>Colts</span><span>8-6</span>
		<div>PLAYOFF PROBABILITY</div><div>55%</div>
		<div><i class="Changearrow-Down"></i><b>1</b></div>
	</div>`)

	f, err := x.Extract(ctx)
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if f.Record.String() != "8-6" || f.Probability != "55%" || f.Direction != Down || f.Trend != 1 {
		t.Errorf("Extract() = %+v", f)
	}

	empty := context(t, `<div><a href="/teams/colts">Colts</a></div>`)
	if _, err := x.Extract(empty); !errors.Is(err, ErrNoFields) {
		t.Errorf("Extract(nav link) error = %v, want ErrNoFields", err)
	}
}

func TestExtractor_CustomRules(t *testing.T) {
	x := New(RecordRule)
	f, err := x.Extract(context(t, `<div>50% 7-7</div>`))
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if f.Probability != "" {
		t.Errorf("probability rule should not run, got %q", f.Probability)
	}
	if f.Direction != Same {
		t.Errorf("Direction = %q, want same default", f.Direction)
	}
}
