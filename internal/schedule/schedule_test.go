package schedule

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pfrederiksen/playoff-picture/internal/logger"
	"github.com/pfrederiksen/playoff-picture/internal/page"
	"github.com/pfrederiksen/playoff-picture/internal/picture"
	"github.com/pfrederiksen/playoff-picture/internal/standings"
	"github.com/pfrederiksen/playoff-picture/internal/team"
)

func registry() *team.Registry {
	return team.NewRegistry(logger.Discard())
}

func TestParseHref(t *testing.T) {
	tests := []struct {
		name   string
		href   string
		week   string
		want   Matchup
		wantOK bool
	}{
		{
			name:   "week in link",
			href:   "/games/new-england-patriots-at-buffalo-bills-2025-reg-15",
			week:   "REG16",
			want:   Matchup{Away: "Patriots", Home: "Bills", Week: "REG15"},
			wantOK: true,
		},
		{
			name:   "absolute url without week",
			href:   "https://www.nfl.com/games/san-francisco-49ers-at-tennessee-titans-2025",
			week:   "REG16",
			want:   Matchup{Away: "49ers", Home: "Titans", Week: "REG16"},
			wantOK: true,
		},
		{
			name:   "single digit week is padded",
			href:   "/games/chicago-bears-at-green-bay-packers-2025-reg-9",
			week:   "REG15",
			want:   Matchup{Away: "Bears", Home: "Packers", Week: "REG09"},
			wantOK: true,
		},
		{
			name:   "not a game link",
			href:   "/schedules/2025/by-week/reg-15",
			week:   "REG15",
			wantOK: false,
		},
		{
			name:   "missing year",
			href:   "/games/bears-at-packers",
			week:   "REG15",
			wantOK: false,
		},
	}

	reg := registry()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseHref(tt.href, tt.week, reg)
			if ok != tt.wantOK {
				t.Fatalf("ParseHref() ok = %v, want %v", ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseHref() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseHref_UnknownTeamFallsBackToSlug(t *testing.T) {
	got, ok := ParseHref("/games/london-monarchs-at-buffalo-bills-2025-reg-15", "", registry())
	if !ok {
		t.Fatal("ParseHref() ok = false")
	}
	if got.Away != "monarchs" || got.Home != "Bills" {
		t.Errorf("ParseHref() = %+v", got)
	}
}

func TestWeeks(t *testing.T) {
	tests := []struct {
		in       string
		wantNum  int
		wantSlug string
		wantErr  bool
	}{
		{in: "REG15", wantNum: 15, wantSlug: "reg-15"},
		{in: "REG09", wantNum: 9, wantSlug: "reg-9"},
		{in: "reg-18", wantNum: 18, wantSlug: "reg-18"},
		{in: "16", wantNum: 16, wantSlug: "reg-16"},
		{in: "POST01", wantErr: true},
		{in: "REG0", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, err := ParseWeek(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseWeek() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if n != tt.wantNum {
				t.Errorf("ParseWeek() = %d, want %d", n, tt.wantNum)
			}
			slug, _ := WeekSlug(tt.in)
			if slug != tt.wantSlug {
				t.Errorf("WeekSlug() = %q, want %q", slug, tt.wantSlug)
			}
		})
	}

	if got := WeekLabel(7); got != "REG07" {
		t.Errorf("WeekLabel(7) = %q", got)
	}
}

func TestURL(t *testing.T) {
	got, err := URL("", "REG15")
	if err != nil {
		t.Fatalf("URL() error = %v", err)
	}
	if got != "https://www.nfl.com/schedules/2025/by-week/reg-15" {
		t.Errorf("URL() = %q", got)
	}

	got, _ = URL("http://localhost/weeks/%s.html", "REG17")
	if got != "http://localhost/weeks/reg-17.html" {
		t.Errorf("URL() = %q", got)
	}

	if _, err := URL("", "bogus"); err == nil {
		t.Error("URL() with invalid week should fail")
	}
}

const weekPage = `<html><body>
<nav><a href="/schedules/2025/by-week/reg-16">Next week</a></nav>
<section>
  <a href="/games/new-england-patriots-at-buffalo-bills-2025-reg-15">NE @ BUF</a>
  <a href="/games/new-england-patriots-at-buffalo-bills-2025-reg-15">Game center</a>
  <a href="/games/indianapolis-colts-at-seattle-seahawks-2025-reg-15">IND @ SEA</a>
</section>
</body></html>`

func TestMatchups(t *testing.T) {
	doc, err := page.FromHTML(strings.NewReader(weekPage), "reg-15.html")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if !Ready(doc) {
		t.Error("Ready() = false, want true")
	}

	got := Matchups(doc, "REG15", registry())
	want := []Matchup{
		{Away: "Patriots", Home: "Bills", Week: "REG15"},
		{Away: "Colts", Home: "Seahawks", Week: "REG15"},
	}
	if len(got) != len(want) {
		t.Fatalf("Matchups() = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Matchups()[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestReady_NoGames(t *testing.T) {
	doc, err := page.FromHTML(strings.NewReader(`<p>Loading...</p>`), "")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if Ready(doc) {
		t.Error("Ready() = true, want false")
	}
}

func TestBuild(t *testing.T) {
	s := Build([]Matchup{{Away: "Patriots", Home: "Bills", Week: "REG15"}})

	if got := s["Patriots"]; len(got) != 1 || got[0].Opponent != "Bills" || got[0].Location != picture.Away {
		t.Errorf("away schedule = %+v", got)
	}
	if got := s["Bills"]; len(got) != 1 || got[0].Opponent != "Patriots" || got[0].Location != picture.Home {
		t.Errorf("home schedule = %+v", got)
	}
}

func TestAttach(t *testing.T) {
	reg := registry()
	snap := &standings.Snapshot{
		AFC: []standings.Entry{
			{Seed: 1, Team: "Buffalo", Record: "10-3"},
			{Seed: 2, Team: "Miami", Record: "7-6"},
		},
		NFC: []standings.Entry{
			{Seed: 1, Team: "Dallas", Record: "8-5-1"},
		},
	}

	p := picture.New()
	bills := &picture.Team{Name: "Bills", Conf: team.AFC}
	jets := &picture.Team{Name: "Jets", Conf: team.AFC}
	p.Seeds.Append(team.AFC, bills)
	p.Eliminated.Append(team.AFC, jets)

	sched := Build([]Matchup{
		{Away: "Bills", Home: "Dolphins", Week: "REG16"},
		{Away: "Cowboys", Home: "Bills", Week: "REG15"},
		{Away: "Bills", Home: "Raiders", Week: "REG18"},
	})
	Attach(p, sched, snap, reg)

	got := bills.RemainingSchedule
	wantWeeks := []string{"REG15", "REG16", "REG18"}
	if len(got) != len(wantWeeks) {
		t.Fatalf("RemainingSchedule = %+v", got)
	}
	for i, w := range wantWeeks {
		if got[i].Week != w {
			t.Errorf("RemainingSchedule[%d].Week = %s, want %s", i, got[i].Week, w)
		}
	}
	if got[0].Opponent != "Cowboys" || got[0].Location != picture.Home || got[0].OpponentRecord != "8-5-1" {
		t.Errorf("REG15 entry = %+v", got[0])
	}
	if got[1].OpponentRecord != "7-6" {
		t.Errorf("REG16 opponent record = %q, want 7-6", got[1].OpponentRecord)
	}
	if got[2].OpponentRecord != standings.NotFound {
		t.Errorf("REG18 opponent record = %q, want ??", got[2].OpponentRecord)
	}
	if bills.NextOpponent == nil || *bills.NextOpponent != (picture.Opponent{Opponent: "Cowboys", Location: picture.Home}) {
		t.Errorf("NextOpponent = %+v", bills.NextOpponent)
	}

	if jets.RemainingSchedule == nil || len(jets.RemainingSchedule) != 0 {
		t.Errorf("team without games: RemainingSchedule = %#v", jets.RemainingSchedule)
	}
	if jets.NextOpponent != nil {
		t.Errorf("team without games: NextOpponent = %+v", jets.NextOpponent)
	}

	data, err := json.Marshal(jets)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"remainingSchedule":[],"nextOpponent":null`) {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestAttach_NilSnapshot(t *testing.T) {
	p := picture.New()
	colts := &picture.Team{Name: "Colts", Conf: team.AFC}
	p.Bubble.Append(team.AFC, colts)

	Attach(p, Build([]Matchup{{Away: "Colts", Home: "Seahawks", Week: "REG15"}}), nil, registry())

	if len(colts.RemainingSchedule) != 1 || colts.RemainingSchedule[0].OpponentRecord != standings.NotFound {
		t.Errorf("RemainingSchedule = %+v", colts.RemainingSchedule)
	}
}
