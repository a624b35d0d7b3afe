package team

// defaultTeams is the 32-team table. Order matters: MatchToken reports the
// first nickname found, so it follows the division order the standings
// page uses.
var defaultTeams = []Team{
	// AFC East
	{ID: "Bills", City: "Buffalo", FullName: "Buffalo Bills", Abbr: "BUF", Color: "#00338D", Conference: AFC},
	{ID: "Dolphins", City: "Miami", FullName: "Miami Dolphins", Abbr: "MIA", Color: "#008E97", Conference: AFC},
	{ID: "Patriots", City: "New England", FullName: "New England Patriots", Abbr: "NE", Color: "#002244", Conference: AFC},
	{ID: "Jets", City: "N.Y. Jets", FullName: "New York Jets", Abbr: "NYJ", Color: "#125740", Conference: AFC},
	// AFC North
	{ID: "Ravens", City: "Baltimore", FullName: "Baltimore Ravens", Abbr: "BLT", Color: "#241773", Conference: AFC},
	{ID: "Bengals", City: "Cincinnati", FullName: "Cincinnati Bengals", Abbr: "CIN", Color: "#FB4F14", Conference: AFC},
	{ID: "Browns", City: "Cleveland", FullName: "Cleveland Browns", Abbr: "CLV", Color: "#311D00", Conference: AFC},
	{ID: "Steelers", City: "Pittsburgh", FullName: "Pittsburgh Steelers", Abbr: "PIT", Color: "#FFB612", Conference: AFC},
	// AFC South
	{ID: "Texans", City: "Houston", FullName: "Houston Texans", Abbr: "HOU", Color: "#03202F", Conference: AFC},
	{ID: "Colts", City: "Indianapolis", FullName: "Indianapolis Colts", Abbr: "IND", Color: "#002C5F", Conference: AFC},
	{ID: "Jaguars", City: "Jacksonville", FullName: "Jacksonville Jaguars", Abbr: "JAX", Color: "#006778", Conference: AFC},
	{ID: "Titans", City: "Tennessee", FullName: "Tennessee Titans", Abbr: "TEN", Color: "#0C2340", Conference: AFC},
	// AFC West
	{ID: "Broncos", City: "Denver", FullName: "Denver Broncos", Abbr: "DEN", Color: "#FB4F14", Conference: AFC},
	{ID: "Chiefs", City: "Kansas City", FullName: "Kansas City Chiefs", Abbr: "KC", Color: "#E31837", Conference: AFC},
	{ID: "Raiders", City: "Las Vegas", FullName: "Las Vegas Raiders", Abbr: "LV", Color: "#000000", Conference: AFC},
	{ID: "Chargers", City: "L.A. Chargers", FullName: "Los Angeles Chargers", Abbr: "LAC", Color: "#0080C6", Conference: AFC},
	// NFC East
	{ID: "Cowboys", City: "Dallas", FullName: "Dallas Cowboys", Abbr: "DAL", Color: "#003594", Conference: NFC},
	{ID: "Giants", City: "N.Y. Giants", FullName: "New York Giants", Abbr: "NYG", Color: "#0B2265", Conference: NFC},
	{ID: "Eagles", City: "Philadelphia", FullName: "Philadelphia Eagles", Abbr: "PHI", Color: "#004C54", Conference: NFC},
	{ID: "Commanders", City: "Washington", FullName: "Washington Commanders", Abbr: "WSH", Color: "#5A1414", Conference: NFC},
	// NFC North
	{ID: "Packers", City: "Green Bay", FullName: "Green Bay Packers", Abbr: "GB", Color: "#203731", Conference: NFC},
	{ID: "Lions", City: "Detroit", FullName: "Detroit Lions", Abbr: "DET", Color: "#0076B6", Conference: NFC},
	{ID: "Vikings", City: "Minnesota", FullName: "Minnesota Vikings", Abbr: "MIN", Color: "#4F2683", Conference: NFC},
	{ID: "Bears", City: "Chicago", FullName: "Chicago Bears", Abbr: "CHI", Color: "#0B162A", Conference: NFC},
	// NFC South
	{ID: "Falcons", City: "Atlanta", FullName: "Atlanta Falcons", Abbr: "ATL", Color: "#A71930", Conference: NFC},
	{ID: "Panthers", City: "Carolina", FullName: "Carolina Panthers", Abbr: "CAR", Color: "#0085CA", Conference: NFC},
	{ID: "Saints", City: "New Orleans", FullName: "New Orleans Saints", Abbr: "NO", Color: "#D3BC8D", Conference: NFC},
	{ID: "Buccaneers", City: "Tampa Bay", FullName: "Tampa Bay Buccaneers", Abbr: "TB", Color: "#D50A0A", Conference: NFC},
	// NFC West
	{ID: "Cardinals", City: "Arizona", FullName: "Arizona Cardinals", Abbr: "ARZ", Color: "#97233F", Conference: NFC},
	{ID: "Rams", City: "L.A. Rams", FullName: "Los Angeles Rams", Abbr: "LAR", Color: "#003594", Conference: NFC},
	{ID: "49ers", City: "San Francisco", FullName: "San Francisco 49ers", Abbr: "SF", Color: "#AA0000", Conference: NFC},
	{ID: "Seahawks", City: "Seattle", FullName: "Seattle Seahawks", Abbr: "SEA", Color: "#002244", Conference: NFC},
}

// extraAliases are display forms seen on the sources that are neither the
// standings city key nor the full name.
var extraAliases = map[string][]string{
	"Jets":     {"New York Jets", "NY Jets"},
	"Giants":   {"NY Giants"},
	"Chargers": {"LA Chargers", "L.A. Chargers"},
	"Rams":     {"LA Rams", "L.A. Rams"},
}
