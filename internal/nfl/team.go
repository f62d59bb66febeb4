package nfl

import "strings"

// teamAliases maps historical and provider-specific abbreviations onto the
// canonical NFL code set. Relocations (STL, SD, OAK) and rebrands (WFT) fold
// into the current franchise code.
var teamAliases = map[string]string{
	"JAC":   "JAX",
	"JAX":   "JAX",
	"ARZ":   "ARI",
	"ARI":   "ARI",
	"LA":    "LAR",
	"LAR":   "LAR",
	"STL":   "LAR",
	"SD":    "LAC",
	"SDC":   "LAC",
	"LAC":   "LAC",
	"OAK":   "LV",
	"LVR":   "LV",
	"LV":    "LV",
	"TB":    "TB",
	"TAM":   "TB",
	"WAS":   "WAS",
	"WSH":   "WAS",
	"WFT":   "WAS",
	"NO":    "NO",
	"NOR":   "NO",
	"NE":    "NE",
	"NWE":   "NE",
	"SF":    "SF",
	"SFO":   "SF",
	"KC":    "KC",
	"KAN":   "KC",
	"GB":    "GB",
	"GNB":   "GB",
	"GBY":   "GB",
	"BAL":   "BAL",
	"BALTI": "BAL",
	"HOU":   "HOU",
	"HST":   "HOU",
	"NYJ":   "NYJ",
	"JET":   "NYJ",
	"NYG":   "NYG",
	"DAL":   "DAL",
	"MIA":   "MIA",
	"MIN":   "MIN",
	"PIT":   "PIT",
	"ATL":   "ATL",
	"BUF":   "BUF",
	"CAR":   "CAR",
	"CHI":   "CHI",
	"CIN":   "CIN",
	"CLE":   "CLE",
	"DEN":   "DEN",
	"DET":   "DET",
	"IND":   "IND",
	"PHI":   "PHI",
	"SEA":   "SEA",
	"HAW":   "SEA",
	"TEN":   "TEN",
}

// NormalizeTeam maps any team abbreviation onto the canonical code.
// Unknown codes pass through uppercased so downstream joins still have a
// chance to line up; empty input yields "".
func NormalizeTeam(code string) string {
	upper := strings.ToUpper(strings.TrimSpace(code))
	if upper == "" {
		return ""
	}
	if canonical, ok := teamAliases[upper]; ok {
		return canonical
	}
	return upper
}
