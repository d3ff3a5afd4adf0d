package travel

import (
	"regexp"
	"strings"
)

// Static city-name to IATA-code table. Keeping the common routes local
// avoids a reference-data call for almost every query. The table is not
// exhaustive; unknown names fall through to the provider's location search.
type iataEntry struct {
	Name string
	Code string
}

// Order matters: the substring fallback in NormalizeLocation scans this
// slice top to bottom and returns the first hit.
var iataTable = []iataEntry{
	// Major cities
	{"paris", "PAR"},
	{"tokyo", "TYO"},
	{"london", "LON"},
	{"new york", "NYC"},
	{"new york city", "NYC"},
	{"nyc", "NYC"},
	{"washington dc", "DCA"},
	{"washington", "DCA"},
	{"los angeles", "LAX"},
	{"chicago", "CHI"},
	{"miami", "MIA"},
	{"boston", "BOS"},
	{"san francisco", "SFO"},
	{"seattle", "SEA"},
	{"toronto", "YYZ"},
	{"vancouver", "YVR"},
	{"montreal", "YUL"},

	// European cities
	{"berlin", "BER"},
	{"munich", "MUC"},
	{"frankfurt", "FRA"},
	{"rome", "FCO"},
	{"milan", "MXP"},
	{"madrid", "MAD"},
	{"barcelona", "BCN"},
	{"amsterdam", "AMS"},
	{"brussels", "BRU"},
	{"zurich", "ZUR"},
	{"vienna", "VIE"},
	{"prague", "PRG"},
	{"warsaw", "WAW"},
	{"moscow", "SVO"},
	{"istanbul", "IST"},
	{"athens", "ATH"},
	{"lisbon", "LIS"},
	{"dublin", "DUB"},
	{"copenhagen", "CPH"},
	{"stockholm", "ARN"},
	{"oslo", "OSL"},
	{"helsinki", "HEL"},

	// Asian cities
	{"beijing", "PEK"},
	{"shanghai", "PVG"},
	{"hong kong", "HKG"},
	{"singapore", "SIN"},
	{"bangkok", "BKK"},
	{"kuala lumpur", "KUL"},
	{"jakarta", "CGK"},
	{"manila", "MNL"},
	{"seoul", "ICN"},
	{"busan", "PUS"},
	{"taipei", "TPE"},
	{"mumbai", "BOM"},
	{"delhi", "DEL"},
	{"bangalore", "BLR"},
	{"chennai", "MAA"},
	{"kolkata", "CCU"},
	{"hyderabad", "HYD"},
	{"goa", "GOI"},

	// Middle East & Africa
	{"dubai", "DXB"},
	{"abu dhabi", "AUH"},
	{"doha", "DOH"},
	{"riyadh", "RUH"},
	{"jeddah", "JED"},
	{"cairo", "CAI"},
	{"casablanca", "CMN"},
	{"johannesburg", "JNB"},
	{"cape town", "CPT"},
	{"nairobi", "NBO"},
	{"lagos", "LOS"},
	{"accra", "ACC"},

	// Americas
	{"sao paulo", "GRU"},
	{"rio de janeiro", "GIG"},
	{"buenos aires", "EZE"},
	{"santiago", "SCL"},
	{"lima", "LIM"},
	{"bogota", "BOG"},
	{"mexico city", "MEX"},
	{"cancun", "CUN"},

	// Australia & Pacific
	{"sydney", "SYD"},
	{"melbourne", "MEL"},
	{"brisbane", "BNE"},
	{"perth", "PER"},
	{"auckland", "AKL"},
	{"wellington", "WLG"},
	{"honolulu", "HNL"},

	// Additional US airports
	{"atlanta", "ATL"},
	{"dallas", "DFW"},
	{"denver", "DEN"},
	{"las vegas", "LAS"},
	{"phoenix", "PHX"},
	{"orlando", "MCO"},
	{"tampa", "TPA"},
	{"detroit", "DTW"},
	{"minneapolis", "MSP"},
	{"charlotte", "CLT"},
	{"nashville", "BNA"},
	{"new orleans", "MSY"},
	{"houston", "IAH"},
	{"austin", "AUS"},
	{"san antonio", "SAT"},
	{"kansas city", "MCI"},
	{"st louis", "STL"},
	{"indianapolis", "IND"},
	{"cincinnati", "CVG"},
	{"jacksonville", "JAX"},
	{"savannah", "SAV"},
	{"charleston", "CHS"},
	{"norfolk", "ORF"},
	{"richmond", "RIC"},
	{"virginia beach", "ORF"},
	{"williamsburg", "PHF"},
	{"newport news", "PHF"},
}

var iataIndex = buildIATAIndex()

func buildIATAIndex() map[string]string {
	index := make(map[string]string, len(iataTable))
	for _, e := range iataTable {
		if _, ok := index[e.Name]; !ok {
			index[e.Name] = e.Code
		}
	}
	return index
}

var locationCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// IsLocationCode reports whether the input is already a provider location
// code (exactly three uppercase letters). Such values skip normalization.
func IsLocationCode(s string) bool {
	return locationCodeRe.MatchString(s)
}

// NormalizeLocation maps a free-form place name to an IATA code. Exact
// lookup first, then substring containment in either direction against the
// table in declaration order; the first matching entry wins.
func NormalizeLocation(name string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return "", false
	}

	if code, ok := iataIndex[normalized]; ok {
		return code, true
	}

	for _, e := range iataTable {
		if strings.Contains(normalized, e.Name) || strings.Contains(e.Name, normalized) {
			return e.Code, true
		}
	}
	return "", false
}
