package localdata

import "strings"

// fipsByState maps uppercased state abbreviations and full names to FIPS
// codes, covering the 50 states.
var fipsByState = map[string]string{
	"AL": "01", "ALABAMA": "01",
	"AK": "02", "ALASKA": "02",
	"AZ": "04", "ARIZONA": "04",
	"AR": "05", "ARKANSAS": "05",
	"CA": "06", "CALIFORNIA": "06",
	"CO": "08", "COLORADO": "08",
	"CT": "09", "CONNECTICUT": "09",
	"DE": "10", "DELAWARE": "10",
	"FL": "12", "FLORIDA": "12",
	"GA": "13", "GEORGIA": "13",
	"HI": "15", "HAWAII": "15",
	"ID": "16", "IDAHO": "16",
	"IL": "17", "ILLINOIS": "17",
	"IN": "18", "INDIANA": "18",
	"IA": "19", "IOWA": "19",
	"KS": "20", "KANSAS": "20",
	"KY": "21", "KENTUCKY": "21",
	"LA": "22", "LOUISIANA": "22",
	"ME": "23", "MAINE": "23",
	"MD": "24", "MARYLAND": "24",
	"MA": "25", "MASSACHUSETTS": "25",
	"MI": "26", "MICHIGAN": "26",
	"MN": "27", "MINNESOTA": "27",
	"MS": "28", "MISSISSIPPI": "28",
	"MO": "29", "MISSOURI": "29",
	"MT": "30", "MONTANA": "30",
	"NE": "31", "NEBRASKA": "31",
	"NV": "32", "NEVADA": "32",
	"NH": "33", "NEW HAMPSHIRE": "33",
	"NJ": "34", "NEW JERSEY": "34",
	"NM": "35", "NEW MEXICO": "35",
	"NY": "36", "NEW YORK": "36",
	"NC": "37", "NORTH CAROLINA": "37",
	"ND": "38", "NORTH DAKOTA": "38",
	"OH": "39", "OHIO": "39",
	"OK": "40", "OKLAHOMA": "40",
	"OR": "41", "OREGON": "41",
	"PA": "42", "PENNSYLVANIA": "42",
	"RI": "44", "RHODE ISLAND": "44",
	"SC": "45", "SOUTH CAROLINA": "45",
	"SD": "46", "SOUTH DAKOTA": "46",
	"TN": "47", "TENNESSEE": "47",
	"TX": "48", "TEXAS": "48",
	"UT": "49", "UTAH": "49",
	"VT": "50", "VERMONT": "50",
	"VA": "51", "VIRGINIA": "51",
	"WA": "53", "WASHINGTON": "53",
	"WV": "54", "WEST VIRGINIA": "54",
	"WI": "55", "WISCONSIN": "55",
	"WY": "56", "WYOMING": "56",
}

// StateFIPS resolves a state abbreviation or full name, in any case, to its
// two-digit FIPS code.
func StateFIPS(state string) (string, bool) {
	fips, ok := fipsByState[strings.ToUpper(strings.TrimSpace(state))]
	return fips, ok
}
