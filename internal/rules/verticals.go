package rules

import "strings"

// VerticalProfile describes one home-service trade: its display name, the
// vocabulary the validator counts per paragraph, and representative services
// used by prompt builders.
type VerticalProfile struct {
	Key            string
	TradeName      string
	Vocabulary     []string
	CommonServices []string
}

// DefaultVertical is the fallback profile key for unrecognized services.
const DefaultVertical = "other"

var verticalProfiles = map[string]VerticalProfile{
	"roofer": {
		Key:       "roofer",
		TradeName: "roofing",
		Vocabulary: []string{"shingles", "flashing", "underlayment", "vents", "decking", "ridge", "valley",
			"eave", "rake", "drip edge", "ice dam", "membrane", "felt paper"},
		CommonServices: []string{"roof repair", "roof replacement", "roof inspection", "leak repair", "storm damage repair"},
	},
	"electrician": {
		Key:       "electrician",
		TradeName: "electrical",
		Vocabulary: []string{"breaker", "circuit", "panel", "outlet", "wiring", "voltage", "amp", "fuse",
			"junction", "conduit", "ground", "neutral", "hot wire", "gfci", "afci"},
		CommonServices: []string{"outlet installation", "panel upgrade", "lighting repair", "wiring", "electrical inspection"},
	},
	"plumber": {
		Key:       "plumber",
		TradeName: "plumbing",
		Vocabulary: []string{"pipe", "drain", "trap", "valve", "fixture", "water pressure", "sewer line",
			"shutoff", "coupling", "elbow", "tee", "gasket", "flange"},
		CommonServices: []string{"drain cleaning", "pipe repair", "water heater installation", "leak repair", "fixture installation"},
	},
	"hvac": {
		Key:       "hvac",
		TradeName: "HVAC",
		Vocabulary: []string{"compressor", "condenser", "evaporator", "refrigerant", "ductwork", "thermostat",
			"filter", "blower", "coil", "heat exchanger", "airflow", "tonnage", "seer"},
		CommonServices: []string{"AC repair", "furnace repair", "HVAC installation", "duct cleaning", "maintenance"},
	},
	"landscaper": {
		Key:       "landscaper",
		TradeName: "landscaping",
		Vocabulary: []string{"irrigation", "mulch", "sod", "drainage", "grading", "hardscape", "softscape",
			"edging", "pruning", "fertilization", "aeration", "seeding"},
		CommonServices: []string{"lawn care", "landscape design", "tree trimming", "irrigation installation", "hardscaping"},
	},
	"handyman": {
		Key:       "handyman",
		TradeName: "handyman services",
		Vocabulary: []string{"repair", "installation", "maintenance", "fixture", "drywall", "painting",
			"assembly", "carpentry", "hardware", "trim", "caulking"},
		CommonServices: []string{"general repairs", "furniture assembly", "drywall repair", "painting", "fixture installation"},
	},
	"painter": {
		Key:       "painter",
		TradeName: "painting",
		Vocabulary: []string{"primer", "finish coat", "brush", "roller", "sprayer", "tape", "drop cloth",
			"caulk", "sanding", "prep work", "sheen", "coverage"},
		CommonServices: []string{"interior painting", "exterior painting", "cabinet painting", "deck staining", "drywall repair"},
	},
	"concrete": {
		Key:       "concrete",
		TradeName: "concrete",
		Vocabulary: []string{"rebar", "aggregate", "slump", "cure", "expansion joint", "control joint",
			"trowel", "float", "pour", "mix", "psi", "footing"},
		CommonServices: []string{"driveway installation", "patio installation", "foundation repair", "concrete repair", "stamped concrete"},
	},
	"siding": {
		Key:       "siding",
		TradeName: "siding",
		Vocabulary: []string{"lap", "j-channel", "soffit", "fascia", "trim", "flashing", "vapor barrier",
			"starter strip", "corner post", "furring", "sheathing"},
		CommonServices: []string{"siding installation", "siding repair", "siding replacement", "trim work", "soffit repair"},
	},
	"locksmith": {
		Key:       "locksmith",
		TradeName: "locksmith services",
		Vocabulary: []string{"deadbolt", "cylinder", "key", "lock", "rekey", "master key", "strike plate",
			"latch", "tumbler", "pin", "keyway", "lockset"},
		CommonServices: []string{"lock installation", "rekeying", "lockout service", "key duplication", "security upgrades"},
	},
	"cleaning": {
		Key:       "cleaning",
		TradeName: "cleaning services",
		Vocabulary: []string{"sanitize", "disinfect", "vacuum", "mop", "dust", "scrub", "polish",
			"deodorize", "deep clean", "surface", "solution", "equipment"},
		CommonServices: []string{"house cleaning", "deep cleaning", "move-out cleaning", "commercial cleaning", "carpet cleaning"},
	},
	"garage-door": {
		Key:       "garage-door",
		TradeName: "garage door",
		Vocabulary: []string{"opener", "spring", "track", "roller", "cable", "sensor", "panel",
			"torsion spring", "extension spring", "remote", "keypad", "motor"},
		CommonServices: []string{"garage door repair", "spring replacement", "opener installation", "door installation", "maintenance"},
	},
	"windows": {
		Key:       "windows",
		TradeName: "window services",
		Vocabulary: []string{"sash", "frame", "pane", "glazing", "weatherstripping", "sill", "jamb",
			"mullion", "casing", "flashing", "argon", "low-e", "u-factor"},
		CommonServices: []string{"window installation", "window replacement", "window repair", "glass replacement", "weatherproofing"},
	},
	"pest-control": {
		Key:       "pest-control",
		TradeName: "pest control",
		Vocabulary: []string{"treatment", "inspection", "barrier", "bait", "trap", "spray", "fumigation",
			"prevention", "infestation", "extermination", "monitoring", "exclusion"},
		CommonServices: []string{"pest inspection", "termite treatment", "rodent control", "insect control", "preventative treatment"},
	},
	"other": {
		Key:       "other",
		TradeName: "home services",
		Vocabulary: []string{"repair", "installation", "maintenance", "service", "inspection", "upgrade",
			"replacement", "improvement", "solution", "quality", "professional"},
		CommonServices: []string{"general services", "repairs", "installations", "maintenance", "inspections"},
	},
}

// serviceAliases maps service-name substrings to vertical keys. Matching is
// first-hit in this order, so the more specific trades come before the
// catch-all handyman terms.
var serviceAliases = []struct {
	substrings []string
	vertical   string
}{
	{[]string{"roof", "gutter", "shingle"}, "roofer"},
	{[]string{"electric", "wiring", "panel upgrade", "lighting"}, "electrician"},
	{[]string{"plumb", "drain", "water heater", "sewer", "pipe"}, "plumber"},
	{[]string{"hvac", "heating", "cooling", "air condition", "furnace", "ac repair", "duct"}, "hvac"},
	{[]string{"landscap", "lawn", "tree", "irrigation", "sod"}, "landscaper"},
	{[]string{"paint", "staining"}, "painter"},
	{[]string{"concrete", "driveway", "foundation", "patio"}, "concrete"},
	{[]string{"siding", "soffit", "fascia"}, "siding"},
	{[]string{"locksmith", "lockout", "rekey", "lock "}, "locksmith"},
	{[]string{"garage door", "garage-door", "opener"}, "garage-door"},
	{[]string{"window", "glass replacement", "glazing"}, "windows"},
	{[]string{"pest", "termite", "exterminat", "rodent"}, "pest-control"},
	{[]string{"clean"}, "cleaning"},
	{[]string{"handyman", "assembly", "drywall"}, "handyman"},
}

// Verticals returns all known vertical keys.
func Verticals() []string {
	keys := make([]string, 0, len(verticalProfiles))
	for k := range verticalProfiles {
		keys = append(keys, k)
	}
	return keys
}

// VerticalProfileFor returns the profile for an explicit vertical key,
// falling back to the generic profile when the key is unknown.
func VerticalProfileFor(vertical string) VerticalProfile {
	if p, ok := verticalProfiles[strings.ToLower(strings.TrimSpace(vertical))]; ok {
		return p
	}
	return verticalProfiles[DefaultVertical]
}

// MatchVertical resolves a profile for a page request. An explicit vertical
// key wins; otherwise the service name is matched against known trade terms.
func MatchVertical(vertical, service string) VerticalProfile {
	v := strings.ToLower(strings.TrimSpace(vertical))
	if _, ok := verticalProfiles[v]; ok && v != "" {
		return verticalProfiles[v]
	}

	s := strings.ToLower(service)
	for _, alias := range serviceAliases {
		for _, sub := range alias.substrings {
			if strings.Contains(s, sub) {
				return verticalProfiles[alias.vertical]
			}
		}
	}
	return verticalProfiles[DefaultVertical]
}

// VocabularyFor returns the trade vocabulary used for the density check,
// selected by service name when no explicit vertical is given.
func VocabularyFor(vertical, service string) []string {
	return MatchVertical(vertical, service).Vocabulary
}

// TradeNameFor returns the display trade name for prompt and title building.
func TradeNameFor(vertical, service string) string {
	return MatchVertical(vertical, service).TradeName
}
