package citation

import "regexp"

// Kind tags one house-style citation shape.
type Kind string

const (
	KindIRC           Kind = "irc"
	KindRegulation    Kind = "reg"
	KindCase          Kind = "case"
	KindNotice        Kind = "notice"
	KindRevenueRuling Kind = "revenue_ruling"
	KindTreaty        Kind = "treaty"
	KindOECD          Kind = "oecd"
)

// House-style shapes. Adding a jurisdiction's citation style is a new
// registry entry, not new validation code.
var (
	ircPattern    = regexp.MustCompile(`IRC\s*§\s*\d+[A-Z]?(?:\([a-z0-9]+\))*(?:\([A-Z]\))?(?:\([ivx]+\))?`)
	regPattern    = regexp.MustCompile(`Treas\.\s*Reg\.\s*§\s*\d+\.\d+[A-Z]?-\d+(?:\([a-z0-9]+\))*`)
	casePattern   = regexp.MustCompile(`\*[^*]+\*,\s*\d+\s+[A-Z][A-Za-z.]*\s+\d+,\s*\d+\s+\([^)]+\s+\d{4}\)`)
	noticePattern = regexp.MustCompile(`Notice\s+\d{4}-\d+,\s*\d{4}-\d+\s+I\.R\.B\.\s+\d+`)
	revRulPattern = regexp.MustCompile(`Rev\.\s*Rul\.\s+\d{4}-\d+,\s*\d{4}-\d+\s+I\.R\.B\.\s+\d+`)
	treatyPattern = regexp.MustCompile(`(?:Convention|Treaty|Agreement)[^,]+,\s*Art\.\s*\d+(?:\([a-z0-9]+\))*`)
	oecdPattern   = regexp.MustCompile(`OECD[^,]+(?:Art\.|¶)\s*\d+(?:\([a-z0-9]+\))*`)
)

var patternsByKind = map[Kind]*regexp.Regexp{
	KindIRC:           ircPattern,
	KindRegulation:    regPattern,
	KindCase:          casePattern,
	KindNotice:        noticePattern,
	KindRevenueRuling: revRulPattern,
	KindTreaty:        treatyPattern,
	KindOECD:          oecdPattern,
}

// summaryEntries fixes the order and key names of Summary output.
var summaryEntries = []struct {
	key  string
	kind Kind
}{
	{"irc_sections", KindIRC},
	{"regulations", KindRegulation},
	{"cases", KindCase},
	{"notices", KindNotice},
	{"revenue_rulings", KindRevenueRuling},
	{"treaties", KindTreaty},
	{"oecd", KindOECD},
}

// Helper patterns used by the per-category validators.
var (
	ircSectionWordPattern = regexp.MustCompile(`(?i)\bIRC\s+Section\s+\d+`)
	bareIRCPattern        = regexp.MustCompile(`\bIRC\s+\d+[A-Z]?`)
	looseRegPattern       = regexp.MustCompile(`Treas\.\s*Reg\.?\s*§?\s*\d[\dA-Za-z.\-]*(?:\([a-z0-9]+\))*`)
	italicSpanPattern     = regexp.MustCompile(`\*[^*\n]+\*[^\n]*`)
	reporterPattern       = regexp.MustCompile(`\d+\s+[A-Z][A-Za-z.]*\s+\d+`)
	courtYearPattern      = regexp.MustCompile(`\(\w+\.?\s*\w*\.?\s*\d{4}\)`)
	noticeNumberPattern   = regexp.MustCompile(`Notice\s+\d{4}-\d+`)
	revRulNumberPattern   = regexp.MustCompile(`Rev\.\s*Rul\.\s+\d{4}-\d+`)
	urlPattern            = regexp.MustCompile(`https?://[^\s)]+`)
)
