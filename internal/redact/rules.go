package redact

import "regexp"

// Rule patterns, compiled once. Each pass iterates its pattern set in
// order; output of one pass feeds the next.
var (
	// Entity names: capitalized words (single capitals allowed, e.g.
	// "Cargill A LLC") directly followed by a legal suffix. Split into the
	// domestic and international suffix vocabularies.
	entityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b([A-Z][a-zA-Z&'\-]*(?:\s+[A-Z][a-zA-Z&'\-]*)*)\s+(?:LLC|L\.L\.C\.|Inc\.|Incorporated|Corp\.|Corporation|Ltd\.|Limited|LLP|L\.P\.|LP)`),
		regexp.MustCompile(`\b([A-Z][a-zA-Z&'\-]*(?:\s+[A-Z][a-zA-Z&'\-]*)*)\s+(?:GmbH|AG|SA|SAS|BV|NV|AB|SpA|Oy)`),
	}

	// Person names anchored by a role title, either "Name, Title" or
	// "Name (Title)". Group 1 is the name, group 2 the title.
	titlePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+),?\s+(CFO|CEO|President|VP|Vice President)`),
		regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+),?\s+(Manager|Director|Controller|Treasurer)`),
		regexp.MustCompile(`\b([A-Z][a-z]+\s+[A-Z][a-z]+)\s+\((CFO|CEO|Manager|Director|VP)\)`),
	}

	// Person names anchored by a preceding context verb. Case-insensitive
	// on the whole pattern, so the name heuristic is looser here.
	contextNamePattern = regexp.MustCompile(`(?i)(?:signed by|prepared by|reviewed by|contact)\s+([A-Z][a-z]+\s+[A-Z][a-z]+)`)

	// Currency amounts with optional cents, scale word, or ISO code.
	amountPattern = regexp.MustCompile(`(?i)\$\s*[\d,]+(?:\.\d{2})?(?:\s*(?:million|billion|thousand|USD|EUR|GBP))?`)

	// Spelled-out amounts ending in "dollar(s)".
	writtenAmountPattern = regexp.MustCompile(`(?i)\b(?:one|two|three|four|five|six|seven|eight|nine|ten|twenty|thirty|forty|fifty|hundred|thousand|million|billion)\s+(?:hundred|thousand|million|billion)?\s*dollars?\b`)

	emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

	// Dates are redacted only behind these anchor phrases; the anchor is
	// preserved, only the date token is replaced.
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:signed on|executed on|dated)\s+([A-Z][a-z]+\s+\d{1,2},\s+\d{4})`),
		regexp.MustCompile(`(?i)(?:birth date|DOB|born on)\s*:?\s*(\d{1,2}/\d{1,2}/\d{4})`),
	}
)
