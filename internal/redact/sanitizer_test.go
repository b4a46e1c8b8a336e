package redact

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSanitizer() *Sanitizer {
	return NewSanitizer(Config{PreserveStructure: true, SelfPrefix: "Cargill"})
}

func TestSanitizeEntities(t *testing.T) {
	s := newTestSanitizer()

	text := "Cargill Meat Solutions LLC entered into an agreement with ABC Trading Corp."
	result := s.Sanitize(text)

	assert.Contains(t, result, "[Cargill Entity")
	assert.NotContains(t, result, "Cargill Meat Solutions LLC")
	assert.Contains(t, result, "[Third Party Entity")
	assert.NotContains(t, result, "ABC Trading Corp")
}

func TestEntityMappingConsistency(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("Cargill A LLC and Cargill B LLC. Later, Cargill A LLC again.")

	var firstPlaceholder string
	for entity, placeholder := range s.entityMap {
		if strings.Contains(entity, "Cargill A LLC") {
			firstPlaceholder = placeholder
			break
		}
	}
	require.NotEmpty(t, firstPlaceholder)

	// Same entity twice yields the same placeholder both times; the
	// second entity gets its own.
	assert.Equal(t, 2, strings.Count(result, firstPlaceholder))
	assert.Equal(t, 2, s.Report().EntitiesRedacted)
}

func TestEntityCounterSharedAcrossCategories(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("Cargill Grain LLC sold assets to Acme Holdings Inc. and Nordsee GmbH.")

	assert.Contains(t, result, "[Cargill Entity A]")
	assert.Contains(t, result, "[Third Party Entity B]")
	assert.Contains(t, result, "[Third Party Entity C]")
	assert.Equal(t, 3, s.Report().EntitiesRedacted)
}

func TestSanitizePeople(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("John Smith, CFO, signed by Jane Doe (Manager)")

	assert.Contains(t, result, "[CFO]")
	assert.NotContains(t, result, "John Smith")
	assert.Contains(t, result, "[Manager]")
	assert.NotContains(t, result, "Jane Doe")
}

func TestContextAnchoredPersonKeepsAnchor(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("The agreement was prepared by Alan Turing last week.")

	assert.Contains(t, result, "prepared by [Person 1]")
	assert.NotContains(t, result, "Alan Turing")
	assert.Equal(t, 1, s.Report().PeopleRedacted)
}

func TestPersonMappingReused(t *testing.T) {
	s := newTestSanitizer()

	s.Sanitize("Reviewed by Mary Jones. Later signed by Mary Jones.")

	assert.Equal(t, 1, s.Report().PeopleRedacted)
	assert.Len(t, s.personMap, 1)
}

func TestSanitizeAmounts(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("The payment was $1,234,567.89 USD and $500,000 respectively.")

	assert.NotContains(t, result, "$1,234,567.89")
	assert.NotContains(t, result, "$500,000")
	assert.Contains(t, result, "[Amount]")
}

func TestWrittenAmountsCounted(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("They paid five hundred dollars up front.")

	assert.NotContains(t, result, "dollars")
	assert.Contains(t, result, "[Amount]")
	assert.Equal(t, 1, s.Report().AmountsRedacted)
	assert.Equal(t, 1, s.Report().TotalRedactions)
}

func TestRedactedStubWhenStructureNotPreserved(t *testing.T) {
	s := NewSanitizer(Config{PreserveStructure: false, SelfPrefix: "Cargill"})

	result := s.Sanitize("A fee of $10,000 was paid.")

	assert.Contains(t, result, "[REDACTED]")
	assert.NotContains(t, result, "$10,000")
}

func TestSanitizeEmails(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("Contact john.smith@x.com or jane@y.org")

	assert.Equal(t, 2, strings.Count(result, "[Email]"))
	assert.NotContains(t, result, "john.smith@x.com")
	assert.NotContains(t, result, "jane@y.org")
	assert.Equal(t, 2, s.Report().EmailsRedacted)
}

func TestSanitizeDatesOnlyInSensitiveContexts(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("The contract was signed on January 15, 2024. Filed in March 2024.")

	assert.Contains(t, result, "signed on [Date]")
	assert.NotContains(t, result, "January 15, 2024")
	// Dates outside anchor phrases keep their chronology.
	assert.Contains(t, result, "March 2024")
	assert.Equal(t, 1, s.Report().DatesRedacted)
}

func TestBirthDateRedaction(t *testing.T) {
	s := newTestSanitizer()

	result := s.Sanitize("DOB: 01/15/1980")

	assert.Contains(t, result, "[Date]")
	assert.NotContains(t, result, "01/15/1980")
}

func TestRedactionReportTotals(t *testing.T) {
	s := newTestSanitizer()

	s.Sanitize(`Cargill Entity Inc. paid $100,000 to John Smith, CFO.
Contact: john.smith@cargill.com`)

	report := s.Report()
	assert.Positive(t, report.EntitiesRedacted)
	assert.Positive(t, report.PeopleRedacted)
	assert.Positive(t, report.AmountsRedacted)
	assert.Positive(t, report.EmailsRedacted)
	assert.Equal(t,
		report.EntitiesRedacted+report.PeopleRedacted+report.AmountsRedacted+report.EmailsRedacted+report.DatesRedacted,
		report.TotalRedactions)
	assert.Len(t, report.Details, report.TotalRedactions)
}

func TestQuickSanitize(t *testing.T) {
	sanitized, report := QuickSanitize("Cargill Trading LLC paid $50,000", "Cargill")

	assert.NotContains(t, sanitized, "Cargill Trading LLC")
	assert.NotContains(t, sanitized, "$50,000")
	assert.Positive(t, report.TotalRedactions)
}

func TestDeterministicAcrossFreshInstances(t *testing.T) {
	text := "Acme Corp. paid $5,000 to John Smith, CEO on behalf of Beta Holdings LLC."

	out1, rep1 := QuickSanitize(text, "Cargill")
	out2, rep2 := QuickSanitize(text, "Cargill")

	assert.Equal(t, out1, out2)
	assert.Equal(t, rep1, rep2)
}

func TestReverseMap(t *testing.T) {
	s := newTestSanitizer()
	s.Sanitize("Zenith Partners LLC and John Smith, CFO")

	reverse := s.ReverseMap()
	assert.Equal(t, "Zenith Partners LLC", reverse["[Third Party Entity A]"])
	assert.Equal(t, "John Smith", reverse["[CFO]"])
}
