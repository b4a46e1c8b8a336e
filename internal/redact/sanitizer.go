// Package redact removes confidential identifiers (entity names, people,
// amounts, emails, sensitive dates) from raw fact patterns before they are
// sent to any external system. Pattern matching only; no network calls.
package redact

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config controls a single Sanitizer instance.
type Config struct {
	// PreserveStructure keeps semantically labeled placeholders such as
	// [Amount]; when false, amounts collapse to [REDACTED].
	PreserveStructure bool
	// SelfPrefix is the requesting organization's name. Entities whose
	// matched name starts with it are labeled as own-side entities; all
	// others become third-party entities.
	SelfPrefix string
}

// Sanitizer owns the placeholder maps and counters for one document.
// Instances are single-use and not safe for concurrent calls; run one
// Sanitizer per document.
type Sanitizer struct {
	cfg Config

	// One letter/number sequence shared across own-side and third-party
	// entities; persons found by context carry their own counter.
	entityCounter int
	personCounter int
	entityMap     map[string]string
	personMap     map[string]string

	report *Report
}

func NewSanitizer(cfg Config) *Sanitizer {
	return &Sanitizer{
		cfg:       cfg,
		entityMap: make(map[string]string),
		personMap: make(map[string]string),
		report:    &Report{},
	}
}

// Sanitize applies every redaction pass in fixed order. Unmatched text
// passes through unchanged; the method never fails.
func (s *Sanitizer) Sanitize(text string) string {
	// Order matters: entities first, then people, then other data.
	text = s.sanitizeEntities(text)
	text = s.sanitizePeople(text)
	text = s.sanitizeEmails(text)
	text = s.sanitizeAmounts(text)
	text = s.sanitizeDates(text)
	return text
}

// Report returns the accumulated redaction report.
func (s *Sanitizer) Report() *Report {
	return s.report
}

// ReverseMap returns placeholder → original value for internal
// unredaction. Never include it in externally shared artifacts.
func (s *Sanitizer) ReverseMap() map[string]string {
	reverse := make(map[string]string, len(s.entityMap)+len(s.personMap))
	for original, placeholder := range s.entityMap {
		reverse[placeholder] = original
	}
	for original, placeholder := range s.personMap {
		reverse[placeholder] = original
	}
	return reverse
}

func (s *Sanitizer) sanitizeEntities(text string) string {
	for _, pattern := range entityPatterns {
		text = pattern.ReplaceAllStringFunc(text, func(entity string) string {
			if placeholder, ok := s.entityMap[entity]; ok {
				return placeholder
			}
			s.entityCounter++
			category := "Third Party"
			if s.cfg.SelfPrefix != "" && strings.HasPrefix(entity, s.cfg.SelfPrefix) {
				category = s.cfg.SelfPrefix
			}
			placeholder := fmt.Sprintf("[%s Entity %s]", category, entityLabel(s.entityCounter))
			s.entityMap[entity] = placeholder
			s.report.addEntity(fmt.Sprintf("Entity: %s → %s", entity, placeholder))
			return placeholder
		})
	}
	return text
}

func (s *Sanitizer) sanitizePeople(text string) string {
	for _, pattern := range titlePatterns {
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			groups := pattern.FindStringSubmatch(match)
			name, title := groups[1], groups[2]
			if placeholder, ok := s.personMap[name]; ok {
				return placeholder
			}
			placeholder := "[" + title + "]"
			s.personMap[name] = placeholder
			s.report.addPerson(fmt.Sprintf("Person: %s → %s", name, placeholder))
			return placeholder
		})
	}

	// Remaining capitalized names, only behind context verbs to avoid
	// over-redacting. The anchor phrase is kept.
	text = contextNamePattern.ReplaceAllStringFunc(text, func(match string) string {
		name := contextNamePattern.FindStringSubmatch(match)[1]
		if placeholder, ok := s.personMap[name]; ok {
			return strings.Replace(match, name, placeholder, 1)
		}
		s.personCounter++
		placeholder := fmt.Sprintf("[Person %d]", s.personCounter)
		s.personMap[name] = placeholder
		s.report.addPerson(fmt.Sprintf("Person: %s → %s", name, placeholder))
		return strings.Replace(match, name, placeholder, 1)
	})

	return text
}

func (s *Sanitizer) sanitizeEmails(text string) string {
	return emailPattern.ReplaceAllStringFunc(text, func(email string) string {
		s.report.addEmail("Email redacted: " + email)
		return "[Email]"
	})
}

func (s *Sanitizer) sanitizeAmounts(text string) string {
	text = amountPattern.ReplaceAllStringFunc(text, func(amount string) string {
		s.report.addAmount("Amount redacted: " + amount)
		if s.cfg.PreserveStructure {
			return "[Amount]"
		}
		return "[REDACTED]"
	})

	// Spelled-out amounts always become [Amount]; there is no generic
	// stub form for these.
	text = writtenAmountPattern.ReplaceAllStringFunc(text, func(amount string) string {
		s.report.addAmount("Amount redacted: " + amount)
		return "[Amount]"
	})

	return text
}

func (s *Sanitizer) sanitizeDates(text string) string {
	for _, pattern := range datePatterns {
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			date := pattern.FindStringSubmatch(match)[1]
			s.report.addDate("Date redacted: " + date)
			return strings.Replace(match, date, "[Date]", 1)
		})
	}
	return text
}

// entityLabel assigns A..Z for the first 26 distinct entities, then
// falls back to the decimal counter.
func entityLabel(counter int) string {
	if counter <= 26 {
		return string(rune('A' + counter - 1))
	}
	return strconv.Itoa(counter)
}

// QuickSanitize runs a fresh Sanitizer with structure-preserving
// defaults over text.
func QuickSanitize(text, selfPrefix string) (string, *Report) {
	s := NewSanitizer(Config{PreserveStructure: true, SelfPrefix: selfPrefix})
	sanitized := s.Sanitize(text)
	return sanitized, s.Report()
}

// SanitizeFile reads inputPath, sanitizes it and writes the result to
// outputPath.
func SanitizeFile(inputPath, outputPath string, cfg Config) (*Report, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file '%s': %w", inputPath, err)
	}

	s := NewSanitizer(cfg)
	sanitized := s.Sanitize(string(data))

	if err := os.WriteFile(outputPath, []byte(sanitized), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write sanitized file '%s': %w", outputPath, err)
	}

	return s.Report(), nil
}
