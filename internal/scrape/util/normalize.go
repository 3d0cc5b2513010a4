package util

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/bastiwasti/jobsearch/internal/domain"
)

func CleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}

// Bilingual (EN/DE) keyword tables. Order matters: first match wins.

var jobTypeTable = []struct {
	typ domain.JobType
	re  *regexp.Regexp
}{
	{domain.JobTypeFullTime, regexp.MustCompile(`(?i)full[- ]?time|vollzeit|unbefristet`)},
	{domain.JobTypePartTime, regexp.MustCompile(`(?i)part[- ]?time|teilzeit`)},
	{domain.JobTypeContract, regexp.MustCompile(`(?i)contract|befristet|zeitarbeit`)},
	{domain.JobTypeInternship, regexp.MustCompile(`(?i)internship|praktikum|werkstudent`)},
	{domain.JobTypeFreelance, regexp.MustCompile(`(?i)freelance|freiberuf`)},
}

// ClassifyJobType maps raw employment-type text to the canonical enum.
// Unrecognized input yields JobTypeUnknown, never an error.
func ClassifyJobType(raw string) domain.JobType {
	if raw == "" {
		return domain.JobTypeUnknown
	}
	for _, e := range jobTypeTable {
		if e.re.MatchString(raw) {
			return e.typ
		}
	}
	return domain.JobTypeUnknown
}

var remoteTable = []struct {
	mode domain.RemoteMode
	re   *regexp.Regexp
}{
	{domain.RemoteModeRemote, regexp.MustCompile(`(?i)\bremote\b|home\s*office|100%\s*remote`)},
	{domain.RemoteModeHybrid, regexp.MustCompile(`(?i)\bhybrid\b|teilweise\s*remote`)},
	{domain.RemoteModeOnSite, regexp.MustCompile(`(?i)\bon[- ]?site\b|vor\s*ort|präsenz`)},
}

// ClassifyRemote maps raw workplace text to the canonical remote mode.
func ClassifyRemote(raw string) domain.RemoteMode {
	if raw == "" {
		return domain.RemoteModeUnknown
	}
	for _, e := range remoteTable {
		if e.re.MatchString(raw) {
			return e.mode
		}
	}
	return domain.RemoteModeUnknown
}

var (
	isoDateRE = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}`)

	relDateTable = []struct {
		unit string
		re   *regexp.Regexp
	}{
		{"days", regexp.MustCompile(`(?i)(\d+)\s*(?:day|tag)s?\s*ago|vor\s*(\d+)\s*tag`)},
		{"weeks", regexp.MustCompile(`(?i)(\d+)\s*(?:week|woche)s?\s*ago|vor\s*(\d+)\s*woche`)},
		{"hours", regexp.MustCompile(`(?i)(\d+)\s*(?:hour|stunde)s?\s*ago|vor\s*(\d+)\s*stunde`)},
		{"today", regexp.MustCompile(`(?i)\b(?:today|heute)\b`)},
		{"yesterday", regexp.MustCompile(`(?i)\b(?:yesterday|gestern)\b`)},
	}
)

// ParsePostedDate turns posting-age text into a calendar date. ISO
// prefixes ("2024-01-05 details") are taken verbatim; relative forms
// ("3 days ago", "vor 2 Wochen", "heute") resolve against the current
// date, which makes this time-dependent for relative input.
// Unrecognized text yields nil.
func ParsePostedDate(raw string) *time.Time {
	return ParsePostedDateAt(raw, time.Now())
}

func ParsePostedDateAt(raw string, now time.Time) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	if m := isoDateRE.FindString(raw); m != "" {
		t, err := time.Parse("2006-01-02", m)
		if err == nil {
			return &t
		}
		return nil
	}

	for _, e := range relDateTable {
		m := e.re.FindStringSubmatch(raw)
		if m == nil {
			continue
		}
		switch e.unit {
		case "today":
			return datePtr(now)
		case "yesterday":
			return datePtr(now.AddDate(0, 0, -1))
		}
		n := 0
		for _, g := range m[1:] {
			if g != "" {
				n, _ = strconv.Atoi(g)
				break
			}
		}
		switch e.unit {
		case "days":
			return datePtr(now.AddDate(0, 0, -n))
		case "weeks":
			return datePtr(now.AddDate(0, 0, -7*n))
		case "hours":
			return datePtr(now.Add(-time.Duration(n) * time.Hour))
		}
	}
	return nil
}

func datePtr(t time.Time) *time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
