package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bastiwasti/jobsearch/internal/domain"
)

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Data Engineer (m/w/d)", CleanText("  Data   Engineer\n\t(m/w/d)  "))
	assert.Equal(t, "Köln, Remote", CleanText("Köln, Remote"))
	assert.Equal(t, "", CleanText("   \n\t  "))
}

func TestClassifyJobType(t *testing.T) {
	tests := []struct {
		in   string
		want domain.JobType
	}{
		{"Full-time", domain.JobTypeFullTime},
		{"Vollzeit, unbefristet", domain.JobTypeFullTime},
		{"Part time position", domain.JobTypePartTime},
		{"Teilzeit möglich", domain.JobTypePartTime},
		{"6 month contract", domain.JobTypeContract},
		{"befristet auf 2 Jahre", domain.JobTypeContract},
		{"Internship program", domain.JobTypeInternship},
		{"Werkstudent Data", domain.JobTypeInternship},
		{"Freelance gig", domain.JobTypeFreelance},
		{"freiberufliche Tätigkeit", domain.JobTypeFreelance},
		{"Senior Engineer", domain.JobTypeUnknown},
		{"", domain.JobTypeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyJobType(tt.in), "input %q", tt.in)
	}
}

func TestClassifyRemote(t *testing.T) {
	tests := []struct {
		in   string
		want domain.RemoteMode
	}{
		{"Remote", domain.RemoteModeRemote},
		{"100% Remote möglich", domain.RemoteModeRemote},
		{"Home Office", domain.RemoteModeRemote},
		{"Hybrid (3 days office)", domain.RemoteModeHybrid},
		{"teilweise remote", domain.RemoteModeHybrid},
		{"On-site", domain.RemoteModeOnSite},
		{"vor Ort in Köln", domain.RemoteModeOnSite},
		{"Düsseldorf", domain.RemoteModeUnknown},
		{"", domain.RemoteModeUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClassifyRemote(tt.in), "input %q", tt.in)
	}
}

func TestParsePostedDateAt(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		in   string
		want *time.Time
	}{
		{"2024-01-05", day(2024, 1, 5)},
		{"2024-01-05 · Vollzeit", day(2024, 1, 5)},
		{"3 days ago", day(2024, 3, 12)},
		{"1 day ago", day(2024, 3, 14)},
		{"vor 3 Tagen", day(2024, 3, 12)},
		{"vor 1 Tag", day(2024, 3, 14)},
		{"2 weeks ago", day(2024, 3, 1)},
		{"vor 2 Wochen", day(2024, 3, 1)},
		{"5 hours ago", day(2024, 3, 15)},
		{"vor 12 Stunden", day(2024, 3, 14)}, // crosses midnight
		{"today", day(2024, 3, 15)},
		{"heute", day(2024, 3, 15)},
		{"yesterday", day(2024, 3, 14)},
		{"gestern", day(2024, 3, 14)},
		{"Posted gestern", day(2024, 3, 14)},
		{"soon", nil},
		{"", nil},
	}
	for _, tt := range tests {
		got := ParsePostedDateAt(tt.in, now)
		if tt.want == nil {
			assert.Nil(t, got, "input %q", tt.in)
			continue
		}
		require.NotNil(t, got, "input %q", tt.in)
		assert.Equal(t, *tt.want, *got, "input %q", tt.in)
	}
}
