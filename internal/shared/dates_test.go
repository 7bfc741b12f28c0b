package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateStrict(t *testing.T) {
	got, err := ParseDate("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "15/03/2026", "2026-3-15", "2026-03-15T10:00:00Z", "garbage"} {
		_, err := ParseDate(bad)
		assert.ErrorIs(t, err, ErrValidation, "input %q", bad)
	}
}

func TestMidnightTruncates(t *testing.T) {
	in := time.Date(2026, 3, 15, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC), Midnight(in))
}

func TestDaysSince(t *testing.T) {
	tests := []struct {
		name  string
		today time.Time
		then  time.Time
		want  int
	}{
		{
			name:  "same day",
			today: time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC),
			then:  time.Date(2026, 3, 15, 22, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "late yesterday counts as one",
			today: time.Date(2026, 3, 15, 0, 30, 0, 0, time.UTC),
			then:  time.Date(2026, 3, 14, 23, 30, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "four weeks",
			today: time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
			then:  time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			want:  28,
		},
		{
			name:  "order independent",
			today: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
			then:  time.Date(2026, 3, 29, 0, 0, 0, 0, time.UTC),
			want:  28,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysSince(tc.today, tc.then))
		})
	}
}
