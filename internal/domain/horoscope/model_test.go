package horoscope

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBirthQueryValidate(t *testing.T) {
	base := validQuery()
	require.NoError(t, base.Validate())

	cases := []struct {
		name   string
		mutate func(*BirthQuery)
		want   string
	}{
		{"empty place", func(q *BirthQuery) { q.Place = "  " }, "place"},
		{"day too high", func(q *BirthQuery) { q.Day = 32 }, "day"},
		{"day too low", func(q *BirthQuery) { q.Day = 0 }, "day"},
		{"month", func(q *BirthQuery) { q.Month = 13 }, "month"},
		{"year low", func(q *BirthQuery) { q.Year = 1850 }, "year"},
		{"year high", func(q *BirthQuery) { q.Year = 2200 }, "year"},
		{"hour", func(q *BirthQuery) { q.Hour = 24 }, "hour"},
		{"minute", func(q *BirthQuery) { q.Minute = 60 }, "minute"},
		{"kind", func(q *BirthQuery) { q.Kind = "weekly" }, "query kind"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := validQuery()
			tc.mutate(&q)
			require.ErrorContains(t, q.Validate(), tc.want)
		})
	}
}

func TestNormalizePlace(t *testing.T) {
	require.Equal(t, "mumbai", normalizePlace("  Mumbai, Maharashtra, India "))
	require.Equal(t, "new york", normalizePlace("New York"))
	require.Equal(t, "", normalizePlace("   "))
}
