package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestJalali(t *testing.T) {
	cases := []struct {
		gregorian time.Time
		want      string
	}{
		{time.Date(2025, 3, 21, 0, 0, 0, 0, time.UTC), "1404/01/01"}, // Nowruz
		{time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC), "1403/12/30"}, // last day of a leap year
		{time.Date(2024, 8, 12, 0, 0, 0, 0, time.UTC), "1403/05/22"},
		{time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), "1404/10/10"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Jalali(tc.gregorian), "for %s", tc.gregorian.Format("2006-01-02"))
	}
}

func TestGregorian(t *testing.T) {
	assert.Equal(t, "15 Jun 2025", Gregorian(time.Date(2025, 6, 15, 14, 30, 0, 0, time.UTC)))
}

func TestJalaliIgnoresTimeOfDay(t *testing.T) {
	morning := time.Date(2025, 6, 15, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2025, 6, 15, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, Jalali(morning), Jalali(evening))
}

func TestCityDisplayName(t *testing.T) {
	assert.Equal(t, "تهران", CityDisplayName("Tehran"))
	assert.Equal(t, "استانبول", CityDisplayName("Istanbul"))
}

func TestCityDisplayName_UnmappedPassesThrough(t *testing.T) {
	assert.Equal(t, "Samarkand", CityDisplayName("Samarkand"))
	assert.Equal(t, "", CityDisplayName(""))
}
