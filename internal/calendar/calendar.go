// Package calendar formats flight dates for ticket documents. The Persian
// calendar arithmetic itself is delegated to go-persian-calendar; this
// package only chooses display formats and localized city names.
package calendar

import (
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// Jalali returns the date in Persian calendar notation, e.g. "1403/05/21"
func Jalali(t time.Time) string {
	return ptime.New(t).Format("yyyy/MM/dd")
}

// JalaliLong returns the date with the Persian month name spelled out
func JalaliLong(t time.Time) string {
	return ptime.New(t).Format("d MMM yyyy")
}

// Gregorian returns the date in the fixed display format used on tickets
func Gregorian(t time.Time) string {
	return t.Format("02 Jan 2006")
}

// cityNames maps Latin city names onto their localized display names.
// Lookups are exact; unmapped names pass through unchanged.
var cityNames = map[string]string{
	"Tehran":   "تهران",
	"Mashhad":  "مشهد",
	"Shiraz":   "شیراز",
	"Isfahan":  "اصفهان",
	"Tabriz":   "تبریز",
	"Kish":     "کیش",
	"Qeshm":    "قشم",
	"Ahvaz":    "اهواز",
	"Istanbul": "استانبول",
	"Ankara":   "آنکارا",
	"Antalya":  "آنتالیا",
	"Dubai":    "دبی",
	"Najaf":    "نجف",
	"Baghdad":  "بغداد",
	"Beirut":   "بیروت",
	"Doha":     "دوحه",
	"Muscat":   "مسقط",
	"Yerevan":  "ایروان",
	"Tbilisi":  "تفلیس",
	"Baku":     "باکو",
}

// CityDisplayName returns the localized display name for a city, or the
// input unchanged when no mapping exists
func CityDisplayName(name string) string {
	if localized, ok := cityNames[name]; ok {
		return localized
	}
	return name
}
