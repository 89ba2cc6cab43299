package prayertimes

import (
	"time"

	id "minar/pkg/domain"
	dErrors "minar/pkg/domain-errors"
)

// Prayer names the five daily prayers.
type Prayer string

const (
	PrayerFajr    Prayer = "fajr"
	PrayerDhuhr   Prayer = "dhuhr"
	PrayerAsr     Prayer = "asr"
	PrayerMaghrib Prayer = "maghrib"
	PrayerIsha    Prayer = "isha"
)

// Prayers lists the five prayers in daily order.
var Prayers = []Prayer{PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha}

func validPrayer(p Prayer) bool {
	switch p {
	case PrayerFajr, PrayerDhuhr, PrayerAsr, PrayerMaghrib, PrayerIsha:
		return true
	}
	return false
}

// ClockTime is a wall-clock "HH:MM" in the masjid's local time.
type ClockTime string

func ParseClockTime(raw string) (ClockTime, error) {
	if _, err := time.Parse("15:04", raw); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "time must be HH:MM")
	}
	return ClockTime(raw), nil
}

// Date is a civil date "YYYY-MM-DD"; schedules are unique per (masjid, date).
type Date string

func ParseDate(raw string) (Date, error) {
	if _, err := time.Parse("2006-01-02", raw); err != nil {
		return "", dErrors.New(dErrors.CodeInvalidInput, "date must be YYYY-MM-DD")
	}
	return Date(raw), nil
}

// Entry is one prayer's times. Adhan is the call, iqama the congregation
// start; a masjid publishes at least one of the two.
type Entry struct {
	Adhan *ClockTime
	Iqama *ClockTime
}

func (e Entry) validate() error {
	if e.Adhan == nil && e.Iqama == nil {
		return dErrors.New(dErrors.CodeInvalidInput, "each prayer entry needs an adhan or iqama time")
	}
	if e.Adhan != nil {
		if _, err := ParseClockTime(string(*e.Adhan)); err != nil {
			return err
		}
	}
	if e.Iqama != nil {
		if _, err := ParseClockTime(string(*e.Iqama)); err != nil {
			return err
		}
	}
	return nil
}

// Schedule is one masjid's published times for one day.
type Schedule struct {
	MasjidID  id.MasjidID
	Date      Date
	Entries   map[Prayer]Entry
	UpdatedAt time.Time
}

func NewSchedule(masjidID id.MasjidID, date Date, entries map[Prayer]Entry, now time.Time) (*Schedule, error) {
	if masjidID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "masjid ID is required")
	}
	if _, err := ParseDate(string(date)); err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "at least one prayer entry is required")
	}
	for prayer, entry := range entries {
		if !validPrayer(prayer) {
			return nil, dErrors.New(dErrors.CodeInvalidInput, "unknown prayer name")
		}
		if err := entry.validate(); err != nil {
			return nil, err
		}
	}

	copied := make(map[Prayer]Entry, len(entries))
	for prayer, entry := range entries {
		copied[prayer] = entry
	}
	return &Schedule{
		MasjidID:  masjidID,
		Date:      date,
		Entries:   copied,
		UpdatedAt: now,
	}, nil
}
