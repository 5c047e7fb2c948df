package iqamah

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smokyabdulrahman/prayer-engine/internal/method"
	"github.com/smokyabdulrahman/prayer-engine/internal/prayertime"
)

// fixedSchedule returns a hand-built schedule so the delay arithmetic is
// checked independently of the engine.
func fixedSchedule() prayertime.Schedule {
	loc := time.FixedZone("EDT", -4*3600)
	at := func(h, m int) time.Time { return time.Date(2025, time.June, 2, h, m, 0, 0, loc) }

	s := prayertime.Schedule{Date: prayertime.Date{Year: 2025, Month: time.June, Day: 2}}
	times := []time.Time{at(5, 17), at(6, 20), at(13, 38), at(17, 30), at(20, 57), at(22, 30)}
	for i, k := range prayertime.Kinds {
		s.Events[i] = prayertime.Event{Kind: k, Athan: times[i]}
	}
	return s
}

func TestApply_DefaultPolicy(t *testing.T) {
	out := Apply(fixedSchedule(), DefaultPolicy())

	assert.Equal(t, "05:37", out.Event(prayertime.Fajr).Iqamah.Format("15:04"))
	assert.Nil(t, out.Event(prayertime.Sunrise).Iqamah)
	assert.Equal(t, "13:58", out.Event(prayertime.Dhuhr).Iqamah.Format("15:04"))
	assert.Equal(t, "17:50", out.Event(prayertime.Asr).Iqamah.Format("15:04"))
	assert.Equal(t, "21:02", out.Event(prayertime.Maghrib).Iqamah.Format("15:04"))
	assert.Equal(t, "22:50", out.Event(prayertime.Isha).Iqamah.Format("15:04"))
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := fixedSchedule()
	_ = Apply(in, DefaultPolicy())

	for _, e := range in.Events {
		assert.Nil(t, e.Iqamah)
	}
}

func TestApply_IqamahEqualsAthanPlusDelay(t *testing.T) {
	m, err := method.Lookup(method.ISNA)
	require.NoError(t, err)
	loc, err := time.LoadLocation("America/Indiana/Indianapolis")
	require.NoError(t, err)

	p, err := ParsePolicy("fajr=25,maghrib=10")
	require.NoError(t, err)

	date := prayertime.Date{Year: 2025, Month: time.January, Day: 1}
	for i := 0; i < 60; i++ {
		s, err := prayertime.ComputeIn(date.AddDays(i), prayertime.Coordinate{Latitude: 39.7683333, Longitude: -86.1580556}, m, loc)
		require.NoError(t, err)

		out := Apply(s, p)
		for _, e := range out.Events {
			if e.Kind == prayertime.Sunrise {
				assert.Nil(t, e.Iqamah)
				continue
			}
			require.NotNil(t, e.Iqamah)
			assert.Equal(t, p.Delay(e.Kind), e.Iqamah.Sub(e.Athan))
			assert.Equal(t, e.Athan.Location(), e.Iqamah.Location())
		}
	}
}

func TestApply_ZeroPolicyUsesDefaults(t *testing.T) {
	out := Apply(fixedSchedule(), Policy{})
	assert.Equal(t, "21:02", out.Event(prayertime.Maghrib).Iqamah.Format("15:04"))
}

func TestNewPolicy(t *testing.T) {
	full := map[prayertime.Kind]int{
		prayertime.Fajr: 30, prayertime.Dhuhr: 15, prayertime.Asr: 15,
		prayertime.Maghrib: 0, prayertime.Isha: 15,
	}

	t.Run("complete", func(t *testing.T) {
		p, err := NewPolicy(full)
		require.NoError(t, err)
		assert.Equal(t, 30*time.Minute, p.Delay(prayertime.Fajr))
		assert.Zero(t, p.Delay(prayertime.Maghrib))
		assert.Zero(t, p.Delay(prayertime.Sunrise))
	})

	tests := []struct {
		name   string
		mutate func(map[prayertime.Kind]int)
	}{
		{"missing isha", func(m map[prayertime.Kind]int) { delete(m, prayertime.Isha) }},
		{"negative", func(m map[prayertime.Kind]int) { m[prayertime.Asr] = -5 }},
		{"too long", func(m map[prayertime.Kind]int) { m[prayertime.Dhuhr] = MaxDelay + 1 }},
		{"sunrise entry", func(m map[prayertime.Kind]int) { m[prayertime.Sunrise] = 10 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			delays := make(map[prayertime.Kind]int, len(full))
			for k, v := range full {
				delays[k] = v
			}
			tt.mutate(delays)

			_, err := NewPolicy(delays)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrIncompletePolicy))
		})
	}
}

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"", "fajr=20,dhuhr=20,asr=20,maghrib=5,isha=20", false},
		{"fajr=25", "fajr=25,dhuhr=20,asr=20,maghrib=5,isha=20", false},
		{" Maghrib = 10 , ISHA=0 ", "fajr=20,dhuhr=20,asr=20,maghrib=10,isha=0", false},
		{"fajr", "", true},
		{"fajr=ten", "", true},
		{"sunrise=5", "", true},
		{"jumuah=30", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			p, err := ParsePolicy(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrIncompletePolicy))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.String())
		})
	}
}

func TestOverlay(t *testing.T) {
	p, err := Overlay(map[string]int{"Isha": 10})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, p.Delay(prayertime.Isha))
	assert.Equal(t, 20*time.Minute, p.Delay(prayertime.Fajr))

	_, err = Overlay(map[string]int{"witr": 10})
	assert.ErrorIs(t, err, ErrIncompletePolicy)
}
