package record

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 5, 1, 18, 30, 0, 0, time.UTC)

func TestNewDraft(t *testing.T) {
	d := NewDraft(day)

	assert.Equal(t, StyleFreestyle, d.StyleID)
	assert.Equal(t, Distance100, d.DistanceID)
	assert.True(t, d.IsShortCourse)
	assert.Equal(t, "2024-05-01", d.Date.String())
	assert.Equal(t, []string{"00:00.00", "00:00.00"}, d.LapTimes)
	require.NoError(t, d.Validate())
}

func TestDraft_SetDistance(t *testing.T) {
	d := NewDraft(day)
	d.LapTimes = []string{"00:30.00", "01:00.00"}

	d.SetDistance(Distance400)
	assert.Len(t, d.LapTimes, 8)
	assert.Equal(t, "01:00.00", d.LapTimes[1])

	d.SetDistance(Distance50)
	assert.Equal(t, []string{"00:30.00"}, d.LapTimes)
}

func TestDraft_SetLapPart(t *testing.T) {
	d := NewDraft(day)
	d.LapTimes[1] = "01:05.20"

	require.NoError(t, d.SetLapPart(1, PartMinutes, 2))
	assert.Equal(t, "02:05.20", d.LapTimes[1])

	require.NoError(t, d.SetLapPart(1, PartSeconds, 7))
	assert.Equal(t, "02:07.20", d.LapTimes[1])

	require.NoError(t, d.SetLapPart(1, PartHundredths, 99))
	assert.Equal(t, "02:07.99", d.LapTimes[1])

	assert.Error(t, d.SetLapPart(1, PartSeconds, 60))
	assert.Error(t, d.SetLapPart(1, PartHundredths, 100))
	assert.Error(t, d.SetLapPart(5, PartMinutes, 1))

	d.LapTimes[0] = "bogus"
	require.NoError(t, d.SetLapPart(0, PartSeconds, 31))
	assert.Equal(t, "00:31.00", d.LapTimes[0])
}

func TestDraft_ApplyOCR(t *testing.T) {
	d := NewDraft(day)
	d.SetDistance(Distance200)
	d.LapTimes[0] = "00:31.00"

	dropped := d.ApplyOCR([]string{"29.80", "1:02.40", "bogus"})

	assert.Equal(t, 1, dropped)
	assert.Equal(t, []string{"00:29.80", "01:02.40"}, d.LapTimes, "распознанные времена заменяют список целиком")
}

func TestDraft_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(d *Draft)
		wantErr string
	}{
		{
			name:   "корректный черновик",
			modify: func(d *Draft) {},
		},
		{
			name:    "неверный стиль",
			modify:  func(d *Draft) { d.StyleID = 9 },
			wantErr: "неверный стиль",
		},
		{
			name:    "нет даты",
			modify:  func(d *Draft) { d.Date = Date{} },
			wantErr: "не указана дата",
		},
		{
			name:    "число кругов не совпадает",
			modify:  func(d *Draft) { d.LapTimes = d.LapTimes[:1] },
			wantErr: "ожидалось кругов: 2",
		},
		{
			name:    "неразборчивое время",
			modify:  func(d *Draft) { d.LapTimes[1] = "1:0x.00" },
			wantErr: "круг 2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft(day)
			tt.modify(d)

			err := d.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, ErrInvalidDraft)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDraftFromEntry(t *testing.T) {
	raw := `{
		"record": {"id": 3, "user_id": 1, "style_id": 2, "distance_id": 2, "date": "2024-04-20T00:00:00Z",
			"is_short_course": false, "memo": "утро"},
		"laps": [
			{"record_id": 3, "lap_number": 1, "lap_time": "00:00:31.50"},
			{"record_id": 3, "lap_number": 2, "lap_time": "00:01:05.20"}
		]
	}`
	var e Entry
	require.NoError(t, json.Unmarshal([]byte(raw), &e))

	d := DraftFromEntry(e)

	assert.Equal(t, StyleBackstroke, d.StyleID)
	assert.False(t, d.IsShortCourse)
	assert.Equal(t, "утро", d.Memo)
	assert.Equal(t, []string{"00:31.50", "01:05.20"}, d.LapTimes)
	assert.Equal(t, "00:00:31.50", e.Laps[0].LapTime, "запись не должна меняться")

	p := d.Payload()
	body, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"style_id":2,"distance_id":2,"date":"2024-04-20T00:00:00Z","is_short_course":false,
		"memo":"утро","lap_times":["00:31.50","01:05.20"]}`, string(body))
}

func TestDate_Unmarshal(t *testing.T) {
	var p Payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-06-02"}`), &p))
	assert.Equal(t, "2024-06-02", p.Date.String())

	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-06-02T10:00:00+03:00"}`), &p))
	assert.Equal(t, "2024-06-02", p.Date.String())

	assert.Error(t, json.Unmarshal([]byte(`{"date":"02.06.2024"}`), &p))
}

func TestPassingComparison(t *testing.T) {
	current := []string{"00:30.00", "01:05.20", "01:40.00"}
	best := []string{"00:29.50", "01:06.00"}

	got := PassingComparison(current, best)

	require.Len(t, got, 3)
	assert.Equal(t, 50, got[0].Meters)
	assert.Equal(t, "+00:00.50", got[0].DeltaString())
	assert.Equal(t, "-00:00.80", got[1].DeltaString())
	assert.False(t, got[2].HasDelta)
	assert.Equal(t, "--:--.--", got[2].Best)
}
