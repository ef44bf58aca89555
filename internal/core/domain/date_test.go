package domain_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-habits/internal/core/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "2024-01-05", want: "2024-01-05"},
		{in: " 2024-02-29 ", want: "2024-02-29"},
		{in: "2023-02-29", wantErr: true},
		{in: "05/01/2024", wantErr: true},
		{in: "", wantErr: true},
		{in: "2024-01-05T10:00:00Z", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := domain.ParseDate(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, domain.ErrMalformedDate)
				assert.Contains(t, err.Error(), tt.in)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d.String())
		})
	}
}

func TestDate_Arithmetic(t *testing.T) {
	d := domain.NewDate(2024, 3, 9)

	next := d.AddDays(1)
	assert.Equal(t, "2024-03-09", d.String(), "AddDays must not mutate the receiver")
	assert.Equal(t, "2024-03-10", next.String())

	assert.Equal(t, "2024-02-29", d.AddDays(-9).String())
	assert.Equal(t, 7, domain.NewDate(2024, 1, 8).DaysSince(domain.NewDate(2024, 1, 1)))
	assert.Equal(t, -1, domain.NewDate(2024, 1, 1).DaysSince(domain.NewDate(2024, 1, 2)))
	assert.Equal(t, 366, domain.NewDate(2025, 1, 1).DaysSince(domain.NewDate(2024, 1, 1)))
	assert.Equal(t, time.Tuesday, domain.NewDate(2024, 1, 2).Weekday())
}

func TestDate_DaysSince_FarApart(t *testing.T) {
	epoch := domain.NewDate(2024, 1, 1)
	far := domain.NewDate(2400, 1, 1)

	assert.Equal(t, 137331, far.DaysSince(epoch))
	assert.Equal(t, -137331, epoch.DaysSince(far))
	assert.Equal(t, 1, far.AddDays(1).DaysSince(far))
	assert.Equal(t, 3652058, domain.NewDate(9999, 12, 31).DaysSince(domain.NewDate(1, 1, 1)))
}

func TestDateOf_DiscardsTimeOfDay(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	late := time.Date(2024, 1, 5, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, "2024-01-05", domain.DateOf(late).String())
	assert.Equal(t, "2024-01-06", domain.DateIn(late, rome).String())
	assert.True(t, domain.DateOf(late).Equal(domain.DateOf(late.Add(-23*time.Hour))))
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Date domain.Date `json:"date"`
	}

	b, err := json.Marshal(payload{Date: domain.NewDate(2024, 1, 5)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"date":"2024-01-05"}`, string(b))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-12-31"}`), &p))
	assert.Equal(t, domain.NewDate(2024, 12, 31), p.Date)

	err = json.Unmarshal([]byte(`{"date":"31-12-2024"}`), &p)
	assert.ErrorIs(t, err, domain.ErrMalformedDate)
}

func TestDate_Scan(t *testing.T) {
	var d domain.Date

	require.NoError(t, d.Scan(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-06-01", d.String())

	require.NoError(t, d.Scan([]byte("2024-06-02")))
	assert.Equal(t, "2024-06-02", d.String())

	assert.Error(t, d.Scan(42))

	v, err := domain.NewDate(2024, 6, 3).Value()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), v)
}
