package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const forecastJSON = `{
	"timezone": "Asia/Novosibirsk",
	"current_weather": {"temperature": -3.4, "windspeed": 4.2, "time": "2026-10-19T09:00"},
	"daily": {
		"temperature_2m_max": [1.5],
		"temperature_2m_min": [-6],
		"weathercode": [71]
	}
}`

func newTestClient(url string) *Client {
	c := NewClient(url, 2*time.Second)
	c.backoff = time.Millisecond
	return c
}

func TestClient_Today(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "55.0344", r.URL.Query().Get("latitude"))
		assert.Equal(t, "82.9434", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		w.Write([]byte(forecastJSON))
	}))
	defer server.Close()

	w, err := newTestClient(server.URL).Today(context.Background(), 55.0344, 82.9434)
	require.NoError(t, err)

	assert.Equal(t, -3.4, w.CurrentTemp)
	assert.Equal(t, 4.2, w.CurrentWind)
	assert.Equal(t, -6.0, w.TempMin)
	assert.Equal(t, 1.5, w.TempMax)
	assert.Equal(t, 71, w.Code)
	assert.Equal(t, 9, w.ObservedAt.Hour())
	assert.Equal(t, 19, w.ObservedAt.Day())
}

func TestClient_Today_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(forecastJSON))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Today(context.Background(), 55, 82)
	require.NoError(t, err)
	assert.EqualValues(t, 3, calls.Load())
}

func TestClient_Today_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Today(context.Background(), 55, 82)
	assert.Error(t, err)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClient_Today_NoDailyData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current_weather": {"temperature": 1, "windspeed": 1, "time": "2026-10-19T09:00"}, "daily": {}}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Today(context.Background(), 55, 82)
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	w := &model.Weather{
		TempMin:     -6,
		TempMax:     1.5,
		Code:        71,
		CurrentTemp: -3.4,
		CurrentWind: 4.2,
		ObservedAt:  time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC),
	}
	now := time.Date(2026, time.October, 19, 9, 12, 30, 0, time.UTC)

	got := Format(w, now)

	assert.Contains(t, got, "<u>Температура сейчас:</u> -3.4°C")
	assert.Contains(t, got, "<b>Температура сегодня:</b> от -6°C до 1.5°C")
	assert.Contains(t, got, "<b>Ветер:</b> 4.2 м/с")
	assert.Contains(t, got, "<b>Состояние:</b> Лёгкий снег")
	assert.Contains(t, got, "<i>Данные на:</i> 09:00, 19 октября")
	assert.Contains(t, got, "<i>Проверено в:</i> 09:12:30, 19 октября")
}

func TestDescription_Unknown(t *testing.T) {
	assert.Equal(t, "Ясно", Description(0))
	assert.Equal(t, "Неизвестно", Description(42))
}
