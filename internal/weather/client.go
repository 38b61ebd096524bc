package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/sethvargo/go-retry"
)

const DefaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Client клиент open-meteo
type Client struct {
	baseURL    string
	httpClient *http.Client
	attempts   uint64
	backoff    time.Duration
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		attempts:   2,
		backoff:    300 * time.Millisecond,
	}
}

type forecastResponse struct {
	CurrentWeather struct {
		Temperature float64 `json:"temperature"`
		Windspeed   float64 `json:"windspeed"`
		Time        string  `json:"time"`
	} `json:"current_weather"`
	Daily struct {
		TemperatureMax []float64 `json:"temperature_2m_max"`
		TemperatureMin []float64 `json:"temperature_2m_min"`
		WeatherCode    []int     `json:"weathercode"`
	} `json:"daily"`
	Timezone string `json:"timezone"`
}

// Today текущая погода и прогноз на сегодня для точки
func (c *Client) Today(ctx context.Context, lat, lon float64) (*model.Weather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	params.Set("daily", "temperature_2m_max,temperature_2m_min,weathercode")
	params.Set("current_weather", "true")
	params.Set("windspeed_unit", "ms")
	params.Set("timezone", "auto")

	var resp forecastResponse
	backoff := retry.WithMaxRetries(c.attempts, retry.NewConstant(c.backoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		return c.fetch(ctx, c.baseURL+"?"+params.Encode(), &resp)
	})
	if err != nil {
		return nil, fmt.Errorf("fetch forecast: %w", err)
	}

	if len(resp.Daily.TemperatureMax) == 0 || len(resp.Daily.TemperatureMin) == 0 || len(resp.Daily.WeatherCode) == 0 {
		return nil, fmt.Errorf("forecast has no daily data")
	}

	observed, err := parseObservedAt(resp.CurrentWeather.Time, resp.Timezone)
	if err != nil {
		return nil, fmt.Errorf("parse observation time: %w", err)
	}

	return &model.Weather{
		TempMin:     resp.Daily.TemperatureMin[0],
		TempMax:     resp.Daily.TemperatureMax[0],
		Code:        resp.Daily.WeatherCode[0],
		CurrentTemp: resp.CurrentWeather.Temperature,
		CurrentWind: resp.CurrentWeather.Windspeed,
		ObservedAt:  observed,
	}, nil
}

// fetch ошибки сети и 5xx повторяются, остальное - нет
func (c *Client) fetch(ctx context.Context, rawURL string, out *forecastResponse) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return retry.RetryableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 500 {
		return retry.RetryableError(fmt.Errorf("unexpected status code %d", resp.StatusCode))
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func parseObservedAt(value, timezone string) (time.Time, error) {
	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}
	return time.ParseInLocation("2006-01-02T15:04", value, loc)
}
