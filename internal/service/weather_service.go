package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/campus_bot/internal/model"
	"github.com/Freeeeeet/campus_bot/internal/weather"
	"go.uber.org/zap"
)

// WeatherProvider источник погоды для точки
type WeatherProvider interface {
	Today(ctx context.Context, lat, lon float64) (*model.Weather, error)
}

type WeatherService struct {
	provider WeatherProvider
	lat, lon float64
	loc      *time.Location
	logger   *zap.Logger
}

func NewWeatherService(provider WeatherProvider, lat, lon float64, loc *time.Location, logger *zap.Logger) *WeatherService {
	if loc == nil {
		loc = time.Local
	}
	return &WeatherService{
		provider: provider,
		lat:      lat,
		lon:      lon,
		loc:      loc,
		logger:   logger,
	}
}

// Report погода у кампуса в виде сообщения
func (s *WeatherService) Report(ctx context.Context) (string, error) {
	w, err := s.provider.Today(ctx, s.lat, s.lon)
	if err != nil {
		s.logger.Warn("Weather request failed", zap.Error(err))
		return "", fmt.Errorf("get weather: %w", err)
	}
	return weather.Format(w, time.Now().In(s.loc)), nil
}
