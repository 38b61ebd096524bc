package model

import "time"

// Weather текущая погода и прогноз на сегодня
type Weather struct {
	TempMin     float64
	TempMax     float64
	Code        int
	CurrentTemp float64
	CurrentWind float64
	ObservedAt  time.Time
}
