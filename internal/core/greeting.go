package core

import "time"

// The four fixed greeting strings of the dashboard.
const (
	GreetingMorning = "Доброе утро!"
	GreetingDay     = "Добрый день!"
	GreetingEvening = "Добрый вечер!"
	GreetingNight   = "Доброй ночи!"
)

// Greeting maps the hour of day to a greeting using half-open bins:
// [5,12) morning, [12,18) day, [18,21) evening, night otherwise.
func Greeting(t time.Time) string {
	switch hour := t.Hour(); {
	case hour >= 5 && hour < 12:
		return GreetingMorning
	case hour >= 12 && hour < 18:
		return GreetingDay
	case hour >= 18 && hour < 21:
		return GreetingEvening
	default:
		return GreetingNight
	}
}
