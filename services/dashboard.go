package services

import (
	"fmt"
	"time"
)

// Greeting returns the dashboard greeting for the given local time
func Greeting(now time.Time, name string) string {
	part := "Evening"
	switch hour := now.Hour(); {
	case hour < 12:
		part = "Morning"
	case hour < 18:
		part = "Afternoon"
	}
	return fmt.Sprintf("Good %s, %s!", part, name)
}
