package leasingapi

import "time"

// Logger интерфейс логгера
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Observer получает длительность и исход каждого запроса к бэкенду
type Observer interface {
	ObserveBackendCall(endpoint, outcome string, d time.Duration)
}
