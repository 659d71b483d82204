package entity

import "time"

// DateOf descarta la hora: las ventas, gastos y entradas se registran por día calendario.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
