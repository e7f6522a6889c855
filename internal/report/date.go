package report

import (
	"fmt"
	"time"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// SpanishMonth returns the lowercase Spanish name of t's month.
func SpanishMonth(t time.Time) string {
	return spanishMonths[t.Month()-1]
}

// LongDate formats t as "6 de enero de 2026".
func LongDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), SpanishMonth(t), t.Year())
}

// FileName returns the report file name for t, e.g.
// "reporte de prensa 06 de enero.docx".
func FileName(t time.Time) string {
	return fmt.Sprintf("reporte de prensa %02d de %s.docx", t.Day(), SpanishMonth(t))
}
