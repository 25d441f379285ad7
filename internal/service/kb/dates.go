package kb

import (
	"fmt"
	"time"
)

// genitive month names as they follow a day number
var ruMonths = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatRussianDate renders t as the feed shows it, e.g. "4 сентября 2025".
func FormatRussianDate(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), ruMonths[t.Month()-1], t.Year())
}
