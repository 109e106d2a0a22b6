// Package settlement contiene la lógica pura de cierre de jornada: el
// cálculo del bucket de jornada (que no coincide con el día calendario),
// los rangos calendario para reportes y la agregación de compras en un
// resumen diario.
package settlement

import "time"

// DefaultStartHour es la hora a la que arranca la jornada del acopio.
// La jornada va de las 06:00 de un día a las 06:00 del siguiente.
const DefaultStartHour = 6

// DayBucket resuelve el intervalo semiabierto [start, end) de la jornada que
// contiene a anchor. Si la hora local de anchor es anterior a startHour, la
// jornada empezó a startHour del día calendario anterior; si no, a startHour
// del mismo día. end es exactamente 24 horas después de start.
//
// Todo el cálculo ocurre en la zona horaria de anchor (la zona de referencia
// fija del negocio); no se modela horario de verano.
func DayBucket(anchor time.Time, startHour int) (start, end time.Time) {
	y, m, d := anchor.Date()
	start = time.Date(y, m, d, startHour, 0, 0, 0, anchor.Location())
	if anchor.Before(start) {
		start = start.AddDate(0, 0, -1)
	}
	end = start.Add(24 * time.Hour)
	return start, end
}

// BucketKey devuelve la clave persistida del bucket que empieza en start.
// Se usa en la restricción única (depot_id, bucket_key) que garantiza a lo
// sumo un resumen por acopio por jornada, incluso bajo concurrencia.
func BucketKey(start time.Time) string {
	return start.Format("20060102T15")
}

// MonthRange devuelve el intervalo calendario [1 del mes, 1 del mes
// siguiente) en la zona loc. Es deliberadamente distinto de DayBucket: los
// reportes por mes y año van alineados al calendario, no a la jornada.
func MonthRange(year int, month time.Month, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, month, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// YearRange devuelve el intervalo calendario [1 de enero, 1 de enero del año
// siguiente) en la zona loc.
func YearRange(year int, loc *time.Location) (start, end time.Time) {
	start = time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	end = start.AddDate(1, 0, 0)
	return start, end
}

// CalendarDayRange devuelve el intervalo [00:00, 24:00) del día calendario
// que contiene a anchor. Usado por las vistas de admin por fecha.
func CalendarDayRange(anchor time.Time) (start, end time.Time) {
	y, m, d := anchor.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, anchor.Location())
	end = start.AddDate(0, 0, 1)
	return start, end
}
