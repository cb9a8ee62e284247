package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	sessionsOpened = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workoutlog",
		Subsystem: "sessions",
		Name:      "opened_total",
		Help:      "Number of gym sessions opened.",
	})
	sessionsClosed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workoutlog",
		Subsystem: "sessions",
		Name:      "closed_total",
		Help:      "Number of gym sessions closed.",
	})
	sessionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "workoutlog",
		Subsystem: "sessions",
		Name:      "duration_minutes",
		Help:      "Duration of closed gym sessions in minutes.",
		Buckets:   []float64{15, 30, 45, 60, 90, 120, 180},
	})
	workoutsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workoutlog",
		Subsystem: "workouts",
		Name:      "logged_total",
		Help:      "Number of workouts logged.",
	})
	setsLogged = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workoutlog",
		Subsystem: "workouts",
		Name:      "sets_logged_total",
		Help:      "Number of workout sets logged.",
	})
	exportRows = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "workoutlog",
		Subsystem: "export",
		Name:      "rows_total",
		Help:      "Number of CSV rows exported.",
	})
)

func init() {
	prometheus.MustRegister(sessionsOpened, sessionsClosed, sessionDuration, workoutsLogged, setsLogged, exportRows)
}

// RecordSessionOpened counts an opened gym session.
func RecordSessionOpened() {
	sessionsOpened.Inc()
}

// RecordSessionClosed counts a closed gym session and its duration.
func RecordSessionClosed(durationMin float64) {
	sessionsClosed.Inc()
	sessionDuration.Observe(durationMin)
}

// RecordWorkoutLogged counts a logged workout and its sets.
func RecordWorkoutLogged(sets int) {
	workoutsLogged.Inc()
	setsLogged.Add(float64(sets))
}

// RecordExport counts the rows of a completed CSV export.
func RecordExport(rows int) {
	exportRows.Add(float64(rows))
}
