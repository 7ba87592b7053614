package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the profile module. Lifecycle counters
// are labelled by profile kind so dashboards can split agencies, maids and
// sponsors without separate metric families.
type Metrics struct {
	ProfilesCreated   *prometheus.CounterVec
	ProfilesSubmitted *prometheus.CounterVec
	ProfilesVerified  *prometheus.CounterVec
	ProfilesRejected  *prometheus.CounterVec
	ProfilesArchived  *prometheus.CounterVec
	DocumentsUploaded *prometheus.CounterVec
	SaveConflicts     prometheus.Counter

	GetDuration    prometheus.Histogram
	MutateDuration prometheus.Histogram
}

// New creates a Metrics instance with all profile module metrics registered.
func New() *Metrics {
	kinds := []string{"kind"}
	return &Metrics{
		ProfilesCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worklink_profiles_created_total",
			Help: "Total number of profiles created",
		}, kinds),
		ProfilesSubmitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worklink_profiles_submitted_total",
			Help: "Total number of profiles submitted for verification",
		}, kinds),
		ProfilesVerified: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worklink_profiles_verified_total",
			Help: "Total number of profiles verified",
		}, kinds),
		ProfilesRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worklink_profiles_rejected_total",
			Help: "Total number of profiles rejected",
		}, kinds),
		ProfilesArchived: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worklink_profiles_archived_total",
			Help: "Total number of profiles archived",
		}, kinds),
		DocumentsUploaded: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "worklink_profile_documents_uploaded_total",
			Help: "Total number of document slots assigned",
		}, kinds),
		SaveConflicts: promauto.NewCounter(prometheus.CounterOpts{
			Name: "worklink_profile_save_conflicts_total",
			Help: "Optimistic-concurrency conflicts on profile saves",
		}),
		GetDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worklink_profile_get_duration_seconds",
			Help:    "Duration of profile reads",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		MutateDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "worklink_profile_mutate_duration_seconds",
			Help:    "Duration of load-mutate-save cycles",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// ObserveGet records the duration of a profile read.
func (m *Metrics) ObserveGet(start time.Time) {
	m.GetDuration.Observe(time.Since(start).Seconds())
}

// ObserveMutate records the duration of a load-mutate-save cycle.
func (m *Metrics) ObserveMutate(start time.Time) {
	m.MutateDuration.Observe(time.Since(start).Seconds())
}
