package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	. "github.com/smartystreets/goconvey/convey"
)

func scrape(reg *prometheus.Registry) string {
	rec := httptest.NewRecorder()
	promhttp.HandlerFor(reg, promhttp.HandlerOpts{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", http.NoBody))
	body, _ := io.ReadAll(rec.Body)
	return string(body)
}

func TestManagerCreation(t *testing.T) {
	Convey("Given a fresh registry", t, func() {
		reg := prometheus.NewRegistry()

		Convey("When creating a manager with options", func() {
			m := NewManager(
				WithPrometheusRegistry(reg),
				WithNamespace("school"),
				WithSubsystem("clubs"),
				WithHistogramBuckets([]float64{0.01, 0.1, 1}),
				WithConstLabels(map[string]string{"env": "test"}),
			)
			So(m, ShouldNotBeNil)

			m.RecordSignup("Chess Club", ResultSuccess)

			Convey("Then metric names follow the namespace and subsystem", func() {
				out := scrape(reg)
				So(out, ShouldContainSubstring, `school_clubs_signups_total{activity="Chess Club",env="test",result="success"} 1`)
			})
		})

		Convey("When registering the same collectors twice", func() {
			NewManager(WithPrometheusRegistry(reg))

			Convey("Then the second registration panics", func() {
				So(func() { NewManager(WithPrometheusRegistry(reg)) }, ShouldPanic)
			})
		})
	})
}

func TestManagerRecording(t *testing.T) {
	Convey("Given a manager on its own registry", t, func() {
		reg := prometheus.NewRegistry()
		m := NewManager(WithPrometheusRegistry(reg))

		Convey("When recording domain events", func() {
			m.RecordSignup("Chess Club", ResultSuccess)
			m.RecordSignup("Chess Club", ResultSuccess)
			m.RecordSignup("Chess Club", ResultAlreadyRegistered)
			m.RecordUnregistration("Gym Class", ResultNotRegistered)
			m.UpdateActivityCount(9)
			m.UpdateParticipantCount(18)
			m.UpdateActivityParticipants("Chess Club", 3)

			Convey("Then the exposition reflects them", func() {
				out := scrape(reg)
				So(out, ShouldContainSubstring, `mergington_activities_signups_total{activity="Chess Club",result="success"} 2`)
				So(out, ShouldContainSubstring, `mergington_activities_signups_total{activity="Chess Club",result="already_registered"} 1`)
				So(out, ShouldContainSubstring, `mergington_activities_unregistrations_total{activity="Gym Class",result="not_registered"} 1`)
				So(out, ShouldContainSubstring, "mergington_activities_activities 9")
				So(out, ShouldContainSubstring, "mergington_activities_participants 18")
				So(out, ShouldContainSubstring, `mergington_activities_activity_participants{activity="Chess Club"} 3`)
			})

			Convey("And deleting an activity removes only its series", func() {
				m.UpdateActivityParticipants("Gym Class", 2)
				So(m.DeleteActivityParticipants("Chess Club"), ShouldBeTrue)
				So(m.DeleteActivityParticipants("Chess Club"), ShouldBeFalse)
				out := scrape(reg)
				So(out, ShouldNotContainSubstring, `activity_participants{activity="Chess Club"}`)
				So(out, ShouldContainSubstring, `mergington_activities_activity_participants{activity="Gym Class"} 2`)
			})
		})

		Convey("When recording HTTP traffic", func() {
			m.RecordHTTPRequest("signup", http.MethodPost, "400")
			m.RecordHTTPRequestDuration("signup", http.MethodPost, "400", 0.002)
			m.RecordErrorByEndpoint("signup", http.MethodPost, "client_error")

			Convey("Then the http subsystem carries them", func() {
				out := scrape(reg)
				So(out, ShouldContainSubstring, `mergington_http_requests_total{endpoint="signup",method="POST",status_code="400"} 1`)
				So(out, ShouldContainSubstring, `mergington_http_request_duration_seconds_count{endpoint="signup",method="POST",status_code="400"} 1`)
				So(out, ShouldContainSubstring, `mergington_http_errors_total{endpoint="signup",error_type="client_error",method="POST"} 1`)
			})
		})
	})
}

func TestGlobalHelpers(t *testing.T) {
	Convey("Given the global manager", t, func() {
		Convey("Then the package helpers record without panicking", func() {
			So(func() {
				RecordSignup("Art Club", ResultSuccess)
				RecordUnregistration("Art Club", ResultSuccess)
				UpdateActivityCount(1)
				UpdateParticipantCount(2)
				UpdateActivityParticipants("Art Club", 2)
				DeleteActivityParticipants("Art Club")
				RecordHTTPRequest("activities", http.MethodGet, "200")
				RecordHTTPRequestDuration("activities", http.MethodGet, "200", 0.001)
				RecordErrorByEndpoint("activities", http.MethodGet, "not_found")
			}, ShouldNotPanic)
		})

		Convey("And the registry exposes the recorded series", func() {
			RecordSignup("Art Club", ResultSuccess)
			So(scrape(GetRegistry()), ShouldContainSubstring, "mergington_activities_signups_total")
		})
	})
}
