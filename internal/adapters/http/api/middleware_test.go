package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/okian/mergington/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGetErrorType(t *testing.T) {
	Convey("Given HTTP status codes", t, func() {
		So(getErrorType(http.StatusInternalServerError), ShouldEqual, "server_error")
		So(getErrorType(http.StatusNotFound), ShouldEqual, "not_found")
		So(getErrorType(http.StatusUnprocessableEntity), ShouldEqual, "validation_error")
		So(getErrorType(http.StatusBadRequest), ShouldEqual, "client_error")
		So(getErrorType(http.StatusOK), ShouldEqual, "unknown")
	})
}

func TestResponseWriterCapturesStatus(t *testing.T) {
	Convey("Given a wrapped response writer", t, func() {
		rec := httptest.NewRecorder()
		rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}

		Convey("When the handler writes a body without a header", func() {
			_, err := rw.Write([]byte("ok"))
			So(err, ShouldBeNil)
			So(rw.statusCode, ShouldEqual, http.StatusOK)
		})

		Convey("When the handler sets a status", func() {
			rw.WriteHeader(http.StatusNotFound)
			So(rw.statusCode, ShouldEqual, http.StatusNotFound)
			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestAccessLog(t *testing.T) {
	Convey("Given the access log middleware at debug level", t, func() {
		So(logger.Init(), ShouldBeNil)
		So(logger.SetLevelString("debug"), ShouldBeNil)
		defer func() { _ = logger.SetLevelString("info") }()

		var buf bytes.Buffer
		h := RequestID(AccessLog(logger.New(&buf), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})))

		req := httptest.NewRequest(http.MethodGet, "/activities", http.NoBody).WithContext(context.Background())
		req.Header.Set(RequestIDHeader, "req-1")
		h.ServeHTTP(httptest.NewRecorder(), req)

		Convey("Then one record with method, path and status is written", func() {
			out := buf.String()
			So(out, ShouldContainSubstring, "http request")
			So(out, ShouldContainSubstring, "path=/activities")
			So(out, ShouldContainSubstring, "status=418")
			So(out, ShouldContainSubstring, "request_id=req-1")
		})
	})
}

func TestStatusFor(t *testing.T) {
	Convey("Given a missing email error", t, func() {
		status, detail := statusFor(ErrMissingEmail)
		So(status, ShouldEqual, http.StatusUnprocessableEntity)
		So(detail, ShouldEqual, DetailMissingEmail)
	})
}
