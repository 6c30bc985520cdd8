package site

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSiteHandler(t *testing.T) {
	Convey("Given the site registered on a mux", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux, nil)

		Convey("When requesting the root", func() {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it redirects with 307 to the index page", func() {
				So(w.Code, ShouldEqual, http.StatusTemporaryRedirect)
				So(w.Header().Get("Location"), ShouldEqual, "/static/index.html")
			})
		})

		Convey("When requesting the index page", func() {
			req := httptest.NewRequest(http.MethodGet, "/static/index.html", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)

			Convey("Then it is served without a redirect", func() {
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, "text/html")
				So(w.Body.String(), ShouldContainSubstring, "Mergington High School")
			})
		})

		Convey("When requesting the script and stylesheet", func() {
			for path, ctype := range map[string]string{
				"/static/app.js":     "javascript",
				"/static/styles.css": "text/css",
			} {
				req := httptest.NewRequest(http.MethodGet, path, http.NoBody)
				w := httptest.NewRecorder()
				mux.ServeHTTP(w, req)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldContainSubstring, ctype)
			}
		})

		Convey("When requesting /static/ itself", func() {
			req := httptest.NewRequest(http.MethodGet, "/static/", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("When requesting a missing asset", func() {
			req := httptest.NewRequest(http.MethodGet, "/static/missing.png", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When requesting another top-level path", func() {
			req := httptest.NewRequest(http.MethodGet, "/some-asset", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSiteCustomFS(t *testing.T) {
	Convey("Given a site backed by a custom filesystem", t, func() {
		mux := http.NewServeMux()
		Register(context.Background(), mux, fstest.MapFS{
			"index.html":     {Data: []byte("<html>custom</html>")},
			"img/logo.svg":   {Data: []byte("<svg/>")},
			"img/nested/x.t": {Data: []byte("x")},
		})

		Convey("Then files come from that filesystem", func() {
			req := httptest.NewRequest(http.MethodGet, "/static/index.html", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldEqual, "<html>custom</html>")
		})

		Convey("And nested files are reachable", func() {
			req := httptest.NewRequest(http.MethodGet, "/static/img/logo.svg", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("And directories are not listed", func() {
			req := httptest.NewRequest(http.MethodGet, "/static/img", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestSiteHandlerWithNilMux(t *testing.T) {
	Convey("Given a nil mux", t, func() {
		Convey("Then Register panics", func() {
			So(func() { Register(context.Background(), nil, nil) }, ShouldPanic)
		})
	})
}

func TestDir(t *testing.T) {
	Convey("Given an empty directory setting", t, func() {
		So(Dir(""), ShouldNotBeNil)
	})
	Convey("Given a directory on disk", t, func() {
		dir := t.TempDir()
		So(Dir(dir), ShouldNotBeNil)
	})
}
