package logger

import (
	"bytes"
	"context"
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestLoggerInit(t *testing.T) {
	Convey("Given the global logger", t, func() {
		So(Init(), ShouldBeNil)
		defer func() {
			So(Sync(), ShouldBeNil)
		}()

		Convey("Then Get should return it", func() {
			So(Get(), ShouldNotBeNil)
		})

		Convey("And Named should return a child logger", func() {
			named := Named("test")
			So(named, ShouldNotBeNil)
			named.Info(context.Background(), "test message", String("k", "v"))
		})
	})
}

func TestLoggerOutput(t *testing.T) {
	Convey("Given a logger writing to a buffer", t, func() {
		So(Init(), ShouldBeNil)
		var buf bytes.Buffer
		log := New(&buf).Named("store")
		ctx := context.Background()

		Convey("When logging at info level", func() {
			log.Info(ctx, "signed up", String("email", "a@mergington.edu"), Int("count", 3), Bool("ok", true))

			Convey("Then the record carries message, fields, name and source", func() {
				out := buf.String()
				So(out, ShouldContainSubstring, "signed up")
				So(out, ShouldContainSubstring, "email=a@mergington.edu")
				So(out, ShouldContainSubstring, "count=3")
				So(out, ShouldContainSubstring, "logger=store")
				So(out, ShouldContainSubstring, "logger_test.go")
			})
		})

		Convey("When logging an error field", func() {
			log.Error(ctx, "failed", Error(errors.New("boom")))
			So(buf.String(), ShouldContainSubstring, "error=boom")
		})

		Convey("When the level is raised to warn", func() {
			So(SetLevelString("warn"), ShouldBeNil)
			defer func() { _ = SetLevelString("info") }()

			log.Info(ctx, "hidden")
			log.Warn(ctx, "visible")

			Convey("Then info records are dropped", func() {
				So(buf.String(), ShouldNotContainSubstring, "hidden")
				So(buf.String(), ShouldContainSubstring, "visible")
			})
		})

		Convey("When nested names are used", func() {
			log.Named("memory").Debug(ctx, "hidden at info")
			log.Named("memory").Warn(ctx, "nested")
			So(buf.String(), ShouldContainSubstring, "logger=store.memory")
		})
	})
}

func TestSetLevelString(t *testing.T) {
	Convey("Given level strings", t, func() {
		defer func() { _ = SetLevelString("info") }()

		Convey("Then known levels are accepted case-insensitively", func() {
			for _, lvl := range []string{"debug", "INFO", "", "warn", "Warning", "error"} {
				So(SetLevelString(lvl), ShouldBeNil)
			}
		})

		Convey("And unknown levels are rejected", func() {
			So(SetLevelString("verbose"), ShouldNotBeNil)
		})
	})
}

func TestDiscard(t *testing.T) {
	Convey("Given a discard logger", t, func() {
		log := Discard()
		Convey("Then logging does not panic", func() {
			So(func() { log.Error(context.Background(), "dropped") }, ShouldNotPanic)
		})
	})
}
