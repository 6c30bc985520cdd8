package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/mergington/internal/smoke"
	"github.com/okian/mergington/pkg/logger"
)

func main() {
	var (
		baseURL  = flag.String("url", smoke.DefaultBaseURL, "Base URL of the service")
		activity = flag.String("activity", smoke.DefaultActivity, "Activity used for the round trip")
		email    = flag.String("email", "", "Student email to sign up (default: generated)")
		timeout  = flag.Duration("timeout", smoke.DefaultTimeout, "HTTP request timeout")
		verbose  = flag.Bool("verbose", false, "Log every passing check")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		smoke.ShowHelp()
		return
	}

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	report, err := smoke.Run(ctx, smoke.Config{
		BaseURL:  *baseURL,
		Activity: *activity,
		Email:    *email,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}, logger.Named("smoke"))
	os.Stdout.WriteString(report.Summary())
	if err != nil {
		stop()
		os.Exit(1)
	}
}
