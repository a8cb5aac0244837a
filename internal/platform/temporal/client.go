// Package temporal dials the Temporal frontend for the API and the worker.
package temporal

import (
	"errors"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
)

// ErrDisabled is returned by Dial when Temporal is switched off.
var ErrDisabled = errors.New("temporal disabled via TEMPORAL_DISABLED env")

// Settings selects the Temporal frontend.
type Settings struct {
	Address   string
	Namespace string
	Disabled  bool
}

// Dial connects a client with OpenTelemetry tracing and structured logging.
func Dial(settings Settings, tracer trace.Tracer, logger *slog.Logger) (client.Client, error) {
	if settings.Disabled {
		return nil, ErrDisabled
	}
	options, err := ClientOptions(settings, tracer, logger)
	if err != nil {
		return nil, err
	}
	return client.Dial(options)
}

// ClientOptions builds the options Dial uses.
func ClientOptions(settings Settings, tracer trace.Tracer, logger *slog.Logger) (client.Options, error) {
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(temporalotel.TracerOptions{Tracer: tracer})
	if err != nil {
		return client.Options{}, err
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	address := settings.Address
	if address == "" {
		address = client.DefaultHostPort
	}
	namespace := settings.Namespace
	if namespace == "" {
		namespace = client.DefaultNamespace
	}
	options := client.Options{
		HostPort:  address,
		Namespace: namespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return options, nil
}
