package logger

const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

type Config struct {
	// Level is one of debug, info, warning, error. Anything else means info.
	Level string `yaml:"level" env:"BEVEC_LOG_LEVEL"`

	// ServiceName is attached to every entry as "service".
	ServiceName string `yaml:"service_name" env:"BEVEC_SERVICE_NAME"`

	// EnableTracing adds trace_id and span_id to the *WithContext methods'
	// output when the context carries an active span.
	EnableTracing bool `yaml:"enable_tracing" env:"BEVEC_LOG_TRACING"`

	// Console switches from JSON to human readable output, used by the CLI.
	Console bool `yaml:"console" env:"BEVEC_LOG_CONSOLE"`
}
