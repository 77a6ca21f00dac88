package configuration

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/iota-uz/org-rollup/pkg/logging"
)

const (
	EnvPrefix             = "ORG_ROLLUP_"
	DefaultOutputFileName = "org-collection-output.txt"
)

var DefaultEnvFiles = []string{".env", ".env.local"}

var validate = validator.New(validator.WithRequiredStructEnabled())

func LoadEnv(envFiles []string) (int, error) {
	existingFiles := make([]string, 0, len(envFiles))
	for _, file := range envFiles {
		if fi, err := os.Stat(file); err == nil && !fi.IsDir() {
			existingFiles = append(existingFiles, file)
		}
	}

	if len(existingFiles) == 0 {
		return 0, nil
	}

	return len(existingFiles), godotenv.Load(existingFiles...)
}

type Configuration struct {
	LogLevel        string `env:"LOG_LEVEL" envDefault:"warn" validate:"oneof=silent error warn info debug"`
	LogFormat       string `env:"LOG_FORMAT" envDefault:"text" validate:"oneof=text json"`
	OutputFileName  string `env:"OUTPUT_FILE_NAME" envDefault:"org-collection-output.txt" validate:"required,excludesall=/\\"`
	ReportFormat    string `env:"REPORT_FORMAT" envDefault:"text" validate:"oneof=text json yaml xlsx"`
	MetricsTextfile string `env:"METRICS_TEXTFILE"`
	// Orphaned orgs fail the run instead of being reported as warnings.
	StrictOrphans bool `env:"STRICT_ORPHANS" envDefault:"false"`
}

// Load reads the given .env files (missing ones are skipped), parses
// ORG_ROLLUP_* variables and validates the result.
func Load(envFiles []string) (*Configuration, error) {
	if _, err := LoadEnv(envFiles); err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	c := &Configuration{}
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the option values and normalizes case.
func (c *Configuration) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.LogFormat = strings.ToLower(strings.TrimSpace(c.LogFormat))
	c.ReportFormat = strings.ToLower(strings.TrimSpace(c.ReportFormat))

	err := validate.Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s%s: invalid value %q (%s)", EnvPrefix, envName(fe.StructField()), fe.Value(), fe.Tag()))
	}
	sort.Strings(msgs)
	return fmt.Errorf("configuration error: %s", strings.Join(msgs, "; "))
}

func envName(field string) string {
	switch field {
	case "LogLevel":
		return "LOG_LEVEL"
	case "LogFormat":
		return "LOG_FORMAT"
	case "OutputFileName":
		return "OUTPUT_FILE_NAME"
	case "ReportFormat":
		return "REPORT_FORMAT"
	default:
		return strings.ToUpper(field)
	}
}

func (c *Configuration) LogrusLogLevel() logrus.Level {
	switch c.LogLevel {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn":
		return logrus.WarnLevel
	case "info":
		return logrus.InfoLevel
	case "debug":
		return logrus.DebugLevel
	default:
		return logrus.WarnLevel
	}
}

// Logger builds a logger for the configured level and format. A nil out
// writes to stderr.
func (c *Configuration) Logger(out io.Writer) *logrus.Logger {
	if out == nil {
		return logging.ConsoleLogger(c.LogrusLogLevel(), c.LogFormat)
	}
	return logging.NewLogger(out, c.LogrusLogLevel(), c.LogFormat)
}
