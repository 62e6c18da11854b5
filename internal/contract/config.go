package contract

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/sartorproj/goseasonal/seasonal"
	"github.com/sartorproj/goseasonal/timeseries"
	"github.com/sartorproj/goseasonal/trend"
	log "github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Default values for configuration.
const (
	DefaultThresh    = 0.9
	DefaultMinEV     = 0.05
	DefaultMinPeriod = 2
	DefaultPrecision = 2
	MaxPrecision     = 6
)

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// OutputMode selects how reports are written.
type OutputMode string

// Output modes.
const (
	TextOut    OutputMode = "text"
	CSVOut     OutputMode = "csv"
	JSONOut    OutputMode = "json"
	YAMLOut    OutputMode = "yaml"
	ParquetOut OutputMode = "parquet"
)

// ValidOutputModes is the set of accepted --output values.
var ValidOutputModes = map[OutputMode]bool{
	TextOut:    true,
	CSVOut:     true,
	JSONOut:    true,
	YAMLOut:    true,
	ParquetOut: true,
}

// Config holds the validated runtime configuration of a command.
type Config struct {
	Files    []string
	CSV      *timeseries.CSVOptions
	Split    float64
	Seasonal *seasonal.Config
	Detrend  bool // periodogram only: remove the trend before the spectrum

	Detail     bool
	Output     OutputMode
	OutputFile string
	SaveDir    string // adjust only: directory for one adjusted CSV per input
	Precision  int
	UseColors  bool

	Logger *log.Logger
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// Set from positional args
	Files []string `mapstructure:"-"`

	// --- Input ---
	Column     string  `mapstructure:"column"`
	DateFormat string  `mapstructure:"date-format"`
	Split      float64 `mapstructure:"split"`

	// --- Model ---
	Trend     string  `mapstructure:"trend"`
	Period    int     `mapstructure:"period"`
	Thresh    float64 `mapstructure:"thresh"`
	MinEV     float64 `mapstructure:"minev"`
	MinPeriod int     `mapstructure:"min-period"`
	PTimes    float64 `mapstructure:"ptimes"`
	Workers   int     `mapstructure:"workers"`
	Detrend   bool    `mapstructure:"detrend"`

	// --- Output ---
	Detail     bool   `mapstructure:"detail"`
	Output     string `mapstructure:"output"`
	OutputFile string `mapstructure:"output-file"`
	SaveDir    string `mapstructure:"save-dir"`
	Precision  int    `mapstructure:"precision"`
	Color      string `mapstructure:"color"`
	LogLevel   string `mapstructure:"log-level"`
	LogFormat  string `mapstructure:"log-format"`
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and fills in cfg.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if len(input.Files) == 0 {
		return fmt.Errorf("at least one CSV file is required")
	}
	cfg.Files = input.Files

	if err := processInput(cfg, input); err != nil {
		return err
	}
	if err := processOutput(cfg, input); err != nil {
		return err
	}
	logger, err := NewLogger(input.LogLevel, input.LogFormat)
	if err != nil {
		return err
	}
	cfg.Logger = logger
	return processModel(cfg, input)
}

func processInput(cfg *Config, input *ConfigRawInput) error {
	cfg.CSV = timeseries.DefaultCSVOptions()
	if input.DateFormat != "" {
		cfg.CSV.DateFormat = input.DateFormat
	}
	column := strings.TrimSpace(input.Column)
	if column != "" {
		if idx, err := strconv.Atoi(column); err == nil {
			cfg.CSV.ValueIndex = idx
		} else {
			cfg.CSV.ValueColumn = column
		}
	}

	if input.Split < 0 {
		return fmt.Errorf("split must not be negative (received %g)", input.Split)
	}
	cfg.Split = input.Split
	return nil
}

func processModel(cfg *Config, input *ConfigRawInput) error {
	kind, err := trend.ParseKind(input.Trend)
	if err != nil {
		return fmt.Errorf("invalid --trend value: %w", err)
	}
	if input.Period < 0 {
		return fmt.Errorf("period must not be negative (received %d)", input.Period)
	}
	if input.Thresh < 0 || input.Thresh > 1 {
		return fmt.Errorf("thresh must be within [0, 1] (received %g)", input.Thresh)
	}
	if input.MinEV < 0 || input.MinEV > 1 {
		return fmt.Errorf("minev must be within [0, 1] (received %g)", input.MinEV)
	}
	if input.PTimes <= 0 {
		return fmt.Errorf("ptimes must be greater than 0 (received %g)", input.PTimes)
	}
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}

	sc := seasonal.DefaultConfig()
	sc.Period = input.Period
	sc.Trend = kind
	sc.Thresh = input.Thresh
	sc.MinEV = input.MinEV
	sc.MinPeriod = max(input.MinPeriod, DefaultMinPeriod)
	sc.PTimes = input.PTimes
	sc.Workers = input.Workers
	sc.Logger = cfg.Logger
	cfg.Seasonal = sc
	cfg.Detrend = input.Detrend
	return nil
}

func processOutput(cfg *Config, input *ConfigRawInput) error {
	cfg.Detail = input.Detail
	cfg.OutputFile = input.OutputFile

	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be within [0, %d] (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = OutputMode(strings.ToLower(input.Output))
	if cfg.Output == "" {
		cfg.Output = TextOut
	}
	if !ValidOutputModes[cfg.Output] {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, yaml, parquet", input.Output)
	}
	if cfg.Output == ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}
	if input.SaveDir != "" {
		info, err := os.Stat(input.SaveDir)
		if err != nil {
			return fmt.Errorf("invalid --save-dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("invalid --save-dir: %s is not a directory", input.SaveDir)
		}
	}
	cfg.SaveDir = input.SaveDir

	switch strings.ToLower(input.Color) {
	case "", "auto":
		cfg.UseColors = cfg.OutputFile == "" && term.IsTerminal(int(os.Stdout.Fd()))
	default:
		colors, err := ParseBoolString(input.Color)
		if err != nil {
			return fmt.Errorf("invalid --color value: %w", err)
		}
		cfg.UseColors = colors
	}
	return nil
}

// NewLogger builds the stderr logger used for fit tracing. Level is a logrus
// level name; format is "text" or "json".
func NewLogger(level, format string) (*log.Logger, error) {
	logger := log.New()
	logger.SetOutput(os.Stderr)

	if level == "" {
		level = "warn"
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level value: %w", err)
	}
	logger.SetLevel(lvl)

	switch strings.ToLower(format) {
	case "", "text":
		logger.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		return nil, fmt.Errorf("invalid log format '%s'. must be text, json", format)
	}
	return logger, nil
}
