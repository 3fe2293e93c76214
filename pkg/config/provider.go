package config

// Provider defines the interface for configuration data sources
type Provider interface {
	// Load complete configuration
	LoadConfig() (*Data, error)

	// Get specific configuration sections
	GetDataset() (*DatasetData, error)
	GetHTTP() (*HTTPData, error)
	GetDisplay() (*DisplayData, error)

	// Configuration management (for SQLite-specific operations)
	IsReadOnly() bool
	Close() error
}

// Data represents the complete configuration structure
type Data struct {
	Dataset DatasetData `json:"dataset" yaml:"dataset"`
	HTTP    HTTPData    `json:"http,omitempty" yaml:"http,omitempty"`
	Display DisplayData `json:"display,omitempty" yaml:"display,omitempty"`
}

// AnchorData is one empirical (temperature, days) pair in the
// configured dataset.
type AnchorData struct {
	Temperature float64 `json:"temperature" yaml:"temperature"`
	Days        float64 `json:"days" yaml:"days"`
}

// DatasetData holds the anchor points and freeze thresholds the
// estimator is built from. The threshold fields are pointers so that an
// omitted value can be defaulted from the outermost anchors.
type DatasetData struct {
	Anchors            []AnchorData `json:"anchors" yaml:"anchors"`
	InstantFreezeBelow *float64     `json:"instant_freeze_below,omitempty" yaml:"instant_freeze_below,omitempty"`
	NoFreezeAbove      *float64     `json:"no_freeze_above,omitempty" yaml:"no_freeze_above,omitempty"`
}

// HTTPData holds the configuration for the HTTP presentation server
type HTTPData struct {
	ListenAddr  string `json:"listen_addr,omitempty" yaml:"listen_addr,omitempty"`
	Port        int    `json:"port,omitempty" yaml:"port,omitempty"`
	TLSCertPath string `json:"cert,omitempty" yaml:"cert,omitempty"`
	TLSKeyPath  string `json:"key,omitempty" yaml:"key,omitempty"`
}

// DisplayData holds UI affordances: the suggested input range and step
// for the temperature form, and the sampling range for the plotted
// curve. These constrain nothing in the estimator itself.
type DisplayData struct {
	InputMin    float64 `json:"input_min,omitempty" yaml:"input_min,omitempty"`
	InputMax    float64 `json:"input_max,omitempty" yaml:"input_max,omitempty"`
	InputStep   float64 `json:"input_step,omitempty" yaml:"input_step,omitempty"`
	SweepMin    float64 `json:"sweep_min,omitempty" yaml:"sweep_min,omitempty"`
	SweepMax    float64 `json:"sweep_max,omitempty" yaml:"sweep_max,omitempty"`
	SweepPoints int     `json:"sweep_points,omitempty" yaml:"sweep_points,omitempty"`
}

// Default returns the built-in configuration: the four published
// empirical anchors, standard thresholds, and the display ranges used
// by the original calculator.
func Default() *Data {
	lower := -15.0
	upper := 32.0
	return &Data{
		Dataset: DatasetData{
			Anchors: []AnchorData{
				{Temperature: -15, Days: 0},
				{Temperature: -4, Days: 2},
				{Temperature: 0, Days: 4},
				{Temperature: 32, Days: 21},
			},
			InstantFreezeBelow: &lower,
			NoFreezeAbove:      &upper,
		},
		HTTP: HTTPData{
			ListenAddr: "0.0.0.0",
			Port:       8080,
		},
		Display: DefaultDisplay(),
	}
}

// DefaultDisplay returns the display defaults: input range -30..35 with
// a 0.5 step, curve sampled over -20..33 with 100 points.
func DefaultDisplay() DisplayData {
	return DisplayData{
		InputMin:    -30,
		InputMax:    35,
		InputStep:   0.5,
		SweepMin:    -20,
		SweepMax:    33,
		SweepPoints: 100,
	}
}
