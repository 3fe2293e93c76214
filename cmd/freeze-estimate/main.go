package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/coldsnap/freezecalc/internal/app"
	"github.com/coldsnap/freezecalc/pkg/config"
	"github.com/coldsnap/freezecalc/pkg/estimator"
)

func main() {
	var (
		temp       = flag.Float64("temp", 10.0, "Temperature in °F to estimate freeze time for")
		sweep      = flag.Bool("sweep", false, "Print a sampled curve across the plotting range")
		cfgFile    = flag.String("config", "", "Optional YAML configuration file with a custom dataset")
		cfgBackend = flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' or 'sqlite'")
	)
	flag.Parse()

	cfg, err := loadConfig(*cfgFile, *cfgBackend)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	est, err := estimator.New(app.BuildDataset(cfg.Dataset))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building estimator: %v\n", err)
		os.Exit(1)
	}

	printEstimate(est, *temp)

	fmt.Printf("\nReference points:\n")
	for _, a := range est.Anchors() {
		plural := "s"
		if a.Days == 1 {
			plural = ""
		}
		fmt.Printf("  %6.1f°F: %g day%s\n", a.Temperature, a.Days, plural)
	}

	if *sweep {
		printSweep(est, cfg.Display)
	}
}

func loadConfig(cfgFile, cfgBackend string) (*config.Data, error) {
	if cfgFile == "" {
		return config.Default(), nil
	}

	var provider config.Provider
	switch cfgBackend {
	case "yaml":
		provider = config.NewYAMLProvider(cfgFile)
	case "sqlite":
		var err error
		provider, err = config.NewSQLiteProvider(cfgFile)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s", cfgBackend)
	}
	defer provider.Close()

	return provider.LoadConfig()
}

func printEstimate(est *estimator.Estimator, temp float64) {
	result, err := est.Estimate(temp)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Freeze time estimate for %.1f°F\n", temp)
	if !result.Freezes {
		fmt.Printf("  Bedbugs won't freeze: temperature is at or above the freezing point\n")
		return
	}

	fmt.Printf("  Days:           %.1f\n", result.Days)
	if result.Days > 0 {
		fmt.Printf("  Hours:          %.1f\n", result.Hours())
	} else {
		fmt.Printf("  Hours:          instant\n")
	}
	fmt.Printf("  Interpretation: %s\n", estimator.Interpretation(result.Days))
}

func printSweep(est *estimator.Estimator, dc config.DisplayData) {
	defaults := config.DefaultDisplay()
	if dc.SweepPoints < 2 {
		dc.SweepPoints = defaults.SweepPoints
	}
	if dc.SweepMin >= dc.SweepMax {
		dc.SweepMin = defaults.SweepMin
		dc.SweepMax = defaults.SweepMax
	}

	points, err := est.Sweep(dc.SweepMin, dc.SweepMax, dc.SweepPoints)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sweeping curve: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("\nFitted curve (%g°F to %g°F, %d samples):\n", dc.SweepMin, dc.SweepMax, dc.SweepPoints)
	fmt.Printf("  %10s  %10s\n", "Temp (°F)", "Days")
	for _, p := range points {
		days := 0.0
		if p.Result.Freezes {
			days = p.Result.Days
		}
		fmt.Printf("  %10.2f  %10.2f\n", p.Temperature, days)
	}
}
