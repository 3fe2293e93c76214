package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/coldsnap/freezecalc/internal/app"
	"github.com/coldsnap/freezecalc/internal/log"
	"github.com/coldsnap/freezecalc/pkg/config"
)

const version = "1.0-" + runtime.GOOS + "/" + runtime.GOARCH

func main() {
	cfgFile := flag.String("config", "", "Path to configuration source:\n\t\t\t  YAML: config.yaml\n\t\t\t  SQLite: config.db\n\t\t\t  Omit to run with the built-in reference dataset")
	cfgBackend := flag.String("config-backend", "yaml", "Configuration backend type: 'yaml' for YAML files, 'sqlite' for SQLite databases")
	debug := flag.Bool("debug", false, "Turn on debugging output")
	showVersion := flag.Bool("version", false, "Show version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("freezecalc %s\n", version)
		os.Exit(0)
	}

	// Set up logging
	if err := log.Init(*debug); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	provider, err := buildProvider(*cfgFile, *cfgBackend)
	if err != nil {
		log.Errorf("Failed to load configuration: %v", err)
		os.Exit(1)
	}
	defer provider.Close()

	// Create and run the application
	application := app.New(provider, log.GetSugaredLogger())
	if err := application.Run(context.Background()); err != nil {
		log.Errorf("Application error: %v", err)
		os.Exit(1)
	}
}

func buildProvider(cfgFile, cfgBackend string) (config.Provider, error) {
	if cfgFile == "" {
		log.Info("no -config given; using the built-in reference dataset")
		return staticProvider{cfg: config.Default()}, nil
	}

	filename, _ := filepath.Abs(cfgFile)

	switch cfgBackend {
	case "yaml":
		return config.NewYAMLProvider(filename), nil
	case "sqlite":
		provider, err := config.NewSQLiteProvider(filename)
		if err != nil {
			return nil, fmt.Errorf("error creating SQLite provider: %w", err)
		}
		return provider, nil
	default:
		return nil, fmt.Errorf("unsupported configuration backend: %s. Use 'yaml' or 'sqlite'", cfgBackend)
	}
}

// staticProvider serves the built-in defaults when no config file is given
type staticProvider struct {
	cfg *config.Data
}

func (s staticProvider) LoadConfig() (*config.Data, error)        { return s.cfg, nil }
func (s staticProvider) GetDataset() (*config.DatasetData, error) { return &s.cfg.Dataset, nil }
func (s staticProvider) GetHTTP() (*config.HTTPData, error)       { return &s.cfg.HTTP, nil }
func (s staticProvider) GetDisplay() (*config.DisplayData, error) { return &s.cfg.Display, nil }
func (s staticProvider) IsReadOnly() bool                         { return true }
func (s staticProvider) Close() error                             { return nil }
