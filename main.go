package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/andareed/dynonview/config"
	"github.com/andareed/dynonview/dataset"
	"github.com/andareed/dynonview/logging"
	tea "github.com/charmbracelet/bubbletea"
)

var logFile = flag.String("debug", "", "Write Debug Logs to file")

func main() {
	versionFlag := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "YAML config file (default: dynonview.yaml in the data directory, if present)")
	dirFlag := flag.String("dir", "", "directory holding the SkyView CSV logs (overrides data_dir)")
	noCache := flag.Bool("no-cache", false, "do not read or write the parsed-file cache")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: dynonview [flags] [file.csv]\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	// --- EARLY EXIT ---
	if *versionFlag {
		fmt.Println("Version:", Version)
		os.Exit(0)
	}

	cleanup, err := logging.SetupLogging(*logFile)
	if err != nil {
		log.Fatalf("Failed to setup logging %v", err)
	}
	defer cleanup()

	logging.Infof("dynonview %s: started", Version)

	selected := ""
	if args := flag.Args(); len(args) > 0 {
		selected = filepath.Base(args[0])
		if *dirFlag == "" {
			*dirFlag = filepath.Dir(args[0])
		}
	}

	cfg, err := loadConfig(*configPath, *dirFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}

	files, err := dataset.Discover(cfg.DataDir, cfg.Extension)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot list %s: %v\n", cfg.DataDir, err)
		os.Exit(1)
	}
	logging.Infof("found %d %s files in %s", len(files), cfg.Extension, cfg.DataDir)

	cache := dataset.NewCache()
	cachePath := cacheFilePath(cfg, *noCache)
	if cachePath != "" {
		if err := cache.Restore(cachePath); err != nil {
			logging.Warnf("ignoring cache %s: %v", cachePath, err)
		}
	}

	m := newModel(cfg, cache, files, selected)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		logging.Errorf("Tea program error: %v", err)
		fmt.Println("Error:", err)
	}

	if cachePath != "" {
		if err := cache.Save(cachePath); err != nil {
			logging.Warnf("saving cache %s: %v", cachePath, err)
		}
	}
}

// loadConfig reads the config file if one is given or found in dir, and
// applies the directory override.
func loadConfig(path, dir string) (*config.Config, error) {
	explicit := path != ""
	if !explicit {
		base := dir
		if base == "" {
			base = "."
		}
		path = filepath.Join(base, "dynonview.yaml")
	}

	cfg, err := config.Load(path)
	switch {
	case err == nil:
		logging.Infof("config loaded from %s", path)
	case !explicit && errors.Is(err, fs.ErrNotExist):
		cfg = config.Default()
	default:
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	if dir != "" {
		cfg.DataDir = dir
	}
	return cfg, nil
}

func cacheFilePath(cfg *config.Config, disabled bool) string {
	if disabled || cfg.CacheFile == "" {
		return ""
	}
	if filepath.IsAbs(cfg.CacheFile) {
		return cfg.CacheFile
	}
	return filepath.Join(cfg.DataDir, cfg.CacheFile)
}
