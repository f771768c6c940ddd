// CoffeeMaker is a simulated coffee vending controller.
//
// Usage:
//
//	coffeemaker [console] [--config coffeemaker.yaml] [--verbose] [--quiet] [--chime]
//	coffeemaker make --slot 1 --paid 75
//	coffeemaker inventory
//	coffeemaker recipes
//	coffeemaker init [--force]
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/hammamikhairi/coffeemaker/internal/chime"
	"github.com/hammamikhairi/coffeemaker/internal/config"
	"github.com/hammamikhairi/coffeemaker/internal/display"
	"github.com/hammamikhairi/coffeemaker/internal/domain"
	"github.com/hammamikhairi/coffeemaker/internal/engine"
	"github.com/hammamikhairi/coffeemaker/internal/inventory"
	"github.com/hammamikhairi/coffeemaker/internal/logger"
	"github.com/hammamikhairi/coffeemaker/internal/monitor"
	"github.com/hammamikhairi/coffeemaker/internal/recipe"
)

var (
	// Global flags
	cfgPath   string
	verbose   bool
	quiet     bool
	chimeFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "coffeemaker",
	Short: "Simulated coffee vending controller",
	Long: `CoffeeMaker manages up to three recipes, four ingredients, and a
purchase flow that either brews and returns change or refunds in full.

Run without arguments to start the interactive operator console.`,
	SilenceUsage: true,
	RunE:         runConsole,
}

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive operator console",
	RunE:  runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "coffeemaker.yaml", "path to the YAML config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable verbose/debug logging")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "disable all logging")
	rootCmd.PersistentFlags().BoolVar(&chimeFlag, "chime", false, "play an audio chime on each purchase")

	rootCmd.AddCommand(consoleCmd, makeCmd, inventoryCmd, recipesCmd, initCmd)
}

func main() {
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// machine is a fully wired coffee maker plus the resources to release.
type machine struct {
	engine  *engine.Engine
	log     *logger.Logger
	chimer  *chime.ChimingNotifier // nil when the chime is off
	stock   *monitor.Supervisor    // nil when low-stock alerts are off
	closers []io.Closer
}

func (m *machine) Close() {
	if m.stock != nil {
		m.stock.Stop()
	}
	if m.chimer != nil {
		m.chimer.Wait()
	}
	_ = m.log.Sync()
	for _, c := range m.closers {
		// The log file is the only closer; there is nowhere left to report a failure.
		_ = c.Close()
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Logging.Level = "verbose"
	}
	if quiet {
		cfg.Logging.Level = "off"
	}
	if chimeFlag {
		cfg.Chime.Enabled = true
	}
	return cfg, nil
}

// newLogger directs logs to the configured file so the console stays
// clean. If the file cannot be opened it warns on stderr and logs there.
func newLogger(cfg *config.Config, stderr io.Writer) (*logger.Logger, io.Closer) {
	level := logger.ParseLevel(cfg.Logging.Level)

	f := cfg.Logging.File
	if level == logger.LevelOff || f == "" || f == "stderr" {
		return logger.New(level, stderr), nil
	}

	file, err := openLogFile(f)
	if err != nil {
		fmt.Fprintf(stderr, "warning: %v (falling back to stderr)\n", err)
		return logger.New(level, stderr), nil
	}
	return logger.New(level, file), file
}

func openLogFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory %s: %w", dir, err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return file, nil
}

// buildMachine wires the engine from config. text receives purchase
// notifications; it is wrapped with a chime when enabled.
func buildMachine(cfg *config.Config, text domain.Notifier, log *logger.Logger) (*machine, error) {
	book := recipe.NewBook(log)
	for _, r := range cfg.SeedRecipes() {
		if err := book.Add(r); err != nil {
			return nil, fmt.Errorf("seeding recipes: %w", err)
		}
	}
	inv := inventory.New(log, inventory.WithLevels(cfg.Levels()))

	m := &machine{log: log}

	notifier := text
	if cfg.Chime.Enabled {
		var speaker chime.Speaker
		player, err := chime.NewPlayer(log)
		if err != nil {
			log.Error("audio player init failed, chime disabled: %v", err)
			speaker = chime.NewNoOp(log)
		} else {
			speaker = player
		}
		m.chimer = chime.NewChimingNotifier(text, speaker, log)
		notifier = m.chimer
	}

	m.engine = engine.New(book, inv, log, engine.WithNotifier(notifier))
	if mc := cfg.Monitor; mc.Enabled {
		m.stock = monitor.New(inv, notifier, log,
			monitor.WithTickInterval(mc.Interval),
			monitor.WithThreshold(mc.Threshold),
		)
	}
	log.Info("machine ready: %d recipe(s), stock %v", book.Len(), inv.Levels())
	return m, nil
}

// setup loads config, builds the logger, and wires the machine. text
// builds the notifier that purchase outcomes and stock alerts are printed to.
func setup(text func(cfg *config.Config) domain.Notifier) (*machine, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	log, closer := newLogger(cfg, os.Stderr)
	m, err := buildMachine(cfg, text(cfg), log)
	if err != nil {
		if closer != nil {
			closer.Close()
		}
		return nil, err
	}
	if closer != nil {
		m.closers = append(m.closers, closer)
	}
	return m, nil
}

// printNotifier writes notifications to w.
func printNotifier(w io.Writer) func(*config.Config) domain.Notifier {
	return func(*config.Config) domain.Notifier {
		return display.NewLineNotifier(w)
	}
}
