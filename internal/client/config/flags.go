package config

import (
	"flag"
	"os"
	"time"

	"github.com/ArsStudium-Tech/car-garage-catalog-frontend/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the REST backend (default from Config)
//	-d int      search debounce in milliseconds (default from Config)
//	-p int      catalog page size (default from Config)
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-p"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the REST backend")
	debounceMs := fs.Int("d", int(cfg.SearchDebounce.Milliseconds()), "search debounce (in milliseconds)")
	fs.IntVar(&cfg.PageSize, "p", cfg.PageSize, "catalog page size")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SearchDebounce = time.Duration(*debounceMs) * time.Millisecond
}
