package config

import "flag"

// parseFlags defines and parses root CLI flags. Remaining arguments are
// available through fs.Args().
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string) error {
	if fs == nil {
		fs = flag.NewFlagSet("taskman", flag.ContinueOnError)
	}
	fs.StringVar(&cfg.Name, "name", cfg.Name, "display name shown in the heading")
	fs.StringVar(&cfg.Store, "store", cfg.Store, "storage backend: json or sqlite")
	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "directory holding stored tasks")
	fs.StringVar(&cfg.Key, "key", cfg.Key, "storage key for the task list")
	fs.StringVar(&cfg.Theme, "theme", cfg.Theme, "output theme: classic, neon or mono")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text, json, logfmt")
	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "log file (relative to data dir, - for stderr)")
	return fs.Parse(args)
}
