/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Seednode/whodle/games/whodle"
	"github.com/Seednode/whodle/games/whodle/store"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	bind         string
	configFile   string
	cookieSecret string
	epoch        string
	imageData    string
	maxGuesses   int
	port         int
	prefix       string
	profile      bool
	shareURL     string
	store        string
	storePath    string
	storeURL     string
	textData     string
	timezone     string
	tlsCert      string
	tlsKey       string
	verbose      bool
	version      bool

	cal    *whodle.Calendar
	flavor whodle.Flavor
}

func (c *Config) validate() error {
	if (c.tlsCert == "") != (c.tlsKey == "") {
		return errors.New("both --tls-cert and --tls-key must be provided together")
	}
	if c.port < 1 || c.port > 65535 {
		return fmt.Errorf("invalid port (must be between 1-65535 inclusive): %d", c.port)
	}
	if c.maxGuesses < 1 {
		return fmt.Errorf("invalid max guesses (must be at least 1): %d", c.maxGuesses)
	}
	if !store.Valid(c.store) {
		return fmt.Errorf("invalid store (must be one of %s): %s", strings.Join(store.Kinds, ", "), c.store)
	}
	switch strings.ToLower(c.store) {
	case "file", "sqlite":
		if c.storePath == "" {
			return fmt.Errorf("--store-path is required for store %s", c.store)
		}
	case "postgres", "mysql":
		if c.storeURL == "" {
			return fmt.Errorf("--store-url is required for store %s", c.store)
		}
	}
	cal, err := whodle.NewCalendar(c.timezone, c.epoch)
	if err != nil {
		return err
	}
	c.cal = cal
	if c.textData == "" && c.imageData == "" {
		return errors.New("at least one of --text-data or --image-data must be provided")
	}
	return nil
}

func (c *Config) scheme() string {
	if c.tlsCert != "" && c.tlsKey != "" {
		return "https"
	}
	return "http"
}

// source returns the dataset location for mode, or "" when the mode is disabled.
func (c *Config) source(mode whodle.Mode) string {
	switch mode.Name {
	case whodle.TextMode.Name:
		return c.textData
	case whodle.ImageMode.Name:
		return c.imageData
	}
	return ""
}

// loadFlavor overlays the flavor tables from the config file, if any, onto
// the defaults.
func (c *Config) loadFlavor(v *viper.Viper) error {
	c.flavor = whodle.DefaultFlavor()

	if c.configFile == "" {
		return nil
	}

	v.SetConfigFile(c.configFile)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config %s: %w", c.configFile, err)
	}

	if v.IsSet("win_messages") {
		c.flavor.WinMessages = v.GetStringSlice("win_messages")
	}
	if v.IsSet("lose_messages") {
		c.flavor.LoseMessages = v.GetStringSlice("lose_messages")
	}
	if v.IsSet("emojis") {
		c.flavor.Emojis = v.GetStringMapString("emojis")
	}
	if v.IsSet("default_emoji") {
		c.flavor.DefaultEmoji = v.GetString("default_emoji")
	}

	return nil
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		_ = v.BindPFlag(f.Name, f)
		_ = v.BindEnv(f.Name)
		if !f.Changed && v.IsSet(f.Name) {
			_ = fs.Set(f.Name, fmt.Sprintf("%v", v.Get(f.Name)))
		}
	})
}

func normalize(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func newCmd(cfg *Config) *cobra.Command {
	// A missing .env is fine; anything already in the environment wins.
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("WHODLE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	cmd := &cobra.Command{
		Use:           "whodle",
		Short:         "Guess who sent today's message, one puzzle per mode per day.",
		Args:          cobra.ExactArgs(0),
		SilenceErrors: true,
		Version:       releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.validate(); err != nil {
				return err
			}
			return cfg.loadFlavor(v)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ServePage(cmd.Context(), cfg, args)
		},
	}

	pfs := cmd.PersistentFlags()
	pfs.SetNormalizeFunc(normalize)

	pfs.StringVar(&cfg.configFile, "config", "", "path to config file with flavor text tables (env: WHODLE_CONFIG)")
	pfs.StringVar(&cfg.epoch, "epoch", whodle.DefaultEpoch, "date of puzzle #1, as YYYY-MM-DD (env: WHODLE_EPOCH)")
	pfs.StringVar(&cfg.imageData, "image-data", "", "path or URL of the image mode dataset (env: WHODLE_IMAGE_DATA)")
	pfs.IntVar(&cfg.maxGuesses, "max-guesses", whodle.DefaultMaxGuesses, "guesses allowed per puzzle (env: WHODLE_MAX_GUESSES)")
	pfs.StringVar(&cfg.shareURL, "share-url", whodle.DefaultShareURL, "link appended to share text (env: WHODLE_SHARE_URL)")
	pfs.StringVar(&cfg.textData, "text-data", "", "path or URL of the text mode dataset (env: WHODLE_TEXT_DATA)")
	pfs.StringVar(&cfg.timezone, "timezone", whodle.DefaultZone, "time zone that decides when the puzzle rolls over (env: WHODLE_TIMEZONE)")
	pfs.BoolVarP(&cfg.verbose, "verbose", "v", false, "display additional output (env: WHODLE_VERBOSE)")

	fs := cmd.Flags()
	fs.SetNormalizeFunc(normalize)

	fs.StringVarP(&cfg.bind, "bind", "b", "0.0.0.0", "address to bind to (env: WHODLE_BIND)")
	fs.StringVar(&cfg.cookieSecret, "cookie-secret", "", "key used to sign player cookies; random per process if unset (env: WHODLE_COOKIE_SECRET)")
	fs.IntVarP(&cfg.port, "port", "p", 8080, "port to listen on (env: WHODLE_PORT)")
	fs.StringVar(&cfg.prefix, "prefix", "", "path to prepend to all URLs, for use behind reverse proxy (env: WHODLE_PREFIX)")
	fs.BoolVar(&cfg.profile, "profile", false, "register net/http/pprof handlers (env: WHODLE_PROFILE)")
	fs.StringVar(&cfg.store, "store", "memory", "session store: "+strings.Join(store.Kinds, ", ")+" (env: WHODLE_STORE)")
	fs.StringVar(&cfg.storePath, "store-path", "", "directory for file store, or database file for sqlite (env: WHODLE_STORE_PATH)")
	fs.StringVar(&cfg.storeURL, "store-url", "", "connection string for postgres or mysql (env: WHODLE_STORE_URL)")
	fs.StringVar(&cfg.tlsCert, "tls-cert", "", "path to tls certificate (env: WHODLE_TLS_CERT)")
	fs.StringVar(&cfg.tlsKey, "tls-key", "", "path to tls keyfile (env: WHODLE_TLS_KEY)")
	fs.BoolVarP(&cfg.version, "version", "V", false, "display version and exit (env: WHODLE_VERSION)")

	bindFlags(v, pfs)
	bindFlags(v, fs)

	cmd.AddCommand(newPlayCmd(cfg, v), newTodayCmd(cfg, v), newStatsCmd(cfg, v))

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("whodle v{{.Version}}\n")

	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	return cmd
}
