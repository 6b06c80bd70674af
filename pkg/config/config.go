package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/securecookie"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

const (
	DefaultListenAddr       = ":8080"
	DefaultOrigin           = "*"
	DefaultSiteRoot         = "./orailix.com"
	DefaultNewsURLPrefix    = "/news"
	DefaultPlaceholderImage = "/static/image-not-found.png"
	DefaultManifestName     = "manifest.txt"
	DefaultCertFile         = "/etc/letsencrypt/live/orailix.com/fullchain.pem"
	DefaultKeyFile          = "/etc/letsencrypt/live/orailix.com/privkey.pem"
)

// ErrHelp is returned by Load when --help was requested.
var ErrHelp = errors.New("help requested")

// Config is built once at startup and handed to every component that needs it.
type Config struct {
	ListenAddr string `validate:"required"`
	Origin     string `validate:"required"`
	HTTPS      bool

	SiteRoot         string `validate:"required"`
	NewsDir          string `validate:"required"`
	NewsURLPrefix    string `validate:"required,startswith=/"`
	PlaceholderImage string `validate:"required"`
	ManifestName     string `validate:"required"`

	CertFile string `validate:"required_if=HTTPS true"`
	KeyFile  string `validate:"required_if=HTTPS true"`

	SessionSecret []byte `validate:"min=16"`
	Debug         bool
}

// Options are the command line flags. Anything set here wins over the environment.
type Options struct {
	ListenAddr string `long:"ip" value-name:"ADDR" description:"Bind to this [ip:port]"`
	Origin     string `long:"origin" value-name:"ORIGIN" description:"Access-Control-Allow-Origin value"`
	HTTPS      bool   `long:"https" description:"Run with https enabled"`
	SiteRoot   string `long:"site-root" value-name:"DIR" description:"Directory holding index.html, news/ and static/"`
	CertFile   string `long:"cert" value-name:"FILE" description:"TLS certificate chain (with --https)"`
	KeyFile    string `long:"key" value-name:"FILE" description:"TLS private key (with --https)"`
	Debug      bool   `long:"debug" description:"Enable debug logging"`
}

// Load reads .env, the environment and the given command line arguments, in
// that order of increasing priority, and validates the result.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := fromEnv()

	var opts Options
	parser := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, flagsErr.Message)
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("failed to parse command line arguments: %w", err)
	}
	cfg.apply(opts)

	if cfg.NewsDir == "" {
		cfg.NewsDir = filepath.Join(cfg.SiteRoot, "news")
	}
	if len(cfg.SessionSecret) == 0 {
		cfg.SessionSecret = securecookie.GenerateRandomKey(32)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fromEnv() *Config {
	// Helper to get env with default
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	getBool := func(key string) bool {
		v, err := strconv.ParseBool(os.Getenv(key))
		return err == nil && v
	}

	return &Config{
		ListenAddr:       getEnv("LISTEN_ADDR", DefaultListenAddr),
		Origin:           getEnv("ORIGIN", DefaultOrigin),
		HTTPS:            getBool("HTTPS"),
		SiteRoot:         getEnv("SITE_ROOT", DefaultSiteRoot),
		NewsDir:          os.Getenv("NEWS_DIR"),
		NewsURLPrefix:    getEnv("NEWS_URL_PREFIX", DefaultNewsURLPrefix),
		PlaceholderImage: getEnv("PLACEHOLDER_IMAGE", DefaultPlaceholderImage),
		ManifestName:     getEnv("MANIFEST_NAME", DefaultManifestName),
		CertFile:         getEnv("TLS_CERT_FILE", DefaultCertFile),
		KeyFile:          getEnv("TLS_KEY_FILE", DefaultKeyFile),
		SessionSecret:    []byte(os.Getenv("SESSION_SECRET")),
		Debug:            getBool("DEBUG"),
	}
}

func (c *Config) apply(opts Options) {
	if opts.ListenAddr != "" {
		c.ListenAddr = opts.ListenAddr
	}
	if opts.Origin != "" {
		c.Origin = opts.Origin
	}
	if opts.SiteRoot != "" {
		c.SiteRoot = opts.SiteRoot
	}
	if opts.CertFile != "" {
		c.CertFile = opts.CertFile
	}
	if opts.KeyFile != "" {
		c.KeyFile = opts.KeyFile
	}
	c.HTTPS = c.HTTPS || opts.HTTPS
	c.Debug = c.Debug || opts.Debug
}

var validate = validator.New()

// Validate checks the struct tags above.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
