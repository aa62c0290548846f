package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"crawl/internal/crawl/rating"
	"crawl/internal/domain/entity"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "16KB"
	defaultRequestTimeout     = 60 * time.Second
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		// Upper bound on one crawl request, covering every upstream lookup
		RequestTimeout time.Duration `json:"requestTimeout" yaml:"requestTimeout"`
		Timeouts       struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	// Routing configuration for graph construction and path search
	Routing *RoutingConfig `json:"routing" yaml:"routing"`

	// Rating normalization
	Rating *RatingConfig `json:"rating" yaml:"rating"`

	// Crime statistics penalty
	Crime *CrimeConfig `json:"crime" yaml:"crime"`

	// Places provider for candidate locations
	Places *PlacesConfig `json:"places" yaml:"places"`

	// Directions provider for walking costs and segment polylines
	Directions *DirectionsConfig `json:"directions" yaml:"directions"`

	// Cache configuration for route cost lookups
	Cache *CacheConfig `json:"cache" yaml:"cache"`
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// RoutingConfig defines graph construction and path search tunables
type RoutingConfig struct {
	// Minimum and maximum number of stops on a crawl
	MinLength int `json:"minLength" yaml:"minLength"`
	MaxLength int `json:"maxLength" yaml:"maxLength"`

	// Multiplier applied to every edge cost when scoring a path
	CostScale float64 `json:"costScale" yaml:"costScale"`

	// Number of nearest neighbors each location is connected to before repair
	NeighborCount int `json:"neighborCount" yaml:"neighborCount"`

	// Routes with more stops than this are discarded before selection, 0 disables the cap
	MaxRouteVertices *int `json:"maxRouteVertices" yaml:"maxRouteVertices"`

	// Number of concurrent route cost lookups
	Concurrency int `json:"concurrency" yaml:"concurrency"`

	// Edge weight source: "duration" (minutes) or "distance" (kilometers)
	CostMetric string `json:"costMetric" yaml:"costMetric"`
}

// RatingConfig defines how raw ratings are rescaled into vertex weights
type RatingConfig struct {
	Ceiling float64  `json:"ceiling" yaml:"ceiling"`
	Weight  *float64 `json:"weight" yaml:"weight"`
	Offset  float64  `json:"offset" yaml:"offset"`
}

// CrimeConfig defines the optional crime penalty applied to location quality
type CrimeConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// data.police.uk API base URL
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`

	// Month of street-level crimes, YYYY-MM; empty uses the latest available
	Month string `json:"month" yaml:"month"`

	// Radius around each location in which incidents are counted
	RadiusKm float64 `json:"radiusKm" yaml:"radiusKm"`

	// Quality subtracted per incident
	PenaltyPerIncident float64 `json:"penaltyPerIncident" yaml:"penaltyPerIncident"`

	Timeout time.Duration `json:"timeout" yaml:"timeout"`
}

// PlacesConfig defines the candidate location provider
type PlacesConfig struct {
	// Provider type: "google" for Google Places or "file" for a local JSON file
	Provider string `json:"provider" yaml:"provider"`

	APIKey string `json:"apiKey" yaml:"apiKey"`

	// Text query sent to the provider, e.g. "pub"
	Query string `json:"query" yaml:"query"`

	// Default search radius in kilometers
	RadiusKm float64 `json:"radiusKm" yaml:"radiusKm"`

	// Maximum radius a request may ask for
	MaxRadiusKm float64 `json:"maxRadiusKm" yaml:"maxRadiusKm"`

	// Fetch per-place details (phone, website)
	Details bool `json:"details" yaml:"details"`

	// Path of the JSON file for the file provider
	File string `json:"file" yaml:"file"`
}

// DirectionsConfig defines the walking directions provider and its call policy
type DirectionsConfig struct {
	// Provider type: "google", "osrm", "haversine" or "network"
	Provider string `json:"provider" yaml:"provider"`

	APIKey string `json:"apiKey" yaml:"apiKey"`

	OSRMBaseURL string `json:"osrmBaseUrl" yaml:"osrmBaseUrl"`

	// Walking speed used by the haversine and network providers
	WalkingSpeedKmh float64 `json:"walkingSpeedKmh" yaml:"walkingSpeedKmh"`

	// Directory holding nodes.csv and ways.csv for the network provider
	NetworkDataPath string `json:"networkDataPath" yaml:"networkDataPath"`

	// Maximum distance a location may lie from the walking network
	MaxSnapDistanceMeters float64 `json:"maxSnapDistanceMeters" yaml:"maxSnapDistanceMeters"`

	// Per-request timeout
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// Retries after the first attempt and the initial backoff between them
	Retries      int           `json:"retries" yaml:"retries"`
	RetryBackoff time.Duration `json:"retryBackoff" yaml:"retryBackoff"`

	// Upstream request rate limit, 0 disables limiting
	RatePerSecond float64 `json:"ratePerSecond" yaml:"ratePerSecond"`
	Burst         int     `json:"burst" yaml:"burst"`
}

// CacheConfig defines the in-memory route cost cache
type CacheConfig struct {
	Enabled bool `json:"enabled" yaml:"enabled"`

	// Time after which an entry can be evicted
	LifeWindow time.Duration `json:"lifeWindow" yaml:"lifeWindow"`

	// Hard limit of the cache size in MB, 0 is unlimited
	HardMaxCacheSizeMB int `json:"hardMaxCacheSizeMb" yaml:"hardMaxCacheSizeMb"`
}

// ToEntity converts the routing section into the immutable search config, applying
// defaults for unset values
func (c *RoutingConfig) ToEntity() (entity.RoutingConfig, error) {
	cfg := entity.DefaultRoutingConfig()
	if c == nil {
		return cfg, nil
	}

	if c.MinLength > 0 {
		cfg.MinLength = c.MinLength
	}
	if c.MaxLength > 0 {
		cfg.MaxLength = c.MaxLength
	}
	if c.CostScale > 0 {
		cfg.CostScale = c.CostScale
	}
	if c.NeighborCount > 0 {
		cfg.NeighborCount = c.NeighborCount
	}
	if c.MaxRouteVertices != nil {
		cfg.MaxRouteVertices = *c.MaxRouteVertices
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}

	switch entity.CostMetric(strings.ToLower(c.CostMetric)) {
	case "":
	case entity.CostMetricDuration:
		cfg.CostMetric = entity.CostMetricDuration
	case entity.CostMetricDistance:
		cfg.CostMetric = entity.CostMetricDistance
	default:
		return cfg, errors.Errorf("unknown routing cost metric %q", c.CostMetric)
	}

	if cfg.MaxLength < cfg.MinLength {
		return cfg, errors.Errorf("routing maxLength %d is below minLength %d", cfg.MaxLength, cfg.MinLength)
	}
	if cfg.MaxRouteVertices < 0 {
		return cfg, errors.Errorf("routing maxRouteVertices %d is negative", cfg.MaxRouteVertices)
	}

	return cfg, nil
}

// ToOptions converts the rating section into normalizer options
func (c *RatingConfig) ToOptions() rating.Options {
	opts := rating.DefaultOptions()
	if c == nil {
		return opts
	}

	if c.Ceiling > 0 {
		opts.Ceiling = c.Ceiling
	}
	if c.Weight != nil {
		opts.Weight = *c.Weight
	}
	opts.Offset = c.Offset

	return opts
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	// Build list of paths to search for config file
	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			abs := filepath.Join(pwd, path)
			searchPaths = append(searchPaths, abs)
		}
	}

	// Try to find and load the config file
	var configFile string
	var found bool
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			configFile = candidate
			found = true

			break
		}
	}

	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	// Load YAML config file
	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Load environment variables
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			// Convert ENV_VAR_NAME to path and align each segment with existing YAML keys.
			// Example: DIRECTIONS_OSRMBASEURL -> directions.osrmBaseUrl (not directions.osrmbaseurl)
			key := canonicalizeEnvKey(k, existingConfigMap)

			return key, v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	// Unmarshal into the config struct (case-insensitive to match env vars)
	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				// Case-insensitive matching for env var overrides
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.HTTP.MaxRequestBodySize) == "" {
		cfg.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if cfg.HTTP.RequestTimeout <= 0 {
		cfg.HTTP.RequestTimeout = defaultRequestTimeout
	}

	applyDefaults(cfg)

	if _, err := cfg.Routing.ToEntity(); err != nil {
		return nil, errors.Wrap(err, "invalid routing config")
	}

	return cfg, nil
}

// applyDefaults fills the optional sections so consumers never see a nil section
func applyDefaults(cfg *Config) {
	if cfg.Routing == nil {
		cfg.Routing = &RoutingConfig{}
	}
	if cfg.Rating == nil {
		cfg.Rating = &RatingConfig{}
	}
	if cfg.Crime == nil {
		cfg.Crime = &CrimeConfig{}
	}
	if cfg.Places == nil {
		cfg.Places = &PlacesConfig{}
	}
	if cfg.Directions == nil {
		cfg.Directions = &DirectionsConfig{}
	}
	if cfg.Cache == nil {
		cfg.Cache = &CacheConfig{}
	}
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}
