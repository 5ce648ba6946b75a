package config

import (
	"log"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Application config structure
type AppConfig struct {
	Name     string `mapstructure:"service_name" validate:"required"`
	Version  string `mapstructure:"version" validate:"required"`
	Host     string `mapstructure:"host" validate:"required"`
	Port     int    `mapstructure:"port" validate:"required"`
	LogLevel string `mapstructure:"log_level" validate:"required"`
	LogFile  string `mapstructure:"log_file"`

	// media platform credentials; never exposed to clients
	LiveKitAPIKey    string `mapstructure:"livekit_api_key" validate:"required"`
	LiveKitAPISecret string `mapstructure:"livekit_api_secret" validate:"required"`
	LiveKitURL       string `mapstructure:"livekit_url" validate:"required,url"`

	// agent auto-dispatched into rooms for captions/translation
	AgentName string `mapstructure:"agent_name"`

	// comma separated "code=url" pairs taking precedence over the
	// hostname rewrite, e.g. "eu=https://eu.confera.io,us=..."
	RegionURLMap string `mapstructure:"region_url_map"`

	AllowedOrigins string `mapstructure:"allowed_origins"`
}

// RegionOverrides parses RegionURLMap into a code -> url map. Malformed
// pairs are skipped.
func (c *AppConfig) RegionOverrides() map[string]string {
	overrides := map[string]string{}
	for _, pair := range strings.Split(c.RegionURLMap, ",") {
		code, target, found := strings.Cut(strings.TrimSpace(pair), "=")
		if !found || code == "" || target == "" {
			continue
		}
		overrides[code] = target
	}
	return overrides
}

// Origins returns the CORS allow-list. Credentials ride on every browser
// request (suffix cookie), so a wildcard origin is never used.
func (c *AppConfig) Origins() []string {
	if c.AllowedOrigins == "" {
		return []string{"http://localhost:3000"}
	}
	return strings.Split(c.AllowedOrigins, ",")
}

// reading config and intializing configs for application
func InitConfig() (*viper.Viper, error) {
	vConfig := viper.NewWithOptions(viper.KeyDelimiter("__"))

	vConfig.AddConfigPath(".")
	vConfig.SetConfigName(".env")
	path := os.Getenv("ENV_PATH")
	if path != "" {
		log.Printf("env path %v", path)
		vConfig.SetConfigFile(path)
	}
	vConfig.SetConfigType("env")
	vConfig.AutomaticEnv()

	setDefault(vConfig)
	if err := vConfig.ReadInConfig(); err != nil && !os.IsNotExist(err) {
		log.Printf("Reading from env variables.")
	}

	return vConfig, nil
}

func setDefault(v *viper.Viper) {
	v.SetDefault("SERVICE_NAME", "meet-api")
	v.SetDefault("VERSION", "0.0.1")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 8080)
	v.SetDefault("LOG_LEVEL", "debug")
	v.SetDefault("LOG_FILE", "")

	v.SetDefault("LIVEKIT_API_KEY", "")
	v.SetDefault("LIVEKIT_API_SECRET", "")
	v.SetDefault("LIVEKIT_URL", "")

	v.SetDefault("AGENT_NAME", "")
	v.SetDefault("REGION_URL_MAP", "")
	v.SetDefault("ALLOWED_ORIGINS", "")
}

// Getting application config from viper
func GetApplicationConfig(v *viper.Viper) (*AppConfig, error) {
	var config AppConfig
	err := v.Unmarshal(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}

	// valdating the app config
	validate := validator.New()
	err = validate.Struct(&config)
	if err != nil {
		log.Printf("%+v\n", err)
		return nil, err
	}
	return &config, nil
}
