package models

type Configuration struct {
	App      AppConfiguration      `mapstructure:"app"      validate:"required"`
	Database DatabaseConfiguration `mapstructure:"database" validate:"required"`
	Cache    CacheConfiguration    `mapstructure:"cache"`
}

type AppConfiguration struct {
	JWTSecret         string   `mapstructure:"jwt_secret"          validate:"required"`
	LogLevel          string   `mapstructure:"log_level"           validate:"oneof=debug info warn error fatal panic"`
	Port              int      `mapstructure:"port"                validate:"gte=80,lte=65535"`
	AllowedOrigins    []string `mapstructure:"allowed_origins"     validate:"required"`
	TrustedProxies    []string `mapstructure:"trusted_proxies"`
	RequestsPerMinute int      `mapstructure:"requests_per_minute" validate:"gte=1"`
}

type DatabaseConfiguration struct {
	Host     string `mapstructure:"host"     validate:"required"`
	Port     int32  `mapstructure:"port"     validate:"gte=80,lte=65535"`
	User     string `mapstructure:"user"     validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
	Name     string `mapstructure:"name"     validate:"required"`
	SSLMode  string `mapstructure:"sslmode"`
}

// CacheConfiguration is optional: without a cache the rate limiter is
// disabled and the service runs standalone.
type CacheConfiguration struct {
	Type  string                   `mapstructure:"type"  validate:"omitempty,oneof=redis valkey"`
	Redis *RedisCacheConfiguration `mapstructure:"redis" validate:"required_if=Type redis Type valkey"`
}

type RedisCacheConfiguration struct {
	Hosts         []string `mapstructure:"hosts"`
	Password      string   `mapstructure:"password"`
	TLSEnabled    bool     `mapstructure:"tls_enabled"`
	TLSServerName string   `mapstructure:"tls_server_name"`
}
