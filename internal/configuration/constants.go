package configuration

const AppName = "catalog-stats"

// JWT audience for full access tokens issued by the identity service.
const AudienceAccessToken = "app:*"

// AccessTokenExpiry is the signed token lifetime in minutes (local tooling
// and tests only; real tokens come from the identity service).
const AccessTokenExpiry = 60

const (
	CacheMaxAppIdentityLifetime = 60
	CacheAppIdentityKey         = "app:identity"
	CacheAppRateLimitKey        = "app:ratelimit:%s"
)

var ArrayConfigFields = []string{
	"app.allowed_origins",
	"app.trusted_proxies",
	"cache.redis.hosts",
}

var ConfigFileSearchPaths = []string{
	"./config.yaml",
	"templates/config.yaml",
}
