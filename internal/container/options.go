package container

// Options configures the HTTP server. humacli exposes every field as a flag
// and as a SERVICE_* environment variable.
type Options struct {
	Port        int    `default:"8888"   help:"Port to listen on"                                       short:"p"`
	BaseURL     string `help:"Public base URL of short links; derived from each request when empty"`
	FrontendURL string `help:"Base URL of the recipe frontend; defaults to the short link base"`
	CodeLength  int    `default:"6"      help:"Length of generated short codes"                         short:"c"`
	MaxAttempts int    `default:"10"     help:"Code draws before a mint gives up"`
	Storage     string `default:"memory" help:"Link storage backend: memory, postgres or redis"         short:"s"`
	DatabaseURL string `help:"PostgreSQL connection string"`
	RedisAddr   string `help:"Redis server address; empty disables Redis"                               short:"r"`
	CacheTTL    int    `default:"3600"   help:"Seconds links stay in the Redis cache in front of PostgreSQL; 0 disables it"`
	LogFormat   string `default:"json"   help:"Log format: json or console"`
	LogLevel    string `default:"info"   help:"Minimum log level"`

	PublishEvents bool `default:"false" help:"Publish link analytics events to Redis Streams"`
}

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
	StorageRedis    = "redis"
)
