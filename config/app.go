package config

const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

type App struct {
	Port          string `env:"APP_PORT" default:"8080"`
	Env           string `env:"APP_ENV" default:"dev"`
	LogLevel      string `env:"LOG_LEVEL" default:"info"`
	StoreDriver   string `env:"STORE_DRIVER" default:"mongo"`
	MongoURI      string `env:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string `env:"MONGODB_DATABASE" default:"local_library"`
	DatabaseURL   string `env:"DATABASE_URL"`
	SeedData      bool   `env:"SEED_DATA" default:"false"`
	PublicDir     string `env:"PUBLIC_DIR" default:"public"`
}

func (a App) IsDev() bool { return a.Env == "dev" || a.Env == "development" }
