package config

import (
	"os"
	"strings"
	"time"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

type Config struct {
	Mode     Mode
	HTTPAddr string

	// Store backend for sessions/metrics/results/rubrics: "sql" or "mongo".
	StoreDriver string

	DBDriver string // sqlite|postgres (STORE_DRIVER=sql)
	DBDSN    string

	MongoURI string // STORE_DRIVER=mongo
	MongoDB  string

	RedisAddr string // result cache + competency task queue; empty disables both

	// External AI evaluator. Empty base URL means the evaluator is not
	// configured and scoring runs rule-based only.
	AIBaseURL   string
	AIAPIKey    string
	AITimeout   time.Duration
	AIEvaluator string // evaluator model identifier sent with each request

	EnableLocalAuth bool
	AuthSecret      string

	AdminUser     string
	AdminPassHash string // bcrypt

	CORSOriginsOnline  []string
	CORSOriginsOffline []string
}

func FromEnv() Config {
	mode := Mode(os.Getenv("MODE"))
	if mode == "" {
		mode = ModeOffline
	}
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	return Config{
		Mode:     mode,
		HTTPAddr: addr,

		StoreDriver: envOr("STORE_DRIVER", "sql"),
		DBDriver:    envOr("DB_DRIVER", "sqlite"),
		DBDSN:       envOr("DB_DSN", ""),
		MongoURI:    envOr("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     envOr("MONGO_DB", "clinsim"),

		RedisAddr: os.Getenv("REDIS_ADDR"),

		AIBaseURL:   os.Getenv("AI_BASE_URL"),
		AIAPIKey:    os.Getenv("AI_API_KEY"),
		AITimeout:   envDurationMS("AI_TIMEOUT_MS", 10*time.Second),
		AIEvaluator: envOr("AI_EVALUATOR", "clinical-eval-1"),

		EnableLocalAuth: envBool("ENABLE_LOCAL_AUTH", true),
		AuthSecret:      envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),

		AdminUser:     envOr("ADMIN_USER", "admin"),
		AdminPassHash: envOr("ADMIN_PASS_HASH", "$2y$12$pyZAiWaTfVtM7UElIRStvOC3gNbnp70nmQU4eYopLGBfCJr1DOvji"),

		CORSOriginsOnline:  csvOr("CORS_ORIGINS_ONLINE", "https://sim.virtualpatient.health"),
		CORSOriginsOffline: csvOr("CORS_ORIGINS_OFFLINE", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDurationMS(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v + "ms")
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
