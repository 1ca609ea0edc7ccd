package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the application configuration
type Config struct {
	Port     string
	Env      string
	MongoURI string
	DBName   string
	DocStore string // mongo or memory

	StorageType string // local or s3
	UploadDir   string
	PublicURL   string
	S3Bucket    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string

	// Bootstrap admin, created on startup when the email is unused
	AdminName     string
	AdminEmail    string
	AdminPassword string

	FirebaseCredentialsBase64 string
	FirebaseCredentialsFile   string
	FirebaseProjectID         string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string

	WholesaleFetchLimit   int
	WholesaleStrictMirror bool
}

// Load reads the configuration from the environment, after loading .env
// when one is present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Warn("Warning: .env file not found")
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = os.Getenv("MONGODB_URI")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		MongoURI: mongoURI,
		DBName:   getEnv("DB_NAME", "barrim"),
		DocStore: strings.ToLower(getEnv("DOC_STORE", "mongo")),

		StorageType: strings.ToLower(getEnv("STORAGE_TYPE", "local")),
		UploadDir:   getEnv("UPLOAD_DIR", "uploads"),
		PublicURL:   getEnv("PUBLIC_URL", "http://localhost:8080"),
		S3Bucket:    os.Getenv("S3_BUCKET"),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:  os.Getenv("S3_ENDPOINT"),
		S3AccessKey: os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey: os.Getenv("S3_SECRET_KEY"),
		S3PublicURL: os.Getenv("S3_PUBLIC_URL"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),

		AdminName:     getEnv("ADMIN_NAME", "Admin"),
		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		FirebaseCredentialsBase64: os.Getenv("FIREBASE_CREDENTIALS_BASE64"),
		FirebaseCredentialsFile:   os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),
		FirebaseProjectID:         getEnv("FIREBASE_PROJECT_ID", "barrim-93482"),

		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: getEnvInt("SMTP_PORT", 587),
		SMTPUser: os.Getenv("SMTP_USER"),
		SMTPPass: os.Getenv("SMTP_PASS"),

		WholesaleFetchLimit:   getEnvInt("WHOLESALE_FETCH_LIMIT", 100),
		WholesaleStrictMirror: os.Getenv("WHOLESALE_STRICT_MIRROR") == "true",
	}
}

// IsDevelopment reports whether the service runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.Env == "development" || c.Env == "dev"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		logrus.Warnf("Invalid integer for %s: %q, using %d", key, v, fallback)
		return fallback
	}
	return n
}
