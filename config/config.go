package config

import (
	"context"
	"database/sql"
	"log"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
)

func MustInitPostgres() *sql.DB {
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbName := os.Getenv("DB_NAME")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")

	connStr := "host=" + dbHost + " port=" + dbPort + " user=" + dbUser +
		" password=" + dbPassword + " dbname=" + dbName + " sslmode=disable"

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	if err = db.Ping(); err != nil {
		log.Fatal("Failed to ping database:", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return db
}

func MustInitRedis() *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_HOST") + ":" + os.Getenv("REDIS_PORT"),
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	return client
}

func NewKafkaWriter(topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:     kafka.TCP(os.Getenv("KAFKA_BROKER")),
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	}
}

// MustInitS3 builds the S3 client for the shared image bucket. Static
// credentials and a custom endpoint make it work against MinIO and friends.
func MustInitS3() *s3.Client {
	region := getenv("S3_REGION", "us-east-1")
	key := os.Getenv("S3_KEY")
	secret := os.Getenv("S3_SECRET")
	endpoint := os.Getenv("S3_ENDPOINT")

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}
	if key != "" && secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(context.Background(), opts...)
	if err != nil {
		log.Fatal("Failed to load S3 config:", err)
	}

	clientOpts := []func(*s3.Options){}
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		})
	}

	return s3.NewFromConfig(cfg, clientOpts...)
}

func S3Bucket() string {
	return getenv("S3_BUCKET", "app-images")
}

// S3PublicURL is the base URL public object links are built from.
func S3PublicURL() string {
	if url := os.Getenv("S3_URL"); url != "" {
		return url
	}
	return "https://" + S3Bucket() + ".s3." + getenv("S3_REGION", "us-east-1") + ".amazonaws.com"
}

func JWTSecret() string {
	return getenv("JWT_SECRET", "change-me-in-production")
}

func BaseURL() string {
	return getenv("BASE_URL", "http://localhost:8080")
}

func HTTPAddr() string {
	return ":" + getenv("PORT", "8080")
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
