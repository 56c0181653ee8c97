package appconfig

import (
	"time"

	"gdhotel.dev/backend/internal/app/appcontext"
)

type ConfigSpec struct {
	// ServiceAddress is the listen address the server would listen on for serving requests.
	ServiceAddress string `required:"true" split_words:"true" default:"localhost:9030"`

	// LogJsonStdout is whether to log JSON logs (instead of pretty-print logs) to stdout
	// for the ease of log collection.
	LogJsonStdout bool `split_words:"true" default:"false"`

	// DevMode to indicate development mode. When true, the program would spin up utilities
	// for debugging and provide a more contextual message when encountered a panic.
	DevMode bool `split_words:"true"`

	// PostgresDSN is the data source name for the PostgreSQL database. See
	// https://bun.uptrace.dev/postgres/#pgdriver for more details on how to construct
	// a PostgreSQL DSN.
	PostgresDSN string `required:"true" split_words:"true"`

	PostgresMaxOpenConns    int           `split_words:"true" default:"10"`
	PostgresMaxIdleConns    int           `split_words:"true" default:"2"`
	PostgresConnMaxLifeTime time.Duration `split_words:"true" default:"5m"`
	PostgresConnMaxIdleTime time.Duration `split_words:"true" default:"5m"`

	BunDebugVerbose bool `split_words:"true"`

	// JWTSecret is the HMAC secret the dashboard login signs owner tokens with.
	JWTSecret []byte `required:"true" split_words:"true"`

	// StorageBackend selects the artifact store implementation. Valid values are:
	// local, s3.
	StorageBackend string `split_words:"true" default:"local"`

	// UploadDir is the directory the local artifact store writes uploaded
	// logo/image/video blobs to. It is also served statically at /uploads.
	UploadDir string `split_words:"true" default:"uploads"`

	// UploadMaxFilesPerField bounds how many files a single attachment category
	// (logo, image or video) accepts per request.
	UploadMaxFilesPerField int `split_words:"true" default:"10"`

	// AWSAccessKey is the access key of the AWS account used for the s3 artifact store.
	AWSAccessKey string `split_words:"true"`

	// AWSSecretKey is the secret key of the AWS account used for the s3 artifact store.
	AWSSecretKey string `split_words:"true"`

	// ArtifactS3Bucket is the bucket the s3 artifact store writes to.
	ArtifactS3Bucket string `split_words:"true"`

	// ArtifactS3Region is the region of ArtifactS3Bucket.
	ArtifactS3Region string `split_words:"true"`

	// SentryDSN is the DSN of the Sentry server. See
	// https://pkg.go.dev/github.com/getsentry/sentry-go#ClientOptions
	SentryDSN string `split_words:"true"`

	// HTTPServerShutdownTimeout is the timeout for the HTTP server to shut down gracefully.
	HTTPServerShutdownTimeout time.Duration `required:"true" split_words:"true" default:"60s"`
}

type Config struct {
	ConfigSpec

	AppContext appcontext.Ctx
}
