package main

import "time"

const (
	defaultBindHost       = "0.0.0.0"
	defaultPort           = 8787
	defaultAllowedOrigins = "*"
	defaultRateLimit      = 100
	defaultRateWindow     = 60 * time.Second
	defaultSweepInterval  = 5 * time.Minute
	defaultQueryTimeout   = 30 * time.Second

	defaultBackupInterval = 6 * time.Hour
	defaultBackupKeepLast = 24
)

// appConfig is internal runtime configuration.
// It is package-private to keep defaults and shape local to the CLI entrypoint.
type appConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	Addr           string        `mapstructure:"addr"`
	DBPath         string        `mapstructure:"db-path"`
	AllowedOrigins string        `mapstructure:"allowed-origins"`
	RateLimit      int           `mapstructure:"rate-limit"`
	RateWindow     time.Duration `mapstructure:"rate-window"`
	SweepInterval  time.Duration `mapstructure:"sweep-interval"`
	QueryTimeout   time.Duration `mapstructure:"query-timeout"`

	BackupEnabled        bool          `mapstructure:"backup-enabled"`
	BackupInterval       time.Duration `mapstructure:"backup-interval"`
	BackupLocalDir       string        `mapstructure:"backup-local-dir"`
	BackupKeepLast       int           `mapstructure:"backup-keep-last"`
	BackupBucketURL      string        `mapstructure:"backup-bucket-url"`
	BackupS3Endpoint     string        `mapstructure:"backup-s3-endpoint"`
	BackupS3Region       string        `mapstructure:"backup-s3-region"`
	BackupS3AccessKey    string        `mapstructure:"backup-s3-access-key"`
	BackupS3SecretKey    string        `mapstructure:"backup-s3-secret-key"`
	BackupS3SessionToken string        `mapstructure:"backup-s3-session-token"`
	BackupS3UseSSL       bool          `mapstructure:"backup-s3-use-ssl"`

	ConfigPath string `mapstructure:"-"` // not from config file
}
