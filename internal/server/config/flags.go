package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/picshare/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":5000")
//	-d string   PostgreSQL DSN
//	-s string   session signing secret
//	-t int      session validity, minutes
//	-u string   upload staging directory
//	-k string   storage driver ("s3" or "minio")
//	-i string   storage access key
//	-p string   storage secret key
//	-b string   bucket name
//	-g string   storage region
//	-e string   storage base endpoint (e.g., "http://127.0.0.1:9000")
//	-l string   log format ("json" or "console")
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-t", "-u", "-k", "-i", "-p", "-b", "-g", "-e", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "session secret key")
	sessionMinutes := fs.Int("t", int(config.SessionValidityDuration.Minutes()), "session validity (in minutes)")
	fs.StringVar(&config.UploadDir, "u", config.UploadDir, "upload staging directory")
	fs.StringVar(&config.StorageDriver, "k", config.StorageDriver, "storage driver (s3|minio)")
	fs.StringVar(&config.S3AccessKey, "i", config.S3AccessKey, "storage access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "storage secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "storage bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "storage region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "storage base endpoint")
	fs.StringVar(&config.LogFormat, "l", config.LogFormat, "log format (json|console)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.SessionValidityDuration = time.Duration(*sessionMinutes) * time.Minute
}
