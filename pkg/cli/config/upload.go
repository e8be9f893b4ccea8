package config

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/jirabridge/pkg/domain/interfaces"
	"github.com/m-mizutani/jirabridge/pkg/infra/storage"
	"github.com/urfave/cli/v3"
)

// UploadURLPrefix is the path under which locally stored uploads are served
const UploadURLPrefix = "/uploads"

// Upload holds attachment storage configuration. Files go to Cloud Storage
// when a bucket is set, otherwise to a local directory.
type Upload struct {
	Dir             string
	Bucket          string
	Prefix          string
	CredentialsFile string
}

// Flags returns CLI flags for upload configuration
func (c *Upload) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "upload-dir",
			Usage:       "Directory for uploaded files (default: uploads, /tmp/uploads on Vercel)",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("JIRABRIDGE_UPLOAD_DIR"),
		},
		&cli.StringFlag{
			Name:        "upload-gcs-bucket",
			Usage:       "Cloud Storage bucket for uploaded files",
			Destination: &c.Bucket,
			Sources:     cli.EnvVars("JIRABRIDGE_UPLOAD_GCS_BUCKET"),
		},
		&cli.StringFlag{
			Name:        "upload-gcs-prefix",
			Usage:       "Object name prefix in the bucket",
			Value:       "uploads",
			Destination: &c.Prefix,
			Sources:     cli.EnvVars("JIRABRIDGE_UPLOAD_GCS_PREFIX"),
		},
		&cli.StringFlag{
			Name:        "upload-gcs-credentials",
			Usage:       "Service account key file for Cloud Storage",
			Destination: &c.CredentialsFile,
			Sources:     cli.EnvVars("JIRABRIDGE_UPLOAD_GCS_CREDENTIALS", "GOOGLE_APPLICATION_CREDENTIALS"),
		},
	}
}

// LocalDir returns the directory used by the local store
func (c *Upload) LocalDir() string {
	if c.Dir != "" {
		return c.Dir
	}
	if os.Getenv("VERCEL") != "" {
		return "/tmp/uploads"
	}
	return "uploads"
}

// Configure builds the file storage. The returned close function releases
// the Cloud Storage client and is never nil. localDir is empty when files
// are not stored on the local filesystem.
func (c *Upload) Configure(ctx context.Context) (store interfaces.FileStorage, localDir string, closeFn func() error, err error) {
	if c.Bucket != "" {
		gcs, err := storage.NewGCS(ctx, c.Bucket, c.Prefix, c.CredentialsFile)
		if err != nil {
			return nil, "", nil, goerr.Wrap(err, "failed to configure Cloud Storage upload store")
		}
		return gcs, "", gcs.Close, nil
	}

	local, err := storage.NewLocal(c.LocalDir(), UploadURLPrefix)
	if err != nil {
		return nil, "", nil, goerr.Wrap(err, "failed to configure local upload store")
	}
	return local, local.Dir(), func() error { return nil }, nil
}
