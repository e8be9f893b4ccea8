package storage

import (
	"context"
	"errors"
	"io"
	"net/url"
	"path"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/option"
)

// GCS stores files in a Cloud Storage bucket. Objects are addressed by
// their public storage.googleapis.com URL.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
}

// NewGCS connects to Cloud Storage. credentialsFile may be empty to use
// application default credentials.
func NewGCS(ctx context.Context, bucket, prefix, credentialsFile string) (*GCS, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create Cloud Storage client")
	}

	return &GCS{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (x *GCS) Save(ctx context.Context, name, contentType string, r io.Reader) (string, error) {
	objName := path.Join(x.prefix, name)
	w := x.client.Bucket(x.bucket).Object(objName).NewWriter(ctx)
	w.ContentType = contentType

	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", goerr.Wrap(err, "failed to upload object",
			goerr.V("bucket", x.bucket), goerr.V("object", objName))
	}
	if err := w.Close(); err != nil {
		return "", goerr.Wrap(err, "failed to finalize object",
			goerr.V("bucket", x.bucket), goerr.V("object", objName))
	}

	return "https://storage.googleapis.com/" + x.bucket + "/" + (&url.URL{Path: objName}).EscapedPath(), nil
}

func (x *GCS) Delete(ctx context.Context, name string) error {
	objName := path.Join(x.prefix, name)
	err := x.client.Bucket(x.bucket).Object(objName).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return goerr.Wrap(err, "failed to delete object",
			goerr.V("bucket", x.bucket), goerr.V("object", objName))
	}
	return nil
}

// Close releases the client
func (x *GCS) Close() error {
	return x.client.Close()
}
