package mnist

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
)

// DefaultBaseURL hosts the gzipped IDX files under their canonical names.
const DefaultBaseURL = "https://storage.googleapis.com/cvdf-datasets/mnist/"

// Downloader fetches the four MNIST archives into a local directory,
// decompressing them on the way down. Files already present are kept.
type Downloader struct {
	BaseURL string
	Client  *http.Client
}

// NewDownloader returns a downloader against DefaultBaseURL.
func NewDownloader() *Downloader {
	return &Downloader{
		BaseURL: DefaultBaseURL,
		Client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// Fetch ensures all four dataset files exist under dir, downloading any
// that are missing. Transient HTTP failures are retried with exponential
// backoff.
func (d *Downloader) Fetch(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "create data dir %s", dir)
	}

	for _, name := range []string{TrainImagesFile, TrainLabelsFile, TestImagesFile, TestLabelsFile} {
		dest := filepath.Join(dir, name)
		if _, err := os.Stat(dest); err == nil {
			continue
		}
		if err := d.fetchOne(ctx, name, dest); err != nil {
			return errors.Wrapf(err, "fetch %s", name)
		}
	}
	return nil
}

func (d *Downloader) fetchOne(ctx context.Context, name, dest string) error {
	url := d.BaseURL + name + ".gz"

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := d.Client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
		case resp.StatusCode >= 500:
			return fmt.Errorf("server returned %s", resp.Status)
		default:
			return backoff.Permanent(fmt.Errorf("server returned %s", resp.Status))
		}

		return writeDecompressed(dest, resp.Body)
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 4), ctx)
	return backoff.Retry(op, policy)
}

// writeDecompressed gunzips src into dest via a temp file so a partial
// download never leaves a truncated dataset behind.
func writeDecompressed(dest string, src io.Reader) error {
	gz, err := gzip.NewReader(src)
	if err != nil {
		return errors.Wrap(err, "open gzip stream")
	}
	defer gz.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".download-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, gz); err != nil {
		tmp.Close()
		return errors.Wrap(err, "decompress")
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}
