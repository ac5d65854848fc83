// Package iofetch downloads source data files over HTTP into a local
// data directory. It runs outside the extraction pipeline, which
// stays strictly sequential.
package iofetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/gnames/gnsys"
	"golang.org/x/sync/errgroup"
)

// Files downloads every URL into destDir, keeping the remote base
// name. At most jobs downloads run concurrently; the first failure
// cancels the rest.
func Files(ctx context.Context, urls []string, destDir string, jobs int) error {
	if jobs <= 0 {
		jobs = 1
	}
	if err := gnsys.MakeDir(destDir); err != nil {
		return fmt.Errorf("cannot create data directory %s: %w", destDir, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, u := range urls {
		g.Go(func() error {
			return fetchOne(ctx, u, destDir)
		})
	}
	return g.Wait()
}

func fetchOne(ctx context.Context, rawURL, destDir string) error {
	name, err := baseName(rawURL)
	if err != nil {
		return err
	}
	dest := filepath.Join(destDir, name)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("cannot build request for %s: %w", rawURL, err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("cannot fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("cannot fetch %s: status %d", rawURL, resp.StatusCode)
	}

	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", dest, err)
	}
	defer f.Close()

	n, err := io.Copy(f, resp.Body)
	if err != nil {
		return fmt.Errorf("cannot save %s: %w", dest, err)
	}

	slog.Info("Fetched source file", "file", name, "bytes", n)
	return nil
}

// baseName extracts the file name from the URL path.
func baseName(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("cannot parse URL %s: %w", rawURL, err)
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "", fmt.Errorf("URL %s has no file name", rawURL)
	}
	return name, nil
}
