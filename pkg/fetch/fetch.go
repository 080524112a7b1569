package fetch

import (
	"context"
	"io"
	"net/url"
	"path"
	"time"

	"github.com/rotisserie/eris"
)

// Options configures a Client.
type Options struct {
	UserAgent  string
	Timeout    time.Duration
	MaxRetries int
}

// Client dispatches downloads to the HTTP or FTP client by URL scheme.
type Client struct {
	http *HTTPClient
	ftp  *FTPClient
}

// NewClient creates a Client handling http, https, and ftp URLs.
func NewClient(opts Options) *Client {
	return &Client{
		http: NewHTTPClient(HTTPOptions{
			UserAgent:  opts.UserAgent,
			Timeout:    opts.Timeout,
			MaxRetries: opts.MaxRetries,
		}),
		ftp: NewFTPClient(FTPOptions{Timeout: opts.Timeout}),
	}
}

// Download fetches the URL and returns the content stream.
func (c *Client) Download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, eris.Wrap(err, "parse url")
	}
	switch u.Scheme {
	case "http", "https":
		return c.http.Download(ctx, rawURL)
	case "ftp":
		return c.ftp.Download(ctx, rawURL)
	default:
		return nil, eris.Errorf("unsupported url scheme %q", u.Scheme)
	}
}

// DownloadToFile fetches the URL into the given local path.
func (c *Client) DownloadToFile(ctx context.Context, rawURL string, dest string) (int64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, eris.Wrap(err, "parse url")
	}
	switch u.Scheme {
	case "http", "https":
		return c.http.DownloadToFile(ctx, rawURL, dest)
	case "ftp":
		return c.ftp.DownloadToFile(ctx, rawURL, dest)
	default:
		return 0, eris.Errorf("unsupported url scheme %q", u.Scheme)
	}
}

// Filename guesses a local filename from the URL path, falling back to
// "download" when the path is empty.
func Filename(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "download"
	}
	name := path.Base(u.Path)
	if name == "" || name == "." || name == "/" {
		return "download"
	}
	return name
}
