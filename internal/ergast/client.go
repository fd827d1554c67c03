// Package ergast fetches season data from an Ergast compatible API such as
// https://api.jolpi.ca/ergast/f1/.
package ergast

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"f1ingest/internal/telemetry"
	"f1ingest/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"github.com/sethvargo/go-retry"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseUrl = "https://api.jolpi.ca/ergast/f1/"
	// RetryInterval is the fixed wait between two attempts of a request that
	// got a non-200 response. There is no limit on the amount of attempts.
	RetryInterval = 5 * time.Second
	// DefaultRateLimit is the burst limit of the public jolpica API, in
	// requests per second.
	DefaultRateLimit = 4.0
	// MaxPageLimit is the largest page size the API accepts.
	MaxPageLimit = 100
)

var ErrTransport = errors.New("transport error")

// StatusError describes a non-200 response, it is what gets retried.
type StatusError struct {
	StatusCode int
	Url        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status code %d for url: %s", e.StatusCode, e.Url)
}

type ClientOptions struct {
	BaseUrl string
	// PageLimit is the page size used by FetchPages, 0 disables paging and
	// performs a single request with no query parameters.
	PageLimit int
	// RateLimit in requests per second, 0 uses DefaultRateLimit.
	RateLimit float64
	UserAgent string
	// Telemetry defaults to telemetry.SlogAPI.
	Telemetry telemetry.API
	// Dump receives the body of every successful response when set.
	Dump *restyutil.FilesystemOutput
}

type Client struct {
	http          *resty.Client
	limiter       *rate.Limiter
	pageLimit     int
	retryInterval time.Duration
	tel           telemetry.API
}

func NewClient(opts ClientOptions) (*Client, error) {
	if opts.BaseUrl == "" {
		opts.BaseUrl = DefaultBaseUrl
	}
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseUrl)
	}
	if opts.PageLimit < 0 || opts.PageLimit > MaxPageLimit {
		return nil, fmt.Errorf("page limit must be between 0 and %d, got %d", MaxPageLimit, opts.PageLimit)
	}
	if opts.RateLimit < 0 {
		return nil, fmt.Errorf("rate limit must not be negative, got %v", opts.RateLimit)
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = DefaultRateLimit
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "f1ingest/1.0"
	}
	if opts.Telemetry == nil {
		opts.Telemetry = telemetry.SlogAPI{}
	}
	tel := telemetry.Scope("ergast", opts.Telemetry)

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	client.SetHeader("Accept", "application/json")
	client.SetHeader("User-Agent", opts.UserAgent)
	client.SetLogger(restyLogger{})
	telemetry.InstrumentResty(client, tel, "f1ingest/ergast/http")
	if opts.Dump != nil {
		restyutil.DumpResponses(client, *opts.Dump)
	}

	burst := int(opts.RateLimit)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		http:          client,
		limiter:       rate.NewLimiter(rate.Limit(opts.RateLimit), burst),
		pageLimit:     opts.PageLimit,
		retryInterval: RetryInterval,
		tel:           tel,
	}, nil
}

func seasonPath(year int, endpoint string) string {
	return fmt.Sprintf("/%d/%s", year, strings.TrimLeft(endpoint, "/"))
}

// Fetch performs GET {base}/{year}/{endpoint} and returns the body of the
// first 200 response. Non-200 responses are retried every RetryInterval until
// ctx is done. Transport errors are not retried, they are returned wrapping
// ErrTransport.
func (c *Client) Fetch(ctx context.Context, year int, endpoint string) ([]byte, error) {
	return c.get(ctx, seasonPath(year, endpoint), nil)
}

// FetchPages returns every page of the season data of an endpoint, following
// the limit/offset/total fields of the response envelope. With a page limit
// of 0 it is a single Fetch.
func (c *Client) FetchPages(ctx context.Context, year int, endpoint string) ([][]byte, error) {
	path := seasonPath(year, endpoint)
	if c.pageLimit == 0 {
		body, err := c.get(ctx, path, nil)
		if err != nil {
			return nil, err
		}
		return [][]byte{body}, nil
	}

	var pages [][]byte
	offset := 0
	for {
		query := url.Values{}
		query.Set("limit", strconv.Itoa(c.pageLimit))
		query.Set("offset", strconv.Itoa(offset))

		body, err := c.get(ctx, path, query)
		if err != nil {
			return nil, err
		}
		pages = append(pages, body)

		info, ok := readPageInfo(body)
		if !ok {
			// the normalizer reports what is wrong with the envelope
			return pages, nil
		}
		if info.Offset != offset || info.Limit <= 0 {
			c.tel.ReportWarning(
				"client.fetch-pages",
				fmt.Errorf("server did not honor paging, requested offset %d got offset %d limit %d", offset, info.Offset, info.Limit),
				"path", path,
			)
			return pages, nil
		}
		next := info.Offset + info.Limit
		if next >= info.Total {
			return pages, nil
		}
		offset = next
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	var body []byte
	var lastStatus *StatusError
	err := retry.Do(ctx, retry.NewConstant(c.retryInterval), func(ctx context.Context) error {
		err := c.limiter.Wait(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}

		req := c.http.R().SetContext(ctx)
		if len(query) > 0 {
			req.SetQueryParamsFromValues(query)
		}
		res, err := req.Get(path)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("%w: GET %s: %w", ErrTransport, path, err)
		}

		if res.StatusCode() != http.StatusOK {
			statusErr := &StatusError{StatusCode: res.StatusCode(), Url: res.Request.URL}
			slog.WarnContext(
				ctx, "waiting due to status code",
				"status", res.StatusCode(),
				"url", res.Request.URL,
				"retry_in", c.retryInterval,
			)
			lastStatus = statusErr
			return retry.RetryableError(statusErr)
		}

		body = res.Body()
		return nil
	})
	if err != nil && lastStatus != nil && ctx.Err() != nil {
		return nil, fmt.Errorf("%w while waiting on %w", err, lastStatus)
	}
	if err != nil {
		return nil, err
	}
	return body, nil
}

// restyLogger sends resty's internal logs to slog instead of stderr.
type restyLogger struct{}

func (restyLogger) Errorf(format string, v ...any) {
	slog.Error(fmt.Sprintf(format, v...), "component", "resty")
}

func (restyLogger) Warnf(format string, v ...any) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "resty")
}

func (restyLogger) Debugf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "resty")
}
