package zooapi

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"
	"zoodash/internal/providers"
	"zoodash/internal/structures"

	"github.com/go-resty/resty/v2"
	json "github.com/goccy/go-json"
	"github.com/sony/gobreaker"
	"golang.org/x/net/publicsuffix"
)

const refreshPath = "/auth/refresh"

type ClientInterface interface {
	Me(ctx context.Context) (*User, error)
	Login(ctx context.Context, username, password string) (*User, error)
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error

	Animals(ctx context.Context) ([]Animal, error)
	Alerts(ctx context.Context, animalID string) ([]Alert, error)
	AckAlert(ctx context.Context, id string) error
	AckAlerts(ctx context.Context, ids []string) error
	BehaviorCurrent(ctx context.Context, animalID string) (*CurrentBehavior, error)
	BehaviorTimeline(ctx context.Context, animalID, date string) ([]TimelineEntry, error)
	DayDistribution(ctx context.Context, animalID, date string) (*DayDistribution, error)
	Reports(ctx context.Context, animalID string) ([]Report, error)
	KPIs(ctx context.Context) (*KPI, error)
	ReportPDFURL(id string) string
}

// Client is the HTTP client wrapper for the zoo backend API. The session
// cookie lives in the jar; on a 401 the client POSTs /auth/refresh once
// (ignoring its own failure) and retries the original request exactly once.
// Network-level failures are never retried. Data-plane calls additionally
// pass through a circuit breaker so a dead backend fails fast.
type Client struct {
	rc      *resty.Client
	breaker *gobreaker.CircuitBreaker
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	baseURL string
}

func NewClient(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface) (ClientInterface, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, err
	}

	rc := resty.New().
		SetBaseURL(conf.Backend.BaseURL).
		SetTimeout(conf.Backend.RequestTimeout).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	rc.JSONMarshal = json.Marshal
	rc.JSONUnmarshal = json.Unmarshal

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "zoo-backend",
		Timeout: 30 * time.Second,
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warnf(providers.TypeApp, "Circuit breaker %s: %s -> %s", name, from, to)
		},
	})

	return &Client{
		rc:      rc,
		breaker: breaker,
		logger:  logger,
		metrics: metrics,
		baseURL: conf.Backend.BaseURL,
	}, nil
}

func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, body any) (*resty.Response, error) {
	req := c.rc.R().SetContext(ctx)
	if query != nil {
		req.SetQueryParamsFromValues(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	res, err := req.Execute(method, path)
	if err != nil {
		c.metrics.IncBackendRequests(path, 0)
		return nil, err
	}
	c.metrics.IncBackendRequests(path, res.StatusCode())
	c.metrics.ObserveBackendDuration(path, time.Since(start))
	return res, nil
}

// do runs one request with the single refresh-and-retry on 401.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) ([]byte, error) {
	res, err := c.attempt(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode() == http.StatusUnauthorized && path != refreshPath {
		if _, rerr := c.attempt(ctx, http.MethodPost, refreshPath, nil, nil); rerr != nil {
			c.logger.Debugf(providers.TypePost, "Session refresh failed: %s", rerr)
		}
		res, err = c.attempt(ctx, method, path, query, body)
		if err != nil {
			return nil, err
		}
	}

	if !res.IsSuccess() {
		return nil, &HttpError{StatusCode: res.StatusCode(), Body: string(res.Body())}
	}
	return res.Body(), nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(body, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	data, err := c.do(ctx, http.MethodPost, path, nil, body)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

// getData is get behind the circuit breaker, for polled data-plane
// resources. Auth endpoints stay outside the breaker so an open breaker
// cannot lock the operator out of the login flow.
func (c *Client) getData(ctx context.Context, path string, query url.Values, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.get(ctx, path, query, out)
	})
	return err
}

func (c *Client) postData(ctx context.Context, path string, body, out any) error {
	_, err := c.breaker.Execute(func() (interface{}, error) {
		return nil, c.post(ctx, path, body, out)
	})
	return err
}
