package zooapi

import (
	"context"
	"net/url"
	"strings"
)

func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.get(ctx, "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message string `json:"message"`
	User    User   `json:"user"`
}

func (c *Client) Login(ctx context.Context, username, password string) (*User, error) {
	var resp loginResponse
	err := c.post(ctx, "/auth/login", loginBody{Username: username, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp.User, nil
}

func (c *Client) Refresh(ctx context.Context) error {
	return c.post(ctx, refreshPath, nil, nil)
}

func (c *Client) Logout(ctx context.Context) error {
	return c.post(ctx, "/auth/logout", nil, nil)
}

func (c *Client) Animals(ctx context.Context) ([]Animal, error) {
	var animals []Animal
	if err := c.getData(ctx, "/api/animals", nil, &animals); err != nil {
		return nil, err
	}
	return animals, nil
}

// Alerts returns the alert list; an empty animalID means all animals.
func (c *Client) Alerts(ctx context.Context, animalID string) ([]Alert, error) {
	var query url.Values
	if animalID != "" {
		query = url.Values{"animal_id": {animalID}}
	}
	var alerts []Alert
	if err := c.getData(ctx, "/api/alerts", query, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

func (c *Client) AckAlert(ctx context.Context, id string) error {
	return c.postData(ctx, "/api/alerts/ack/"+url.PathEscape(id), nil, nil)
}

type ackBulkBody struct {
	IDs []string `json:"ids"`
}

func (c *Client) AckAlerts(ctx context.Context, ids []string) error {
	return c.postData(ctx, "/api/alerts/ack/bulk", ackBulkBody{IDs: ids}, nil)
}

func (c *Client) BehaviorCurrent(ctx context.Context, animalID string) (*CurrentBehavior, error) {
	var current CurrentBehavior
	query := url.Values{"animal_id": {animalID}}
	if err := c.getData(ctx, "/api/behavior/current", query, &current); err != nil {
		return nil, err
	}
	return &current, nil
}

func (c *Client) BehaviorTimeline(ctx context.Context, animalID, date string) ([]TimelineEntry, error) {
	query := url.Values{"animal_id": {animalID}, "date": {date}}
	var timeline []TimelineEntry
	if err := c.getData(ctx, "/api/behavior/timeline", query, &timeline); err != nil {
		return nil, err
	}
	return timeline, nil
}

func (c *Client) DayDistribution(ctx context.Context, animalID, date string) (*DayDistribution, error) {
	query := url.Values{"animal_id": {animalID}, "date": {date}}
	var dist DayDistribution
	if err := c.getData(ctx, "/api/behavior/day_distribution", query, &dist); err != nil {
		return nil, err
	}
	return &dist, nil
}

func (c *Client) Reports(ctx context.Context, animalID string) ([]Report, error) {
	query := url.Values{"animal_id": {animalID}}
	var reports []Report
	if err := c.getData(ctx, "/api/reports", query, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *Client) KPIs(ctx context.Context) (*KPI, error) {
	var kpi KPI
	if err := c.getData(ctx, "/api/metrics", nil, &kpi); err != nil {
		return nil, err
	}
	return &kpi, nil
}

// ReportPDFURL is the absolute backend URL of a report PDF. The dashboard
// links the browser straight at it instead of fetching the binary itself.
func (c *Client) ReportPDFURL(id string) string {
	return strings.TrimSuffix(c.baseURL, "/") + "/api/reports/" + url.PathEscape(id) + "/pdf"
}
