package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"

	"github.com/yikaimao/ros-alarms/pkg/types"
)

// AlarmClient talks to an alarm server instance over http. It is how other
// services raise, clear and inspect alarms without linking the registry in.
type AlarmClient interface {
	SetAlarm(ctx context.Context, update types.AlarmUpdate) error
	GetAlarm(ctx context.Context, alarmName string) (types.Alarm, error)
	Snapshot(ctx context.Context) (types.AlarmSnapshot, error)
}

type alarmClient struct {
	url   string
	token string
}

var tracer = otel.Tracer("ros-alarms/client")

func NewAlarmClient(alarmSvcUrl, token string) AlarmClient {
	return &alarmClient{
		url:   alarmSvcUrl,
		token: token,
	}
}

func (c *alarmClient) SetAlarm(ctx context.Context, update types.AlarmUpdate) error {
	var err error
	ctx, span := tracer.Start(ctx, "set-alarm")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	log.Debug("setting alarm", "alarm_name", update.Name, "raised", update.Raised)

	body, err := json.Marshal(update)
	if err != nil {
		err = fmt.Errorf("failed to marshal alarm update: %w", err)
		return err
	}

	resp, err := c.do(ctx, http.MethodPost, c.url+"/api/v0/alarms", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		err = fmt.Errorf("request failed with status code %d", resp.StatusCode)
		return err
	}

	return nil
}

func (c *alarmClient) GetAlarm(ctx context.Context, alarmName string) (types.Alarm, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-alarm")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, err := c.do(ctx, http.MethodGet, c.url+"/api/v0/alarms/"+alarmName, nil)
	if err != nil {
		return types.Alarm{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("request failed with status code %d", resp.StatusCode)
		return types.Alarm{}, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return types.Alarm{}, err
	}

	result := struct {
		Data types.Alarm `json:"data"`
	}{}

	err = json.Unmarshal(respBody, &result)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return types.Alarm{}, err
	}

	return result.Data, nil
}

func (c *alarmClient) Snapshot(ctx context.Context) (types.AlarmSnapshot, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-alarms")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	resp, err := c.do(ctx, http.MethodGet, c.url+"/api/v0/alarms", nil)
	if err != nil {
		return types.AlarmSnapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("request failed with status code %d", resp.StatusCode)
		return types.AlarmSnapshot{}, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return types.AlarmSnapshot{}, err
	}

	snapshot := types.AlarmSnapshot{}

	err = json.Unmarshal(respBody, &snapshot)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return types.AlarmSnapshot{}, err
	}

	return snapshot, nil
}

func (c *alarmClient) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	httpClient := http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	if body != nil {
		req.Header.Add("Content-Type", "application/json")
	}

	if c.token != "" {
		req.Header.Add("Authorization", "Bearer "+c.token)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach alarm server: %w", err)
	}

	return resp, nil
}
