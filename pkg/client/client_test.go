package client

import (
	"context"
	"testing"

	test "github.com/diwise/service-chassis/pkg/test/http"
	"github.com/diwise/service-chassis/pkg/test/http/expects"
	"github.com/diwise/service-chassis/pkg/test/http/response"
	"github.com/matryer/is"
	"github.com/yikaimao/ros-alarms/pkg/types"
)

func TestSetAlarm(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/alarms"),
			expects.RequestMethod("POST"),
			expects.RequestHeaderContains("Content-Type", "application/json"),
			expects.RequestHeaderContains("Authorization", "Bearer testtoken"),
			expects.RequestBodyContaining(`"alarmName":"odom-lost"`, `"raised":true`),
		),
		test.Returns(
			response.Code(201),
		),
	)
	defer mockedService.Close()

	client := NewAlarmClient(mockedService.URL(), "testtoken")

	err := client.SetAlarm(context.Background(), types.AlarmUpdate{
		Name:     "odom-lost",
		Raised:   true,
		NodeName: "localization",
		Severity: 1,
	})
	is.NoErr(err)
}

func TestSetAlarmFailsOnRejection(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/alarms"),
		),
		test.Returns(
			response.Code(400),
		),
	)
	defer mockedService.Close()

	client := NewAlarmClient(mockedService.URL(), "")

	err := client.SetAlarm(context.Background(), types.AlarmUpdate{Name: "odom-lost"})
	is.True(err != nil)
}

func TestGetAlarm(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/alarms/odom-lost"),
			expects.RequestMethod("GET"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(`{"data":{"alarmName":"odom-lost","raised":true,"nodeName":"localization","severity":1}}`)),
		),
	)
	defer mockedService.Close()

	client := NewAlarmClient(mockedService.URL(), "")

	alarm, err := client.GetAlarm(context.Background(), "odom-lost")
	is.NoErr(err)

	is.Equal("odom-lost", alarm.Name)
	is.Equal(true, alarm.Raised)
	is.Equal("localization", alarm.NodeName)
	is.Equal(1, alarm.Severity)
}

func TestSnapshot(t *testing.T) {
	is := is.New(t)

	mockedService := test.NewMockServiceThat(
		test.Expects(is,
			expects.RequestPath("/api/v0/alarms"),
			expects.RequestMethod("GET"),
		),
		test.Returns(
			response.ContentType("application/json"),
			response.Code(200),
			response.Body([]byte(`{"timestamp":"2025-01-01T12:00:00Z","alarms":[{"alarmName":"odom-lost","raised":true,"severity":1},{"alarmName":"gps-lost","raised":false,"severity":5}]}`)),
		),
	)
	defer mockedService.Close()

	client := NewAlarmClient(mockedService.URL(), "")

	snapshot, err := client.Snapshot(context.Background())
	is.NoErr(err)

	is.Equal(2, len(snapshot.Alarms))
	is.Equal("odom-lost", snapshot.Alarms[0].Name)
	is.Equal(true, snapshot.Alarms[0].Raised)
}
