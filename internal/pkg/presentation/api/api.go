package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/yikaimao/ros-alarms/internal/pkg/application/alarms"
	"github.com/yikaimao/ros-alarms/internal/pkg/presentation/api/auth"
	"github.com/yikaimao/ros-alarms/pkg/types"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("ros-alarms/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, policies io.Reader, svc alarms.AlarmService) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	log := logging.GetFromContext(ctx)

	authenticator, err := auth.NewAuthenticator(ctx, policies)
	if err != nil {
		return nil, fmt.Errorf("failed to create api authenticator: %w", err)
	}

	router.Route("/api/v0", func(r chi.Router) {
		r.Route("/alarms", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAccess(auth.ScopeRead))

				r.Get("/", getAlarmsHandler(log, svc))
				r.Get("/{alarmName}", getAlarmHandler(log, svc))
				r.Get("/{alarmName}/events", getAlarmEventsHandler(log, svc))
			})

			r.Group(func(r chi.Router) {
				r.Use(authenticator.RequireAccess(auth.ScopeWrite))

				r.Post("/", setAlarmHandler(log, svc))
			})
		})
	})

	return router, nil
}

func setAlarmHandler(log *slog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "set-alarm")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		body, err := io.ReadAll(r.Body)
		if err != nil {
			requestLogger.Error("unable to read body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		var update types.AlarmUpdate
		err = json.Unmarshal(body, &update)
		if err != nil {
			requestLogger.Error("unable to unmarshal body", "err", err.Error())
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		err = svc.Set(ctx, update)
		if err != nil {
			if errors.Is(err, alarms.ErrParameterDecode) {
				requestLogger.Error("rejected alarm parameters", "alarm_name", update.Name, "err", err.Error())
			} else {
				requestLogger.Error("unable to set alarm", "err", err.Error())
			}
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
	}
}

func getAlarmHandler(log *slog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alarm")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alarmName := chi.URLParam(r, "alarmName")

		// unknown names yield a blank alarm, not a 404
		alarm := svc.Get(ctx, alarmName)

		response := ApiResponse{Data: alarm}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(response.Byte())
	}
}

func getAlarmsHandler(log *slog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alarms")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, _ = o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		snapshot := svc.Snapshot(ctx)

		b, err := json.Marshal(snapshot)
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func getAlarmEventsHandler(log *slog.Logger, svc alarms.AlarmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alarm-events")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alarmName := chi.URLParam(r, "alarmName")

		offset := queryInt(r, "offset", 0)
		limit := queryInt(r, "limit", 20)

		collection, err := svc.History(ctx, alarmName, offset, limit)
		if err != nil {
			if errors.Is(err, alarms.ErrNoEventStore) {
				w.WriteHeader(http.StatusNotImplemented)
				return
			}

			requestLogger.Error("could not fetch alarm events", "alarm_name", alarmName, "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		response := ApiResponse{
			Meta: &meta{
				TotalRecords: collection.TotalCount,
				Offset:       &collection.Offset,
				Limit:        &collection.Limit,
				Count:        collection.Count,
			},
			Data: collection.Data,
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(response.Byte())
	}
}

func queryInt(r *http.Request, key string, def int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return def
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return def
	}

	return n
}
