package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"log/slog"

	"github.com/yikaimao/ros-alarms/internal/pkg/application/alarms"
	"github.com/yikaimao/ros-alarms/internal/pkg/application/events"
	"github.com/yikaimao/ros-alarms/internal/pkg/application/watchdog"
	"github.com/yikaimao/ros-alarms/internal/pkg/application/webevents"
	"github.com/yikaimao/ros-alarms/internal/pkg/infrastructure/broadcast"
	"github.com/yikaimao/ros-alarms/internal/pkg/infrastructure/router"
	"github.com/yikaimao/ros-alarms/internal/pkg/infrastructure/storage"
	"github.com/yikaimao/ros-alarms/internal/pkg/presentation/api"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/buildinfo"
	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
)

const serviceName string = "alarm-server"

type flagType int
type flagMap map[flagType]string

const (
	listenAddress flagType = iota
	servicePort

	policiesFile
	configurationFile

	dbHost
	dbUser
	dbPassword
	dbPort
	dbName
	dbSSLMode

	mqttBroker
	mqttClientID
	mqttTopic
	mqttUser
	mqttPassword

	devmode
)

func defaultFlags() flagMap {
	return flagMap{
		listenAddress: "0.0.0.0",
		servicePort:   "8080",

		policiesFile:      "/opt/ros-alarms/config/authz.rego",
		configurationFile: "/opt/ros-alarms/config/config.yaml",

		dbHost:     "",
		dbUser:     "",
		dbPassword: "",
		dbPort:     "5432",
		dbName:     "alarms",
		dbSSLMode:  "disable",

		mqttBroker:   "",
		mqttClientID: serviceName,
		mqttTopic:    "alarms/updates",
		mqttUser:     "",
		mqttPassword: "",

		devmode: "false",
	}
}

func main() {
	ctx, flags := parseExternalConfig(context.Background(), defaultFlags())

	serviceVersion := buildinfo.SourceVersion()
	ctx, logger, cleanup := o11y.Init(ctx, serviceName, serviceVersion, "json")
	defer cleanup()

	cfgFile, err := os.Open(flags[configurationFile])
	exitIf(err, logger, "could not open configuration file")

	cfg, err := alarms.LoadConfiguration(cfgFile)
	cfgFile.Close()
	exitIf(err, logger, "could not load alarm configuration")

	policies, err := os.Open(flags[policiesFile])
	exitIf(err, logger, "unable to open opa policy file")
	defer policies.Close()

	handler, shutdown, err := initialize(ctx, flags, cfg, policies)
	exitIf(err, logger, "failed to initialize alarm server")
	defer shutdown()

	apiPort := ":" + flags[servicePort]
	logger.Info("starting to listen for incoming connections", "port", apiPort)

	srv := &http.Server{Addr: flags[listenAddress] + apiPort, Handler: handler}

	go func() {
		err := srv.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			exitIf(err, logger, "failed to listen for incoming connections")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err = srv.Shutdown(shutdownCtx)
	if err != nil {
		logger.Error("failed to shut down gracefully", "err", err.Error())
	}
}

func initialize(ctx context.Context, flags flagMap, cfg *alarms.Config, policies *os.File) (http.Handler, func(), error) {
	log := logging.GetFromContext(ctx)

	var store alarms.EventStore
	var s *storage.Storage

	if flags[devmode] != "true" {
		var err error
		s, err = storage.New(ctx, storage.NewConfig(
			flags[dbHost], flags[dbUser], flags[dbPassword], flags[dbPort], flags[dbName], flags[dbSSLMode],
		))
		if err != nil {
			return nil, nil, err
		}

		err = s.Initialize(ctx)
		if err != nil {
			return nil, nil, err
		}

		store = s
	} else {
		log.Warn("running in devmode, alarm events will not be persisted")
	}

	messenger, err := messaging.Initialize(ctx, messaging.LoadConfiguration(ctx, serviceName, log))
	if err != nil {
		return nil, nil, err
	}

	var broadcaster alarms.Broadcaster
	var publisher *broadcast.Publisher

	if flags[mqttBroker] != "" {
		publisher, err = broadcast.New(broadcast.Config{
			Broker:   flags[mqttBroker],
			ClientID: flags[mqttClientID],
			Topic:    flags[mqttTopic],
			Username: flags[mqttUser],
			Password: flags[mqttPassword],
		})
		if err != nil {
			return nil, nil, err
		}

		broadcaster = publisher
	}

	svc, err := alarms.New(ctx, store, messenger, broadcaster, events.New(), cfg)
	if err != nil {
		return nil, nil, err
	}

	we := webevents.New()

	err = messenger.RegisterTopicMessageHandler("alarms.updated", webevents.NewTopicForwarder(we))
	if err != nil {
		return nil, nil, err
	}

	messenger.Start()

	var wdog watchdog.Watchdog
	if len(cfg.Deadmen) > 0 {
		wdog = watchdog.New(svc, messenger, cfg.Deadmen)
		wdog.Start(ctx)
	}

	r, err := api.RegisterHandlers(ctx, router.New(serviceName), policies, svc)
	if err != nil {
		return nil, nil, err
	}

	r.Mount("/events", we.Server())

	shutdown := func() {
		if wdog != nil {
			wdog.Stop(ctx)
		}

		we.Shutdown()
		messenger.Close()

		if publisher != nil {
			publisher.Disconnect()
		}

		if s != nil {
			s.Close()
		}
	}

	return r, shutdown, nil
}

func parseExternalConfig(ctx context.Context, flags flagMap) (context.Context, flagMap) {
	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault

	flags[listenAddress] = envOrDef(ctx, "LISTEN_ADDRESS", flags[listenAddress])
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])

	flags[policiesFile] = envOrDef(ctx, "POLICIES_FILE", flags[policiesFile])

	flags[dbHost] = envOrDef(ctx, "POSTGRES_HOST", flags[dbHost])
	flags[dbPort] = envOrDef(ctx, "POSTGRES_PORT", flags[dbPort])
	flags[dbName] = envOrDef(ctx, "POSTGRES_DBNAME", flags[dbName])
	flags[dbUser] = envOrDef(ctx, "POSTGRES_USER", flags[dbUser])
	flags[dbPassword] = envOrDef(ctx, "POSTGRES_PASSWORD", flags[dbPassword])
	flags[dbSSLMode] = envOrDef(ctx, "POSTGRES_SSLMODE", flags[dbSSLMode])

	flags[mqttBroker] = envOrDef(ctx, "MQTT_BROKER", flags[mqttBroker])
	flags[mqttClientID] = envOrDef(ctx, "MQTT_CLIENT_ID", flags[mqttClientID])
	flags[mqttTopic] = envOrDef(ctx, "MQTT_TOPIC", flags[mqttTopic])
	flags[mqttUser] = envOrDef(ctx, "MQTT_USER", flags[mqttUser])
	flags[mqttPassword] = envOrDef(ctx, "MQTT_PASSWORD", flags[mqttPassword])

	apply := func(f flagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("policies", "an authorization policy file", apply(policiesFile))
	flag.Func("config", "alarm topology and notification configuration file", apply(configurationFile))
	flag.Func("devmode", "enable dev mode", apply(devmode))
	flag.Parse()

	return ctx, flags
}

func exitIf(err error, logger *slog.Logger, msg string, args ...any) {
	if err != nil {
		logger.With(args...).Error(msg, "err", err.Error())
		time.Sleep(2 * time.Second)
		os.Exit(1)
	}
}
