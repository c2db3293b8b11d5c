package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"metahub/internal/adapters/handler"
	"metahub/internal/adapters/sender"
	"metahub/internal/adapters/storage"
	"metahub/internal/adapters/transport"
	"metahub/internal/core/port"
	"metahub/internal/core/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

func main() {
	log.Info().Msg("starting metahub...")

	viper.AddConfigPath(".")
	viper.SetConfigType("toml")

	log.Info().Msg("reading config file...")
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("could not read config file")
	}

	var logLevel zerolog.Level

	switch viper.GetString("hub.log_level") {
	case "info":
		logLevel = zerolog.InfoLevel
	case "debug":
		logLevel = zerolog.DebugLevel
	default:
		logLevel = zerolog.InfoLevel
	}

	zerolog.SetGlobalLevel(logLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	moduleExpiration := parseDuration("hub.module_expiration")
	moduleTimeout := parseDuration("hub.module_timeout")
	handlerTimeout := parseDuration("hub.handler_timeout")

	var store port.ModuleStore

	switch viper.GetString("storage.backend") {
	case "memory":
		store = storage.NewMemoryStore(moduleExpiration)
	default:
		rdb := redis.NewClient(&redis.Options{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		})
		store = storage.NewRedisStore(rdb, moduleExpiration)
	}

	token := viper.GetString("slack.api_token")
	slackSender := sender.NewSlackSender(slack.New(token))
	platform := sender.NewSlackAPI(token, moduleTimeout)

	caller := transport.NewModuleClient(moduleTimeout)

	commandDispatcher := service.NewCommandDispatcher(store, slackSender, caller)
	actionDispatcher := service.NewActionDispatcher(store, caller)

	api := handler.NewAPI(store, slackSender, platform)
	webhook := handler.NewWebhook(commandDispatcher, actionDispatcher, handlerTimeout)

	r := chi.NewRouter()
	r.Use(middleware.StripSlashes)
	r.Mount("/api", api.Routes())
	r.Mount("/webhooks", webhook.Routes())

	srv := &http.Server{
		Addr:              viper.GetString("hub.listen_addr"),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("failed to shut down cleanly")
		}
	}()

	log.Info().Str("addr", srv.Addr).Msg("hub listening")

	err = srv.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func parseDuration(key string) time.Duration {
	d, err := time.ParseDuration(viper.GetString(key))
	if err != nil {
		log.Panic().Err(err).Str("key", key).Msg("invalid duration in config")
	}

	return d
}
