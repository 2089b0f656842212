// Command jarust-cli is a tiny example binary wiring the core: it
// connects over websocket, creates a session, attaches echotest, sends a
// start message, and logs whatever events come back. The Go-idiom
// equivalent of the original's jarust/examples/raw_echotest.rs.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/jarust-go/jarust"
	"github.com/jarust-go/jarust/jaconfig"
	"github.com/jarust-go/jarust/plugins/echotest"
	"github.com/jarust-go/jarust/transport"
)

func main() {
	url := flag.String("url", "ws://localhost:8188/ws", "Janus websocket endpoint")
	apisecret := flag.String("apisecret", "", "Janus API secret, if required")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	if err := run(*url, *apisecret, logger); err != nil {
		logger.Fatal().Err(err).Msg("jarust-cli failed")
	}
}

func run(url, apisecret string, logger zerolog.Logger) error {
	ctx := context.Background()
	timeout := 10 * time.Second

	ws, err := transport.DialWebsocket(ctx, url, logger)
	if err != nil {
		return err
	}

	cfg := jaconfig.New(url, jaconfig.WithAPISecret(apisecret), jaconfig.WithLogger(logger))
	conn, err := jarust.Connect(ctx, cfg, ws)
	if err != nil {
		return err
	}
	defer conn.Destroy()

	info, err := conn.ServerInfo(ctx, timeout)
	if err != nil {
		return err
	}
	logger.Info().Str("server_name", info.ServerName).Msg("connected")

	session, err := conn.CreateSession(ctx, 10, timeout)
	if err != nil {
		return err
	}
	defer session.Destroy(ctx, timeout)

	handle, events, err := echotest.Attach(ctx, session, timeout)
	if err != nil {
		return err
	}

	audio, video := true, true
	if err := handle.Start(ctx, echotest.StartOptions{Audio: &audio, Video: &video}); err != nil {
		return err
	}

	for event := range events {
		logger.Info().Interface("event", event).Msg("received event")
	}

	return nil
}
