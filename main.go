package main

import (
	"os"
	"os/signal"

	"github.com/MaaXYZ/maa-framework-go/v4"
	"github.com/rs/zerolog/log"

	"github.com/ZeroAd-06/MaaEnd/agent/go-service/keymap"
	"github.com/ZeroAd-06/MaaEnd/agent/go-service/resetposition"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	cleanup, err := initLogger(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	defer cleanup()

	log.Info().Str("version", Version).Msg("MaaEnd Agent Service")

	if len(os.Args) < 2 {
		log.Fatal().Msg("Usage: go-service <identifier>")
	}

	identifier := os.Args[1]
	log.Info().Str("identifier", identifier).Msg("Starting agent server")

	// Initialize MAA framework first (required before any other MAA calls)
	// MAA DLL 默认位于工作目录下的 maafw 子目录
	log.Info().Str("libDir", cfg.LibDir).Msg("Initializing MAA framework")
	if err := maa.Init(maa.WithLibDir(cfg.LibDir)); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize MAA framework")
	}
	defer maa.Release()
	log.Info().Msg("MAA framework initialized")

	userPath := getCwd()
	if err := maa.ConfigInitOption(userPath, "{}"); err != nil {
		log.Warn().Err(err).Str("userPath", userPath).Msg("Failed to init toolkit config option")
	} else {
		log.Info().Str("userPath", userPath).Msg("Toolkit config option initialized")
	}

	keymap.Register()
	resetposition.Register()
	log.Info().Msg("Registered custom actions")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, shutdownSignals...)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received signal, initiating shutdown")
		maa.AgentServerShutDown()
	}()

	if err := maa.AgentServerStartUp(identifier); err != nil {
		log.Fatal().Err(err).Msg("Failed to start agent server")
	}
	log.Info().Msg("Agent server started")

	maa.AgentServerJoin()

	// No-op if the signal handler already shut down.
	maa.AgentServerShutDown()
	log.Info().Msg("Agent server shutdown complete")
}

func getCwd() string {
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}
