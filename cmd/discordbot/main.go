/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mikeb26/ozarkvalley-pairbot/internal"
	"github.com/mikeb26/ozarkvalley-pairbot/pairing"
	"github.com/mikeb26/ozarkvalley-pairbot/store"

	_ "embed"
)

type TopLevelCommand string

const (
	GolfCmd     TopLevelCommand = "golf"
	defaultAddr                 = ":8080"
)

type CmdHandler func(ctx context.Context,
	i *discordgo.Interaction) *discordgo.InteractionResponse

type bot struct {
	session   *discordgo.Session
	pubKey    ed25519.PublicKey
	appID     string
	cmdID     string
	logger    *log.Logger
	store     store.Store
	eventName string
	pairCfg   pairing.Config

	// one pairing at a time; the pairer holds no lock of its own
	pairMu sync.Mutex
}

func newBot(ctx context.Context, cfg *internal.Config,
	logger *log.Logger) (*bot, error) {

	pubKeyBytes, err := hex.DecodeString(
		strings.TrimSpace(os.Getenv(internal.EnvDiscordPublicKey)))
	if err != nil || len(pubKeyBytes) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("invalid %v: %w", internal.EnvDiscordPublicKey,
			errors.Join(err, errors.New("expected a hex ed25519 key")))
	}

	session, err := discordgo.New("Bot " + os.Getenv(internal.EnvDiscordToken))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize discord client: %w", err)
	}

	st, err := store.Open(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	return &bot{
		session:   session,
		pubKey:    ed25519.PublicKey(pubKeyBytes),
		appID:     os.Getenv(internal.EnvDiscordAppID),
		cmdID:     os.Getenv(internal.EnvDiscordCmdID),
		logger:    logger,
		store:     st,
		eventName: store.DefaultName(cfg.Store),
		pairCfg:   cfg.PairingConfig(),
	}, nil
}

func (b *bot) handlers() map[TopLevelCommand]CmdHandler {
	return map[TopLevelCommand]CmdHandler{
		GolfCmd: b.golfCmdHandler,
	}
}

func (b *bot) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/DiscordBot/Interaction", b.interactionHandler)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return r
}

func (b *bot) interactionHandler(w http.ResponseWriter, r *http.Request) {
	if !discordgo.VerifyInteraction(r, b.pubKey) {
		b.logger.Warn("discordbot.int: failed to verify")
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		b.logger.Error("discordbot.int: failed to read request body", "err", err)
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var inter discordgo.Interaction
	if err := inter.UnmarshalJSON(body); err != nil {
		b.logger.Error("discordbot.int: failed to unmarshal interaction",
			"err", err, "body", string(body))
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	resp := &discordgo.InteractionResponse{}
	if inter.Type == discordgo.InteractionPing {
		resp.Type = discordgo.InteractionResponsePong
	} else if inter.Type == discordgo.InteractionApplicationCommand {
		name := inter.ApplicationCommandData().Name
		hdlr, ok := b.handlers()[TopLevelCommand(name)]
		if !ok {
			resp.Type = discordgo.InteractionResponseChannelMessageWithSource
			resp.Data = &discordgo.InteractionResponseData{
				Content: fmt.Sprintf("unknown command '%v'", name),
				Flags:   discordgo.MessageFlagsEphemeral,
			}
		} else {
			resp = hdlr(r.Context(), &inter)
		}
	} else {
		b.logger.Warn("discordbot.int: unimplemented interaction type",
			"type", inter.Type)
		w.WriteHeader(http.StatusNotImplemented)
		return
	}

	rawResp, err := json.Marshal(resp)
	if err != nil {
		b.logger.Error("discordbot.int: failed to marshal resp", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if _, err = w.Write(rawResp); err != nil {
		b.logger.Error("discordbot.int: failed to write resp", "err", err)
	}
}

//go:embed lastupdate.hash
var lastCmdUpdateHash string

func (b *bot) shouldUpdateCmdRegistration(cmd *discordgo.ApplicationCommand) bool {
	cmdJson, err := json.Marshal(cmd)
	if err != nil {
		b.logger.Error("discordbot.reg: failed to marshal cmd", "err", err)
		return false
	}
	hash := sha256.Sum256(cmdJson)
	hexString := hex.EncodeToString(hash[:])

	shouldUpdate := (hexString != strings.TrimSpace(lastCmdUpdateHash))
	if shouldUpdate {
		b.logger.Info("discordbot.reg: updating cmd reg; please update lastupdate.hash",
			"hash", hexString)
	}

	return shouldUpdate
}

func (b *bot) registerSlashCommands() {
	golfCmd := golfCommand()

	if b.cmdID == "" {
		cmd, err := b.session.ApplicationCommandCreate(b.appID, "", golfCmd)
		if err != nil {
			b.logger.Error("discordbot.reg: failed to register", "cmd",
				golfCmd.Name, "err", err)
			return
		}

		b.logger.Info("discordbot.reg: registered", "cmd", cmd.Name,
			"cmdID", cmd.ID)
	} else if b.shouldUpdateCmdRegistration(golfCmd) {
		cmd, err := b.session.ApplicationCommandEdit(b.appID, "", b.cmdID,
			golfCmd)
		if err != nil {
			b.logger.Error("discordbot.reg: failed to update", "cmd",
				golfCmd.Name, "err", err)
			return
		}

		b.logger.Info("discordbot.reg: updated", "cmd", cmd.Name,
			"cmdID", cmd.ID)
	}
}

func main() {
	ctx := context.Background()

	cfg, err := internal.LoadConfig(internal.DefaultConfFile)
	if err != nil {
		log.Fatal("discordbot.main: failed to load config", "err", err)
	}
	internal.LoadEnv(cfg)
	logger := internal.NewLogger(cfg.LogLevel)

	b, err := newBot(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("discordbot.main: init failed", "err", err)
	}
	go b.registerSlashCommands()

	addr := os.Getenv(internal.EnvAddr)
	if addr == "" {
		addr = defaultAddr
	}
	server := &http.Server{
		Addr:         addr,
		Handler:      b.router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("discordbot.main: starting server", "addr", addr)
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("discordbot.main: serve failed", "err", err)
		}
	case sig := <-quit:
		logger.Info("discordbot.main: shutting down", "signal", sig.String())
		shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("discordbot.main: graceful shutdown failed", "err", err)
		}
	}

	logger.Info("discordbot.main: exiting")
}
