package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"

	"studio-notify/internal/event"
	"studio-notify/internal/notify"
	"studio-notify/pkg/jwt"
	"studio-notify/pkg/log"
)

// clientConfig comes from STUDIO_* environment variables; flags override.
type clientConfig struct {
	ServerURL string `env:"STUDIO_SERVER_URL" envDefault:"ws://localhost:8082/ws"`
	Token     string `env:"STUDIO_TOKEN"`

	// Used to mint a token locally when STUDIO_TOKEN is not set.
	JWTSecret string `env:"STUDIO_JWT_SECRET"`
	UserID    int64  `env:"STUDIO_USER_ID" envDefault:"1"`
	UserName  string `env:"STUDIO_USER_NAME" envDefault:"terminal"`
	Roles     string `env:"STUDIO_ROLES" envDefault:"admin"`

	LogLevel string `env:"STUDIO_LOG_LEVEL" envDefault:"info"`
}

// terminalSink renders notifications to stdout.
type terminalSink struct{}

func (terminalSink) Show(n *notify.Notification) {
	fmt.Printf("[%s] %s\n", strings.ToUpper(string(n.Severity)), n.Title)
	for _, line := range n.Lines {
		fmt.Printf("    %s\n", line)
	}
	if n.Navigate != "" {
		fmt.Printf("    -> %s\n", n.Navigate)
	}
}

// terminalChime rings the terminal bell.
type terminalChime struct{}

func (terminalChime) Play() error {
	_, err := fmt.Print("\a")
	return err
}

func main() {
	cfg := clientConfig{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Println("Failed to parse environment:", err)
		os.Exit(1)
	}

	flag.StringVar(&cfg.ServerURL, "url", cfg.ServerURL, "notification server ws URL")
	flag.StringVar(&cfg.Token, "token", cfg.Token, "bearer token (skips local minting)")
	flag.Int64Var(&cfg.UserID, "user", cfg.UserID, "user id for minted token")
	flag.StringVar(&cfg.UserName, "name", cfg.UserName, "user name for minted token")
	flag.StringVar(&cfg.Roles, "roles", cfg.Roles, "comma-separated roles for minted token")
	flag.Parse()

	logger := log.Init(log.ZapConfig{
		Level:        cfg.LogLevel,
		Mode:         "development",
		Encoding:     "console",
		ColorEnabled: true,
	})

	ctx := context.Background()
	roles := strings.Split(cfg.Roles, ",")

	token := cfg.Token
	if token == "" {
		if cfg.JWTSecret == "" {
			fmt.Println("STUDIO_TOKEN or STUDIO_JWT_SECRET is required")
			os.Exit(1)
		}
		mgr := jwt.NewManager(jwt.Config{
			SecretKey: cfg.JWTSecret,
			Issuer:    "studio-admin",
			TTL:       24 * time.Hour,
		})
		var err error
		token, err = mgr.GenerateToken(cfg.UserID, cfg.UserName, roles)
		if err != nil {
			fmt.Println("Failed to mint token:", err)
			os.Exit(1)
		}
		logger.Debugf(ctx, "minted local token for user %d", cfg.UserID)
	}

	identity := notify.Identity{
		UserID: cfg.UserID,
		Name:   cfg.UserName,
		Roles:  roles,
	}

	presenter := notify.NewPresenter(terminalSink{}, terminalChime{}, logger)

	var binder *notify.Binder
	client := notify.NewClient(notify.Config{
		URL:           cfg.ServerURL,
		AutoReconnect: true,
	}, notify.Callbacks{
		OnConnect: func() {
			logger.Infof(ctx, "connected to %s", cfg.ServerURL)
		},
		OnDisconnect: func() {
			logger.Info(ctx, "disconnected")
		},
		OnMessage: func(msg *event.Inbound) {
			id, ok := binder.Identity()
			if !ok {
				return
			}
			presenter.Handle(id, msg)
		},
		OnError: func(err error) {
			logger.Warnf(ctx, "connection error: %v", err)
		},
	}, logger)

	source := notify.NewMemorySource()
	binder = notify.NewBinder(client, source, logger)
	source.Set(&notify.Session{Identity: identity, Token: token})

	logger.Infof(ctx, "listening for notifications as user %d (%s)", cfg.UserID, cfg.Roles)

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	binder.Close()
	client.Close()
}
