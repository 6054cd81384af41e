// ABOUTME: Entry point for the bncctl control-plane server
// ABOUTME: Subcommands for serving, bootstrap, token minting, and audit review

package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"

	"github.com/2389/bncctl/internal/admin"
	"github.com/2389/bncctl/internal/auth"
	"github.com/2389/bncctl/internal/config"
	"github.com/2389/bncctl/internal/engine"
	"github.com/2389/bncctl/internal/server"
)

// Version is set by goreleaser at build time.
var version = "dev"

const banner = `
 _                  _   _
| |__  _ __   ___ _| |_| |
| '_ \| '_ \ / __|_   _| |
| |_) | | | | (__  | |_| |
|_.__/|_| |_|\___|  \__|_|
`

// getConfigPath returns the path to the bncctl config file.
// Priority: BNCCTL_CONFIG env var > XDG_CONFIG_HOME/bncctl/bncctl.yaml > ~/.config/bncctl/bncctl.yaml
func getConfigPath() string {
	if envPath := os.Getenv("BNCCTL_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "bncctl.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "bncctl", "bncctl.yaml")
}

// getDataPath returns the path to the bncctl data directory.
// Priority: XDG_DATA_HOME/bncctl > ~/.local/share/bncctl
func getDataPath() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "bncctl")
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: bncctl <command>")
		fmt.Println()
		fmt.Println("Commands:")
		fmt.Println("  serve                              Start the control-plane server")
		fmt.Println("  init                               Create a starter config file")
		fmt.Println("  bootstrap --username U --password P  Create the first administrator")
		fmt.Println("  token --username U                 Mint a bearer token for an admin")
		fmt.Println("  audit                              Show recent administrative actions")
		fmt.Println("  health                             Check server health")
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var err error
	switch os.Args[1] {
	case "serve":
		err = runServe(ctx)
	case "init":
		err = runInit()
	case "bootstrap":
		err = runBootstrap(ctx)
	case "token":
		err = runToken()
	case "audit":
		err = runAudit(ctx)
	case "health":
		err = runHealth(ctx)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runServe(ctx context.Context) error {
	configPath := getConfigPath()

	cyan := color.New(color.FgCyan)
	cyan.Print(banner)

	gray := color.New(color.FgHiBlack)
	gray.Printf("    version: %s\n\n", version)

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := setupLogger(cfg.Logging)

	green := color.New(color.FgGreen)
	green.Print("    ▶ ")
	fmt.Printf("Config:   %s\n", configPath)
	green.Print("    ▶ ")
	fmt.Printf("HTTP:     %s\n", cfg.Server.HTTPAddr)
	green.Print("    ▶ ")
	fmt.Printf("Database: %s\n", cfg.Database.Path)
	fmt.Println()

	logger.Info("starting bncctl",
		"config", configPath,
		"http_addr", cfg.Server.HTTPAddr,
	)

	eng, err := engine.New(engine.Options{
		Path:        cfg.Database.Path,
		MaxNetworks: cfg.Limits.MaxNetworksPerUser,
	})
	if err != nil {
		return fmt.Errorf("opening engine: %w", err)
	}
	defer eng.Close()

	admins, err := eng.CountAdmins(ctx)
	if err != nil {
		return fmt.Errorf("counting admins: %w", err)
	}
	if admins == 0 {
		logger.Warn("no administrators exist, run: bncctl bootstrap")
	}

	svc := admin.NewService(eng)
	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	srv := server.New(svc)

	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: srv.Handler(eng, verifier),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

const starterConfig = `server:
  http_addr: 127.0.0.1:3000

database:
  path: %s

auth:
  jwt_secret: %s
  token_ttl: 24h

limits:
  max_networks_per_user: 3

logging:
  level: info
  format: text
`

func runInit() error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s", configPath)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	secret, err := randomSecret(32)
	if err != nil {
		return fmt.Errorf("generating jwt secret: %w", err)
	}

	dbPath := filepath.Join(getDataPath(), "bncctl.db")
	content := fmt.Sprintf(starterConfig, dbPath, secret)

	if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Wrote %s\n", configPath)
	fmt.Println("Next: bncctl bootstrap --username admin --password <password>")
	return nil
}

func runBootstrap(ctx context.Context) error {
	username, password, err := parseCredentialFlags(os.Args[2:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	eng, err := engine.New(engine.Options{
		Path:        cfg.Database.Path,
		MaxNetworks: cfg.Limits.MaxNetworksPerUser,
	})
	if err != nil {
		return fmt.Errorf("opening engine: %w", err)
	}
	defer eng.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	if err := eng.CreateAdmin(ctx, username, string(hash)); err != nil {
		return fmt.Errorf("creating admin: %w", err)
	}

	green := color.New(color.FgGreen)
	green.Print("✓ ")
	fmt.Printf("Created administrator %q\n", username)
	return nil
}

func runToken() error {
	username, err := parseUsernameFlag(os.Args[2:])
	if err != nil {
		return err
	}

	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	verifier := auth.NewJWTVerifier([]byte(cfg.Auth.JWTSecret))
	token, err := verifier.Generate(username, cfg.Auth.TokenTTL)
	if err != nil {
		return fmt.Errorf("generating token: %w", err)
	}

	fmt.Println(token)
	return nil
}

func runAudit(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	eng, err := engine.New(engine.Options{Path: cfg.Database.Path})
	if err != nil {
		return fmt.Errorf("opening engine: %w", err)
	}
	defer eng.Close()

	entries, err := eng.ListAudit(ctx, 50)
	if err != nil {
		return fmt.Errorf("listing audit log: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("audit log is empty")
		return nil
	}

	gray := color.New(color.FgHiBlack)
	for _, entry := range entries {
		gray.Printf("%s ", entry.CreatedAt.Format(time.RFC3339))
		actor := entry.Actor
		if actor == "" {
			actor = "-"
		}
		fmt.Printf("%-12s %-10s %s/%s\n", entry.Action, actor, entry.TargetType, entry.TargetID)
	}
	return nil
}

func runHealth(ctx context.Context) error {
	cfg, err := config.Load(getConfigPath())
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	url := fmt.Sprintf("http://%s/healthz", cfg.Server.HTTPAddr)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unhealthy: status %d", resp.StatusCode)
	}

	fmt.Println("healthy")
	return nil
}

// parseCredentialFlags handles --username/--password in both "--flag value"
// and "--flag=value" forms.
func parseCredentialFlags(args []string) (username, password string, err error) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--username" || arg == "-u":
			if i+1 >= len(args) {
				return "", "", fmt.Errorf("--username requires a value")
			}
			username = args[i+1]
			i++
		case strings.HasPrefix(arg, "--username="):
			username = strings.TrimPrefix(arg, "--username=")
		case arg == "--password" || arg == "-p":
			if i+1 >= len(args) {
				return "", "", fmt.Errorf("--password requires a value")
			}
			password = args[i+1]
			i++
		case strings.HasPrefix(arg, "--password="):
			password = strings.TrimPrefix(arg, "--password=")
		default:
			return "", "", fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	if username == "" {
		return "", "", fmt.Errorf("--username flag is required")
	}
	if password == "" {
		return "", "", fmt.Errorf("--password flag is required")
	}
	return username, password, nil
}

func parseUsernameFlag(args []string) (string, error) {
	var username string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch {
		case arg == "--username" || arg == "-u":
			if i+1 >= len(args) {
				return "", fmt.Errorf("--username requires a value")
			}
			username = args[i+1]
			i++
		case strings.HasPrefix(arg, "--username="):
			username = strings.TrimPrefix(arg, "--username=")
		default:
			return "", fmt.Errorf("unexpected argument: %s", arg)
		}
	}

	if username == "" {
		return "", fmt.Errorf("--username flag is required")
	}
	return username, nil
}

func randomSecret(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
