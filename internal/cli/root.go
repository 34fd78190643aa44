package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kitbuilder587/chatgpt-plugin/internal/config"
	"github.com/kitbuilder587/chatgpt-plugin/internal/llm/chatgpt"
	"github.com/kitbuilder587/chatgpt-plugin/internal/metrics"
	"github.com/kitbuilder587/chatgpt-plugin/internal/service"
)

const defaultPrompt = "Hello, ChatGPT!"

var version = "dev"

type options struct {
	envFile     string
	prompts     []string
	endpoint    string
	tokenURL    string
	engine      string
	authMethod  string
	timeout     time.Duration
	checkStatus bool
	logLevel    string
}

func Execute() error {
	return NewRootCmd().Execute()
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "chatgpt-plugin",
		Short: "Authenticate and send prompts to a completion endpoint",
		Long: `chatgpt-plugin exchanges CHATGPT_API_KEY for an access token and sends
each --prompt to <endpoint>/v1/engines/<engine>/completions, printing the raw
response body.

The API key is read from the environment (or a .env file) only.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to seed the environment from")
	f.StringArrayVarP(&opts.prompts, "prompt", "p", []string{defaultPrompt}, "prompt to send (repeatable)")
	f.StringVar(&opts.endpoint, "endpoint", "", "completion endpoint base URL (overrides CHATGPT_ENDPOINT)")
	f.StringVar(&opts.tokenURL, "token-url", "", "token issuing URL (overrides CHATGPT_TOKEN_URL)")
	f.StringVar(&opts.engine, "engine", "", "engine name (overrides CHATGPT_ENGINE)")
	f.StringVar(&opts.authMethod, "auth-method", "", "HTTP method for the token request (overrides CHATGPT_AUTH_METHOD)")
	f.DurationVar(&opts.timeout, "timeout", 0, "per-request timeout, 0 disables (overrides CHATGPT_TIMEOUT_SEC)")
	f.BoolVar(&opts.checkStatus, "check-status", false, "treat non-2xx responses as failures (overrides CHATGPT_CHECK_STATUS)")
	f.StringVar(&opts.logLevel, "log-level", "", "debug|info|warn|error (overrides LOG_LEVEL)")

	return cmd
}

func run(cmd *cobra.Command, opts *options) error {
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return err
	}

	cfg := config.Load()
	applyFlags(cmd, cfg, opts)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer logger.Sync()

	m := metrics.New()
	client := chatgpt.New(chatgpt.Config{
		APIKey:      cfg.ChatGPT.APIKey,
		Endpoint:    cfg.ChatGPT.Endpoint,
		TokenURL:    cfg.ChatGPT.TokenURL,
		Engine:      cfg.ChatGPT.Engine,
		AuthMethod:  cfg.ChatGPT.AuthMethod,
		Timeout:     cfg.ChatGPT.Timeout,
		CheckStatus: cfg.ChatGPT.CheckStatus,
	}, logger)

	svc := service.NewPromptService(service.PromptServiceDeps{
		LLM:     client,
		Logger:  logger,
		Metrics: m,
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	responses, runErr := svc.Run(ctx, opts.prompts...)
	if runErr == nil {
		printResponses(cmd.OutOrStdout(), responses)
	}

	pushMetrics(ctx, m, cfg.Metrics, logger)

	return runErr
}

func applyFlags(cmd *cobra.Command, cfg *config.Config, opts *options) {
	f := cmd.Flags()
	if f.Changed("endpoint") {
		cfg.ChatGPT.Endpoint = opts.endpoint
	}
	if f.Changed("token-url") {
		cfg.ChatGPT.TokenURL = opts.tokenURL
	}
	if f.Changed("engine") {
		cfg.ChatGPT.Engine = opts.engine
	}
	if f.Changed("auth-method") {
		cfg.ChatGPT.AuthMethod = strings.ToUpper(opts.authMethod)
	}
	if f.Changed("timeout") {
		cfg.ChatGPT.Timeout = opts.timeout
	}
	if f.Changed("check-status") {
		cfg.ChatGPT.CheckStatus = opts.checkStatus
	}
	if f.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
}

func printResponses(w io.Writer, responses []string) {
	for _, r := range responses {
		fmt.Fprintf(w, "ChatGPT response: %s\n", r)
	}
}

func pushMetrics(ctx context.Context, m *metrics.Metrics, cfg config.MetricsConfig, logger *zap.Logger) {
	if cfg.PushgatewayURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := m.Push(ctx, cfg.PushgatewayURL, cfg.Job); err != nil {
		logger.Warn("metrics push failed", zap.Error(err))
	}
}

// ExitCode - 0 при успехе, 1 при любой ошибке.
func ExitCode(err error) int {
	if err != nil {
		return 1
	}
	return 0
}

func PrintError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}
