package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/formship"
	logAdapter "github.com/bft-labs/formship/internal/adapters/log"
	"github.com/bft-labs/formship/internal/cliconfig"
	"github.com/bft-labs/formship/internal/watcher"
)

const longHelp = `Submit form fields and file attachments to any endpoint a URL can name.

The URL scheme selects the transport:
  http, https  multipart/form-data POST (GET when there are no fields)
  telnet       the same multipart body written to a raw TCP connection
  file         read a local file
  test         answer with a fixture registered by name

Configuration is read from $HOME/.formship/config.toml, then FORMSHIP_*
environment variables, then flags.`

var exampleUsage = strings.TrimSpace(`
  formship --url https://example.com/upload -F title=report -F doc=@report.pdf
  formship --url telnet://localhost:2323 -F ping=1
  formship --url test://orders --fixture orders=orders.json -F id=42
  formship --url https://example.com/upload -F doc=@report.pdf --watch
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	cfg := cliconfig.DefaultConfig()
	var (
		cfgPath string
		headers []string
	)

	log := cliconfig.Logger(cfg.LogLevel)

	root := &cobra.Command{
		Use:          "formship",
		Short:        "Submit form fields and files to http, telnet, file or test URLs",
		Long:         longHelp,
		Example:      exampleUsage,
		Version:      fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			// Build set of changed flags
			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			for _, h := range headers {
				if err := cfg.ParseHeader(h); err != nil {
					return err
				}
			}

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				if err := cliconfig.ApplyFileConfig(&cfg, fc, changed); err != nil {
					return err
				}
			}

			// FORMSHIP_* override file config but are overridden by flags
			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}

			if err := cfg.Validate(); err != nil {
				return err
			}

			log = cliconfig.Logger(cfg.LogLevel)
			log.Debug().Interface("config", cfg).Msg("configuration")

			params, err := cfg.Parameters()
			if err != nil {
				return err
			}
			fixtures, err := cfg.LoadFixtures()
			if err != nil {
				return err
			}

			factoryCfg := formship.Config{
				UserAgent:   cfg.UserAgent,
				Header:      cfg.Header(),
				Charset:     cfg.Charset,
				DialTimeout: cfg.DialTimeout,
				HTTPTimeout: cfg.HTTPTimeout,
				Fixtures:    fixtures,
				Logger:      logAdapter.NewZerologAdapterWithLogger(log),
			}
			f, err := formship.NewFactory(factoryCfg)
			if err != nil {
				return err
			}

			// Setup signal handling for graceful shutdown
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			send := func(ctx context.Context) error {
				t := f.Create(cfg.URL, cfg.Name)
				if t == nil {
					return fmt.Errorf("%w: %q", formship.ErrNoTransport, cfg.URL)
				}
				body, err := t.Send(ctx, params)
				if err != nil {
					return err
				}
				if body == nil {
					log.Warn().Str("url", cfg.URL).Msg("no response stream")
					return nil
				}
				defer body.Close()
				return writeOutput(cfg.Output, body, log)
			}

			if !cfg.Watch {
				return send(ctx)
			}

			var files []string
			for _, p := range params {
				if p.IsFile() {
					files = append(files, p.Value)
				}
			}
			w, err := watcher.New(watcher.Config{
				DebounceDelay: cfg.Debounce,
				Logger:        factoryCfg.Logger,
			}, files, send)
			if err != nil {
				return err
			}
			log.Info().Int("files", len(files)).Msg("watching attachments")
			return w.Run(ctx)
		},
	}

	// Flags
	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.formship/config.toml)")
	root.Flags().StringVarP(&cfg.URL, "url", "u", cfg.URL, "endpoint URL (http, https, telnet, file or test)")
	root.Flags().StringVar(&cfg.Name, "name", cfg.Name, "logical endpoint name used by test: URLs")
	root.Flags().StringArrayVarP(&cfg.Params, "field", "F", nil, "form field name=value, or name=@path for a file (repeatable)")
	root.Flags().StringArrayVarP(&headers, "header", "H", nil, "extra HTTP header \"Key: value\" (repeatable)")
	root.Flags().StringVar(&cfg.UserAgent, "user-agent", cfg.UserAgent, "HTTP User-Agent")
	root.Flags().StringVar(&cfg.Charset, "charset", cfg.Charset, "charset for text fields")
	root.Flags().DurationVar(&cfg.HTTPTimeout, "timeout", cfg.HTTPTimeout, "HTTP timeout")
	root.Flags().DurationVar(&cfg.DialTimeout, "dial-timeout", cfg.DialTimeout, "TCP connect timeout for telnet URLs")
	root.Flags().StringToStringVar(&cfg.Fixtures, "fixture", nil, "fixture name=path served by test: URLs (repeatable)")
	root.Flags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "write the response to a file instead of stdout")
	root.Flags().BoolVar(&cfg.Watch, "watch", cfg.Watch, "re-send whenever an attached file changes")
	root.Flags().DurationVar(&cfg.Debounce, "debounce", cfg.Debounce, "delay after a file change before re-sending")
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := root.Execute(); err != nil {
		log.Error().Err(err).Msg("formship")
		os.Exit(1)
	}
}

func writeOutput(path string, body io.Reader, log zerolog.Logger) error {
	var out io.Writer = os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	n, err := io.Copy(out, body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	log.Debug().Int64("bytes", n).Msg("response written")
	return nil
}
