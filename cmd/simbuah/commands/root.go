package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/redis/go-redis/v9"
	"github.com/simbuah/go-api-http-client/httpclient"
	"github.com/simbuah/go-api-http-client/tokenstore"
	"github.com/simbuah/go-api-http-client/version"
	"github.com/simbuah/go-api-http-client/warehouse"
	"github.com/spf13/cobra"
)

const loginHint = "simbuah login"

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	baseURL    string
	tokenFile  string
	redisAddr  string
	logLevel   string
}

// NewRootCMD command entry
func NewRootCMD() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "simbuah",
		Short: "Command line client for the SIM-Buah warehouse API",
		Long: fmt.Sprintf(`
Command line client for the SIM-Buah warehouse API. Sign in once with
"%s"; the session is kept in %s and refreshed automatically.`,
			loginHint, color.HiCyanString(defaultTokenFile())),
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       version.GetVersion(),
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "client config file (.json, .yaml); SIMBUAH_* variables are used when empty")
	flags.StringVar(&opts.baseURL, "base-url", "", "API base URL, overrides the config")
	flags.StringVar(&opts.tokenFile, "token-file", defaultTokenFile(), "file holding the session tokens")
	flags.StringVar(&opts.redisAddr, "redis-addr", "", "keep the session in Redis at this address instead of the token file")
	flags.StringVar(&opts.logLevel, "log-level", "LogLevelWarn", "client log level, e.g. LogLevelDebug")

	cmd.AddCommand(
		LoginCommand(opts),
		LogoutCommand(opts),
		GetCommand(opts),
		DashboardCommand(opts),
		ExportCommand(opts),
	)

	return cmd
}

func defaultTokenFile() string {
	dir, err := os.UserHomeDir()
	if err != nil {
		return ".simbuah-session.json"
	}
	return filepath.Join(dir, ".simbuah", "session.json")
}

// loadConfig reads the client config from --config or the environment and applies
// the flag overrides.
func (o *globalOptions) loadConfig() (httpclient.ClientConfig, error) {
	var (
		loaded *httpclient.ClientConfig
		err    error
	)
	if o.configPath != "" {
		loaded, err = httpclient.LoadConfigFromFile(o.configPath)
	} else {
		loaded, err = httpclient.LoadConfigFromEnv()
	}
	if err != nil {
		return httpclient.ClientConfig{}, err
	}
	config := *loaded

	if o.baseURL != "" {
		config.BaseURL = o.baseURL
	}
	if o.logLevel != "" {
		config.LogLevel = o.logLevel
	}
	config.LoginRoute = loginHint
	return config, nil
}

// tokenStore opens the session store and returns the func that releases it.
func (o *globalOptions) tokenStore() (tokenstore.Store, func() error) {
	if o.redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: o.redisAddr})
		return tokenstore.NewRedisStore(rdb, "", 0), rdb.Close
	}
	return tokenstore.NewFileStore(o.tokenFile), func() error { return nil }
}

// newService builds the warehouse client. An expired session prints a notice to errOut
// telling the user to sign in again. The caller must call closeStore when done.
func (o *globalOptions) newService(errOut io.Writer) (svc *warehouse.Service, closeStore func() error, err error) {
	config, err := o.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	store, closeStore := o.tokenStore()
	client, err := httpclient.BuildClient(config, true,
		httpclient.WithTokenStore(store),
		httpclient.WithSessionExpiredHandler(sessionExpiredNotice(errOut, config.LoginRoute)),
	)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return warehouse.NewService(client), closeStore, nil
}

func sessionExpiredNotice(out io.Writer, loginRoute string) httpclient.LoginRedirect {
	return httpclient.LoginRedirect{
		LoginRoute: loginRoute,
		Navigate: func(_ context.Context, route string) {
			fmt.Fprintf(out, "%s run %s to sign in again\n",
				color.YellowString("Session expired,"), color.HiCyanString(route))
		},
	}
}
