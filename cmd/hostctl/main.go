package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/hostctl/internal/cliconfig"
	"github.com/bft-labs/hostctl/pkg/hostctl"
	"github.com/bft-labs/hostctl/pkg/log"
)

const longHelp = `Read and edit the static hosts file without disturbing its layout.

Comments, blank lines and column alignment of untouched lines are kept
byte for byte. Every edit holds a cross-process lock on the file, so
concurrent hostctl invocations never lose each other's changes.

Configure via ~/.hostctl/config.toml, HOSTCTL_* environment variables, or flags.`

var exampleUsage = strings.TrimSpace(`
  hostctl list
  hostctl list --all -o yaml
  sudo hostctl set 127.0.0.1 app.local
  sudo hostctl set local api.local --file /etc/hosts --file /srv/chroot/etc/hosts
  sudo hostctl remove app.local
  hostctl get app.local
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

// cli carries state shared by the subcommands of one invocation.
type cli struct {
	cfg     cliconfig.Config
	cfgPath string
	files   []string

	logger zerolog.Logger
	closer io.Closer
	hosts  *hostctl.Hosts
}

// targets returns the files mutations apply to.
func (c *cli) targets() []string {
	if len(c.files) > 0 {
		return c.files
	}
	return []string{c.cfg.HostsFile}
}

// setup resolves configuration (flags > env > file > defaults) and builds
// the logger and the Hosts instance.
func (c *cli) setup(cmd *cobra.Command) error {
	cfgFile := c.cfgPath
	if cfgFile == "" {
		cfgFile = cliconfig.DefaultConfigPath()
	}

	changed := map[string]bool{}
	cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

	if cfgFile != "" && cliconfig.FileExists(cfgFile) {
		fc, err := cliconfig.LoadFileConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := cliconfig.ApplyFileConfig(&c.cfg, fc, changed); err != nil {
			return err
		}
	}
	if err := cliconfig.ApplyEnvConfig(&c.cfg, changed); err != nil {
		return err
	}
	if len(c.files) > 0 {
		c.cfg.HostsFile = c.files[0]
	}
	if err := c.cfg.Validate(); err != nil {
		return err
	}

	logger, closer, err := cliconfig.NewLogger(c.cfg, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	c.logger, c.closer = logger, closer
	c.logger.Debug().Interface("config", c.cfg).Strs("targets", c.targets()).Msg("configuration")

	hosts, err := hostctl.New(c.cfg.HostctlConfig(),
		hostctl.WithLogger(log.NewZerologAdapterWithLogger(c.logger)),
	)
	if err != nil {
		return fmt.Errorf("create hostctl: %w", err)
	}
	c.hosts = hosts
	return nil
}

func (c *cli) close() {
	if c.closer != nil {
		_ = c.closer.Close()
	}
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:           "hostctl",
		Short:         "Read and edit the hosts file while preserving its formatting",
		Long:          longHelp,
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&c.cfgPath, "config", "", "path to config file (default: $HOME/.hostctl/config.toml)")
	pf.StringArrayVar(&c.files, "file", nil, fmt.Sprintf("hosts file to operate on, repeatable for edits (default: %s)", c.cfg.HostsFile))
	pf.StringVar(&c.cfg.LockDir, "lock-dir", c.cfg.LockDir, "directory for lock files")
	pf.DurationVar(&c.cfg.LockWait, "lock-wait", c.cfg.LockWait, "maximum time to wait for the file lock")
	pf.DurationVar(&c.cfg.LockStale, "lock-stale", c.cfg.LockStale, "age after which an unrefreshed lock is reclaimed")
	pf.BoolVar(&c.cfg.AtomicWrite, "atomic", c.cfg.AtomicWrite, "replace the file by rename instead of rewriting it in place")
	pf.StringVar(&c.cfg.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug, info, warn, error, disabled)")
	pf.StringVar(&c.cfg.LogFile, "log-file", c.cfg.LogFile, "write logs to a rotating file instead of stderr")
	pf.StringVarP(&c.cfg.Output, "output", "o", c.cfg.Output, "output format (text, json, yaml)")

	root.AddCommand(
		newListCmd(c),
		newGetCmd(c),
		newSetCmd(c),
		newRemoveCmd(c),
	)
	return root
}

func main() {
	c := &cli{cfg: cliconfig.DefaultConfig()}
	root := newRootCmd(c)

	err := root.Execute()
	c.close()
	if err != nil {
		reportError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

// reportError prints err, with a hint when the failure is a missing privilege.
func reportError(w io.Writer, err error) {
	fmt.Fprintf(w, "hostctl: %v\n", err)
	if errors.Is(err, hostctl.ErrPermissionDenied) {
		if runtime.GOOS == "windows" {
			fmt.Fprintln(w, "hint: editing the hosts file requires an elevated prompt (Run as administrator)")
		} else {
			fmt.Fprintln(w, "hint: editing the hosts file requires elevated privileges (try sudo)")
		}
	}
}
