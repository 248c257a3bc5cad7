package main

import (
	"fmt"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bft-labs/hostctl/internal/cliconfig"
	"github.com/bft-labs/hostctl/pkg/hostctl"
	"github.com/bft-labs/hostctl/pkg/hostsfile"
)

// loopbackAliases name addresses accepted by set in place of an IP.
var loopbackAliases = map[string]string{
	"local":     "127.0.0.1",
	"localhost": "127.0.0.1",
}

func resolveAddress(address string) (string, error) {
	if ip, ok := loopbackAliases[strings.ToLower(address)]; ok {
		return ip, nil
	}
	if err := cliconfig.ValidateAddress(address); err != nil {
		return "", err
	}
	return address, nil
}

func newListCmd(c *cli) *cobra.Command {
	var all, watch bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the entries of the hosts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !watch {
				lines, err := c.hosts.Get(cmd.Context(), all)
				if err != nil {
					return err
				}
				return printLines(out, c.cfg.Output, lines, all)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return c.hosts.Watch(ctx, c.cfg.HostsFile, all, func(lines []hostctl.Line, err error) {
				if err != nil {
					c.logger.Warn().Err(err).Str("path", c.cfg.HostsFile).Msg("cannot read hosts file")
					return
				}
				if c.cfg.Output == cliconfig.OutputText {
					fmt.Fprintf(out, "# %s\n", c.cfg.HostsFile)
				}
				if err := printLines(out, c.cfg.Output, lines, all); err != nil {
					c.logger.Error().Err(err).Msg("print entries")
				}
			})
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include comments and blank lines")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "print again whenever the file changes")
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "get <host>",
		Short: "Print the addresses a hostname maps to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines, err := c.hosts.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(lines) == 0 {
				return fmt.Errorf("%s: no entry in %s", args[0], c.cfg.HostsFile)
			}
			if c.cfg.Output == cliconfig.OutputText {
				for _, l := range lines {
					fmt.Fprintln(cmd.OutOrStdout(), l.Address)
				}
				return nil
			}
			return printLines(cmd.OutOrStdout(), c.cfg.Output, lines, false)
		},
	}
}

func newSetCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "set <ip> <host>",
		Short: "Map a hostname to an address",
		Long: `Map a hostname to an address.

An existing entry with exactly these hostnames and an address of the same
family (IPv4 or IPv6) is updated in place; otherwise a new entry is appended.
"local" and "localhost" are accepted as aliases for 127.0.0.1.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ip, err := resolveAddress(args[0])
			if err != nil {
				return err
			}
			if err := hostsfile.ValidateEntry(ip, args[1]); err != nil {
				return err
			}
			if err := c.hosts.Apply(cmd.Context(), c.targets(), hostctl.SetEntry(ip, args[1])); err != nil {
				return err
			}
			c.logger.Info().Str("address", ip).Str("host", args[1]).Msg("entry set")
			return nil
		},
	}
}

func newRemoveCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "remove [<ip>] <host>",
		Short: "Remove entries for a hostname",
		Long: `Remove entries for a hostname.

With one argument, every entry whose hostnames equal <host> is removed.
With two, only entries that also have the address <ip>. Removing an entry
that does not exist succeeds.`,
		Aliases: []string{"rm"},
		Args:    cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := hostctl.RemoveHostEntry(args[0])
			if len(args) == 2 {
				ip, err := resolveAddress(args[0])
				if err != nil {
					return err
				}
				m = hostctl.RemoveEntry(ip, args[1])
			}
			return c.hosts.Apply(cmd.Context(), c.targets(), m)
		},
	}
}
