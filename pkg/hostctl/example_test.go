package hostctl_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bft-labs/hostctl/pkg/hostctl"
)

// ExampleHosts_Set maps a hostname in a private copy of a hosts file.
func ExampleHosts_Set() {
	dir, err := os.MkdirTemp("", "hostctl-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "hosts")
	_ = os.WriteFile(path, []byte("# local\n127.0.0.1 localhost\n"), 0o644)

	cfg := hostctl.DefaultConfig()
	cfg.HostsFile = path
	cfg.LockDir = dir

	hosts, err := hostctl.New(cfg)
	if err != nil {
		fmt.Println(err)
		return
	}

	ctx := context.Background()
	_ = hosts.Set(ctx, "127.0.0.1", "app.local")
	_ = hosts.Set(ctx, "::1", "app.local")

	entries, _ := hosts.Get(ctx, false)
	for _, e := range entries {
		fmt.Println(e.Address, e.Hostnames)
	}

	// Output:
	// 127.0.0.1 localhost
	// 127.0.0.1 app.local
	// ::1 app.local
}

// ExampleHosts_UpdateFile applies several edits under one lock.
func ExampleHosts_UpdateFile() {
	dir, err := os.MkdirTemp("", "hostctl-example")
	if err != nil {
		fmt.Println(err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "hosts")
	_ = os.WriteFile(path, []byte("10.0.0.1 old.local\n"), 0o644)

	cfg := hostctl.DefaultConfig()
	cfg.HostsFile = path
	cfg.LockDir = dir
	hosts, _ := hostctl.New(cfg)

	err = hosts.UpdateFile(context.Background(), path, func(doc *hostctl.Document) error {
		doc.Delete("10.0.0.1", "old.local")
		doc.Upsert("10.0.0.2", "new.local")
		return nil
	})
	fmt.Println(err)

	entries, _ := hosts.GetFile(context.Background(), path, false)
	fmt.Println(len(entries), entries[0].Hostnames)

	// Output:
	// <nil>
	// 1 new.local
}
