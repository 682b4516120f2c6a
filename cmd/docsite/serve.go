package main

import (
	"io"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	resources "github.com/composio/docsite"
	"github.com/composio/docsite/pkg/dataloader/docloader"
	"github.com/composio/docsite/pkg/docsserver"
	"github.com/composio/docsite/pkg/flags"
	"github.com/composio/docsite/pkg/sitedata"
)

type ServeFlags struct {
	DataFlags   *flags.DataFlags
	CacheFlags  *flags.CacheFlags
	ServerFlags *flags.ServerFlags
}

func NewServeFlags() *ServeFlags {
	return &ServeFlags{
		DataFlags:   flags.NewDataFlags(),
		CacheFlags:  flags.NewCacheFlags(),
		ServerFlags: flags.NewServerFlags(),
	}
}

func (f *ServeFlags) BindFlags(fs *pflag.FlagSet) {
	f.DataFlags.BindFlags(fs)
	f.CacheFlags.BindFlags(fs)
	f.ServerFlags.BindFlags(fs)
}

func (f *ServeFlags) Validate() error {
	if err := f.DataFlags.Validate(); err != nil {
		return err
	}
	return f.ServerFlags.Validate()
}

func NewServeCommand() *cobra.Command {
	f := NewServeFlags()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the documentation site",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return errors.WithMessage(err, "error validating options")
			}

			cacheClient, err := f.CacheFlags.GetCacheClient()
			if err != nil {
				return errors.WithMessage(err, "couldn't get cache client")
			}

			static, err := fs.Sub(resources.Static, "static")
			if err != nil {
				return errors.Wrap(err, "could not load static assets")
			}

			source := f.DataFlags.GetSource()
			if closer, ok := source.(io.Closer); ok {
				defer closer.Close()
			}

			store := sitedata.NewStore(source, cacheClient, f.DataFlags.CacheExpiry)
			server := docsserver.NewServer(f.ServerFlags.ListenAddr, store, static, prometheus.DefaultRegisterer)

			// Failed documents are logged and the site renders without them.
			server.RefreshData(cmd.Context(), false)

			processes := []docsserver.DaemonProcess{server}
			if f.ServerFlags.MetricsListenAddr != "" {
				processes = append(processes, docsserver.MetricsServer{Addr: f.ServerFlags.MetricsListenAddr})
			}
			if f.DataFlags.RefreshInterval > 0 {
				processes = append(processes, docsserver.IntervalRefresher{Server: server, Interval: f.DataFlags.RefreshInterval})
			}
			if fileSource, ok := source.(*docloader.FileSource); ok && f.DataFlags.Watch {
				watcher, err := docsserver.NewDataWatcher(server, fileSource.Dir())
				if err != nil {
					log.WithError(err).Warning("not watching data files")
				} else {
					processes = append(processes, watcher)
				}
			}

			docsserver.NewDaemonServer(processes...).Serve(cmd.Context())
			return nil
		},
	}

	f.BindFlags(cmd.Flags())
	return cmd
}
