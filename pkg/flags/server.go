package flags

import (
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

type ServerFlags struct {
	ListenAddr        string
	MetricsListenAddr string
}

func NewServerFlags() *ServerFlags {
	e, _ := LoadEnvironment()
	return &ServerFlags{
		ListenAddr:        e.ListenAddr,
		MetricsListenAddr: e.MetricsAddr,
	}
}

func (f *ServerFlags) BindFlags(fs *pflag.FlagSet) {
	fs.StringVar(&f.ListenAddr, "listen", f.ListenAddr, "The address to serve the site on")
	fs.StringVar(&f.MetricsListenAddr, "listen-metrics", f.MetricsListenAddr, "The address to serve prometheus metrics on, empty disables")
}

func (f *ServerFlags) Validate() error {
	if f.ListenAddr == "" {
		return errors.New("--listen is required")
	}
	if f.ListenAddr == f.MetricsListenAddr {
		return errors.New("--listen and --listen-metrics must differ")
	}
	return nil
}
