package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/composio/docsite/pkg/flags"
	"github.com/composio/docsite/pkg/sitedata"
)

type CheckFlags struct {
	DataFlags  *flags.DataFlags
	CacheFlags *flags.CacheFlags
	Output     string
}

func NewCheckFlags() *CheckFlags {
	return &CheckFlags{
		DataFlags:  flags.NewDataFlags(),
		CacheFlags: flags.NewCacheFlags(),
		Output:     "yaml",
	}
}

func (f *CheckFlags) BindFlags(fs *pflag.FlagSet) {
	f.DataFlags.BindFlags(fs)
	f.CacheFlags.BindFlags(fs)
	fs.StringVarP(&f.Output, "output", "o", f.Output, "Output format; available options are 'yaml' and 'json'")
}

func (f *CheckFlags) Validate() error {
	if f.Output != "yaml" && f.Output != "json" {
		return errors.Errorf("invalid output format: %s", f.Output)
	}
	return f.DataFlags.Validate()
}

// NewCheckCommand loads both documents once and reports what the site would
// render from them.
func NewCheckCommand() *cobra.Command {
	f := NewCheckFlags()

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Load the data documents and summarize them",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.Validate(); err != nil {
				return errors.WithMessage(err, "error validating options")
			}

			cacheClient, err := f.CacheFlags.GetCacheClient()
			if err != nil {
				return errors.WithMessage(err, "couldn't get cache client")
			}

			store := sitedata.NewStore(f.DataFlags.GetSource(), cacheClient, f.DataFlags.CacheExpiry)
			errs := store.Load(cmd.Context(), false)
			report := sitedata.Summarize(store.Current(), errs)

			var out []byte
			if f.Output == "json" {
				out, err = json.MarshalIndent(report, "", "  ")
			} else {
				out, err = yaml.Marshal(report)
			}
			if err != nil {
				return errors.Wrap(err, "encoding report")
			}
			fmt.Fprintln(os.Stdout, string(out))

			if len(errs) > 0 {
				return errors.Errorf("%d document(s) failed to load", len(errs))
			}
			return nil
		},
	}

	f.BindFlags(cmd.Flags())
	return cmd
}
