package config_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/urfave/cli/v3"

	"github.com/prevanto-lab/duerpcore/pkg/cli/config"
)

func configureLogger(t *testing.T, args ...string) error {
	t.Helper()

	var cfg config.Logger
	var closer func()
	cmd := &cli.Command{
		Name:  "test",
		Flags: cfg.Flags(),
		Action: func(_ context.Context, _ *cli.Command) error {
			f, err := cfg.Configure()
			if err != nil {
				return err
			}
			closer = f
			return nil
		},
	}
	err := cmd.Run(t.Context(), append([]string{"test"}, args...))
	if closer != nil {
		closer()
	}
	return err
}

func TestLoggerConfigure(t *testing.T) {
	cases := []struct {
		name    string
		args    []string
		wantErr bool
	}{
		{name: "defaults"},
		{name: "json format", args: []string{"--log-format", "json"}},
		{name: "debug level", args: []string{"--log-level", "debug"}},
		{name: "invalid level", args: []string{"--log-level", "verbose"}, wantErr: true},
		{name: "invalid format", args: []string{"--log-format", "xml"}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := configureLogger(t, tc.args...)
			if tc.wantErr {
				gt.Error(t, err)
			} else {
				gt.NoError(t, err)
			}
		})
	}
}
