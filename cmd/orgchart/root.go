package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iota-uz/orgchart/modules/org/domain/hierarchy"
	"github.com/iota-uz/orgchart/pkg/composables"
	"github.com/iota-uz/orgchart/pkg/configuration"
)

type app struct {
	envFiles        []string
	metricsAddr     string
	duplicatePolicy string

	cfg     *configuration.Configuration
	metrics *http.Server
}

func (a *app) logger(ctx context.Context) *logrus.Entry {
	return composables.UseLogger(ctx)
}

// hierarchyOptions resolves the duplicate policy: flag first, then
// ORG_DUPLICATE_POLICY.
func (a *app) hierarchyOptions() ([]hierarchy.Option, error) {
	raw := a.duplicatePolicy
	if strings.TrimSpace(raw) == "" && a.cfg != nil {
		raw = a.cfg.Org.DuplicatePolicy
	}
	policy, err := hierarchy.ParseDuplicatePolicy(raw)
	if err != nil {
		return nil, withCode(exitUsage, err)
	}
	return []hierarchy.Option{hierarchy.WithDuplicatePolicy(policy)}, nil
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := configuration.Load(a.envFiles)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("load configuration: %w", err))
	}
	a.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	entry := logrus.NewEntry(cfg.Logger()).WithField("command", cmd.CommandPath())
	cmd.SetContext(composables.WithLogger(ctx, entry))

	if a.metricsAddr != "" {
		a.metrics = startMetricsServer(a.metricsAddr, entry)
	}
	return nil
}

func (a *app) teardown(cmd *cobra.Command, _ []string) error {
	if a.metrics != nil {
		if err := a.metrics.Shutdown(cmd.Context()); err != nil {
			a.logger(cmd.Context()).WithError(err).Warn("metrics server shutdown")
		}
		a.metrics = nil
	}
	if a.cfg != nil {
		a.cfg.Unload()
	}
	return nil
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:                "orgchart",
		Short:              "Build org charts from \"Name, Title[, Manager]\" lines",
		SilenceUsage:       true,
		SilenceErrors:      true,
		PersistentPreRunE:  a.setup,
		PersistentPostRunE: a.teardown,
	}

	cmd.PersistentFlags().StringSliceVar(&a.envFiles, "env-file", []string{".env", ".env.local"}, "Env files to load before reading the environment")
	cmd.PersistentFlags().StringVar(&a.metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while the command runs")
	cmd.PersistentFlags().StringVar(&a.duplicatePolicy, "duplicate-policy", "", "Duplicate name policy: first|last (default from ORG_DUPLICATE_POLICY)")

	cmd.AddCommand(newParseCmd(a))
	cmd.AddCommand(newImportCmd(a))
	cmd.AddCommand(newChartCmd(a))
	cmd.AddCommand(newExportCmd(a))
	cmd.AddCommand(newMigrateCmd(a))
	return cmd
}

func Execute() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		code := exitCode(err)
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(code)
	}
}
