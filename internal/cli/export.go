package cli

import (
	"fmt"

	"bankfolio/internal/backend"
	"bankfolio/internal/i18n"
	"bankfolio/internal/worker"
)

type ExportCmd struct{}

func (cmd *ExportCmd) Run(env *Env) error {
	if env.Config == nil {
		return fmt.Errorf("export requires configuration")
	}
	cfg, err := backend.FromAppConfig(env.Config)
	if err != nil {
		return err
	}

	factory := env.Exporters
	if factory == nil {
		factory = backend.NewFactory(nil)
	}
	exporter, err := factory.CreateExporter(env.ctx(), cfg)
	if err != nil {
		return err
	}

	if err := worker.NewExportWorker(env.Ledger, exporter).ExportNow(env.ctx()); err != nil {
		return err
	}
	env.success(i18n.ExportCompleted)
	printInfof(env.stdout(), "%s", cfg.Type)
	return nil
}
