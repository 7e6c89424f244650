package main

import (
	"github.com/judwhite/go-svc"
	"github.com/rs/zerolog"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/pkg/overwatch"
	"github.com/jxo-me/ddns-updater/pkg/watcher"
	"github.com/jxo-me/ddns-updater/sdk/app"
	"github.com/jxo-me/ddns-updater/sdk/service"
)

// program runs one DDNS service under go-svc until SIGINT/SIGTERM.
type program struct {
	app     *app.Application
	store   *config.Store
	svc     *service.DDNSService
	log     *zerolog.Logger
	manager *overwatch.AppManager
	watcher watcher.Notifier
}

var _ svc.Service = (*program)(nil)

func (p *program) Init(env svc.Environment) error {
	p.manager = overwatch.NewAppManager(func(t string, name string, err error) {
		if err != nil {
			p.log.Err(err).Msgf("%s service: %s encountered an error", t, name)
			return
		}
		p.log.Debug().Msgf("%s service: %s finished", t, name)
	})

	secretPath, err := p.store.SecretPath(p.svc.String())
	if err != nil {
		// providers without a secrets file have nothing to watch
		return nil
	}
	f, err := watcher.NewFile()
	if err != nil {
		p.log.Warn().Err(err).Msg("cannot watch the secrets file, rotation needs a restart")
		return nil
	}
	if err := f.Add(secretPath); err != nil {
		p.log.Warn().Err(err).Msgf("cannot watch %s", secretPath)
		f.Shutdown()
		return nil
	}
	p.manager.Watch(secretPath, p.svc.String())
	p.watcher = f
	return nil
}

func (p *program) Start() error {
	if err := p.app.DDNSRegistry().Register(p.svc.String(), p.svc); err != nil {
		return err
	}
	p.manager.Add(p.svc)
	if p.watcher != nil {
		go p.watcher.Start(p.manager)
	}
	p.log.Info().Msgf("%s DDNS service started", p.svc.String())
	return nil
}

func (p *program) Stop() error {
	if p.watcher != nil {
		p.watcher.Shutdown()
	}
	for name := range p.app.DDNSRegistry().GetAll() {
		p.app.DDNSRegistry().Unregister(name)
		p.log.Info().Msgf("service %s shutdown", name)
	}
	p.manager.Shutdown()
	return nil
}
