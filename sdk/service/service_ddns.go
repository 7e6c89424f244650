package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/juju/clock"
	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/jxo-me/ddns-updater/config"
	"github.com/jxo-me/ddns-updater/consts"
	coreddns "github.com/jxo-me/ddns-updater/core/ddns"
	"github.com/jxo-me/ddns-updater/core/errs"
	"github.com/jxo-me/ddns-updater/core/hook"
	"github.com/jxo-me/ddns-updater/core/logger"
	"github.com/jxo-me/ddns-updater/core/resolver"
	"github.com/jxo-me/ddns-updater/core/service"
	"github.com/jxo-me/ddns-updater/internal/util"
	"github.com/jxo-me/ddns-updater/sdk/ddns"
	xresolver "github.com/jxo-me/ddns-updater/sdk/resolver"
)

type Option func(s *DDNSService)

func WithLogger(log logger.ILogger) Option {
	return func(s *DDNSService) {
		s.logger = log
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *DDNSService) {
		s.clock = c
	}
}

// WithPeriod sets the time between two cycles of Start. Zero runs a
// single cycle.
func WithPeriod(d time.Duration) Option {
	return func(s *DDNSService) {
		s.period = d
	}
}

// WithSchedule runs cycles at the activation times of a cron schedule
// instead of every period.
func WithSchedule(schedule cron.Schedule) Option {
	return func(s *DDNSService) {
		s.schedule = schedule
	}
}

// WithDebug skips the update call; everything before it still runs.
func WithDebug(debug bool) Option {
	return func(s *DDNSService) {
		s.debug = debug
	}
}

func WithAddrSource(src resolver.IAddrSource) Option {
	return func(s *DDNSService) {
		s.addrs = src
	}
}

func WithNameResolver(r resolver.INameResolver) Option {
	return func(s *DDNSService) {
		s.names = r
	}
}

func WithHTTPClient(c *http.Client) Option {
	return func(s *DDNSService) {
		s.client = c
	}
}

func WithHook(h hook.IHook) Option {
	return func(s *DDNSService) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

// DDNSService keeps the A record of one configured provider section in
// sync with the machine's public address.
type DDNSService struct {
	name     string
	store    *config.Store
	registry *ddns.Registry

	addrs    resolver.IAddrSource
	names    resolver.INameResolver
	client   *http.Client
	hooks    []hook.IHook
	clock    clock.Clock
	period   time.Duration
	schedule cron.Schedule
	debug    bool
	logger   logger.ILogger

	cycle   sync.Mutex
	state   atomic.Value
	status  int32
	trigger chan struct{}
	stop    chan chan struct{}
	done    chan struct{}

	lastMu sync.Mutex
	last   *service.Result
}

func NewDDNS(name string, store *config.Store, registry *ddns.Registry, opts ...Option) *DDNSService {
	s := &DDNSService{
		name:     name,
		store:    store,
		registry: registry,
		status:   consts.StatusReady,
		trigger:  make(chan struct{}, 1),
		stop:     make(chan chan struct{}),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Default()
	}
	s.logger = s.logger.WithFields(map[string]any{"provider": name})
	if s.clock == nil {
		s.clock = clock.WallClock
	}
	if s.client == nil {
		s.client = util.CreateHTTPClient(consts.DefaultHTTPTimeout)
	}
	if s.addrs == nil {
		s.addrs = xresolver.NewWebResolver(consts.DefaultWhatsMyIPURL, s.client, s.logger)
	}
	if s.names == nil {
		s.names = xresolver.NewDNSResolver(xresolver.WithDNSLogger(s.logger))
	}
	s.state.Store(service.StateIdle)
	return s
}

func (s *DDNSService) String() string {
	return s.name
}

// Hash identifies the service configuration; two services with the same
// hash do the same work.
func (s *DDNSService) Hash() string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s|%t", s.name, s.store.Path(), s.period, s.debug)
	if s.schedule != nil {
		fmt.Fprintf(h, "|%+v", s.schedule)
	}
	if sec, err := s.store.Section(s.name); err == nil {
		opts := sec.Options()
		keys := make([]string, 0, len(opts))
		for k := range opts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(h, "|%s=%s", k, opts[k])
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

// State returns the step the service is currently in.
func (s *DDNSService) State() service.State {
	return s.state.Load().(service.State)
}

// LastResult returns the result of the most recent cycle, or nil.
func (s *DDNSService) LastResult() *service.Result {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	if s.last == nil {
		return nil
	}
	r := *s.last
	return &r
}

func (s *DDNSService) enter(res *service.Result, st service.State) {
	res.Step = st
	s.state.Store(st)
}

// RunOnce runs one update cycle. It never fails: errors end the cycle,
// are logged with the step they happened in and are returned in Result.
func (s *DDNSService) RunOnce(ctx context.Context) (res service.Result) {
	s.cycle.Lock()
	defer s.cycle.Unlock()

	res = service.Result{Provider: s.name, Step: service.StateIdle}
	defer func() {
		if r := recover(); r != nil {
			s.fail(ctx, &res, errors.Errorf("panic: %v", r))
		}
		s.state.Store(service.StateIdle)
		s.lastMu.Lock()
		last := res
		s.last = &last
		s.lastMu.Unlock()
	}()

	section, err := s.store.Section(s.name)
	if err != nil {
		s.fail(ctx, &res, err)
		return
	}
	domain, err := section.Domain()
	if err != nil {
		s.fail(ctx, &res, err)
		return
	}
	res.Domain = domain.FQDN()
	log := s.logger.WithFields(map[string]any{"domain": res.Domain})

	s.enter(&res, service.StateOwnIPLookup)
	ownIP, err := s.addrs.OwnIP(ctx)
	if err != nil {
		s.fail(ctx, &res, err)
		return
	}
	res.NewIP = ownIP
	log.Debugf("own ip is %s", ownIP)

	s.enter(&res, service.StatePublishedIPLookup)
	ns, err := s.names.QueryNS(ctx, domain.Name)
	if err != nil {
		s.fail(ctx, &res, err)
		return
	}
	published, err := s.names.QueryA(ctx, res.Domain, ns)
	if err != nil {
		s.fail(ctx, &res, err)
		return
	}
	res.OldIP = published
	log.Debugf("%s publishes %s for %s", ns, published, res.Domain)

	s.enter(&res, service.StateCompare)
	if ownIP == published {
		res.Status = consts.UpdatedNothing
		log.Infof("IP %s unchanged, nothing to do", ownIP)
		return
	}

	s.enter(&res, service.StateUpdating)
	provider, err := s.registry.Resolve(s.store, s.name)
	if err != nil {
		s.fail(ctx, &res, err)
		return
	}
	updateURL, err := provider.UpdateURL(ownIP)
	if err != nil {
		s.fail(ctx, &res, err)
		return
	}
	secrets := s.secrets()
	res.URL = util.RedactURL(updateURL, secrets...)

	if s.debug {
		res.Status = consts.UpdatedBypassed
		log.Infof("debug mode, update %s => %s bypassed: %s", published, ownIP, res.URL)
		s.runHooks(ctx, &res)
		return
	}

	s.enter(&res, service.StateReporting)
	if err = s.report(ctx, provider, updateURL, secrets); err != nil {
		s.fail(ctx, &res, err)
		return
	}
	res.Status = consts.UpdatedSuccess
	log.Infof("Reported updated %s => %s", published, ownIP)
	s.runHooks(ctx, &res)
	return
}

func (s *DDNSService) fail(ctx context.Context, res *service.Result, err error) {
	res.Status = consts.UpdatedFailed
	res.Err = err
	s.logger.WithFields(map[string]any{
		"domain": res.Domain,
		"step":   string(res.Step),
	}).Errorf("update cycle failed: %v", err)
	if res.Step == service.StateUpdating || res.Step == service.StateReporting {
		s.runHooks(ctx, res)
	}
}

// secrets returns the credentials the provider section reads, so they can
// be masked wherever the update URL shows up.
func (s *DDNSService) secrets() []string {
	secret, err := s.store.Secret(s.name)
	if err != nil || secret == "" {
		return nil
	}
	return []string{secret}
}

func (s *DDNSService) report(ctx context.Context, provider coreddns.IProvider, updateURL string, secrets []string) error {
	redacted := util.RedactURL(updateURL, secrets...)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, updateURL, http.NoBody)
	if err != nil {
		return errors.Wrapf(errs.ErrNetwork, "invalid update url %s", redacted)
	}
	resp, err := s.client.Do(req)
	body, err := util.GetHTTPResponseOrg(resp, updateURL, err)
	if err != nil {
		return errors.Wrapf(errs.ErrNetwork, "update via %s failed (%s)", redacted, util.RedactSecrets(err.Error(), secrets...))
	}
	if checker, ok := provider.(coreddns.ResponseChecker); ok {
		if err := checker.CheckResponse(body); err != nil {
			return errors.Wrapf(errs.ErrNetwork, "update via %s failed (%s)", redacted, util.RedactSecrets(err.Error(), secrets...))
		}
	}
	return nil
}

func (s *DDNSService) runHooks(ctx context.Context, res *service.Result) {
	for _, h := range s.hooks {
		if err := h.ExecHook(ctx, res); err != nil {
			s.logger.Warnf("%s hook failed: %v", h.String(), err)
		}
	}
}

// Trigger asks a running service for an immediate cycle. Requests made
// while one is already pending are merged.
func (s *DDNSService) Trigger() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Start runs a cycle immediately and then one per period, or at every
// activation of the schedule, until Stop. Without either it returns after
// the first cycle.
func (s *DDNSService) Start() error {
	if !atomic.CompareAndSwapInt32(&s.status, consts.StatusReady, consts.StatusRunning) {
		return errors.Errorf("%s DDNS service already started", s.name)
	}
	defer close(s.done)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s.RunOnce(ctx)
	if s.period <= 0 && s.schedule == nil {
		atomic.StoreInt32(&s.status, consts.StatusStopped)
		return nil
	}

	for {
		select {
		case confirm := <-s.stop:
			atomic.StoreInt32(&s.status, consts.StatusStopped)
			close(confirm)
			s.logger.Debugf("%s DDNS service has been manually stopped!", s.name)
			return nil
		case <-s.trigger:
			s.logger.Debugf("%s DDNS service triggered", s.name)
			s.RunOnce(ctx)
		case <-s.clock.After(s.wait()):
			s.RunOnce(ctx)
		}
	}
}

func (s *DDNSService) wait() time.Duration {
	if s.schedule == nil {
		return s.period
	}
	now := s.clock.Now()
	return s.schedule.Next(now).Sub(now)
}

// Stop ends the loop started by Start after the cycle in flight, if any,
// has finished.
func (s *DDNSService) Stop() error {
	switch atomic.LoadInt32(&s.status) {
	case consts.StatusReady:
		atomic.StoreInt32(&s.status, consts.StatusClosed)
		return nil
	case consts.StatusRunning:
		confirm := make(chan struct{})
		select {
		case s.stop <- confirm:
			<-confirm
		case <-s.done:
		}
	}
	return nil
}

// Done is closed when Start returns.
func (s *DDNSService) Done() <-chan struct{} {
	return s.done
}
