package reveal

import (
	"context"
	"fmt"
	"sync"

	"github.com/zoobzio/capitan"
)

// GlobalConfig is the engine-wide configuration.
type GlobalConfig struct {
	// Dev enables development diagnostics in the rendering layer.
	Dev bool `json:"dev" yaml:"dev"`

	// Once makes each element reveal a single time instead of on every
	// re-entry into the viewport.
	Once bool `json:"once" yaml:"once"`

	// Responsive governs which device tiers run the effect and at which
	// viewport widths.
	Responsive Responsive `json:"responsive" yaml:"responsive"`

	// Observer carries the intersection observer settings.
	Observer ObserverOptions `json:"observer" yaml:"observer"`
}

// clone returns a copy that shares no mutable storage with c.
func (c GlobalConfig) clone() GlobalConfig {
	c.Responsive = c.Responsive.clone()
	return c
}

// Validate checks the responsive map and the observer settings.
func (c GlobalConfig) Validate() error {
	if err := c.Responsive.Validate(); err != nil {
		return err
	}
	return c.Observer.Validate()
}

// DefaultConfig returns the factory default global configuration.
func DefaultConfig() GlobalConfig {
	return GlobalConfig{
		Responsive: Responsive{
			Mobile:  {Enabled: true, Breakpoint: 425},
			Tablet:  {Enabled: true, Breakpoint: 768},
			Laptop:  {Enabled: true, Breakpoint: 1440},
			Desktop: {Enabled: true, Breakpoint: 2560},
		},
		Observer: ObserverOptions{
			RootMargin: "0px 0px 0px 0px",
		},
	}
}

// ConfigPatch is the partial form of GlobalConfig. Nil fields leave the
// current value unchanged; Responsive entries overlay per device.
type ConfigPatch struct {
	Dev        *bool          `json:"dev,omitempty" yaml:"dev,omitempty"`
	Once       *bool          `json:"once,omitempty" yaml:"once,omitempty"`
	Responsive Responsive     `json:"responsive,omitempty" yaml:"responsive,omitempty"`
	Observer   *ObserverPatch `json:"observer,omitempty" yaml:"observer,omitempty"`
}

// apply overlays the patch onto c. Validation happens afterwards, on the
// candidate as a whole.
func (p ConfigPatch) apply(c *GlobalConfig) {
	if p.Dev != nil {
		c.Dev = *p.Dev
	}
	if p.Once != nil {
		c.Once = *p.Once
	}
	for d, s := range p.Responsive {
		c.Responsive[d] = s
	}
	if p.Observer != nil {
		if p.Observer.Root != nil {
			c.Observer.Root = p.Observer.Root
		}
		if p.Observer.RootMargin != nil {
			c.Observer.RootMargin = *p.Observer.RootMargin
		}
		if p.Observer.Threshold != nil {
			c.Observer.Threshold = *p.Observer.Threshold
		}
	}
}

// Document is the declarative, serializable form of a configuration update:
// a global config patch plus optional default-option overrides. It is what
// the Reloader decodes from watched sources.
type Document struct {
	ConfigPatch `yaml:",inline"`

	Defaults *OptionsPatch `json:"defaults,omitempty" yaml:"defaults,omitempty"`
}

// Snapshot is a consistent view of both pieces of store state.
type Snapshot struct {
	Config   GlobalConfig
	Defaults Options
}

// Store holds the global configuration and the default element options
// behind controlled mutators. Every mutation clones the current state,
// applies the change to the clone, validates it, and commits only on
// success, so readers never observe an invalid or half-applied
// configuration. Instantiate one per application (or per test); Store is
// deliberately not a package global.
type Store struct {
	mu       sync.RWMutex
	config   GlobalConfig
	defaults Options
}

// NewStore returns a Store seeded with the factory defaults.
func NewStore() *Store {
	return &Store{
		config:   DefaultConfig(),
		defaults: DefaultOptions(),
	}
}

// commitConfig validates the candidate and installs it. Callers hold s.mu.
func (s *Store) commitConfig(candidate GlobalConfig) (GlobalConfig, error) {
	if err := candidate.Validate(); err != nil {
		capitan.Emit(context.Background(), StoreConfigRejected,
			KeyError.Field(err.Error()),
		)
		return GlobalConfig{}, err
	}
	s.config = candidate
	capitan.Emit(context.Background(), StoreConfigUpdated)
	return candidate.clone(), nil
}

// SetDev toggles development mode and returns the updated config.
func (s *Store) SetDev(dev bool) GlobalConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Dev = dev
	capitan.Emit(context.Background(), StoreConfigUpdated)
	return s.config.clone()
}

// SetOnce toggles reveal-once mode and returns the updated config.
func (s *Store) SetOnce(once bool) GlobalConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Once = once
	capitan.Emit(context.Background(), StoreConfigUpdated)
	return s.config.clone()
}

// SetDeviceStatus enables or disables a single device tier.
func (s *Store) SetDeviceStatus(device Device, enabled bool) (GlobalConfig, error) {
	return s.SetDevicesStatus([]Device{device}, enabled)
}

// SetDevicesStatus enables or disables several device tiers at once. The
// list must be non-empty; repeated entries are deduplicated, not rejected.
func (s *Store) SetDevicesStatus(devices []Device, enabled bool) (GlobalConfig, error) {
	if len(devices) == 0 {
		return GlobalConfig{}, ErrNoDevices
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config.clone()
	seen := make(map[Device]bool, len(devices))
	for _, d := range devices {
		if seen[d] {
			continue
		}
		seen[d] = true
		setting, ok := candidate.Responsive[d]
		if !ok {
			return GlobalConfig{}, fmt.Errorf("%w: %q", ErrUnknownDevice, d)
		}
		setting.Enabled = enabled
		candidate.Responsive[d] = setting
	}
	return s.commitConfig(candidate)
}

// SetDeviceBreakpoint updates a single tier's breakpoint, leaving its
// Enabled flag alone. The change is rejected if it would break the strict
// tier ordering.
func (s *Store) SetDeviceBreakpoint(device Device, breakpoint int) (GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config.clone()
	setting, ok := candidate.Responsive[device]
	if !ok {
		return GlobalConfig{}, fmt.Errorf("%w: %q", ErrUnknownDevice, device)
	}
	setting.Breakpoint = breakpoint
	candidate.Responsive[device] = setting
	return s.commitConfig(candidate)
}

// SetDevice replaces a single tier's setting wholesale.
func (s *Store) SetDevice(device Device, setting DeviceSetting) (GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config.clone()
	if _, ok := candidate.Responsive[device]; !ok {
		return GlobalConfig{}, fmt.Errorf("%w: %q", ErrUnknownDevice, device)
	}
	candidate.Responsive[device] = setting
	return s.commitConfig(candidate)
}

// SetResponsive replaces the entire responsive map.
func (s *Store) SetResponsive(responsive Responsive) (GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config.clone()
	candidate.Responsive = responsive.clone()
	return s.commitConfig(candidate)
}

// SetObserverRoot replaces the observer root element. nil means the
// viewport.
func (s *Store) SetObserverRoot(root ElementRef) GlobalConfig {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.config.Observer.Root = root
	capitan.Emit(context.Background(), StoreConfigUpdated)
	return s.config.clone()
}

// SetObserverRootMargin updates the observer rootMargin string. The string
// is parsed and rejected on bad token count or a malformed token.
func (s *Store) SetObserverRootMargin(margin string) (GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config.clone()
	candidate.Observer.RootMargin = margin
	return s.commitConfig(candidate)
}

// SetObserverThreshold updates the observer threshold, which must lie in
// [0,1].
func (s *Store) SetObserverThreshold(threshold float64) (GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config.clone()
	candidate.Observer.Threshold = threshold
	return s.commitConfig(candidate)
}

// SetObserverConfig overlays a partial observer configuration.
func (s *Store) SetObserverConfig(patch ObserverPatch) (GlobalConfig, error) {
	return s.SetConfig(ConfigPatch{Observer: &patch})
}

// SetConfig overlays a partial global configuration and commits it as a
// whole: either every field of the patch is applied, or none.
func (s *Store) SetConfig(patch ConfigPatch) (GlobalConfig, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := s.config.clone()
	patch.apply(&candidate)
	return s.commitConfig(candidate)
}

// SetDefaultOptions overlays a partial options record onto the stored
// defaults. The merged result must pass full option validation before it is
// committed; on failure the previous defaults stay in force. Returns the
// full resulting record.
func (s *Store) SetDefaultOptions(patch OptionsPatch) (Options, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidate := patch.merge(s.defaults)
	if err := candidate.Validate(); err != nil {
		capitan.Emit(context.Background(), StoreDefaultsRejected,
			KeyError.Field(err.Error()),
		)
		return Options{}, err
	}
	s.defaults = candidate
	capitan.Emit(context.Background(), StoreDefaultsUpdated)
	return candidate, nil
}

// FinalOptions overlays the caller's partial record onto a copy of the
// stored defaults, producing a total record with every field defined and
// every callback callable. The result shares no mutable storage with the
// store; mutating it never affects subsequent calls.
func (s *Store) FinalOptions(patch OptionsPatch) Options {
	s.mu.RLock()
	defaults := s.defaults
	s.mu.RUnlock()

	return patch.merge(defaults)
}

// ResolveOptions merges and validates in one step. This is the entry point
// the rendering layer calls per element before attaching the effect.
func (s *Store) ResolveOptions(patch OptionsPatch) (Options, error) {
	opts := s.FinalOptions(patch)
	if err := opts.Validate(); err != nil {
		capitan.Emit(context.Background(), StoreOptionsRejected,
			KeyError.Field(err.Error()),
		)
		return Options{}, err
	}
	return opts, nil
}

// Config returns a copy of the current global configuration.
func (s *Store) Config() GlobalConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config.clone()
}

// Defaults returns a copy of the current default element options.
func (s *Store) Defaults() Options {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.defaults
}

// Snapshot returns a consistent view of config and defaults together.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{Config: s.config.clone(), Defaults: s.defaults}
}

// ActiveDevice resolves the active tier for the given viewport width.
func (s *Store) ActiveDevice(width int) (Device, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config.Responsive.ActiveDevice(width)
}

// Active reports whether the effect should run at the given viewport width.
func (s *Store) Active(width int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.config.Responsive.Active(width)
}

// stage builds the candidate pair for a document without committing it.
// Callers hold s.mu (read or write).
func (s *Store) stage(doc Document) (GlobalConfig, Options, error) {
	cfg := s.config.clone()
	doc.ConfigPatch.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return GlobalConfig{}, Options{}, err
	}

	defaults := s.defaults
	if doc.Defaults != nil {
		defaults = doc.Defaults.merge(defaults)
		if err := defaults.Validate(); err != nil {
			return GlobalConfig{}, Options{}, err
		}
	}
	return cfg, defaults, nil
}

// Preview stages a document against the current state and returns the
// snapshot that Apply would commit, without committing it.
func (s *Store) Preview(doc Document) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	cfg, defaults, err := s.stage(doc)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Config: cfg, Defaults: defaults}, nil
}

// Apply stages a declarative document and commits global config and default
// options together: either both commit or neither does.
func (s *Store) Apply(doc Document) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cfg, defaults, err := s.stage(doc)
	if err != nil {
		capitan.Emit(context.Background(), StoreConfigRejected,
			KeyError.Field(err.Error()),
		)
		return Snapshot{}, err
	}
	s.config = cfg
	s.defaults = defaults
	capitan.Emit(context.Background(), StoreConfigUpdated)
	if doc.Defaults != nil {
		capitan.Emit(context.Background(), StoreDefaultsUpdated)
	}
	return Snapshot{Config: cfg.clone(), Defaults: defaults}, nil
}
