package platform

import "github.com/nwf/sail-riscv/csr"

// Platform answers capability queries from a Config plus an optional
// veto hook. It implements csr.Capabilities.
type Platform struct {
	cfg   Config
	cVeto func() bool
}

// Option configures a Platform.
type Option func(*Platform)

// WithCVetoHook installs the hook consulted when a misa write tries to
// clear the compressed-instruction bit. The hook typically checks
// whether the host's next program counter would stay aligned; it is
// called on every such write, never cached.
func WithCVetoHook(hook func() bool) Option {
	return func(p *Platform) { p.cVeto = hook }
}

// New builds a Platform from a configuration.
func New(cfg Config, opts ...Option) *Platform {
	p := &Platform{cfg: cfg}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var _ csr.Capabilities = (*Platform)(nil)

// MisaWritable reports whether misa accepts run-time writes.
func (p *Platform) MisaWritable() bool { return p.cfg.WritableMisa }

// BootRVC reports whether compressed instructions were enabled at boot.
func (p *Platform) BootRVC() bool { return p.cfg.RVC }

// BootFD reports whether the float extensions were enabled at boot.
func (p *Platform) BootFD() bool { return p.cfg.FD }

// VetoDisableC consults the veto hook; without one, clearing misa.C is
// never vetoed.
func (p *Platform) VetoDisableC() bool {
	if p.cVeto != nil {
		return p.cVeto()
	}
	return false
}
