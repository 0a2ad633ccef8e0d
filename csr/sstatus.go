package csr

// Sstatus is the supervisor view of mstatus. It is never stored:
// reads synthesize it with LowerMstatus and writes fold it back with
// LiftSstatus. The field positions match mstatus, so the mstatus field
// variables are reused directly.
type Sstatus uint64

func (s Sstatus) MXR() uint64  { return mstatusMXR.Get(uint64(s)) }
func (s Sstatus) SUM() uint64  { return mstatusSUM.Get(uint64(s)) }
func (s Sstatus) XS() uint64   { return mstatusXS.Get(uint64(s)) }
func (s Sstatus) FS() uint64   { return mstatusFS.Get(uint64(s)) }
func (s Sstatus) SPP() uint64  { return mstatusSPP.Get(uint64(s)) }
func (s Sstatus) SPIE() uint64 { return mstatusSPIE.Get(uint64(s)) }
func (s Sstatus) UPIE() uint64 { return mstatusUPIE.Get(uint64(s)) }
func (s Sstatus) SIE() uint64  { return mstatusSIE.Get(uint64(s)) }
func (s Sstatus) UIE() uint64  { return mstatusUIE.Get(uint64(s)) }

func (s Sstatus) WithMXR(v uint64) Sstatus  { return Sstatus(mstatusMXR.Set(uint64(s), v)) }
func (s Sstatus) WithSUM(v uint64) Sstatus  { return Sstatus(mstatusSUM.Set(uint64(s), v)) }
func (s Sstatus) WithXS(v uint64) Sstatus   { return Sstatus(mstatusXS.Set(uint64(s), v)) }
func (s Sstatus) WithFS(v uint64) Sstatus   { return Sstatus(mstatusFS.Set(uint64(s), v)) }
func (s Sstatus) WithSPP(v uint64) Sstatus  { return Sstatus(mstatusSPP.Set(uint64(s), v)) }
func (s Sstatus) WithSPIE(v uint64) Sstatus { return Sstatus(mstatusSPIE.Set(uint64(s), v)) }
func (s Sstatus) WithUPIE(v uint64) Sstatus { return Sstatus(mstatusUPIE.Set(uint64(s), v)) }
func (s Sstatus) WithSIE(v uint64) Sstatus  { return Sstatus(mstatusSIE.Set(uint64(s), v)) }
func (s Sstatus) WithUIE(v uint64) Sstatus  { return Sstatus(mstatusUIE.Set(uint64(s), v)) }

// SD returns the state-dirty summary bit of the view.
func (s Sstatus) SD(x XLen) uint64 {
	return Mstatus(s).SD(x)
}

// WithSD returns s with the state-dirty summary bit replaced.
func (s Sstatus) WithSD(x XLen, v uint64) Sstatus {
	return Sstatus(Mstatus(s).WithSD(x, v))
}

// UXL returns the user-level width encoding of the view.
func (s Sstatus) UXL(x XLen) uint64 {
	return Mstatus(s).UXL(x)
}

// WithUXL returns s with the user-level width encoding replaced.
func (s Sstatus) WithUXL(x XLen, v uint64) Sstatus {
	return Sstatus(Mstatus(s).WithUXL(x, v))
}

// LowerMstatus projects mstatus into its supervisor view: the covered
// fields are copied across and every other bit reads as zero.
func LowerMstatus(x XLen, m Mstatus) Sstatus {
	var s Sstatus
	s = s.WithSD(x, m.SD(x))
	s = s.WithUXL(x, m.UXL(x))
	s = s.WithMXR(m.MXR())
	s = s.WithSUM(m.SUM())
	s = s.WithXS(m.XS())
	s = s.WithFS(m.FS())
	s = s.WithSPP(m.SPP())
	s = s.WithSPIE(m.SPIE())
	s = s.WithUPIE(m.UPIE())
	s = s.WithSIE(m.SIE())
	s = s.WithUIE(m.UIE())
	return s
}

// LiftSstatus folds a supervisor-view write back into mstatus. Only
// the fields the view covers are written; SD is then recomputed from
// the post-lift FS and XS rather than trusted from the view.
func LiftSstatus(x XLen, m Mstatus, s Sstatus) Mstatus {
	m = m.WithMXR(s.MXR())
	m = m.WithSUM(s.SUM())
	m = m.WithXS(s.XS())
	m = m.WithFS(s.FS())
	dirty := ExtStatus(m.FS()) == ExtDirty || ExtStatus(m.XS()) == ExtDirty
	m = m.WithSD(x, boolBit(dirty))
	m = m.WithSPP(s.SPP())
	m = m.WithSPIE(s.SPIE())
	m = m.WithUPIE(s.UPIE())
	m = m.WithSIE(s.SIE())
	m = m.WithUIE(s.UIE())
	return m
}
