// Package ice implements the candidate bookkeeping of an Interactive
// Connectivity Establishment (RFC 8445) agent: creation, classification,
// lookup and rendering of local and remote connectivity candidates.
package ice

import (
	"fmt"
	"strings"

	"github.com/pion/logging"
	"github.com/pion/randutil"
)

// Media is the per-media-stream candidate registry. It owns the ordered local
// and remote candidate collections and the component table, and performs no
// network I/O of its own.
//
// Media is not safe for concurrent use: the owner of the media stream must
// serialize all mutation and iteration.
type Media struct {
	comps  []*Component
	lcands []*Candidate
	rcands []*Candidate

	priority PriorityFunc
	rand     func() uint32
	log      logging.LeveledLogger
}

// MediaConfig collects the options for a media stream. The zero value of
// every field selects a default.
type MediaConfig struct {
	// LoggerFactory produces the registry logger. Defaults to the pion
	// default factory.
	LoggerFactory logging.LoggerFactory

	// Priority computes local candidate priorities. Defaults to the
	// RFC 8445 5.1.2.1 formula.
	Priority PriorityFunc

	// Rand is the 32-bit generator used for peer reflexive foundations.
	// Defaults to a math random generator.
	Rand func() uint32
}

// NewMedia creates a media stream candidate registry. A nil config selects
// all defaults.
func NewMedia(config *MediaConfig) *Media {
	if config == nil {
		config = &MediaConfig{}
	}

	loggerFactory := config.LoggerFactory
	if loggerFactory == nil {
		loggerFactory = logging.NewDefaultLoggerFactory()
	}

	priority := config.Priority
	if priority == nil {
		priority = defaultPriority
	}

	rand := config.Rand
	if rand == nil {
		rand = randutil.NewMathRandomGenerator().Uint32
	}

	return &Media{
		priority: priority,
		rand:     rand,
		log:      loggerFactory.NewLogger("icem"),
	}
}

// AddComponent registers a component and the local port its socket is bound
// to. The id must not be zero.
func (m *Media) AddComponent(id uint16, localPort int) (*Component, error) {
	if m == nil {
		return nil, ErrNilMedia
	}
	if id == 0 {
		return nil, ErrZeroComponent
	}

	comp := &Component{id: id, localPort: localPort}
	m.comps = append(m.comps, comp)

	return comp, nil
}

// Component resolves a component id, or returns nil if the id is unknown.
func (m *Media) Component(id uint16) *Component {
	if m == nil {
		return nil
	}
	for _, comp := range m.comps {
		if comp.id == id {
			return comp
		}
	}
	return nil
}

func (m *Media) newLocalCandidate(t CandidateType, component uint16, priority uint32,
	ifName string, transport TransportType, addr Addr) (*Candidate, error) {
	id, err := generateCandidateID()
	if err != nil {
		return nil, err
	}

	return &Candidate{
		id:            id,
		candidateType: t,
		component:     component,
		priority:      priority,
		transport:     transport,
		addr:          addr,
		foundation:    computeFoundation(addr, t),
		ifName:        ifName,
		refs:          1,
	}, nil
}

// AddHostCandidate registers a local host candidate for a component. The
// port of addr is not authoritative: it is overwritten with the port the
// component's socket is bound to. The candidate is its own base.
func (m *Media) AddHostCandidate(component uint16, localPreference uint16,
	ifName string, transport TransportType, addr Addr) (*Candidate, error) {
	if m == nil {
		return nil, ErrNilMedia
	}

	comp := m.Component(component)
	if comp == nil {
		return nil, ErrUnknownComponent
	}

	cand, err := m.newLocalCandidate(CandidateTypeHost, component,
		m.priority(CandidateTypeHost, localPreference, component),
		ifName, transport, addr)
	if err != nil {
		return nil, err
	}

	// the base is itself
	cand.base = cand

	cand.addr.Port = comp.localPort

	m.lcands = append(m.lcands, cand)

	m.log.Debugf("added local host candidate %s for component %d", cand, component)

	return cand, nil
}

// AddDerivedCandidate registers a local candidate discovered through an
// existing local base candidate, such as a server reflexive or relay
// candidate. It inherits the interface name and transport of the base, takes
// a shared reference to it and records the base address as related address.
func (m *Media) AddDerivedCandidate(base *Candidate, t CandidateType, addr Addr) (*Candidate, error) {
	if m == nil {
		return nil, ErrNilMedia
	}
	if base == nil {
		return nil, ErrNilBaseCandidate
	}

	cand, err := m.newLocalCandidate(t, base.component,
		m.priority(t, 0, base.component),
		base.ifName, base.transport, addr)
	if err != nil {
		return nil, err
	}

	cand.base = base.ref()
	cand.relatedAddr = base.addr

	m.lcands = append(m.lcands, cand)

	m.log.Debugf("added local %s candidate %s for component %d", t, cand, base.component)

	return cand, nil
}

// AddRemoteCandidate registers a candidate received from the remote peer via
// signaling. The priority and the foundation are taken verbatim: the remote
// peer is authoritative for both. relatedAddr may be nil.
func (m *Media) AddRemoteCandidate(t CandidateType, component uint16, priority uint32,
	addr Addr, relatedAddr *Addr, foundation string) (*Candidate, error) {
	if m == nil {
		return nil, ErrNilMedia
	}
	if foundation == "" {
		return nil, ErrFoundationEmpty
	}
	if component == 0 {
		return nil, ErrZeroComponent
	}

	id, err := generateCandidateID()
	if err != nil {
		return nil, err
	}

	cand := &Candidate{
		id:            id,
		candidateType: t,
		component:     component,
		priority:      priority,
		addr:          addr,
		foundation:    foundation,
		refs:          1,
	}
	if relatedAddr != nil {
		cand.relatedAddr = *relatedAddr
	}

	m.rcands = append(m.rcands, cand)

	m.log.Debugf("added remote %s candidate %s for component %d", t, cand, component)

	return cand, nil
}

// AddPeerReflexiveCandidate registers a remote candidate discovered through
// an incoming connectivity check rather than signaling. The priority is
// derived by the caller from the PRIORITY attribute of the check. The
// foundation is freshly generated since the candidate was not previously
// known.
func (m *Media) AddPeerReflexiveCandidate(component uint16, priority uint32, addr Addr) (*Candidate, error) {
	if m == nil {
		return nil, ErrNilMedia
	}
	if !addr.IsSet() {
		return nil, ErrNilAddress
	}
	if component == 0 {
		return nil, ErrZeroComponent
	}

	id, err := generateCandidateID()
	if err != nil {
		return nil, err
	}

	cand := &Candidate{
		id:            id,
		candidateType: CandidateTypePeerReflexive,
		component:     component,
		priority:      priority,
		addr:          addr,
		foundation:    randomFoundation(m.rand),
		refs:          1,
	}

	m.rcands = append(m.rcands, cand)

	m.log.Debugf("added remote prflx candidate %s for component %d", cand, component)

	return cand, nil
}

// findCandidate scans cands in insertion order and returns the first
// candidate matching both filters. A component of zero matches any component
// and a nil addr matches any address.
func findCandidate(cands []*Candidate, component uint16, addr *Addr) *Candidate {
	for _, cand := range cands {
		if component != 0 && cand.component != component {
			continue
		}
		if addr != nil && !cand.addr.Equal(*addr) {
			continue
		}
		return cand
	}
	return nil
}

// FindLocalCandidate returns the first local candidate matching the filters,
// or nil. A component of zero and a nil addr act as wildcards.
func (m *Media) FindLocalCandidate(component uint16, addr *Addr) *Candidate {
	if m == nil {
		return nil
	}
	return findCandidate(m.lcands, component, addr)
}

// FindRemoteCandidate returns the first remote candidate matching the
// filters, or nil. A component of zero and a nil addr act as wildcards.
func (m *Media) FindRemoteCandidate(component uint16, addr *Addr) *Candidate {
	if m == nil {
		return nil
	}
	return findCandidate(m.rcands, component, addr)
}

// LocalCandidates returns the local candidates in insertion order.
func (m *Media) LocalCandidates() []*Candidate {
	if m == nil {
		return nil
	}
	return append([]*Candidate(nil), m.lcands...)
}

// RemoteCandidates returns the remote candidates in insertion order.
func (m *Media) RemoteCandidates() []*Candidate {
	if m == nil {
		return nil
	}
	return append([]*Candidate(nil), m.rcands...)
}

func removeCandidate(cands []*Candidate, cand *Candidate) []*Candidate {
	for i, c := range cands {
		if c != cand {
			continue
		}
		// unlink before release, no dangling collection entry
		cands = append(cands[:i], cands[i+1:]...)
		c.deref()
		break
	}
	return cands
}

// RemoveLocalCandidate unlinks a candidate from the local collection and
// releases it. Removing a candidate that is not in the collection is a no-op.
func (m *Media) RemoveLocalCandidate(cand *Candidate) {
	if m == nil {
		return
	}
	m.lcands = removeCandidate(m.lcands, cand)
}

// RemoveRemoteCandidate unlinks a candidate from the remote collection and
// releases it.
func (m *Media) RemoveRemoteCandidate(cand *Candidate) {
	if m == nil {
		return
	}
	m.rcands = removeCandidate(m.rcands, cand)
}

// Close tears down the media stream, releasing every candidate in both
// collections.
func (m *Media) Close() {
	if m == nil {
		return
	}
	for len(m.lcands) > 0 {
		m.lcands = removeCandidate(m.lcands, m.lcands[0])
	}
	for len(m.rcands) > 0 {
		m.rcands = removeCandidate(m.rcands, m.rcands[0])
	}
	m.comps = nil
}

// candidatesString renders the count of a collection followed by one line per
// candidate in insertion order.
func candidatesString(cands []*Candidate) string {
	var b strings.Builder

	fmt.Fprintf(&b, " (%d)\n", len(cands))

	for _, cand := range cands {
		fmt.Fprintf(&b, "  {%d} fnd=%-2s prio=%08x %s",
			cand.component, cand.foundation, cand.priority, cand)

		if cand.relatedAddr.IsSet() {
			fmt.Fprintf(&b, " (rel-addr=%s)", cand.relatedAddr)
		}

		b.WriteString("\n")
	}

	return b.String()
}

// LocalCandidatesString renders the local collection for diagnostics.
func (m *Media) LocalCandidatesString() string {
	if m == nil {
		return ""
	}
	return candidatesString(m.lcands)
}

// RemoteCandidatesString renders the remote collection for diagnostics.
func (m *Media) RemoteCandidatesString() string {
	if m == nil {
		return ""
	}
	return candidatesString(m.rcands)
}

// String makes the Media printable
func (m *Media) String() string {
	if m == nil {
		return ""
	}
	return fmt.Sprintf("Local candidates:%sRemote candidates:%s",
		candidatesString(m.lcands), candidatesString(m.rcands))
}
