package ice

import (
	"fmt"

	"github.com/OneOfOne/xxhash"
	"github.com/google/uuid"
)

// Candidate is one network path a peer advertises or discovers.
//
// Local candidates carry a base: a host candidate is its own base, a derived
// candidate (server reflexive, relay, peer reflexive) shares the host
// candidate it was discovered through. Remote candidates have no base.
type Candidate struct {
	id            string
	candidateType CandidateType
	component     uint16
	priority      uint32
	transport     TransportType
	addr          Addr
	relatedAddr   Addr
	foundation    string
	ifName        string

	base *Candidate

	refs   int
	onFree func()
}

// ID returns the candidate ID
func (c *Candidate) ID() string {
	return c.id
}

// Type returns the candidate type
func (c *Candidate) Type() CandidateType {
	return c.candidateType
}

// Component returns the id of the component the candidate belongs to
func (c *Candidate) Component() uint16 {
	return c.component
}

// Priority returns the candidate priority
func (c *Candidate) Priority() uint32 {
	return c.priority
}

// Transport returns the candidate transport protocol
func (c *Candidate) Transport() TransportType {
	return c.transport
}

// Addr returns the candidate transport address
func (c *Candidate) Addr() Addr {
	return c.addr
}

// RelatedAddr returns the base address a derived candidate was discovered
// through, or nil for host and remote signaled candidates without one.
func (c *Candidate) RelatedAddr() *Addr {
	if !c.relatedAddr.IsSet() {
		return nil
	}
	rel := c.relatedAddr
	return &rel
}

// Foundation returns the candidate foundation
func (c *Candidate) Foundation() string {
	return c.foundation
}

// InterfaceName returns the name of the network interface the candidate
// originates from, if known.
func (c *Candidate) InterfaceName() string {
	return c.ifName
}

// Base returns the base candidate. A host candidate is its own base. Remote
// candidates return nil.
func (c *Candidate) Base() *Candidate {
	return c.base
}

// Equal compares two candidates by value, ignoring their IDs.
func (c *Candidate) Equal(other *Candidate) bool {
	return c.candidateType == other.candidateType &&
		c.component == other.component &&
		c.transport == other.transport &&
		c.addr.Equal(other.addr) &&
		c.relatedAddr.Equal(other.relatedAddr)
}

// String makes the Candidate printable
func (c *Candidate) String() string {
	if c.ifName != "" {
		return fmt.Sprintf("%s:%s:%s", c.ifName, c.candidateType, c.addr)
	}
	return fmt.Sprintf("%s:%s", c.candidateType, c.addr)
}

// ref takes a shared reference to the candidate.
func (c *Candidate) ref() *Candidate {
	c.refs++
	return c
}

// deref releases one reference. The last release frees the record and drops
// the reference a derived candidate holds on its base.
func (c *Candidate) deref() {
	if c.refs == 0 {
		return
	}

	c.refs--
	if c.refs > 0 {
		return
	}

	if c.onFree != nil {
		c.onFree()
	}

	c.foundation = ""
	c.ifName = ""

	if c.base != nil && c.base != c {
		c.base.deref()
	}
	c.base = nil
}

// computeFoundation derives the foundation for a local candidate: a stable
// hash of the IP address (port excluded) and the candidate type, so that
// candidates sharing an address and type collapse to the same foundation.
func computeFoundation(addr Addr, t CandidateType) string {
	ip := addr.IP
	if v4 := ip.To4(); v4 != nil {
		ip = v4
	}

	v := xxhash.Checksum32(ip) ^ uint32(t)

	return fmt.Sprintf("%08x", v)
}

// randomFoundation generates a foundation for a peer reflexive candidate,
// which by definition was not previously known.
func randomFoundation(rand func() uint32) string {
	return fmt.Sprintf("%08x", rand())
}

func generateCandidateID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return "candidate:" + id.String(), nil
}
