package ice

const (
	// ComponentRTP indicates that the candidate is used for RTP
	ComponentRTP uint16 = 1
	// ComponentRTCP indicates that the candidate is used for RTCP
	ComponentRTCP uint16 = 2
)

// Component is one sub-channel of a media stream (e.g. RTP vs RTCP) that
// requires its own candidate set.
type Component struct {
	id        uint16
	localPort int
}

// ID returns the component id
func (c *Component) ID() uint16 {
	return c.id
}

// LocalPort returns the port the component's local socket is bound to.
func (c *Component) LocalPort() int {
	return c.localPort
}
