package ice

// TransportType is the transport protocol a candidate uses
type TransportType byte

// TransportType enum
const (
	TransportUnspecified TransportType = iota
	TransportUDP
	TransportTCP
)

// String makes TransportType printable
func (t TransportType) String() string {
	switch t {
	case TransportUDP:
		return "udp"
	case TransportTCP:
		return "tcp"
	}
	return "Unknown transport type"
}
