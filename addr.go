package ice

import (
	"fmt"
	"net"
)

// Addr is a transport address, the combination of an IP address and a port.
type Addr struct {
	IP   net.IP
	Port int
}

// IsSet reports whether the address carries an IP.
func (a Addr) IsSet() bool {
	return len(a.IP) != 0
}

// Equal compares both the IP and the port.
func (a Addr) Equal(b Addr) bool {
	return a.Port == b.Port && a.IP.Equal(b.IP)
}

// String makes Addr printable
func (a Addr) String() string {
	return fmt.Sprintf("%s:%d", a.IP, a.Port)
}
