package cert

import "net"

// LocalIP returns the machine's outbound IPv4 address, or "" when it cannot
// be determined. The UDP dial never sends a packet; it only makes the OS pick
// a source address, so this works offline-ish and behind firewalls.
func LocalIP() string {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()

	addr, ok := conn.LocalAddr().(*net.UDPAddr)
	if !ok || addr.IP == nil {
		return ""
	}
	return addr.IP.String()
}
