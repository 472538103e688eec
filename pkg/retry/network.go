package retry

import (
	"errors"
	"net"
	"syscall"
)

// Transient reports whether a dial error may go away on its own: the
// peer refused or reset the connection, or the attempt timed out.
// Resolution failures and bad addresses are final.
func Transient(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	return false
}
