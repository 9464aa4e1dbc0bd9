// Package models holds the geolocation value objects.
package models

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "minibank/pkg/domain-errors"
)

// IPAddress is a validated IPv4 address.
type IPAddress struct {
	octets [4]int
}

// ParseIPAddress validates a dotted-quad string. Each octet must be a
// decimal number in [0, 255].
func ParseIPAddress(s string) (IPAddress, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return IPAddress{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid IP address format: %s", s)
	}

	var ip IPAddress
	for i, part := range parts {
		octet, err := strconv.Atoi(part)
		if err != nil {
			return IPAddress{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid IP address format: %s", s)
		}
		if octet < 0 || octet > 255 {
			return IPAddress{}, dErrors.Newf(dErrors.CodeInvalidInput, "invalid IP address octet: %d", octet)
		}
		ip.octets[i] = octet
	}
	return ip, nil
}

// Octets returns the four octets in order.
func (ip IPAddress) Octets() [4]int {
	return ip.octets
}

func (ip IPAddress) String() string {
	return fmt.Sprintf("%d.%d.%d.%d", ip.octets[0], ip.octets[1], ip.octets[2], ip.octets[3])
}
