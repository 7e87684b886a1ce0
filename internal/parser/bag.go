package parser

import (
	"github.com/ghettovoice/sipparse/internal/peg"
	"github.com/ghettovoice/sipparse/internal/types"
)

// Keys the URI actions record in the context bag.
// Scheme, user, host and port describe the last URI reconstructed, uris counts them all.
// Values recorded inside a backtracked branch are rolled back with it.
const (
	BagURIs   = "uris"   // int
	BagScheme = "scheme" // string, lower case
	BagUser   = "user"   // string, absent when the URI has no user part
	BagHost   = "host"   // string, without IPv6 brackets, absent for opaque URIs
	BagPort   = "port"   // uint16, absent when the URI has no port
)

func recordURI(c *peg.Context, scheme, user string, addr types.Addr) {
	v, _ := c.Get(BagURIs)
	n, _ := v.(int)
	c.Set(BagURIs, n+1)
	c.Set(BagScheme, scheme)
	if user != "" {
		c.Set(BagUser, user)
	} else {
		c.Del(BagUser)
	}
	if host := addr.Host(); host != "" {
		c.Set(BagHost, host)
	} else {
		c.Del(BagHost)
	}
	if port, ok := addr.Port(); ok {
		c.Set(BagPort, port)
	} else {
		c.Del(BagPort)
	}
}
