// Command sipparse parses SIP protocol text and computes Digest credentials.
//
//	sipparse entries
//	sipparse parse --entry Via 'SIP/2.0/UDP pc33.atlanta.com;branch=z9hG4bK776asdhds'
//	sipparse digest --username alice --password secret --challenge 'Digest realm="atlanta.com", nonce="abc"' --uri sip:atlanta.com
package main

import (
	"errors"
	"fmt"
	"os"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
