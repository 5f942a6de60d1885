// Command unitelway-cli is a minimal exerciser for the unitelway client
// library: connect to a tunnel and run a single read or write operation.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nberlette/go-unitelway"
)

func main() {
	var (
		host         = flag.String("host", "127.0.0.1", "address of the TCP-to-serial tunnel")
		port         = flag.Int("port", 5000, "port of the TCP-to-serial tunnel")
		slaveAddr    = flag.Uint("slave", 2, "this client's UNI-TELWAY slave address")
		network      = flag.Uint("network", 0, "destination X-WAY network number")
		station      = flag.Uint("station", 1, "destination X-WAY station number")
		vpnMode      = flag.Bool("vpn", false, "skip the poll-token gate (VPN/point-to-point tunnel)")
		timeout      = flag.Duration("timeout", time.Second, "per-attempt response timeout")
		op           = flag.String("op", "read-word", "operation: read-word, write-word, mirror")
		addr         = flag.Uint("addr", 0, "%MW word address")
		value        = flag.Int("value", 0, "value to write")
		mirrorString = flag.String("data", "ping", "payload for the mirror operation")
	)
	flag.Parse()

	client, err := unitelway.NewClient(&unitelway.Configuration{
		SlaveAddress: uint8(*slaveAddr),
		XWay: unitelway.XWayAddress{
			Network: uint8(*network),
			Station: uint8(*station),
		},
		VPNMode: *vpnMode,
		Timeout: *timeout,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create client: %v\n", err)
		os.Exit(1)
	}

	target := unitelway.DialAddr(*host, *port)
	if err := client.Connect(target, nil); err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to %s: %v\n", target, err)
		os.Exit(1)
	}
	defer client.Disconnect()

	switch *op {
	case "read-word":
		v, err := client.ReadInternalWord(uint16(*addr))
		if err != nil {
			fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%%MW%d = %d\n", *addr, v)

	case "write-word":
		if _, err := client.WriteInternalWord(uint16(*addr), int16(*value)); err != nil {
			fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("%%MW%d set to %d\n", *addr, *value)

	case "mirror":
		ok, err := client.Mirror([]byte(*mirrorString))
		if err != nil {
			fmt.Fprintf(os.Stderr, "mirror failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("mirror ok: %v\n", ok)

	default:
		fmt.Fprintf(os.Stderr, "unknown operation %q\n", *op)
		os.Exit(1)
	}
}
