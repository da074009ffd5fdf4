package dsp

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
	"github.com/charmbracelet/log"
)

// dnssdServiceType is the mDNS/DNS-SD service type advertised for the
// worker's optional TCP primary stream, so a ControlBroker on the
// same LAN can discover it without a hard-coded address — the same
// purpose this codebase's own dns_sd_announce serves for its KISS TCP
// listener, applied here to the frame stream instead.
const dnssdServiceType = "_adc-dsp._tcp"

// AnnounceService announces name on port via mDNS/DNS-SD and returns
// a stop function. Failure to create the service or responder is
// logged and never fatal: the worker keeps running without discovery.
func AnnounceService(ctx context.Context, name string, port int, logger *log.Logger) (stop func(), err error) {
	cfg := dnssd.Config{
		Name: name,
		Type: dnssdServiceType,
		Port: port,
	}

	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return nil, fmt.Errorf("dsp: creating DNS-SD service: %w", err)
	}

	rp, err := dnssd.NewResponder()
	if err != nil {
		return nil, fmt.Errorf("dsp: creating DNS-SD responder: %w", err)
	}

	if _, err := rp.Add(sv); err != nil {
		return nil, fmt.Errorf("dsp: adding DNS-SD service: %w", err)
	}

	respondCtx, cancel := context.WithCancel(ctx)

	go func() {
		if err := rp.Respond(respondCtx); err != nil && logger != nil {
			logger.Debug("DNS-SD responder stopped", "err", err)
		}
	}()

	return cancel, nil
}
