// Copyright ©2025 Dan Kortschak. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package wiimote

import (
	"context"
	"sync"
)

// A Candidate is a device reported by a Lister during enumeration.
// Socket-based listers report a name and Bluetooth address; handle-based
// listers report vendor/product identifiers, a serial number and the
// platform device path.
type Candidate struct {
	// Name is the reported Bluetooth device name. It may be empty for
	// handle-based enumeration.
	Name string

	// Address is the device's Bluetooth address.
	Address string

	// Vendor and Product are the USB identifiers reported by the
	// device. They are zero for name-only enumeration.
	Vendor  uint16
	Product uint16

	// Serial is the device serial number reported by handle-based
	// enumeration.
	Serial string

	// Path is the platform device path used to open the device on
	// handle-based backends.
	Path string
}

// Supported reports whether the candidate matches the Wii Remote
// identity by vendor/product pair or by reported name.
func (c Candidate) Supported() bool {
	return SupportedID(c.Vendor, c.Product) || SupportedName(c.Name)
}

// A Lister enumerates candidate devices. Implementations wrap the
// platform's native inquiry or interface-listing API.
type Lister interface {
	Candidates(ctx context.Context) ([]Candidate, error)
}

// A Connector establishes a Transport to an accepted candidate.
type Connector interface {
	Connect(ctx context.Context, c Candidate) (Transport, error)
}

// A Registrar performs service-level device registration around
// scanning, such as enabling the Bluetooth HID service for paired
// devices on hosts that require it. Prepare is called before each
// enumeration and Revert once at cleanup.
type Registrar interface {
	Prepare(ctx context.Context) error
	Revert() error
}

// A Scanner discovers Wii Remotes and queues ready-to-use Transports.
// Devices that are already connected, whether still queued or claimed
// by a caller, are not connected a second time by later scans; closing
// a Transport releases its identifier for rediscovery.
type Scanner struct {
	lister    Lister
	connector Connector
	registrar Registrar // may be nil

	registry Registry

	mu   sync.Mutex
	open map[string]bool // identifiers of connected, unclosed devices
}

// NewScanner returns a Scanner that enumerates devices with lister and
// establishes Transports with connector. The registrar may be nil.
func NewScanner(lister Lister, connector Connector, registrar Registrar) *Scanner {
	return &Scanner{
		lister:    lister,
		connector: connector,
		registrar: registrar,
		open:      make(map[string]bool),
	}
}

// Scan enumerates candidate devices, connects to each supported device
// that is not already connected, and queues the resulting Transports.
// Failures to enumerate or to connect an individual candidate are
// logged and skipped; they never abort the scan. Scan returns the
// number of Transports currently queued, accumulated across scans.
func (s *Scanner) Scan(ctx context.Context) int {
	if s.registrar != nil {
		if err := s.registrar.Prepare(ctx); err != nil {
			Logger.Warn("service registration failed", "error", err)
		}
	}

	candidates, err := s.lister.Candidates(ctx)
	if err != nil {
		Logger.Warn("device enumeration failed", "error", err)
		return s.registry.Len()
	}

	for _, c := range candidates {
		if !c.Supported() {
			continue
		}
		if !s.claimIdentity(c) {
			continue
		}
		t, err := s.connector.Connect(ctx, c)
		if err != nil {
			s.releaseIdentity(c)
			Logger.Warn("failed to connect to wiimote", "address", c.Address, "serial", c.Serial, "error", err)
			continue
		}
		Logger.Debug("connected to wiimote", "identifier", t.Identifier())
		s.registry.Add(&tracked{Transport: t, scanner: s})
	}

	return s.registry.Len()
}

// Next removes and returns the next queued Transport, transferring
// ownership to the caller. It returns false when no Transport is
// queued.
func (s *Scanner) Next() (Transport, bool) {
	return s.registry.Next()
}

// Cleanup closes every still-queued Transport and reverses any
// service-level registration performed during scanning. Transports
// already claimed through Next remain the caller's responsibility.
func (s *Scanner) Cleanup() error {
	err := s.registry.Drain()
	if s.registrar != nil {
		if rerr := s.registrar.Revert(); rerr != nil && err == nil {
			err = rerr
		}
	}
	return err
}

func (s *Scanner) claimIdentity(c Candidate) bool {
	id := c.Serial
	if id == "" {
		id = c.Address
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open[id] {
		return false
	}
	s.open[id] = true
	return true
}

func (s *Scanner) releaseIdentity(c Candidate) {
	id := c.Serial
	if id == "" {
		id = c.Address
	}
	s.forget(id)
}

func (s *Scanner) forget(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.open, id)
}

// tracked wraps a connected Transport so that closing it releases the
// device identity for rediscovery by later scans.
type tracked struct {
	Transport
	scanner *Scanner
}

func (t *tracked) Close() error {
	err := t.Transport.Close()
	t.scanner.forget(t.Identifier())
	return err
}
