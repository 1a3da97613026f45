package aware

import (
	"github.com/samber/oops"
)

// validServiceNameByte reports whether b is permitted in a service name:
// alphanumeric plus hyphen, underscore and dot. No whitespace.
func validServiceNameByte(b byte) bool {
	switch {
	case b >= '0' && b <= '9':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= 'a' && b <= 'z':
		return true
	case b == '-' || b == '_' || b == '.':
		return true
	}
	return false
}

// validateServiceName checks the caller-supplied service name: non-empty,
// within the engine limit, restricted charset.
func validateServiceName(name []byte, caps *Capabilities) error {
	if len(name) == 0 {
		return oops.Wrapf(ErrValidation, "service name is empty")
	}
	if len(name) > caps.MaxServiceNameLen {
		return oops.Wrapf(ErrValidation,
			"service name length %d exceeds limit %d", len(name), caps.MaxServiceNameLen)
	}
	for i, b := range name {
		if !validServiceNameByte(b) {
			return oops.Wrapf(ErrValidation,
				"service name contains invalid byte 0x%02x at offset %d", b, i)
		}
	}
	return nil
}

// validateServiceSpecificInfo checks the opaque application info blob.
// Nil and empty are both valid.
func validateServiceSpecificInfo(info []byte, caps *Capabilities) error {
	if len(info) > caps.MaxServiceSpecificInfoLen {
		return oops.Wrapf(ErrValidation,
			"service specific info length %d exceeds limit %d",
			len(info), caps.MaxServiceSpecificInfoLen)
	}
	return nil
}

// validateMatchFilter checks that the filter fits the engine limit and parses
// as a sequence of length-value records that exactly partitions the buffer:
// each record is one length byte followed by that many data bytes. A record
// claiming more bytes than remain, or bytes left over after the last complete
// record, both reject. Nil and empty are valid.
func validateMatchFilter(filter []byte, caps *Capabilities) error {
	if len(filter) > caps.MaxMatchFilterLen {
		return oops.Wrapf(ErrValidation,
			"match filter length %d exceeds limit %d", len(filter), caps.MaxMatchFilterLen)
	}
	for offset := 0; offset < len(filter); {
		recordLen := int(filter[offset])
		offset++
		if offset+recordLen > len(filter) {
			return oops.Wrapf(ErrValidation,
				"match filter record at offset %d claims %d bytes, %d remain",
				offset-1, recordLen, len(filter)-offset)
		}
		offset += recordLen
	}
	return nil
}

// validateSecurityConfig checks a requested data-path security configuration
// against the cipher suites the engine supports. Nil is valid (open session).
func validateSecurityConfig(sc *SecurityConfig, caps *Capabilities) error {
	if sc == nil {
		return nil
	}
	if !caps.SupportsCipherSuite(sc.CipherSuite) {
		return oops.Wrapf(ErrValidation,
			"cipher suite 0x%x not supported by engine (supported 0x%x)",
			sc.CipherSuite, caps.SupportedCipherSuites)
	}
	return nil
}

// validatePublishConfig runs all structural checks for a publish request.
// Ranging requires platform RTT support.
func validatePublishConfig(config *PublishConfig, caps *Capabilities, rttSupported bool) error {
	if config == nil {
		return oops.Wrapf(ErrValidation, "publish config is nil")
	}
	if err := validateServiceName(config.ServiceName, caps); err != nil {
		return err
	}
	if err := validateServiceSpecificInfo(config.ServiceSpecificInfo, caps); err != nil {
		return err
	}
	if err := validateMatchFilter(config.MatchFilter, caps); err != nil {
		return err
	}
	if err := validateSecurityConfig(config.SecurityConfig, caps); err != nil {
		return err
	}
	if config.RangingEnabled && !rttSupported {
		return oops.Wrapf(ErrValidation, "ranging requested but RTT is not supported")
	}
	return nil
}

// validateSubscribeConfig runs all structural checks for a subscribe request.
// A MaxDistanceMm greater than zero is a ranging request and requires
// platform RTT support.
func validateSubscribeConfig(config *SubscribeConfig, caps *Capabilities, rttSupported bool) error {
	if config == nil {
		return oops.Wrapf(ErrValidation, "subscribe config is nil")
	}
	if err := validateServiceName(config.ServiceName, caps); err != nil {
		return err
	}
	if err := validateServiceSpecificInfo(config.ServiceSpecificInfo, caps); err != nil {
		return err
	}
	if err := validateMatchFilter(config.MatchFilter, caps); err != nil {
		return err
	}
	if err := validateSecurityConfig(config.SecurityConfig, caps); err != nil {
		return err
	}
	if config.MaxDistanceMm > 0 && !rttSupported {
		return oops.Wrapf(ErrValidation, "ranging requested but RTT is not supported")
	}
	return nil
}
