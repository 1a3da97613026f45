package aware

// Capabilities is the engine-reported limits snapshot. It is obtained once at
// service construction and never mutated afterwards; the validator sizes all
// of its checks from it.
type Capabilities struct {
	MaxConcurrentClusters             int
	MaxPublishes                      int
	MaxSubscribes                     int
	MaxServiceNameLen                 int
	MaxMatchFilterLen                 int
	MaxTotalMatchFilterLen            int
	MaxServiceSpecificInfoLen         int
	MaxExtendedServiceSpecificInfoLen int
	MaxNdiInterfaces                  int
	MaxNdpSessions                    int
	MaxAppInfoLen                     int
	MaxQueuedTransmitMessages         int
	SupportedCipherSuites             uint32
	InstantCommunicationModeSupported bool
}

// Characteristics is the public-facing limits structure derived from the
// engine capabilities, served to callers for introspection.
type Characteristics struct {
	MaxServiceNameLength               int
	MaxServiceSpecificInfoLength       int
	MaxMatchFilterLength               int
	SupportedCipherSuites              uint32
	NumberOfSupportedDataPaths         int
	NumberOfSupportedDataInterfaces    int
	NumberOfSupportedPublishSessions   int
	NumberOfSupportedSubscribeSessions int
	InstantCommunicationModeSupported  bool
}

// ToCharacteristics translates the engine snapshot into the public limits
// structure.
func (c *Capabilities) ToCharacteristics() *Characteristics {
	return &Characteristics{
		MaxServiceNameLength:               c.MaxServiceNameLen,
		MaxServiceSpecificInfoLength:       c.MaxServiceSpecificInfoLen,
		MaxMatchFilterLength:               c.MaxMatchFilterLen,
		SupportedCipherSuites:              c.SupportedCipherSuites,
		NumberOfSupportedDataPaths:         c.MaxNdpSessions,
		NumberOfSupportedDataInterfaces:    c.MaxNdiInterfaces,
		NumberOfSupportedPublishSessions:   c.MaxPublishes,
		NumberOfSupportedSubscribeSessions: c.MaxSubscribes,
		InstantCommunicationModeSupported:  c.InstantCommunicationModeSupported,
	}
}

// SupportsCipherSuite reports whether the engine supports every suite in the
// given bitmask.
func (c *Capabilities) SupportsCipherSuite(suite uint32) bool {
	return suite&^c.SupportedCipherSuites == 0
}
