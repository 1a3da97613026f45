package aware

// DeathRecipient receives a one-shot notification when the channel a client
// session was created over becomes unusable.
type DeathRecipient interface {
	ChannelDied()
}

// Channel is the liveness handle of the transport connection a client session
// was created over. It is supplied by the host transport; the gate only arms
// and disarms death notifications on it.
//
// Implementations must fire each linked recipient at most once, and must not
// fire a recipient after it has been unlinked. Notifications may be delivered
// from any goroutine.
type Channel interface {
	// LinkToDeath arms a death notification for the channel. Returns an
	// error if the channel is already dead, in which case the recipient
	// will never fire.
	LinkToDeath(recipient DeathRecipient) error

	// UnlinkToDeath disarms a previously linked recipient, matched by
	// identity. Unlinking a recipient that was never linked is a no-op.
	UnlinkToDeath(recipient DeathRecipient)
}

// deathWatch is the registry's comparable DeathRecipient. Recipients are
// matched by identity on unlink, so they must be pointer values.
type deathWatch struct {
	fn func()
}

func (w *deathWatch) ChannelDied() { w.fn() }
