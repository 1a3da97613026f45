package aware

import (
	"sync"

	"github.com/samber/oops"
)

// LocalChannel is a process-local Channel implementation for hosts that run
// the transport in the same process, and for tests. Kill marks the channel
// dead and fires every linked recipient exactly once.
type LocalChannel struct {
	mu         sync.Mutex
	dead       bool
	recipients []DeathRecipient
}

// NewLocalChannel returns a live LocalChannel.
func NewLocalChannel() *LocalChannel {
	return &LocalChannel{}
}

// LinkToDeath implements Channel.
func (c *LocalChannel) LinkToDeath(recipient DeathRecipient) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dead {
		return oops.Errorf("channel is dead")
	}
	c.recipients = append(c.recipients, recipient)
	return nil
}

// UnlinkToDeath implements Channel.
func (c *LocalChannel) UnlinkToDeath(recipient DeathRecipient) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, r := range c.recipients {
		if r == recipient {
			c.recipients = append(c.recipients[:i], c.recipients[i+1:]...)
			return
		}
	}
}

// Kill marks the channel dead and notifies linked recipients. Recipients are
// invoked outside the channel lock; killing twice is a no-op.
func (c *LocalChannel) Kill() {
	c.mu.Lock()
	if c.dead {
		c.mu.Unlock()
		return
	}
	c.dead = true
	recipients := c.recipients
	c.recipients = nil
	c.mu.Unlock()

	for _, r := range recipients {
		r.ChannelDied()
	}
}

// Dead reports whether Kill has been called.
func (c *LocalChannel) Dead() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dead
}
