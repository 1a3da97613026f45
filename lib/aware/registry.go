package aware

import (
	"sync"

	"github.com/go-i2p/logger"
	"github.com/samber/oops"
)

var log = logger.GetGoI2PLogger()

// ClientSession binds one live client id to the UID that created it and to
// the channel its lifetime is tied to. Sessions are immutable after creation;
// the registry only inserts and removes them.
type ClientSession struct {
	ID       int32
	OwnerUID int32

	channel   Channel
	recipient DeathRecipient
}

// ClientRegistry is the process-wide mapping from client ids to their owning
// session. It is the sole authority on "who may act on client id N".
//
// All mutation happens under a single mutex, which makes channel-death
// cleanup (delivered from arbitrary transport goroutines) equivalent to the
// serialized execution the host substrate provides for explicit calls. Ids
// allocate monotonically from 1 and are never reused.
type ClientRegistry struct {
	mu       sync.RWMutex
	sessions map[int32]*ClientSession
	nextID   int32
}

// NewClientRegistry creates an empty registry.
func NewClientRegistry() *ClientRegistry {
	return &ClientRegistry{
		sessions: make(map[int32]*ClientSession),
		nextID:   1,
	}
}

// Allocate registers a new session owned by ownerUID, tied to the given
// channel, and returns its id. The onDeath callback is armed on the channel
// and fires at most once, after the session has already been released.
//
// If the channel is already dead, no session is registered and an
// authorization error is returned; the failed id is burned, never reused.
func (r *ClientRegistry) Allocate(ownerUID int32, channel Channel, onDeath func(id int32)) (int32, error) {
	r.mu.Lock()
	id := r.nextID
	r.nextID++

	recipient := &deathWatch{fn: func() {
		if r.Release(id) && onDeath != nil {
			onDeath(id)
		}
	}}

	if err := channel.LinkToDeath(recipient); err != nil {
		r.mu.Unlock()
		log.WithFields(logger.Fields{
			"at":       "aware.ClientRegistry.Allocate",
			"clientId": id,
			"uid":      ownerUID,
		}).Warn("channel_dead_on_allocate")
		return 0, oops.Wrapf(ErrAuthorization, "channel already dead for uid %d", ownerUID)
	}

	r.sessions[id] = &ClientSession{
		ID:        id,
		OwnerUID:  ownerUID,
		channel:   channel,
		recipient: recipient,
	}
	r.mu.Unlock()

	log.WithFields(logger.Fields{
		"at":       "aware.ClientRegistry.Allocate",
		"clientId": id,
		"uid":      ownerUID,
	}).Debug("client_session_registered")

	return id, nil
}

// Authorize checks that id is live and owned by callerUID. On failure the
// registry is left untouched, so a subsequent call by the legitimate owner
// still succeeds. This no-side-effect property is the core contract of the
// gate.
func (r *ClientRegistry) Authorize(id, callerUID int32) error {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return oops.Wrapf(ErrAuthorization, "unknown client id %d", id)
	}
	if session.OwnerUID != callerUID {
		log.WithFields(logger.Fields{
			"at":       "aware.ClientRegistry.Authorize",
			"clientId": id,
			"owner":    session.OwnerUID,
			"caller":   callerUID,
		}).Warn("client_id_access_from_foreign_uid")
		return oops.Wrapf(ErrAuthorization, "uid %d does not own client id %d", callerUID, id)
	}
	return nil
}

// Release removes the session and disarms its channel watch. Idempotent:
// releasing an absent id is a no-op and reports false. Explicit disconnect
// and channel-death cleanup both converge here.
func (r *ClientRegistry) Release(id int32) bool {
	r.mu.Lock()
	session, ok := r.sessions[id]
	if ok {
		delete(r.sessions, id)
	}
	r.mu.Unlock()

	if !ok {
		return false
	}

	// Disarm outside the lock: transport implementations may deliver death
	// notifications synchronously from UnlinkToDeath.
	session.channel.UnlinkToDeath(session.recipient)

	log.WithFields(logger.Fields{
		"at":       "aware.ClientRegistry.Release",
		"clientId": id,
	}).Debug("client_session_released")
	return true
}

// Size returns the number of live sessions.
func (r *ClientRegistry) Size() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// Contains reports whether id is live.
func (r *ClientRegistry) Contains(id int32) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sessions[id]
	return ok
}

// OwnerOf returns the owning UID of a live id, or -1 if the id is absent.
func (r *ClientRegistry) OwnerOf(id int32) int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if session, ok := r.sessions[id]; ok {
		return session.OwnerUID
	}
	return -1
}
