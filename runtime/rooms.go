package runtime

import (
	"sort"
	"sync"

	"relay-chat/domain"
)

// Rooms tracks which sessions enrolled in which room. Enrollment is an
// optional association: private delivery goes directly to the two raw
// session ids and never consults this map. Rooms are not reference
// counted; an entry simply stops mattering once its members disconnect.
type Rooms struct {
	mu      sync.RWMutex
	members map[domain.RoomID]Set
}

func NewRooms() *Rooms {
	return &Rooms{members: make(map[domain.RoomID]Set)}
}

// Enroll associates a session with a room. Enrolling twice has the same
// effect as once.
func (r *Rooms) Enroll(id string, room domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[room]; !ok {
		r.members[room] = make(Set)
	}
	r.members[room][id] = struct{}{}
}

// Members returns the sessions enrolled in a room, sorted for stable
// inspection. Nil if the room was never joined.
func (r *Rooms) Members(room domain.RoomID) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	members, ok := r.members[room]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(members))
	for id := range members {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
