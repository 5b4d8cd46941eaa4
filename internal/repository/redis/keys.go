package redisrepo

import (
	"fmt"

	"github.com/google/uuid"
)

const ns = "tripslot:v1"

func KeyExperience(id uuid.UUID) string {
	return fmt.Sprintf("%s:experience:%s", ns, id)
}

func KeyExperienceList() string {
	return ns + ":experiences:list"
}

func KeyRateLimit(scope, id string) string {
	return fmt.Sprintf("%s:rl:%s:%s", ns, scope, id)
}

// KeyIdemBooking namespaces an Idempotency-Key by the caller scope it was
// sent from.
func KeyIdemBooking(scope, idemKey string) string {
	return fmt.Sprintf("%s:idem:bookings:%s:%s", ns, scope, idemKey)
}

func ChannelExperiencesChanged() string {
	return ns + ":experiences:changed"
}
