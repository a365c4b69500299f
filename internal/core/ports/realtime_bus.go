package ports

// RealtimeBus is the fire-and-forget push channel of the notification
// fan-out. Channels are keyed by role ("role:<role>") or by user
// ("user:<id>"). Publish never blocks the caller on slow subscribers and
// never returns an error: push delivery is best-effort, the persisted
// notification is the durable record.
type RealtimeBus interface {
	Publish(channel string, event string, payload any)
}
