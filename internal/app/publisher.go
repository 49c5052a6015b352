package app

// ChangePublisher receives row-level change notifications after successful
// mutations. The realtime hub implements it; tests and the kiosk scanner can
// pass NopPublisher.
type ChangePublisher interface {
	Publish(table, action, id string)
}

type nopPublisher struct{}

func (nopPublisher) Publish(string, string, string) {}

// NopPublisher returns a publisher that discards all changes.
func NopPublisher() ChangePublisher {
	return nopPublisher{}
}
