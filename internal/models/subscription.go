package models

// NotificationType identifies how a subscribed channel wants to be pinged.
// The values are owned by the notification layer; the store only carries them
// and has to round-trip them through the persisted image unchanged.
type NotificationType int

const (
	NotificationTypeAll NotificationType = iota
	NotificationTypeSchedule
	NotificationTypeLaunch
)

func (t NotificationType) String() string {
	switch t {
	case NotificationTypeAll:
		return "all"
	case NotificationTypeSchedule:
		return "schedule"
	case NotificationTypeLaunch:
		return "launch"
	default:
		return "unknown"
	}
}

// SubscriptionOptions holds a single channel's notification preferences.
// Treat it as immutable: replace the whole value to change a subscription.
type SubscriptionOptions struct {
	NotificationType NotificationType `json:"notification_type"`
	LaunchMentions   string           `json:"launch_mentions"`
}

// CloneSubscriptions returns an independent copy of a subscription registry.
// SubscriptionOptions is a plain value type, so copying the map entries is
// enough to cut every alias back into the source.
func CloneSubscriptions(in map[int64]SubscriptionOptions) map[int64]SubscriptionOptions {
	out := make(map[int64]SubscriptionOptions, len(in))
	for id, opts := range in {
		out[id] = opts
	}
	return out
}
