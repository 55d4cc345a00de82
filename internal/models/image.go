package models

// ImageVersion is the current persisted image format.
const ImageVersion = 1

// Image is the on-disk envelope for the full store state. The format this
// store replaces had no version marker, which made future field additions
// indistinguishable from corruption; Version fixes that.
type Image struct {
	Version          int                           `json:"version"`
	Subscriptions    map[int64]SubscriptionOptions `json:"subscriptions"`
	NotificationSent bool                          `json:"notification_sent"`
	PreviousSchedule ScheduleSnapshot              `json:"previous_schedule"`
}

// NewImage returns an empty image at the current version.
func NewImage() *Image {
	return &Image{
		Version:          ImageVersion,
		Subscriptions:    make(map[int64]SubscriptionOptions),
		PreviousSchedule: ScheduleSnapshot{},
	}
}

// Normalize replaces nil composite fields with empty ones so loaded images
// are always safe to index into.
func (img *Image) Normalize() {
	if img.Subscriptions == nil {
		img.Subscriptions = make(map[int64]SubscriptionOptions)
	}
	if img.PreviousSchedule == nil {
		img.PreviousSchedule = ScheduleSnapshot{}
	}
}

// LegacyImage is the unversioned envelope written before Version existed.
// The field names follow the original flat layout.
type LegacyImage struct {
	Subscriptions    map[int64]SubscriptionOptions `json:"subscribed_channels"`
	NotificationSent bool                          `json:"launch_notification_sent"`
	PreviousSchedule ScheduleSnapshot              `json:"previous_schedule_embed"`
}

// Upgrade converts a legacy image to the current format.
func (l *LegacyImage) Upgrade() *Image {
	img := &Image{
		Version:          ImageVersion,
		Subscriptions:    l.Subscriptions,
		NotificationSent: l.NotificationSent,
		PreviousSchedule: l.PreviousSchedule,
	}
	img.Normalize()
	return img
}
