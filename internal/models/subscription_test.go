package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationType_String(t *testing.T) {
	assert.Equal(t, "all", NotificationTypeAll.String())
	assert.Equal(t, "schedule", NotificationTypeSchedule.String())
	assert.Equal(t, "launch", NotificationTypeLaunch.String())
	assert.Equal(t, "unknown", NotificationType(42).String())
}

func TestCloneSubscriptions_Isolated(t *testing.T) {
	original := map[int64]SubscriptionOptions{
		100: {NotificationType: NotificationTypeAll, LaunchMentions: "@here"},
		200: {NotificationType: NotificationTypeSchedule, LaunchMentions: ""},
	}

	clone := CloneSubscriptions(original)
	clone[100] = SubscriptionOptions{NotificationType: NotificationTypeLaunch, LaunchMentions: "@everyone"}
	delete(clone, 200)
	clone[300] = SubscriptionOptions{}

	assert.Len(t, original, 2)
	assert.Equal(t, NotificationTypeAll, original[100].NotificationType)
	assert.Equal(t, "@here", original[100].LaunchMentions)
	assert.Contains(t, original, int64(200))
}

func TestCloneSubscriptions_Empty(t *testing.T) {
	clone := CloneSubscriptions(nil)
	assert.NotNil(t, clone)
	assert.Empty(t, clone)
}
