package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImage_JSONRoundtrip(t *testing.T) {
	original := Image{
		Version: ImageVersion,
		Subscriptions: map[int64]SubscriptionOptions{
			722272283226445844: {NotificationType: NotificationTypeLaunch, LaunchMentions: "@here"},
			100:                {NotificationType: NotificationTypeAll, LaunchMentions: ""},
		},
		NotificationSent: true,
		PreviousSchedule: ScheduleSnapshot{
			"title": "Launch Schedule",
			"fields": []any{
				map[string]any{"name": "mission", "value": "CRS-21"},
			},
		},
	}

	data, err := json.Marshal(original)
	require.NoError(t, err)

	var restored Image
	require.NoError(t, json.Unmarshal(data, &restored))

	assert.Equal(t, ImageVersion, restored.Version)
	assert.True(t, restored.NotificationSent)
	assert.Len(t, restored.Subscriptions, 2)
	assert.Equal(t, NotificationTypeLaunch, restored.Subscriptions[722272283226445844].NotificationType)
	assert.Equal(t, "@here", restored.Subscriptions[722272283226445844].LaunchMentions)
	assert.Equal(t, "Launch Schedule", restored.PreviousSchedule["title"])
	fields := restored.PreviousSchedule["fields"].([]any)
	assert.Equal(t, "CRS-21", fields[0].(map[string]any)["value"])
}

func TestNewImage_Defaults(t *testing.T) {
	img := NewImage()
	assert.Equal(t, ImageVersion, img.Version)
	assert.NotNil(t, img.Subscriptions)
	assert.Empty(t, img.Subscriptions)
	assert.False(t, img.NotificationSent)
	assert.NotNil(t, img.PreviousSchedule)
}

func TestImage_Normalize(t *testing.T) {
	img := &Image{Version: ImageVersion}
	img.Normalize()
	assert.NotNil(t, img.Subscriptions)
	assert.NotNil(t, img.PreviousSchedule)
}

func TestLegacyImage_Upgrade(t *testing.T) {
	legacy := &LegacyImage{
		Subscriptions: map[int64]SubscriptionOptions{
			100: {NotificationType: NotificationTypeSchedule, LaunchMentions: "@all"},
		},
		NotificationSent: true,
	}

	img := legacy.Upgrade()
	assert.Equal(t, ImageVersion, img.Version)
	assert.True(t, img.NotificationSent)
	assert.Equal(t, "@all", img.Subscriptions[100].LaunchMentions)
	assert.NotNil(t, img.PreviousSchedule)
}
