package services

import (
	"fmt"
	"sync"
	"time"

	"slbstore/internal/models"
	"slbstore/internal/persistence/interfaces"
	"slbstore/internal/providers"
)

// DataStoreInterface is the store contract consumed by the notification and
// command handling logic.
type DataStoreInterface interface {
	NotificationProgress() (bool, models.ScheduleSnapshot)
	SetNotificationProgress(sent bool, snapshot models.ScheduleSnapshot) error
	AddSubscription(channelID int64, t models.NotificationType, launchMentions string) (bool, error)
	Subscriptions() map[int64]models.SubscriptionOptions
	RemoveSubscription(channelID int64) (bool, error)
	SubscriptionCount() int
	Persist() error
}

// DataStore owns the bot's subscription state: the channel registry, the
// notification progress flag and the previous schedule snapshot. Composite
// values cross the API boundary only as deep copies, and every successful
// mutation rewrites the persisted image before returning.
//
// A single mutex guards the three fields together with the save, held for the
// whole mutating call. Without that, concurrent mutators could interleave and
// rewrite the image from stale state.
type DataStore struct {
	mu sync.Mutex

	subscriptions    map[int64]models.SubscriptionOptions
	notificationSent bool
	previousSchedule models.ScheduleSnapshot

	persister interfaces.PersisterInterface
	logger    providers.Logger
	metrics   providers.MetricsProviderInterface
}

// NewDataStore loads the persisted image from the configured backend, or
// starts from empty defaults when no image exists yet. A present but corrupt
// image is a fatal construction error: starting empty over it would silently
// lose every subscription.
func NewDataStore(persister interfaces.PersisterInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) (DataStoreInterface, error) {
	ds := &DataStore{
		subscriptions:    make(map[int64]models.SubscriptionOptions),
		previousSchedule: models.ScheduleSnapshot{},
		persister:        persister,
		logger:           logger,
		metrics:          metrics,
	}

	img, err := persister.Load()
	if err != nil {
		return nil, fmt.Errorf("load persisted image: %w", err)
	}
	if img != nil {
		img.Normalize()
		ds.subscriptions = img.Subscriptions
		ds.notificationSent = img.NotificationSent
		ds.previousSchedule = img.PreviousSchedule
		logger.Infof(providers.TypeStore, "Restored persisted image: %d subscriptions", len(ds.subscriptions))
	}
	metrics.SetSubscriptionsTotal(len(ds.subscriptions))

	return ds, nil
}

// saveLocked rewrites the full persisted image. Callers must hold ds.mu.
func (ds *DataStore) saveLocked() error {
	img := &models.Image{
		Version:          models.ImageVersion,
		Subscriptions:    ds.subscriptions,
		NotificationSent: ds.notificationSent,
		PreviousSchedule: ds.previousSchedule,
	}
	start := time.Now()
	if err := ds.persister.Save(img); err != nil {
		ds.metrics.IncPersistenceErrors()
		ds.logger.Errorf(providers.TypePersist, "Persist failed: %s", err)
		return fmt.Errorf("persist image: %w", err)
	}
	ds.metrics.ObservePersistenceDuration(time.Since(start))
	return nil
}

// NotificationProgress returns the progress flag and an independent copy of
// the previous schedule snapshot.
func (ds *DataStore) NotificationProgress() (bool, models.ScheduleSnapshot) {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.notificationSent, ds.previousSchedule.DeepCopy()
}

// SetNotificationProgress records the flag and a deep copy of the snapshot,
// then persists. On a failed save the new in-memory values are kept; the next
// successful save brings the image back in sync.
func (ds *DataStore) SetNotificationProgress(sent bool, snapshot models.ScheduleSnapshot) error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	ds.metrics.IncOpsTotal("set_notification_progress")
	ds.notificationSent = sent
	ds.previousSchedule = snapshot.DeepCopy()
	return ds.saveLocked()
}

// AddSubscription registers a channel. Repeated calls for the same channel
// are no-ops that report false without touching disk.
func (ds *DataStore) AddSubscription(channelID int64, t models.NotificationType, launchMentions string) (bool, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, ok := ds.subscriptions[channelID]; ok {
		return false, nil
	}

	ds.metrics.IncOpsTotal("add_subscription")
	ds.subscriptions[channelID] = models.SubscriptionOptions{
		NotificationType: t,
		LaunchMentions:   launchMentions,
	}
	ds.metrics.SetSubscriptionsTotal(len(ds.subscriptions))
	ds.logger.Infof(providers.TypeStore, "Channel %d subscribed (%s)", channelID, t)
	return true, ds.saveLocked()
}

// Subscriptions returns a copy of the registry; mutating it never leaks back
// into the store.
func (ds *DataStore) Subscriptions() map[int64]models.SubscriptionOptions {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return models.CloneSubscriptions(ds.subscriptions)
}

// RemoveSubscription drops a channel and persists. Removing an absent channel
// reports false without a disk write.
func (ds *DataStore) RemoveSubscription(channelID int64) (bool, error) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	if _, ok := ds.subscriptions[channelID]; !ok {
		return false, nil
	}

	ds.metrics.IncOpsTotal("remove_subscription")
	delete(ds.subscriptions, channelID)
	ds.metrics.SetSubscriptionsTotal(len(ds.subscriptions))
	ds.logger.Infof(providers.TypeStore, "Channel %d unsubscribed", channelID)
	return true, ds.saveLocked()
}

func (ds *DataStore) SubscriptionCount() int {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return len(ds.subscriptions)
}

// Persist rewrites the persisted image from current state. Mutators already
// save synchronously; this exists for the periodic resync pass and shutdown.
func (ds *DataStore) Persist() error {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	return ds.saveLocked()
}
