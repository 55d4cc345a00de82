package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"slbstore/internal/di"
	"slbstore/internal/models"
	"slbstore/internal/services"
	"slbstore/internal/structures"
)

const (
	numWorkers   = 8
	testDuration = 10 * time.Second
	numChannels  = 500
)

var notifTypes = []models.NotificationType{
	models.NotificationTypeAll,
	models.NotificationTypeSchedule,
	models.NotificationTypeLaunch,
}

type counters struct {
	adds     atomic.Int64
	removes  atomic.Int64
	reads    atomic.Int64
	progress atomic.Int64
	errors   atomic.Int64
}

func main() {
	fmt.Println("=== slbstore Soak Test ===")
	fmt.Printf("Workers: %d | Duration: %s | Channels: %d\n\n", numWorkers, testDuration, numChannels)

	dir, err := os.MkdirTemp("", "slbstore-soak")
	if err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}
	defer os.RemoveAll(dir)

	cfgPath := writeConfig(dir)
	app, err := di.InitApp(&structures.CliFlags{ConfigPath: cfgPath})
	if err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}

	fmt.Println("--- Phase 1: Mixed load ---")
	var c counters
	runPhase(app.Store, &c)
	fmt.Printf("adds=%d removes=%d reads=%d progress=%d errors=%d count=%d\n",
		c.adds.Load(), c.removes.Load(), c.reads.Load(), c.progress.Load(), c.errors.Load(),
		app.Store.SubscriptionCount())
	if c.errors.Load() > 0 {
		fmt.Println("FAILED: store operations returned errors")
		os.Exit(1)
	}

	fmt.Println("\n--- Phase 2: Restart round trip ---")
	before := app.Store.Subscriptions()
	sentBefore, snapBefore := app.Store.NotificationProgress()
	if err := app.Close(); err != nil {
		fmt.Println("FAILED: close:", err)
		os.Exit(1)
	}

	app2, err := di.InitApp(&structures.CliFlags{ConfigPath: cfgPath})
	if err != nil {
		fmt.Println("FAILED: reopen:", err)
		os.Exit(1)
	}
	defer app2.Close()

	after := app2.Store.Subscriptions()
	sentAfter, snapAfter := app2.Store.NotificationProgress()

	if !reflect.DeepEqual(before, after) {
		fmt.Printf("FAILED: registry mismatch after restart (%d vs %d entries)\n", len(before), len(after))
		os.Exit(1)
	}
	if sentBefore != sentAfter || !reflect.DeepEqual(snapBefore, snapAfter) {
		fmt.Println("FAILED: notification progress mismatch after restart")
		os.Exit(1)
	}

	fmt.Printf("OK: %d subscriptions survived restart\n", len(after))
}

func runPhase(store services.DataStoreInterface, c *counters) {
	done := make(chan struct{})
	var wg sync.WaitGroup

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-done:
					return
				default:
				}
				step(store, rng, c)
			}
		}(int64(i + 1))
	}

	time.Sleep(testDuration)
	close(done)
	wg.Wait()
}

func step(store services.DataStoreInterface, rng *rand.Rand, c *counters) {
	channelID := int64(100_000 + rng.Intn(numChannels))
	switch r := rng.Float64(); {
	case r < 0.40:
		notif := notifTypes[rng.Intn(len(notifTypes))]
		if _, err := store.AddSubscription(channelID, notif, "@here"); err != nil {
			c.errors.Add(1)
			return
		}
		c.adds.Add(1)
	case r < 0.60:
		if _, err := store.RemoveSubscription(channelID); err != nil {
			c.errors.Add(1)
			return
		}
		c.removes.Add(1)
	case r < 0.70:
		snap := models.ScheduleSnapshot{
			"title": "Launch Schedule",
			"fields": []any{
				map[string]any{"name": "mission", "value": fmt.Sprintf("flight-%d", rng.Intn(1000))},
			},
		}
		if err := store.SetNotificationProgress(rng.Intn(2) == 0, snap); err != nil {
			c.errors.Add(1)
			return
		}
		c.progress.Add(1)
	default:
		subs := store.Subscriptions()
		// Scribble over the copy; isolation means the store never notices.
		for id := range subs {
			subs[id] = models.SubscriptionOptions{LaunchMentions: "clobbered"}
			break
		}
		c.reads.Add(1)
	}
}

func writeConfig(dir string) string {
	cfg := fmt.Sprintf(`persistence:
  driver: file
  filePath: %s
  saveInterval: 2s
logger:
  level: info
  mode: 0644
  dir: %s
metrics:
  enabled: false
`, filepath.Join(dir, "slbstore.dat"), dir)

	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		fmt.Println("FAILED:", err)
		os.Exit(1)
	}
	return path
}
