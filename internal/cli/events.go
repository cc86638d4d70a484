package cli

import (
	"encoding/json"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/mkvist/hatchctl/internal/collection"
	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/mkvist/hatchctl/internal/realtime"
)

// WireEvents registers the backend's push events against the subscriber
// and forwards each as an applyEventMsg into the program. The closures
// run on the update loop, so the stores need no locking.
func WireEvents(app *App, sub *realtime.Subscriber, send func(tea.Msg)) {
	// Events pushed while the feed was down are lost; after a reconnect
	// every view refetches from scratch.
	sub.OnReconnect(func() { send(refreshViewMsg{}) })

	onRecord := func(event string, resource domain.Resource, apply func(json.RawMessage) (func() bool, error)) {
		sub.On(event, func(data json.RawMessage) {
			applyFn, err := apply(data)
			if err != nil {
				app.Log.Warn("decode pushed event",
					zap.String("event", event), zap.Error(err))
				return
			}
			send(applyEventMsg{resource: resource, apply: applyFn})
		})
	}

	onRecord(realtime.EventAssetCreated, domain.ResourceAsset, func(data json.RawMessage) (func() bool, error) {
		var rec domain.Asset
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		return func() bool { return app.Assets.Apply(collection.Created(&rec)) }, nil
	})
	onRecord(realtime.EventAssetUpdated, domain.ResourceAsset, func(data json.RawMessage) (func() bool, error) {
		var rec domain.Asset
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		return func() bool { return app.Assets.Apply(collection.Updated(&rec)) }, nil
	})
	onRecord(realtime.EventAssetDeleted, domain.ResourceAsset, func(data json.RawMessage) (func() bool, error) {
		id, err := realtime.DeletedID(data)
		if err != nil {
			return nil, err
		}
		return func() bool { return app.Assets.Apply(collection.Deleted[*domain.Asset](id)) }, nil
	})

	onRecord(realtime.EventFeedstockUpdated, domain.ResourceFeedstock, func(data json.RawMessage) (func() bool, error) {
		var rec domain.Feedstock
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		return func() bool { return app.Feedstocks.Apply(collection.Updated(&rec)) }, nil
	})
	onRecord(realtime.EventFeedstockDeleted, domain.ResourceFeedstock, func(data json.RawMessage) (func() bool, error) {
		id, err := realtime.DeletedID(data)
		if err != nil {
			return nil, err
		}
		return func() bool { return app.Feedstocks.Apply(collection.Deleted[*domain.Feedstock](id)) }, nil
	})

	onRecord(realtime.EventParentFishFeedingUpdated, domain.ResourceParentFishFeeding, func(data json.RawMessage) (func() bool, error) {
		var rec domain.FeedingRecord
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, err
		}
		return func() bool { return app.ParentFeedings.Apply(collection.Updated(&rec)) }, nil
	})
	onRecord(realtime.EventParentFishFeedingDeleted, domain.ResourceParentFishFeeding, func(data json.RawMessage) (func() bool, error) {
		id, err := realtime.DeletedID(data)
		if err != nil {
			return nil, err
		}
		return func() bool { return app.ParentFeedings.Apply(collection.Deleted[*domain.FeedingRecord](id)) }, nil
	})
}
