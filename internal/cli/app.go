package cli

import (
	"go.uber.org/zap"

	"github.com/mkvist/hatchctl/internal/api"
	"github.com/mkvist/hatchctl/internal/collection"
	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/mkvist/hatchctl/internal/draft"
	"github.com/mkvist/hatchctl/internal/export"
)

// App holds the API client, local stores, and per-resource collections
// shared by the TUI views and the cobra commands.
//
// The collection stores are mutated only on the bubbletea update loop
// (or, for one-shot commands, on the command's goroutine).
type App struct {
	API      *api.Client
	Drafts   *draft.Store
	Renderer export.Renderer
	Log      *zap.Logger

	// User scopes saved form drafts.
	User string
	// PageSize is rows per list page.
	PageSize int

	Assets         *collection.Store[*domain.Asset]
	Feedstocks     *collection.Store[*domain.Feedstock]
	Pools          *collection.Store[*domain.ParentFishPool]
	Migrations     *collection.Store[*domain.EggMigration]
	ParentFeedings *collection.Store[*domain.FeedingRecord]
	EggFeedings    *collection.Store[*domain.FeedingRecord]
}

// NewApp wires an App around its dependencies with empty collections.
func NewApp(client *api.Client, drafts *draft.Store, renderer export.Renderer, log *zap.Logger, user string, pageSize int) *App {
	if pageSize < 1 {
		pageSize = collection.DefaultPageSize
	}
	return &App{
		API:            client,
		Drafts:         drafts,
		Renderer:       renderer,
		Log:            log,
		User:           user,
		PageSize:       pageSize,
		Assets:         collection.NewStore[*domain.Asset](),
		Feedstocks:     collection.NewStore[*domain.Feedstock](),
		Pools:          collection.NewStore[*domain.ParentFishPool](),
		Migrations:     collection.NewStore[*domain.EggMigration](),
		ParentFeedings: collection.NewStore[*domain.FeedingRecord](),
		EggFeedings:    collection.NewStore[*domain.FeedingRecord](),
	}
}
