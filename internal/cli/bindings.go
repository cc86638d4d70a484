package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/mkvist/hatchctl/internal/api"
	"github.com/mkvist/hatchctl/internal/cli/formatter"
	"github.com/mkvist/hatchctl/internal/collection"
	"github.com/mkvist/hatchctl/internal/domain"
	"github.com/mkvist/hatchctl/internal/export"
	"github.com/mkvist/hatchctl/internal/form"
	"github.com/mkvist/hatchctl/internal/validate"
)

// column maps one table column to a record field.
type column[T any] struct {
	header string
	cell   func(T) string
}

// filterDef is one cyclable filter: pressing its key steps through ""
// (all) and each value in order.
type filterDef struct {
	key    string
	label  string
	values []string
}

// resourceSpec binds everything the generic list view needs for one
// resource: the shared store, the query config, table columns, CRUD
// calls, the form, and the export layout.
type resourceSpec[T domain.Entity] struct {
	resource domain.Resource
	title    string
	formKind string

	config   collection.Config[T]
	sortKeys []string
	columns  []column[T]
	filters  []filterDef

	store  func(*App) *collection.Store[T]
	fetch  func(context.Context, *App) ([]T, error)
	remove func(context.Context, *App, string) (string, error)
	form   func(*SharedState, form.Mode, T) View
	doc    func(*App, []T, time.Time) export.Document

	// validator and submit back both the TUI form and the add command.
	validator form.Validator
	submit    func(*App) submitFunc
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(api.DateLayout)
}

// absoluteURL qualifies a backend-relative upload path against the API
// host so exported reports can embed it.
func absoluteURL(app *App, path string) string {
	if path == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	base := strings.TrimSuffix(app.API.BaseURL(), "/api")
	return base + "/" + strings.TrimPrefix(path, "/")
}

func exportDoc[T domain.Entity](title string, cols []column[T], records []T, now time.Time) export.Document {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.header
	}
	rows := make([][]export.Cell, 0, len(records))
	for _, r := range records {
		row := make([]export.Cell, len(cols))
		for i, c := range cols {
			row[i] = export.Text(c.cell(r))
		}
		rows = append(rows, row)
	}
	return export.Document{Title: title, GeneratedAt: now, Headers: headers, Rows: rows}
}

func statusOptions(valid map[string]bool, order []string) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(order))
	for _, v := range order {
		if valid[v] {
			opts = append(opts, huh.NewOption(v, v))
		}
	}
	return opts
}

// ── assets ──────────────────────────────────────────────────────────────────

func assetSpec() resourceSpec[*domain.Asset] {
	cols := []column[*domain.Asset]{
		{"NAME", func(a *domain.Asset) string { return a.Name }},
		{"CATEGORY", func(a *domain.Asset) string { return string(a.Category) }},
		{"STATUS", func(a *domain.Asset) string { return formatter.Status(string(a.Status)) }},
		{"QTY", func(a *domain.Asset) string { return strconv.Itoa(a.Quantity) }},
		{"COST", func(a *domain.Asset) string { return num(a.Cost) }},
		{"LOCATION", func(a *domain.Asset) string { return a.Location }},
	}
	// Export uses plain status text and adds the image column.
	exportCols := append([]column[*domain.Asset]{}, cols...)
	exportCols[2] = column[*domain.Asset]{"STATUS", func(a *domain.Asset) string { return string(a.Status) }}

	return resourceSpec[*domain.Asset]{
		resource: domain.ResourceAsset,
		title:    "Assets",
		formKind: "asset",
		config: collection.Config[*domain.Asset]{
			Resource: domain.ResourceAsset,
			SearchFields: func(a *domain.Asset) []string {
				return []string{a.Name, a.Location, a.Description}
			},
			FilterValue: func(a *domain.Asset, key string) string {
				switch key {
				case "status":
					return string(a.Status)
				case "category":
					return string(a.Category)
				}
				return ""
			},
			SortFields: map[string]collection.SortField[*domain.Asset]{
				"name":      {Kind: collection.FieldString, String: func(a *domain.Asset) string { return a.Name }},
				"quantity":  {Kind: collection.FieldNumber, Number: func(a *domain.Asset) float64 { return float64(a.Quantity) }},
				"cost":      {Kind: collection.FieldNumber, Number: func(a *domain.Asset) float64 { return a.Cost }},
				"createdAt": {Kind: collection.FieldTime, Time: func(a *domain.Asset) time.Time { return a.CreatedAt }},
			},
			DefaultSort: "createdAt",
			StatusOf:    func(a *domain.Asset) string { return string(a.Status) },
		},
		sortKeys: []string{"name", "quantity", "cost", "createdAt"},
		columns:  cols,
		filters: []filterDef{
			{key: "status", label: "status", values: []string{"ACTIVE", "MAINTENANCE", "RETIRED", "DISPOSED"}},
			{key: "category", label: "category", values: []string{"EQUIPMENT", "VEHICLE", "BUILDING", "TOOL", "OTHER"}},
		},
		store: func(app *App) *collection.Store[*domain.Asset] { return app.Assets },
		fetch: func(ctx context.Context, app *App) ([]*domain.Asset, error) {
			return app.API.Assets().List(ctx)
		},
		remove: func(ctx context.Context, app *App, id string) (string, error) {
			res, err := app.API.Assets().Delete(ctx, id)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		},
		form:      newAssetFormView,
		validator: validate.Asset,
		submit:    assetSubmit,
		doc: func(app *App, records []*domain.Asset, now time.Time) export.Document {
			doc := exportDoc("Assets", exportCols, records, now)
			doc.Headers = append(doc.Headers, "IMAGE")
			for i, a := range records {
				cell := export.Cell{}
				if a.ImageURL != "" {
					cell = export.Image(absoluteURL(app, a.ImageURL))
				}
				doc.Rows[i] = append(doc.Rows[i], cell)
			}
			return doc
		},
	}
}

func newAssetFormView(state *SharedState, mode form.Mode, record *domain.Asset) View {
	seed := map[string]string{"status": "ACTIVE", "category": "EQUIPMENT", "quantity": "1"}
	title := "New Asset"
	if record != nil {
		title = "Edit Asset"
		seed = map[string]string{
			"name":        record.Name,
			"category":    string(record.Category),
			"status":      string(record.Status),
			"quantity":    strconv.Itoa(record.Quantity),
			"cost":        num(record.Cost),
			"location":    record.Location,
			"description": record.Description,
		}
		if record.PurchaseDate != nil {
			seed["purchaseDate"] = api.FormatDate(*record.PurchaseDate)
		}
	}

	fields := []fieldDef{
		{key: "name", title: "Name", placeholder: "Water pump"},
		{key: "category", title: "Category",
			options: statusOptions(domain.ValidAssetCategories, []string{"EQUIPMENT", "VEHICLE", "BUILDING", "TOOL", "OTHER"})},
		{key: "status", title: "Status",
			options: statusOptions(domain.ValidAssetStatuses, []string{"ACTIVE", "MAINTENANCE", "RETIRED", "DISPOSED"})},
		{key: "quantity", title: "Quantity", placeholder: "1"},
		{key: "cost", title: "Cost", placeholder: "0.00"},
		{key: "location", title: "Location", placeholder: "Hatchery A"},
		{key: "description", title: "Description"},
		{key: "purchaseDate", title: "Purchase date", placeholder: "YYYY-MM-DD"},
		{key: "imagePath", title: "Image file", placeholder: "optional local path"},
	}

	return newFormView(state, title, domain.ResourceAsset, "asset", mode, seed, fields, validate.Asset, assetSubmit(state.App))
}

func assetSubmit(app *App) submitFunc {
	return func(ctx context.Context, values map[string]string, mode form.Mode) (submitResult, error) {
		quantity, _ := strconv.Atoi(values["quantity"])
		cost, _ := strconv.ParseFloat(values["cost"], 64)
		in := api.AssetInput{
			Name:         values["name"],
			Category:     domain.AssetCategory(values["category"]),
			Status:       domain.AssetStatus(values["status"]),
			Quantity:     quantity,
			Cost:         cost,
			Location:     values["location"],
			Description:  values["description"],
			PurchaseDate: values["purchaseDate"],
		}
		var image *api.FileAttachment
		if path := strings.TrimSpace(values["imagePath"]); path != "" {
			content, err := os.ReadFile(path)
			if err != nil {
				return submitResult{}, fmt.Errorf("read image: %w", err)
			}
			image = &api.FileAttachment{
				FieldName: "image",
				FileName:  filepath.Base(path),
				Content:   content,
			}
		}

		var (
			saved *domain.Asset
			err   error
		)
		if u, ok := mode.(form.Update); ok {
			saved, err = app.API.Assets().Update(ctx, u.ID, in, image)
		} else {
			saved, err = app.API.Assets().Create(ctx, in, image)
		}
		if err != nil {
			return submitResult{}, err
		}
		return submitResult{
			apply: func(a *App) bool { return a.Assets.Apply(collection.Updated(saved)) },
			toast: fmt.Sprintf("Saved asset %q", saved.Name),
		}, nil
	}
}

// ── feedstock ───────────────────────────────────────────────────────────────

func feedstockSpec() resourceSpec[*domain.Feedstock] {
	cols := []column[*domain.Feedstock]{
		{"NAME", func(f *domain.Feedstock) string { return f.Name }},
		{"CATEGORY", func(f *domain.Feedstock) string {
			if f.Category == nil {
				return ""
			}
			return f.Category.Name
		}},
		{"QTY", func(f *domain.Feedstock) string { return num(f.Quantity) + " " + f.Unit }},
		{"MIN", func(f *domain.Feedstock) string { return num(f.MinQuantity) }},
		{"SUPPLIER", func(f *domain.Feedstock) string { return f.Supplier }},
		{"", func(f *domain.Feedstock) string {
			if f.LowStock() {
				return formatter.LowStock()
			}
			return ""
		}},
	}

	return resourceSpec[*domain.Feedstock]{
		resource: domain.ResourceFeedstock,
		title:    "Feedstock",
		formKind: "feedstock",
		config: collection.Config[*domain.Feedstock]{
			Resource: domain.ResourceFeedstock,
			SearchFields: func(f *domain.Feedstock) []string {
				return []string{f.Name, f.Supplier}
			},
			FilterValue: func(f *domain.Feedstock, key string) string {
				if key == "stock" {
					if f.LowStock() {
						return "low"
					}
					return "ok"
				}
				return ""
			},
			SortFields: map[string]collection.SortField[*domain.Feedstock]{
				"name":      {Kind: collection.FieldString, String: func(f *domain.Feedstock) string { return f.Name }},
				"quantity":  {Kind: collection.FieldNumber, Number: func(f *domain.Feedstock) float64 { return f.Quantity }},
				"updatedAt": {Kind: collection.FieldTime, Time: func(f *domain.Feedstock) time.Time { return f.UpdatedAt }},
			},
			DefaultSort:  "name",
			ForeignKeyOf: func(f *domain.Feedstock) string { return f.CategoryID },
			QuantityOf:   func(f *domain.Feedstock) float64 { return f.Quantity },
			LowStockOf:   func(f *domain.Feedstock) bool { return f.LowStock() },
		},
		sortKeys: []string{"name", "quantity", "updatedAt"},
		columns:  cols,
		filters: []filterDef{
			{key: "stock", label: "stock", values: []string{"low"}},
		},
		store: func(app *App) *collection.Store[*domain.Feedstock] { return app.Feedstocks },
		fetch: func(ctx context.Context, app *App) ([]*domain.Feedstock, error) {
			return app.API.Feedstocks().List(ctx)
		},
		remove: func(ctx context.Context, app *App, id string) (string, error) {
			res, err := app.API.Feedstocks().Delete(ctx, id)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		},
		form:      newFeedstockFormView,
		validator: validate.Feedstock,
		submit:    feedstockSubmit,
		doc: func(app *App, records []*domain.Feedstock, now time.Time) export.Document {
			plain := append([]column[*domain.Feedstock]{}, cols[:5]...)
			return exportDoc("Feedstock", plain, records, now)
		},
	}
}

func newFeedstockFormView(state *SharedState, mode form.Mode, record *domain.Feedstock) View {
	seed := map[string]string{}
	title := "New Feedstock"
	if record != nil {
		title = "Edit Feedstock"
		seed = map[string]string{
			"name":        record.Name,
			"categoryId":  record.CategoryID,
			"quantity":    num(record.Quantity),
			"unit":        record.Unit,
			"minQuantity": num(record.MinQuantity),
			"supplier":    record.Supplier,
			"costPerUnit": num(record.CostPerUnit),
		}
	}

	fields := []fieldDef{
		{key: "name", title: "Name", placeholder: "Starter pellets"},
		{key: "categoryId", title: "Category", loadOptions: feedstockCategoryOptions},
		{key: "quantity", title: "Quantity", placeholder: "0"},
		{key: "unit", title: "Unit", placeholder: "kg"},
		{key: "minQuantity", title: "Restock threshold", placeholder: "0"},
		{key: "supplier", title: "Supplier"},
		{key: "costPerUnit", title: "Cost per unit", placeholder: "0.00"},
	}

	return newFormView(state, title, domain.ResourceFeedstock, "feedstock", mode, seed, fields, validate.Feedstock, feedstockSubmit(state.App))
}

func feedstockSubmit(app *App) submitFunc {
	return func(ctx context.Context, values map[string]string, mode form.Mode) (submitResult, error) {
		quantity, _ := strconv.ParseFloat(values["quantity"], 64)
		minQuantity, _ := strconv.ParseFloat(values["minQuantity"], 64)
		costPerUnit, _ := strconv.ParseFloat(values["costPerUnit"], 64)
		in := api.FeedstockInput{
			Name:        values["name"],
			CategoryID:  values["categoryId"],
			Quantity:    quantity,
			Unit:        values["unit"],
			MinQuantity: minQuantity,
			Supplier:    values["supplier"],
			CostPerUnit: costPerUnit,
		}

		var (
			saved *domain.Feedstock
			err   error
		)
		if u, ok := mode.(form.Update); ok {
			saved, err = app.API.Feedstocks().Update(ctx, u.ID, in)
		} else {
			saved, err = app.API.Feedstocks().Create(ctx, in)
		}
		if err != nil {
			return submitResult{}, err
		}
		return submitResult{
			apply: func(a *App) bool { return a.Feedstocks.Apply(collection.Updated(saved)) },
			toast: fmt.Sprintf("Saved feedstock %q", saved.Name),
		}, nil
	}
}

// feedstockCategoryOptions backs the category select. Runs inside the
// form's fetchOptions command, never on the update loop.
func feedstockCategoryOptions(ctx context.Context, app *App) ([]huh.Option[string], error) {
	cats, err := app.API.FeedstockCategories().Search(ctx, "")
	if err != nil {
		return nil, err
	}
	opts := make([]huh.Option[string], 0, len(cats))
	for _, c := range cats {
		opts = append(opts, huh.NewOption(c.Name, c.ID))
	}
	return opts, nil
}

// ── parent fish pools ───────────────────────────────────────────────────────

func poolSpec() resourceSpec[*domain.ParentFishPool] {
	cols := []column[*domain.ParentFishPool]{
		{"NAME", func(p *domain.ParentFishPool) string { return p.Name }},
		{"SPECIES", func(p *domain.ParentFishPool) string { return p.Species }},
		{"STATUS", func(p *domain.ParentFishPool) string { return formatter.Status(string(p.Status)) }},
		{"FISH", func(p *domain.ParentFishPool) string {
			return fmt.Sprintf("%d/%d", p.FishCount, p.Capacity)
		}},
		{"LOCATION", func(p *domain.ParentFishPool) string { return p.Location }},
	}
	exportCols := append([]column[*domain.ParentFishPool]{}, cols...)
	exportCols[2] = column[*domain.ParentFishPool]{"STATUS", func(p *domain.ParentFishPool) string { return string(p.Status) }}

	return resourceSpec[*domain.ParentFishPool]{
		resource: domain.ResourceParentFishPool,
		title:    "Parent Fish Pools",
		formKind: "parentFishPool",
		config: collection.Config[*domain.ParentFishPool]{
			Resource: domain.ResourceParentFishPool,
			SearchFields: func(p *domain.ParentFishPool) []string {
				return []string{p.Name, p.Species, p.Location}
			},
			FilterValue: func(p *domain.ParentFishPool, key string) string {
				if key == "status" {
					return string(p.Status)
				}
				return ""
			},
			SortFields: map[string]collection.SortField[*domain.ParentFishPool]{
				"name":      {Kind: collection.FieldString, String: func(p *domain.ParentFishPool) string { return p.Name }},
				"capacity":  {Kind: collection.FieldNumber, Number: func(p *domain.ParentFishPool) float64 { return float64(p.Capacity) }},
				"fishCount": {Kind: collection.FieldNumber, Number: func(p *domain.ParentFishPool) float64 { return float64(p.FishCount) }},
				"createdAt": {Kind: collection.FieldTime, Time: func(p *domain.ParentFishPool) time.Time { return p.CreatedAt }},
			},
			DefaultSort: "name",
			StatusOf:    func(p *domain.ParentFishPool) string { return string(p.Status) },
		},
		sortKeys: []string{"name", "capacity", "fishCount", "createdAt"},
		columns:  cols,
		filters: []filterDef{
			{key: "status", label: "status", values: []string{"ACTIVE", "MAINTENANCE", "INACTIVE"}},
		},
		store: func(app *App) *collection.Store[*domain.ParentFishPool] { return app.Pools },
		fetch: func(ctx context.Context, app *App) ([]*domain.ParentFishPool, error) {
			return app.API.Pools().List(ctx)
		},
		remove: func(ctx context.Context, app *App, id string) (string, error) {
			res, err := app.API.Pools().Delete(ctx, id)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		},
		form:      newPoolFormView,
		validator: validate.Pool,
		submit:    poolSubmit,
		doc: func(app *App, records []*domain.ParentFishPool, now time.Time) export.Document {
			return exportDoc("Parent Fish Pools", exportCols, records, now)
		},
	}
}

func newPoolFormView(state *SharedState, mode form.Mode, record *domain.ParentFishPool) View {
	seed := map[string]string{"status": "ACTIVE"}
	title := "New Pool"
	if record != nil {
		title = "Edit Pool"
		seed = map[string]string{
			"name":      record.Name,
			"species":   record.Species,
			"capacity":  strconv.Itoa(record.Capacity),
			"fishCount": strconv.Itoa(record.FishCount),
			"status":    string(record.Status),
			"location":  record.Location,
		}
	}

	fields := []fieldDef{
		{key: "name", title: "Name", placeholder: "Pool 3"},
		{key: "species", title: "Species", placeholder: "Rainbow trout"},
		{key: "capacity", title: "Capacity", placeholder: "100"},
		{key: "fishCount", title: "Fish count", placeholder: "0"},
		{key: "status", title: "Status",
			options: statusOptions(domain.ValidPoolStatuses, []string{"ACTIVE", "MAINTENANCE", "INACTIVE"})},
		{key: "location", title: "Location"},
	}

	return newFormView(state, title, domain.ResourceParentFishPool, "parentFishPool", mode, seed, fields, validate.Pool, poolSubmit(state.App))
}

func poolSubmit(app *App) submitFunc {
	return func(ctx context.Context, values map[string]string, mode form.Mode) (submitResult, error) {
		capacity, _ := strconv.Atoi(values["capacity"])
		fishCount, _ := strconv.Atoi(values["fishCount"])
		in := api.PoolInput{
			Name:      values["name"],
			Species:   values["species"],
			Capacity:  capacity,
			FishCount: fishCount,
			Status:    domain.PoolStatus(values["status"]),
			Location:  values["location"],
		}

		var (
			saved *domain.ParentFishPool
			err   error
		)
		if u, ok := mode.(form.Update); ok {
			saved, err = app.API.Pools().Update(ctx, u.ID, in)
		} else {
			saved, err = app.API.Pools().Create(ctx, in)
		}
		if err != nil {
			return submitResult{}, err
		}
		return submitResult{
			apply: func(a *App) bool { return a.Pools.Apply(collection.Updated(saved)) },
			toast: fmt.Sprintf("Saved pool %q", saved.Name),
		}, nil
	}
}

// ── egg migrations ──────────────────────────────────────────────────────────

func migrationSpec() resourceSpec[*domain.EggMigration] {
	cols := []column[*domain.EggMigration]{
		{"DATE", func(m *domain.EggMigration) string { return date(m.Date) }},
		{"POOL", func(m *domain.EggMigration) string {
			if m.ParentPool == nil {
				return ""
			}
			return m.ParentPool.Name
		}},
		{"EGGS", func(m *domain.EggMigration) string { return strconv.Itoa(m.EggCount) }},
		{"DESTINATION", func(m *domain.EggMigration) string { return m.Destination }},
		{"NOTES", func(m *domain.EggMigration) string { return m.Notes }},
	}

	return resourceSpec[*domain.EggMigration]{
		resource: domain.ResourceEggMigration,
		title:    "Egg Migrations",
		formKind: "eggMigration",
		config: collection.Config[*domain.EggMigration]{
			Resource: domain.ResourceEggMigration,
			SearchFields: func(m *domain.EggMigration) []string {
				pool := ""
				if m.ParentPool != nil {
					pool = m.ParentPool.Name
				}
				return []string{m.Destination, m.Notes, pool}
			},
			FilterValue: func(m *domain.EggMigration, key string) string {
				if key == "poolId" {
					return m.PoolID
				}
				return ""
			},
			SortFields: map[string]collection.SortField[*domain.EggMigration]{
				"date":     {Kind: collection.FieldTime, Time: func(m *domain.EggMigration) time.Time { return m.Date }},
				"eggCount": {Kind: collection.FieldNumber, Number: func(m *domain.EggMigration) float64 { return float64(m.EggCount) }},
			},
			DefaultSort:  "date",
			ForeignKeyOf: func(m *domain.EggMigration) string { return m.PoolID },
			QuantityOf:   func(m *domain.EggMigration) float64 { return float64(m.EggCount) },
		},
		sortKeys: []string{"date", "eggCount"},
		columns:  cols,
		store:    func(app *App) *collection.Store[*domain.EggMigration] { return app.Migrations },
		fetch: func(ctx context.Context, app *App) ([]*domain.EggMigration, error) {
			return app.API.EggMigrations().List(ctx)
		},
		remove: func(ctx context.Context, app *App, id string) (string, error) {
			res, err := app.API.EggMigrations().Delete(ctx, id)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		},
		form:      newMigrationFormView,
		validator: validate.Migration,
		submit:    migrationSubmit,
		doc: func(app *App, records []*domain.EggMigration, now time.Time) export.Document {
			return exportDoc("Egg Migrations", cols, records, now)
		},
	}
}

func newMigrationFormView(state *SharedState, mode form.Mode, record *domain.EggMigration) View {
	seed := map[string]string{"date": api.FormatDate(time.Now())}
	title := "New Migration"
	if record != nil {
		title = "Edit Migration"
		seed = map[string]string{
			"poolId":      record.PoolID,
			"date":        api.FormatDate(record.Date),
			"eggCount":    strconv.Itoa(record.EggCount),
			"destination": record.Destination,
			"notes":       record.Notes,
		}
	}

	fields := []fieldDef{
		{key: "poolId", title: "Pool", loadOptions: poolOptions},
		{key: "date", title: "Date", placeholder: "YYYY-MM-DD"},
		{key: "eggCount", title: "Egg count", placeholder: "10000"},
		{key: "destination", title: "Destination", placeholder: "Hatchery B"},
		{key: "notes", title: "Notes"},
	}

	return newFormView(state, title, domain.ResourceEggMigration, "eggMigration", mode, seed, fields, validate.Migration, migrationSubmit(state.App))
}

func migrationSubmit(app *App) submitFunc {
	return func(ctx context.Context, values map[string]string, mode form.Mode) (submitResult, error) {
		eggCount, _ := strconv.Atoi(values["eggCount"])
		in := api.MigrationInput{
			PoolID:      values["poolId"],
			Date:        values["date"],
			EggCount:    eggCount,
			Destination: values["destination"],
			Notes:       values["notes"],
		}

		var (
			saved *domain.EggMigration
			err   error
		)
		if u, ok := mode.(form.Update); ok {
			saved, err = app.API.EggMigrations().Update(ctx, u.ID, in)
		} else {
			saved, err = app.API.EggMigrations().Create(ctx, in)
		}
		if err != nil {
			return submitResult{}, err
		}
		return submitResult{
			apply: func(a *App) bool { return a.Migrations.Apply(collection.Updated(saved)) },
			toast: "Saved migration",
		}, nil
	}
}

// poolOptions backs the pool selects; see feedstockCategoryOptions.
func poolOptions(ctx context.Context, app *App) ([]huh.Option[string], error) {
	pools, err := app.API.Pools().List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]huh.Option[string], 0, len(pools))
	for _, p := range pools {
		opts = append(opts, huh.NewOption(p.Name, p.ID))
	}
	return opts, nil
}

func feedOptions(ctx context.Context, app *App) ([]huh.Option[string], error) {
	feeds, err := app.API.Feedstocks().List(ctx)
	if err != nil {
		return nil, err
	}
	opts := make([]huh.Option[string], 0, len(feeds))
	for _, f := range feeds {
		opts = append(opts, huh.NewOption(f.Name, f.ID))
	}
	return opts, nil
}

// ── feeding records ─────────────────────────────────────────────────────────

// feedingClient abstracts over the two feeding endpoints, which share
// one record shape.
type feedingClient interface {
	Create(ctx context.Context, payload any) (*domain.FeedingRecord, error)
	List(ctx context.Context) ([]*domain.FeedingRecord, error)
	Update(ctx context.Context, id string, payload any) (*domain.FeedingRecord, error)
	Delete(ctx context.Context, id string) (*api.DeleteResponse, error)
}

func feedingSpec(resource domain.Resource, title, formKind string,
	store func(*App) *collection.Store[*domain.FeedingRecord],
	client func(*App) feedingClient) resourceSpec[*domain.FeedingRecord] {

	cols := []column[*domain.FeedingRecord]{
		{"DATE", func(r *domain.FeedingRecord) string { return date(r.Date) }},
		{"POOL", func(r *domain.FeedingRecord) string { return r.PoolName() }},
		{"FEED", func(r *domain.FeedingRecord) string { return r.FeedName() }},
		{"QTY", func(r *domain.FeedingRecord) string { return num(r.Quantity) }},
		{"EMPLOYEE", func(r *domain.FeedingRecord) string { return r.Employee }},
	}

	return resourceSpec[*domain.FeedingRecord]{
		resource: resource,
		title:    title,
		formKind: formKind,
		config: collection.Config[*domain.FeedingRecord]{
			Resource: resource,
			SearchFields: func(r *domain.FeedingRecord) []string {
				return []string{r.PoolName(), r.FeedName(), r.Employee, r.Notes}
			},
			FilterValue: func(r *domain.FeedingRecord, key string) string {
				if key == "poolId" {
					return r.PoolID
				}
				return ""
			},
			SortFields: map[string]collection.SortField[*domain.FeedingRecord]{
				"date":     {Kind: collection.FieldTime, Time: func(r *domain.FeedingRecord) time.Time { return r.Date }},
				"quantity": {Kind: collection.FieldNumber, Number: func(r *domain.FeedingRecord) float64 { return r.Quantity }},
			},
			DefaultSort:  "date",
			ForeignKeyOf: func(r *domain.FeedingRecord) string { return r.PoolID },
			QuantityOf:   func(r *domain.FeedingRecord) float64 { return r.Quantity },
		},
		sortKeys: []string{"date", "quantity"},
		columns:  cols,
		store:    store,
		fetch: func(ctx context.Context, app *App) ([]*domain.FeedingRecord, error) {
			return client(app).List(ctx)
		},
		remove: func(ctx context.Context, app *App, id string) (string, error) {
			res, err := client(app).Delete(ctx, id)
			if err != nil {
				return "", err
			}
			return res.Message, nil
		},
		form: func(state *SharedState, mode form.Mode, record *domain.FeedingRecord) View {
			return newFeedingFormView(state, resource, title, formKind, store, client, mode, record)
		},
		validator: validate.Feeding,
		submit:    feedingSubmit(store, client),
		doc: func(app *App, records []*domain.FeedingRecord, now time.Time) export.Document {
			return exportDoc(title, cols, records, now)
		},
	}
}

func parentFeedingSpec() resourceSpec[*domain.FeedingRecord] {
	return feedingSpec(domain.ResourceParentFishFeeding, "Parent Fish Feedings", "parentFishFeeding",
		func(app *App) *collection.Store[*domain.FeedingRecord] { return app.ParentFeedings },
		func(app *App) feedingClient { return app.API.ParentFishFeedings() })
}

func eggFeedingSpec() resourceSpec[*domain.FeedingRecord] {
	return feedingSpec(domain.ResourceEggFishFeeding, "Egg Fish Feedings", "eggFishFeeding",
		func(app *App) *collection.Store[*domain.FeedingRecord] { return app.EggFeedings },
		func(app *App) feedingClient { return app.API.EggFishFeedings() })
}

func newFeedingFormView(state *SharedState, resource domain.Resource, title, formKind string,
	store func(*App) *collection.Store[*domain.FeedingRecord],
	client func(*App) feedingClient,
	mode form.Mode, record *domain.FeedingRecord) View {

	seed := map[string]string{"date": api.FormatDate(time.Now())}
	formTitle := "New Feeding"
	if record != nil {
		formTitle = "Edit Feeding"
		seed = map[string]string{
			"poolId":   record.PoolID,
			"feedId":   record.FeedID,
			"date":     api.FormatDate(record.Date),
			"quantity": num(record.Quantity),
			"employee": record.Employee,
			"notes":    record.Notes,
		}
	}

	fields := []fieldDef{
		{key: "poolId", title: "Pool", loadOptions: poolOptions},
		{key: "feedId", title: "Feed", loadOptions: feedOptions},
		{key: "date", title: "Date", placeholder: "YYYY-MM-DD"},
		{key: "quantity", title: "Quantity", placeholder: "0"},
		{key: "employee", title: "Employee"},
		{key: "notes", title: "Notes"},
	}

	return newFormView(state, formTitle, resource, formKind, mode, seed, fields, validate.Feeding, feedingSubmit(store, client)(state.App))
}

func feedingSubmit(store func(*App) *collection.Store[*domain.FeedingRecord],
	client func(*App) feedingClient) func(*App) submitFunc {

	return func(app *App) submitFunc {
		return func(ctx context.Context, values map[string]string, mode form.Mode) (submitResult, error) {
			quantity, _ := strconv.ParseFloat(values["quantity"], 64)
			in := api.FeedingInput{
				PoolID:   values["poolId"],
				FeedID:   values["feedId"],
				Date:     values["date"],
				Quantity: quantity,
				Employee: values["employee"],
				Notes:    values["notes"],
			}

			var (
				saved *domain.FeedingRecord
				err   error
			)
			if u, ok := mode.(form.Update); ok {
				saved, err = client(app).Update(ctx, u.ID, in)
			} else {
				saved, err = client(app).Create(ctx, in)
			}
			if err != nil {
				return submitResult{}, err
			}
			return submitResult{
				apply: func(a *App) bool { return store(a).Apply(collection.Updated(saved)) },
				toast: "Saved feeding record",
			}, nil
		}
	}
}
