package domain

type AssetStatus string

const (
	AssetActive      AssetStatus = "ACTIVE"
	AssetMaintenance AssetStatus = "MAINTENANCE"
	AssetRetired     AssetStatus = "RETIRED"
	AssetDisposed    AssetStatus = "DISPOSED"
)

type AssetCategory string

const (
	CategoryEquipment AssetCategory = "EQUIPMENT"
	CategoryVehicle   AssetCategory = "VEHICLE"
	CategoryBuilding  AssetCategory = "BUILDING"
	CategoryTool      AssetCategory = "TOOL"
	CategoryOther     AssetCategory = "OTHER"
)

type PoolStatus string

const (
	PoolActive      PoolStatus = "ACTIVE"
	PoolMaintenance PoolStatus = "MAINTENANCE"
	PoolInactive    PoolStatus = "INACTIVE"
)

// ValidAssetStatuses is the canonical set of accepted asset status strings.
var ValidAssetStatuses = map[string]bool{
	"ACTIVE": true, "MAINTENANCE": true, "RETIRED": true, "DISPOSED": true,
}

// ValidAssetCategories is the canonical set of accepted asset category strings.
var ValidAssetCategories = map[string]bool{
	"EQUIPMENT": true, "VEHICLE": true, "BUILDING": true, "TOOL": true, "OTHER": true,
}

// ValidPoolStatuses is the canonical set of accepted pool status strings.
var ValidPoolStatuses = map[string]bool{
	"ACTIVE": true, "MAINTENANCE": true, "INACTIVE": true,
}
