package data

import "slices"

// Table and column names of the inventory.
const (
	assetTable    = "asset_inventory"
	locationTable = "locations"
)

// AssetColumns are the editable columns of the inventory, in display order.
var AssetColumns = []string{
	"bu_estate",
	"department",
	"location",
	"node",
	"asset_type",
	"manufacturer",
	"model",
	"wbd_tag",
	"serial_license",
}

// searchableColumns are matched against the free-text term.
var searchableColumns = AssetColumns

// IsColumn reports whether key names an inventory column.
func IsColumn(key string) bool { return slices.Contains(AssetColumns, key) }

const schema = `
CREATE TABLE IF NOT EXISTS asset_inventory (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	bu_estate      TEXT NOT NULL DEFAULT '',
	department     TEXT,
	location       TEXT,
	node           TEXT,
	asset_type     TEXT NOT NULL DEFAULT '',
	manufacturer   TEXT NOT NULL DEFAULT '',
	model          TEXT NOT NULL DEFAULT '',
	wbd_tag        TEXT,
	serial_license TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_asset_location ON asset_inventory(location);
CREATE INDEX IF NOT EXISTS idx_asset_type ON asset_inventory(asset_type);

CREATE TABLE IF NOT EXISTS locations (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE
);
`
