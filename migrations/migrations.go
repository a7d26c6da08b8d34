// Package migrations embeds the goose SQL migrations for every bounded context.
package migrations

import "embed"

// InventoryDir is the directory inside FS holding the inventory migrations.
const InventoryDir = "inventory"

//go:embed inventory/*.sql
var FS embed.FS
