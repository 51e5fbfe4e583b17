// Package migrations はgooseで適用するスキーママイグレーションを埋め込みます
package migrations

import "embed"

//go:embed *.sql
var Files embed.FS
