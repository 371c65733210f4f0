// Package migrations содержит SQL-схему справочника.
package migrations

import "embed"

// FS - файлы миграций для golang-migrate (iofs).
//
//go:embed *.sql
var FS embed.FS
