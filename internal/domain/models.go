package domain

// Models lists every persisted entity in dependency order, for migrations.
func Models() []any {
	return []any{
		&Client{},
		&Product{},
		&Order{},
		&OrderDetail{},
	}
}
