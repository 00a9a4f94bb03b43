package models

// All returns every model managed by the service, in migration order.
func All() []any {
	return []any{
		&Store{},
		&Rating{},
	}
}
