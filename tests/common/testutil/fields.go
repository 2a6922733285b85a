//go:build unit || e2e

package testutil

// Field sets key on a request map, or deletes it when value is nil.
func Field(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		if value == nil {
			delete(m, key)
		} else {
			m[key] = value
		}
	}
}

// GuestField edits one key of the request's "guests" object, creating it if absent.
func GuestField(key string, value any) func(m map[string]any) {
	return func(m map[string]any) {
		guests, _ := m["guests"].(map[string]any)
		if guests == nil {
			guests = make(map[string]any)
			m["guests"] = guests
		}
		Field(key, value)(guests)
	}
}
