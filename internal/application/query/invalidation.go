package query

// ListPrefix matches every list read of resource, whatever its parameters
func ListPrefix(resource string) Key {
	return Prefix(resource, OpList)
}

// OnCreate is what a successful create makes stale: any list page could
// now hold the new record
func OnCreate(resource string) []Key {
	return []Key{ListPrefix(resource)}
}

// OnUpdate is what a successful update makes stale
func OnUpdate(resource string, id any) []Key {
	return []Key{ListPrefix(resource), DetailKey(resource, id)}
}

// OnDelete is what a successful delete makes stale
func OnDelete(resource string, id any) []Key {
	return []Key{ListPrefix(resource), DetailKey(resource, id)}
}

// Also appends derived keys, e.g. aggregates computed over the resource
func Also(keys []Key, more ...Key) []Key {
	out := make([]Key, 0, len(keys)+len(more))
	out = append(out, keys...)
	return append(out, more...)
}
