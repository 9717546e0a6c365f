package config

// Config wraps a decoded map[string]any for typed value extraction.
// Accessors return the supplied default when the key is missing or the
// value has the wrong type; Section and Sections expose nested maps so
// entity specs can be read field by field.
type Config struct {
	data map[string]any
}

// New creates a Config from the given map.
// If data is nil, an empty Config is returned.
func New(data map[string]any) Config {
	if data == nil {
		data = make(map[string]any)
	}
	return Config{data: data}
}

// String returns the string value for key, or defaultVal if missing or not a string.
func (c Config) String(key, defaultVal string) string {
	if s, ok := c.data[key].(string); ok {
		return s
	}
	return defaultVal
}

// Int64 returns the int64 value for key, or defaultVal if missing or not
// convertible. Costs in this library are int64, so this is the accessor
// entity specs use.
//
// Accepts:
//   - int64: used directly
//   - int: converted to int64 (YAML decodes whole numbers as int)
//   - float64: converted to int64 (JSON numbers, only if no fractional part)
func (c Config) Int64(key string, defaultVal int64) int64 {
	switch val := c.data[key].(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		if val == float64(int64(val)) {
			return int64(val)
		}
	}
	return defaultVal
}

// Section returns the nested map at key as a Config, and whether the key
// holds a map.
func (c Config) Section(key string) (Config, bool) {
	if m, ok := c.data[key].(map[string]any); ok {
		return New(m), true
	}
	return Config{}, false
}

// Sections returns the list of nested maps at key, one Config per
// element. Missing keys and non-map elements yield nothing.
func (c Config) Sections(key string) []Config {
	items, ok := c.data[key].([]any)
	if !ok {
		return nil
	}
	out := make([]Config, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]any); ok {
			out = append(out, New(m))
		}
	}
	return out
}

// Has returns true if the key is present.
func (c Config) Has(key string) bool {
	_, ok := c.data[key]
	return ok
}
