package install

// Env answers environment variable lookups. config.Environ satisfies it.
type Env interface {
	Lookup(key string) (string, bool)
}

// MapEnv is an Env backed by a map.
type MapEnv map[string]string

// Lookup implements Env.
func (m MapEnv) Lookup(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// getenv returns a non-empty value for key, or "".
func getenv(env Env, key string) string {
	if env == nil {
		return ""
	}
	v, _ := env.Lookup(key)
	return v
}

// hasenv reports whether key is defined at all, even as empty.
func hasenv(env Env, key string) bool {
	if env == nil {
		return false
	}
	_, ok := env.Lookup(key)
	return ok
}
