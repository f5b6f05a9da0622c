package app

import (
	"net/url"
	"strings"
)

// preparedBinaryFlag works around lib/pq prepared-statement results breaking
// behind transaction-pooling proxies. An explicit value in the URL wins.
const preparedBinaryFlag = "disable_prepared_binary_result"

func normalizeDBURL(raw string, disablePreparedBinary bool) string {
	if !disablePreparedBinary {
		return raw
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	query := parsed.Query()
	if query.Has(preparedBinaryFlag) {
		return raw
	}
	query.Set(preparedBinaryFlag, "yes")
	parsed.RawQuery = query.Encode()
	return parsed.String()
}

// dbNameFromURL extracts the database name for trace attributes. Both URL
// form (postgres://.../elite_hunter) and keyword DSN form (dbname=...) are
// accepted; unknown shapes yield "".
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)

	if parsed, err := url.Parse(trimmed); err == nil && parsed.Scheme != "" {
		if name := strings.TrimPrefix(parsed.Path, "/"); name != "" {
			return name
		}
	}

	for _, field := range strings.Fields(trimmed) {
		key, value, ok := strings.Cut(field, "=")
		if !ok || key != "dbname" {
			continue
		}
		if name := strings.Trim(value, `"'`); name != "" {
			return name
		}
	}

	return ""
}
