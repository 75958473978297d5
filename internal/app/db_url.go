package app

import (
	"net/url"
	"strings"
)

const preparedBinaryResultParam = "disable_prepared_binary_result"

// normalizeDBURL turns off binary results for prepared statements unless the URL already
// sets the parameter. Both URL and key=value connection strings are accepted.
func normalizeDBURL(raw string, disablePreparedBinaryResult bool) string {
	if !disablePreparedBinaryResult {
		return raw
	}

	trimmed := strings.TrimSpace(raw)
	if !isURLStyleDSN(trimmed) {
		if _, ok := keyValueDSN(trimmed)[preparedBinaryResultParam]; ok || trimmed == "" {
			return raw
		}
		return trimmed + " " + preparedBinaryResultParam + "=yes"
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return raw
	}
	query := parsed.Query()
	if query.Get(preparedBinaryResultParam) != "" {
		return raw
	}
	query.Set(preparedBinaryResultParam, "yes")
	parsed.RawQuery = query.Encode()

	return parsed.String()
}

// dbNameFromURL reports the database name used as the db.name span attribute.
func dbNameFromURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if isURLStyleDSN(trimmed) {
		parsed, err := url.Parse(trimmed)
		if err != nil {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(parsed.Path, "/"))
	}

	return keyValueDSN(trimmed)["dbname"]
}

func isURLStyleDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

func keyValueDSN(dsn string) map[string]string {
	out := make(map[string]string)
	for _, token := range strings.Fields(dsn) {
		key, value, ok := strings.Cut(token, "=")
		if !ok {
			continue
		}
		out[strings.TrimSpace(key)] = strings.Trim(strings.TrimSpace(value), `"'`)
	}
	return out
}
