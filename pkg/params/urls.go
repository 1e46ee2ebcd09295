package params

import (
	"net/url"
	"strings"
)

// RemoveFilterURL returns pageUrl with every parameter belonging to slug
// stripped, including its bound variants.
func RemoveFilterURL(pageUrl *url.URL, slug string) string {
	drop := map[string]struct{}{
		Prefix + slug:           {},
		Prefix + slug + "_min":  {},
		Prefix + slug + "_max":  {},
		Prefix + slug + "_from": {},
		Prefix + slug + "_to":   {},
	}
	u := *pageUrl
	q := u.Query()
	for key := range q {
		if _, ok := drop[strings.TrimSuffix(key, "[]")]; ok {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ResetURL strips every filter parameter from pageUrl, leaving unrelated
// parameters in place.
func ResetURL(pageUrl *url.URL) string {
	u := *pageUrl
	q := u.Query()
	for key := range q {
		if strings.HasPrefix(key, Prefix) {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// FilterURL merges filter values into base, replacing any filter parameters
// the base already carried.
func FilterURL(base *url.URL, filters url.Values) string {
	u := *base
	q := u.Query()
	for key := range q {
		if strings.HasPrefix(key, Prefix) {
			q.Del(key)
		}
	}
	for key, values := range filters {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}
