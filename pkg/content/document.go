package content

import "time"

// Document is one indexed content item. Terms maps taxonomy slug to the term
// slugs assigned to the document; Meta maps field key to its stored values.
type Document struct {
	Id          int64               `json:"id"`
	ContentType string              `json:"contentType"`
	Status      string              `json:"status"`
	Title       string              `json:"title"`
	Excerpt     string              `json:"excerpt,omitempty"`
	Author      string              `json:"author,omitempty"`
	Date        time.Time           `json:"date"`
	Permalink   string              `json:"permalink,omitempty"`
	Thumbnail   string              `json:"thumbnail,omitempty"`
	Terms       map[string][]string `json:"terms,omitempty"`
	Meta        map[string][]string `json:"meta,omitempty"`
}

func (d *Document) MetaValue(key string) string {
	if vs, ok := d.Meta[key]; ok && len(vs) > 0 {
		return vs[0]
	}
	return ""
}
