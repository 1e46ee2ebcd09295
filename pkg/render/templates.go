package render

import "html/template"

var tmpl = template.Must(template.New("facets").Parse(`
{{define "facet"}}<div class="cfs-facet cfs-facet-{{.Def.Type}}" data-facet="{{.Def.Slug}}" data-facet-type="{{.Def.Type}}" data-source="{{.Def.Source}}"{{if .TargetGrid}} data-target-grid="{{.TargetGrid}}"{{end}}{{if .ContentType}} data-post-type="{{.ContentType}}"{{end}}{{if .PageSize}} data-posts-per-page="{{.PageSize}}"{{end}}>
<h4 class="cfs-facet-label">{{.Label}}</h4>
{{.Body}}
</div>{{end}}

{{define "no-options"}}<p class="cfs-no-options">No options available</p>{{end}}

{{define "checkbox"}}{{if not .Choices}}{{template "no-options" .}}{{else}}<ul class="cfs-options">
{{range .Choices}}<li class="cfs-option{{if not .Count}} cfs-option-empty{{end}}">
<label><input type="checkbox" name="cfs_{{$.Def.Slug}}[]" value="{{.Value}}"{{if .Selected}} checked{{end}}> {{.Label}}{{if $.ShowCount}} <span class="cfs-count">({{.Count}})</span>{{end}}</label>
</li>{{end}}
</ul>{{end}}{{end}}

{{define "radio"}}{{if not .Choices}}{{template "no-options" .}}{{else}}<ul class="cfs-options">
{{range .Choices}}<li class="cfs-option">
<label><input type="radio" name="cfs_{{$.Def.Slug}}" value="{{.Value}}"{{if .Selected}} checked{{end}}> {{.Label}}{{if $.ShowCount}} <span class="cfs-count">({{.Count}})</span>{{end}}</label>
</li>{{end}}
</ul>{{end}}{{end}}

{{define "dropdown"}}{{if not .Choices}}{{template "no-options" .}}{{else}}<select class="cfs-dropdown" name="cfs_{{.Def.Slug}}{{if .Multiple}}[]{{end}}"{{if .Multiple}} multiple{{end}}>
<option value="">{{.Placeholder}}</option>
{{range .Choices}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}{{if $.ShowCount}} ({{.Count}}){{end}}</option>
{{end}}</select>{{end}}{{end}}

{{define "range"}}<div class="cfs-range" data-min="{{.Min}}" data-max="{{.Max}}" data-step="{{.Step}}" data-prefix="{{.Prefix}}" data-suffix="{{.Suffix}}">
<input type="range" class="cfs-range-min" name="cfs_{{.Def.Slug}}_min" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.CurrentMin}}">
<input type="range" class="cfs-range-max" name="cfs_{{.Def.Slug}}_max" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.CurrentMax}}">
{{if .InputsEnabled}}<div class="cfs-range-inputs">
<input type="number" class="cfs-range-input-min" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.CurrentMin}}">
<input type="number" class="cfs-range-input-max" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.CurrentMax}}">
</div>{{end}}
<div class="cfs-range-display">{{.Prefix}}{{.CurrentMin}}{{.Suffix}} &ndash; {{.Prefix}}{{.CurrentMax}}{{.Suffix}}</div>
</div>{{end}}

{{define "search"}}<input type="search" class="cfs-search" name="cfs_{{.Def.Slug}}" placeholder="{{.Placeholder}}" value="{{.Current}}">{{end}}

{{define "date"}}{{if .RangeMode}}<div class="cfs-date-range">
<input type="date" class="cfs-date-from" name="cfs_{{.Def.Slug}}_from" value="{{.From}}">
<input type="date" class="cfs-date-to" name="cfs_{{.Def.Slug}}_to" value="{{.To}}">
</div>{{else}}<input type="date" class="cfs-date" name="cfs_{{.Def.Slug}}" value="{{.Current}}">{{end}}{{end}}

{{define "rating"}}<div class="cfs-rating" data-facet="{{.Def.Slug}}">
{{range .Stars}}<label class="cfs-star{{if .Selected}} cfs-star-selected{{end}}"><input type="radio" name="cfs_{{$.Def.Slug}}" value="{{.Value}}"{{if .Selected}} checked{{end}}>{{.Value}}+</label>
{{end}}</div>{{end}}

{{define "results"}}<div class="cfs-results{{if .Loading}} cfs-loading{{end}}" data-grid-id="{{.GridId}}" data-content-type="{{.ContentType}}" data-page-size="{{.PageSize}}"{{if .Template}} data-template="{{.Template}}"{{end}}{{if .OrderBy}} data-orderby="{{.OrderBy}}"{{end}}{{if .Order}} data-order="{{.Order}}"{{end}}>
{{if .ShowCount}}<div class="cfs-result-count">{{.Total}} results</div>{{end}}
<div class="cfs-items cfs-columns-{{.Columns}}">
{{range .Items}}{{.}}{{end}}
</div>
{{if not .Items}}{{template "no-results" .}}{{end}}
{{.Pagination}}
</div>{{end}}

{{define "no-results"}}<div class="cfs-no-results">
<p>No results match the selected filters.</p>
<a class="cfs-reset" href="{{.ResetUrl}}">Clear all filters</a>
</div>{{end}}

{{define "card"}}<article class="cfs-item" data-id="{{.Id}}">
{{if .Thumbnail}}<a href="{{.Permalink}}" class="cfs-item-thumb"><img src="{{.Thumbnail}}" alt="{{.Title}}"></a>{{end}}
<h3 class="cfs-item-title"><a href="{{.Permalink}}">{{.Title}}</a></h3>
{{if .Excerpt}}<div class="cfs-item-excerpt">{{.Excerpt}}</div>{{end}}
</article>{{end}}

{{define "pagination"}}<nav class="cfs-pagination">
{{range .Pages}}{{if .Current}}<span class="cfs-page cfs-page-current">{{.Number}}</span>{{else}}<a class="cfs-page" href="#" data-page="{{.Number}}">{{.Number}}</a>{{end}}
{{end}}</nav>{{end}}

{{define "load-more"}}<div class="cfs-load-more-wrap">
<button class="cfs-load-more" data-next-page="{{.NextPage}}"{{if not .HasMore}} disabled hidden{{end}}>Load more</button>
</div>{{end}}

{{define "active-filters"}}<div class="cfs-active-filters">
{{range .Filters}}<span class="cfs-chip" data-facet="{{.Slug}}">{{.Label}}: {{.Value}} <a class="cfs-chip-remove" href="{{.RemoveUrl}}" aria-label="Remove">&times;</a></span>
{{end}}{{if .Filters}}<a class="cfs-reset" href="{{.ResetUrl}}">Clear all</a>{{end}}
</div>{{end}}

{{define "sort"}}<select class="cfs-sort" name="cfs_sort">
{{range .Options}}<option value="{{.Value}}"{{if .Selected}} selected{{end}}>{{.Label}}</option>
{{end}}</select>{{end}}
`))
