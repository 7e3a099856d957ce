package driver

import (
	"strconv"
	"strings"

	"github.com/qza7849467chensh5/reflective-bind/internal/hoist"
	"github.com/qza7849467chensh5/reflective-bind/internal/project"
	"github.com/qza7849467chensh5/reflective-bind/internal/source"
	"github.com/qza7849467chensh5/reflective-bind/internal/transform"
	"github.com/qza7849467chensh5/reflective-bind/internal/version"
)

// cacheKey: H(content || schema || version || options...). Only options that
// change the printed output take part; the log level does not.
func cacheKey(file *source.File, opts transform.Options) project.Digest {
	d := transform.DefaultOptions()
	or := func(v, def string) string {
		if v == "" {
			return def
		}
		return v
	}
	fields := opts.ContextFields
	if fields == nil {
		fields = hoist.DefaultContextFields
	}
	return project.Combine(project.Digest(file.Hash),
		"schema="+strconv.Itoa(int(diskCacheSchemaVersion)),
		"version="+version.Version,
		"prefix="+or(opts.HoistedPrefix, d.HoistedPrefix),
		"helper="+or(opts.HelperName, d.HelperName),
		"module="+or(opts.HelperModule, d.HelperModule),
		"context="+strings.Join(fields, ","),
		"props="+opts.PropNameRegex,
	)
}
