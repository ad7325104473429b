// Package i18n holds the locale message catalogs consumed by the validation
// engine. A catalog maps an issue code to either a literal string or a
// Template function receiving the issue's structured parameters.
//
// Catalog registration is read-mostly process state: register custom locales
// during startup, before concurrent parsing begins.
package i18n

import "fmt"

// Template renders a message from the structured parameters of an issue
// (bounds, expected/received type names, enum options, and so on).
type Template func(params map[string]any) string

// Catalog maps issue codes to message templates. Values must be string or
// Template; anything else is ignored at lookup time.
type Catalog map[string]any

var catalogs = map[string]Catalog{
	"en": english,
	"id": indonesian,
}

// Register installs or extends a locale catalog. Existing entries for the
// same locale are overwritten code by code.
func Register(locale string, c Catalog) {
	dst, ok := catalogs[locale]
	if !ok {
		dst = Catalog{}
		catalogs[locale] = dst
	}
	for code, tpl := range c {
		dst[code] = tpl
	}
}

// Has reports whether a catalog is registered for the locale.
func Has(locale string) bool {
	_, ok := catalogs[locale]
	return ok
}

// Message resolves a message for code under the given locale, falling back to
// the English catalog and finally to a generic default.
func Message(locale, code string, params map[string]any) string {
	if c, ok := catalogs[locale]; ok {
		if msg := render(c[code], params); msg != "" {
			return msg
		}
	}
	if locale != "en" {
		if msg := render(english[code], params); msg != "" {
			return msg
		}
	}
	return "invalid input"
}

func render(entry any, params map[string]any) string {
	switch t := entry.(type) {
	case string:
		return t
	case Template:
		return t(params)
	case func(map[string]any) string:
		return t(params)
	default:
		return ""
	}
}

var english = Catalog{
	"required":     "required",
	"invalid_type": Template(func(p map[string]any) string {
		if e, ok := p["expected"]; ok {
			if r, ok := p["received"]; ok {
				return fmt.Sprintf("expected %v, received %v", e, r)
			}
			return fmt.Sprintf("expected %v", e)
		}
		return "invalid type"
	}),
	"invalid_literal": Template(func(p map[string]any) string {
		if e, ok := p["expected"]; ok {
			return fmt.Sprintf("invalid literal value, expected %v", e)
		}
		return "invalid literal value"
	}),
	"invalid_enum_value": Template(func(p map[string]any) string {
		if opts, ok := p["options"]; ok {
			return fmt.Sprintf("invalid enum value, expected one of %v", opts)
		}
		return "invalid enum value"
	}),
	"too_small": Template(func(p map[string]any) string {
		if m, ok := p["minimum"]; ok {
			return fmt.Sprintf("too small, minimum is %v", m)
		}
		return "too small"
	}),
	"too_big": Template(func(p map[string]any) string {
		if m, ok := p["maximum"]; ok {
			return fmt.Sprintf("too big, maximum is %v", m)
		}
		return "too big"
	}),
	"invalid_string": Template(func(p map[string]any) string {
		if v, ok := p["validation"]; ok {
			return fmt.Sprintf("invalid %v", v)
		}
		return "invalid string"
	}),
	"invalid_number": Template(func(p map[string]any) string {
		if v, ok := p["validation"]; ok {
			return fmt.Sprintf("invalid number: %v expected", v)
		}
		return "invalid number"
	}),
	"invalid_bigint":        "invalid bigint",
	"invalid_date":          "invalid date",
	"invalid_array":         "invalid array element",
	"invalid_union":         "input did not match any union member",
	"invalid_intersection":  "intersection results cannot be merged",
	"invalid_discriminator": Template(func(p map[string]any) string {
		if opts, ok := p["options"]; ok {
			return fmt.Sprintf("invalid discriminator, expected one of %v", opts)
		}
		return "invalid discriminator"
	}),
	"unknown_keys": Template(func(p map[string]any) string {
		if keys, ok := p["keys"]; ok {
			return fmt.Sprintf("unrecognized keys: %v", keys)
		}
		return "unrecognized keys"
	}),
	"invalid_tuple_length": Template(func(p map[string]any) string {
		if m, ok := p["minimum"]; ok {
			return fmt.Sprintf("expected tuple of length %v", m)
		}
		return "invalid tuple length"
	}),
	"invalid_instance": Template(func(p map[string]any) string {
		if e, ok := p["expected"]; ok {
			return fmt.Sprintf("expected instance of %v", e)
		}
		return "invalid instance"
	}),
	"custom": "invalid input",
}

var indonesian = Catalog{
	"required":              "wajib diisi",
	"invalid_type":          "tipe tidak valid",
	"invalid_literal":       "nilai literal tidak valid",
	"invalid_enum_value":    "nilai enum tidak valid",
	"too_small":             "terlalu kecil",
	"too_big":               "terlalu besar",
	"invalid_string":        "string tidak valid",
	"invalid_number":        "angka tidak valid",
	"invalid_bigint":        "bigint tidak valid",
	"invalid_date":          "tanggal tidak valid",
	"invalid_array":         "elemen array tidak valid",
	"invalid_union":         "input tidak cocok dengan salah satu pilihan",
	"invalid_intersection":  "hasil intersection tidak dapat digabungkan",
	"invalid_discriminator": "discriminator tidak valid",
	"unknown_keys":          "terdapat kunci yang tidak dikenal",
	"invalid_tuple_length":  "panjang tuple tidak valid",
	"invalid_instance":      "instance tidak valid",
	"custom":                "input tidak valid",
}
