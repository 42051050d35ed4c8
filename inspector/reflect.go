package inspector

import (
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Widget selects how a field is shown.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetAngle
	WidgetBool
	WidgetSkip
)

// Options are the parsed key:value hints of an inspect tag.
type Options struct {
	Format string  // fmt verb for labels
	Max    float64 // Full-scale value for bars
}

// Field is one exported component field with its rendering hints.
type Field struct {
	Name    string
	Value   any
	Widget  Widget
	Options Options
}

// ParseTag parses an inspect struct tag.
// Format: `inspect:"widget[,option:value...]"`
//
//	`inspect:"bar,max:45"`
//	`inspect:"label,fmt:%.1f"`
//	`inspect:"skip"`
func ParseTag(tag string) (Widget, Options) {
	opts := Options{Max: 1}
	if tag == "" {
		return WidgetAuto, opts
	}

	parts := strings.Split(tag, ",")
	var widget Widget
	switch strings.TrimSpace(parts[0]) {
	case "label":
		widget = WidgetLabel
	case "bar":
		widget = WidgetBar
	case "angle":
		widget = WidgetAngle
	case "bool":
		widget = WidgetBool
	case "skip":
		widget = WidgetSkip
	}

	for _, part := range parts[1:] {
		key, val, ok := strings.Cut(strings.TrimSpace(part), ":")
		if !ok {
			continue
		}
		switch key {
		case "fmt":
			opts.Format = val
		case "max":
			if m, err := strconv.ParseFloat(val, 64); err == nil && m > 0 {
				opts.Max = m
			}
		}
	}
	return widget, opts
}

// ExtractFields lists the exported fields of a struct (or pointer to one).
// Embedded structs are flattened.
func ExtractFields(component any) []Field {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := 0; i < v.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		fv := v.Field(i)
		if sf.Anonymous && fv.Kind() == reflect.Struct {
			fields = append(fields, ExtractFields(fv.Interface())...)
			continue
		}

		widget, opts := ParseTag(sf.Tag.Get("inspect"))
		if widget == WidgetSkip {
			continue
		}
		if widget == WidgetAuto {
			widget = autoDetectWidget(fv)
		}
		fields = append(fields, Field{
			Name:    sf.Name,
			Value:   fv.Interface(),
			Widget:  widget,
			Options: opts,
		})
	}
	return fields
}

func autoDetectWidget(v reflect.Value) Widget {
	if v.Kind() == reflect.Bool {
		return WidgetBool
	}
	return WidgetLabel
}

// Text formats the field value for display.
func (f Field) Text() string {
	switch f.Widget {
	case WidgetBool:
		if b, ok := f.Value.(bool); ok && b {
			return "yes"
		}
		return "no"
	case WidgetAngle:
		if v, ok := floatValue(f.Value); ok {
			return fmt.Sprintf("%.0f°", v)
		}
	case WidgetBar:
		if v, ok := floatValue(f.Value); ok {
			return fmt.Sprintf("%.2f", v)
		}
	}
	if f.Options.Format != "" {
		return fmt.Sprintf(f.Options.Format, f.Value)
	}
	switch v := f.Value.(type) {
	case float32, float64:
		return fmt.Sprintf("%.2f", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Ratio returns the bar fill in [0, 1]. ok is false for non-numeric values.
func (f Field) Ratio() (float64, bool) {
	v, ok := floatValue(f.Value)
	if !ok {
		return 0, false
	}
	r := v / f.Options.Max
	if math.IsNaN(r) {
		return 0, true
	}
	return math.Max(0, math.Min(1, r)), true
}

func floatValue(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
