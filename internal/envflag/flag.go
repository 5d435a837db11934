// Copyright 2024 The Combspec Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package envflag parses a comma-separated list of boolean name=value
// pairs out of an environment variable into the exported bool fields of a
// struct, honouring an `envflag:"default:true"` tag for non-zero
// defaults.
//
// Adapted from cuelang.org/go's internal/envflag package, which this
// module's internal/searchdebug package uses the same way CUE's
// internal/cuedebug uses it: a tiny, dependency-free settings parser for
// a COMBSPEC_DEBUG-style knob, not a feature that belongs behind a
// third-party flags library.
package envflag

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Init uses Parse with the contents of the given environment variable as
// input.
func Init[T any](flags *T, envVar string) error {
	err := Parse(flags, os.Getenv(envVar))
	if err != nil {
		return fmt.Errorf("cannot parse %s: %w", envVar, err)
	}
	return nil
}

// Parse initializes the fields in flags from the attached struct field
// tags as well as the contents of the given string.
//
// The struct field tag may contain a default value other than the zero
// value, such as `envflag:"default:true"` to set a boolean field to true
// by default.
//
// The string may contain a comma-separated list of name=value pairs
// representing the boolean fields in the struct type T. If the value is
// omitted entirely, it is assumed to be name=true.
//
// Names are treated case insensitively. Value strings are parsed as Go
// booleans via strconv.ParseBool, meaning they accept "true" and "false"
// but also the shorter "1" and "0".
func Parse[T any](flags *T, env string) error {
	indexByName := make(map[string]int)
	fv := reflect.ValueOf(flags).Elem()
	ft := fv.Type()
	for i := 0; i < ft.NumField(); i++ {
		field := ft.Field(i)
		defaultValue := false
		if tagStr, ok := field.Tag.Lookup("envflag"); ok {
			defaultStr, ok := strings.CutPrefix(tagStr, "default:")
			if !ok {
				return fmt.Errorf("expected tag like `envflag:\"default:true\"`: %s", tagStr)
			}
			v, err := strconv.ParseBool(defaultStr)
			if err != nil {
				return fmt.Errorf("invalid default bool value for %s: %v", field.Name, err)
			}
			defaultValue = v
			fv.Field(i).SetBool(defaultValue)
		}
		indexByName[strings.ToLower(field.Name)] = i
	}

	if env == "" {
		return nil
	}
	var errs []error
	for _, elem := range strings.Split(env, ",") {
		name, valueStr, ok := strings.Cut(elem, "=")
		value := true
		if ok {
			v, err := strconv.ParseBool(valueStr)
			if err != nil {
				return invalidError{fmt.Errorf("invalid bool value for %s: %v", name, err)}
			}
			value = v
		}
		index, ok := indexByName[strings.ToLower(name)]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown %s", elem))
			continue
		}
		fv.Field(index).SetBool(value)
	}
	return errors.Join(errs...)
}

// InvalidError wraps malformed input string errors.
var InvalidError = errors.New("invalid value")

type invalidError struct{ error }

func (invalidError) Is(err error) bool {
	return err == InvalidError
}
