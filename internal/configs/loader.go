// Package configs loads CUE preset files and decodes values out of them.
package configs

import (
	"errors"
	"fmt"
	"iter"
	"math/big"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// ErrValueNotFound is returned when no loaded file defines a path.
var ErrValueNotFound = errors.New("value not found")

// Loader compiles a list of CUE files once, on first use, and validates each
// against an optional closed schema.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

type rootInfo struct {
	value cue.Value
	path  string
}

// NewLoader returns a loader over filePaths. schemaSrc is the body of a CUE
// struct; fields not named in it are rejected.
func NewLoader(filePaths []string, schemaSrc string) Loader {
	return Loader{
		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, fmt.Errorf("compile schema: %w", err)
				}
			}

			for _, filePath := range filePaths {
				content, err := os.ReadFile(filePath)
				if err != nil {
					return nil, err
				}
				value := ctx.CompileBytes(content, cue.Filename(filePath))
				if err := value.Err(); err != nil {
					return nil, err
				}
				if schema.Exists() {
					value = schema.Unify(value)
					if err := value.Validate(cue.Concrete(true)); err != nil {
						return nil, fmt.Errorf("%s: %w", filePath, err)
					}
				}
				ret = append(ret, rootInfo{value: value, path: filePath})
			}
			return
		}),
	}
}

// Err reports any error from reading, compiling or validating the files.
func (l Loader) Err() error {
	_, err := l.getRoots()
	return err
}

// IterValues yields the concrete value at path in every file that defines it.
func (l Loader) IterValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.getRoots()
		if err != nil {
			yield(nil, err)
			return
		}
		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if value.Exists() && value.Err() == nil && value.IsConcrete() {
				if !yield(&value, nil) {
					break
				}
			}
		}
	}
}

// First returns the value at path from the first file defining it.
func (l Loader) First(path string) (cue.Value, error) {
	for value, err := range l.IterValues(path) {
		if err != nil {
			return cue.Value{}, err
		}
		return *value, nil
	}
	return cue.Value{}, fmt.Errorf("%w: %s", ErrValueNotFound, path)
}

// AssignFirst decodes the first value at path into target.
func (l Loader) AssignFirst(path string, target any) error {
	value, err := l.First(path)
	if err != nil {
		return err
	}
	return value.Decode(target)
}

// BigInt reads an integer of any size at path. Decimal strings are accepted
// too, since some tools write large integers quoted.
func (l Loader) BigInt(path string) (*big.Int, error) {
	value, err := l.First(path)
	if err != nil {
		return nil, err
	}
	switch value.Kind() {
	case cue.IntKind:
		return value.Int(nil)
	case cue.StringKind:
		s, err := value.String()
		if err != nil {
			return nil, err
		}
		n, ok := new(big.Int).SetString(s, 10)
		if !ok {
			return nil, fmt.Errorf("%s: %q is not a decimal integer", path, s)
		}
		return n, nil
	}
	return nil, fmt.Errorf("%s: expected integer, got %v", path, value.Kind())
}
