// SPDX-License-Identifier: MPL-2.0

package jsonflex

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type pair struct {
	Foo string `json:"foo"`
	Bar string `json:"bar"`
}

func (p *pair) DecodeString(s string) error {
	p.Foo = s
	return nil
}

var errRejected = errors.New("rejected")

type strict struct {
	Name string `json:"name"`
}

func (s *strict) DecodeString(v string) error {
	if v == "" {
		return errRejected
	}
	s.Name = v
	return nil
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    pair
		wantErr error
	}{
		{name: "scalar form", input: `"hello"`, want: pair{Foo: "hello"}},
		{name: "structured form", input: `{"foo": "hello", "bar": "world"}`, want: pair{Foo: "hello", Bar: "world"}},
		{name: "empty object", input: `{}`, want: pair{}},
		{name: "unknown fields ignored", input: `{"foo": "a", "baz": 1}`, want: pair{Foo: "a"}},
		{name: "null rejected", input: `null`, wantErr: ErrUnexpectedKind},
		{name: "number rejected", input: `42`, wantErr: ErrUnexpectedKind},
		{name: "bool rejected", input: `true`, wantErr: ErrUnexpectedKind},
		{name: "array rejected", input: `["a"]`, wantErr: ErrUnexpectedKind},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := Decode[pair](json.RawMessage(tt.input))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode(%s) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode(%s) unexpected error: %v", tt.input, err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Decode(%s) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestDecode_ConstructorError(t *testing.T) {
	t.Parallel()

	_, err := Decode[strict]([]byte(`""`))
	if !errors.Is(err, errRejected) {
		t.Fatalf("expected constructor error, got %v", err)
	}

	got, err := Decode[strict]([]byte(`"ok"`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "ok" {
		t.Errorf("Name = %q, want %q", got.Name, "ok")
	}
}

func TestDecode_StructuredTypeError(t *testing.T) {
	t.Parallel()

	_, err := Decode[pair]([]byte(`{"foo": 1}`))
	if err == nil {
		t.Fatal("expected error for mistyped field")
	}
	var typeErr *json.UnmarshalTypeError
	if !errors.As(err, &typeErr) {
		t.Fatalf("expected *json.UnmarshalTypeError, got %T: %v", err, err)
	}
	if typeErr.Field != "foo" {
		t.Errorf("Field = %q, want %q", typeErr.Field, "foo")
	}
}

func TestMap_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	type root struct {
		Root Map[pair, *pair] `json:"root"`
	}

	tests := []struct {
		name  string
		input string
		want  Map[pair, *pair]
	}{
		{
			name:  "scalar entry",
			input: `{"root": {"a": "hello"}}`,
			want:  Map[pair, *pair]{"a": {Foo: "hello"}},
		},
		{
			name:  "structured entry",
			input: `{"root": {"a": {"foo": "hello", "bar": "world"}}}`,
			want:  Map[pair, *pair]{"a": {Foo: "hello", Bar: "world"}},
		},
		{
			name:  "mixed entries",
			input: `{"root": {"a": {"foo": "hello", "bar": "world"}, "b": "bar"}}`,
			want: Map[pair, *pair]{
				"a": {Foo: "hello", Bar: "world"},
				"b": {Foo: "bar"},
			},
		},
		{
			name:  "null map",
			input: `{"root": null}`,
			want:  Map[pair, *pair]{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got root
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal: %v", err)
			}
			if got.Root == nil {
				t.Fatal("Root is nil, want non-nil map")
			}
			if diff := cmp.Diff(tt.want, got.Root); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMap_UnmarshalJSON_Errors(t *testing.T) {
	t.Parallel()

	t.Run("entry error names the key", func(t *testing.T) {
		t.Parallel()

		var m Map[pair, *pair]
		err := json.Unmarshal([]byte(`{"ok": "x", "bad": 3}`), &m)
		var fieldErr *FieldError
		if !errors.As(err, &fieldErr) {
			t.Fatalf("expected *FieldError, got %T: %v", err, err)
		}
		if fieldErr.Key != "bad" {
			t.Errorf("Key = %q, want %q", fieldErr.Key, "bad")
		}
		if !errors.Is(err, ErrUnexpectedKind) {
			t.Errorf("expected ErrUnexpectedKind in chain, got %v", err)
		}
	})

	t.Run("non-object map", func(t *testing.T) {
		t.Parallel()

		var m Map[pair, *pair]
		err := json.Unmarshal([]byte(`["a"]`), &m)
		if !errors.Is(err, ErrUnexpectedKind) {
			t.Fatalf("expected ErrUnexpectedKind, got %v", err)
		}
	})
}

func TestMap_Keys(t *testing.T) {
	t.Parallel()

	m := Map[pair, *pair]{"b": {}, "c": {}, "a": {}}
	if diff := cmp.Diff([]string{"a", "b", "c"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldError_Path(t *testing.T) {
	t.Parallel()

	err := &FieldError{Key: "scripts", Err: &FieldError{Key: "build", Err: &KindError{Kind: "number"}}}
	if got := err.Path(); got != "scripts.build" {
		t.Errorf("Path() = %q, want %q", got, "scripts.build")
	}
	want := "scripts.build: expected a string or an object, got number"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestParseFile(t *testing.T) {
	t.Parallel()

	type doc struct {
		Items Map[pair, *pair] `json:"items"`
	}

	t.Run("valid document", func(t *testing.T) {
		t.Parallel()

		got, err := ParseFile[doc]([]byte(`{"items": {"x": "y"}}`), WithFilename("doc.json"))
		if err != nil {
			t.Fatalf("ParseFile: %v", err)
		}
		if got.Items["x"].Foo != "y" {
			t.Errorf("Items[x].Foo = %q, want %q", got.Items["x"].Foo, "y")
		}
	})

	t.Run("syntax error carries position", func(t *testing.T) {
		t.Parallel()

		_, err := ParseFile[doc]([]byte("{\n  \"items\": {,}\n}"), WithFilename("doc.json"))
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
		}
		if syntaxErr.Line != 2 {
			t.Errorf("Line = %d, want 2", syntaxErr.Line)
		}
		if !strings.HasPrefix(err.Error(), "doc.json:2:") {
			t.Errorf("Error() = %q, want doc.json:2: prefix", err.Error())
		}
	})

	t.Run("truncated document", func(t *testing.T) {
		t.Parallel()

		_, err := ParseFile[doc]([]byte(`{"items": `))
		var syntaxErr *SyntaxError
		if !errors.As(err, &syntaxErr) {
			t.Fatalf("expected *SyntaxError, got %T: %v", err, err)
		}
		if !strings.HasPrefix(err.Error(), "<input>") {
			t.Errorf("Error() = %q, want <input> prefix", err.Error())
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		_, err := ParseFile[doc]([]byte(`{"items": {}}`), WithMaxFileSize(4))
		if !errors.Is(err, ErrFileTooLarge) {
			t.Fatalf("expected ErrFileTooLarge, got %v", err)
		}
	})
}
